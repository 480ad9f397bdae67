package booking

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"ID", "Date", "Time", "Status", "Client", "Phone", "Service ID", "Through App", "Notes",
}

// ExportXLSX renders the bookings of a date range into a spreadsheet for
// offline bookkeeping.
func (s *service) ExportXLSX(ctx context.Context, businessID int, from, to string) ([]byte, error) {
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return nil, ErrInvalidDate
	}

	bookings, err := s.repo.ListByDateRange(ctx, businessID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	// Bold header row; styling failures are not worth failing the export.
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}

	for i, b := range bookings {
		notes := ""
		if b.Notes != nil {
			notes = *b.Notes
		}
		row := []interface{}{
			b.ID, b.BookingDate, b.BookingTime, b.Status,
			b.ClientName, b.ClientPhone, b.ServiceID, b.CameThroughApp, notes,
		}
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
