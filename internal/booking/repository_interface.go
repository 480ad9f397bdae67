package booking

import (
	"context"
	"time"

	"github.com/NazarovEvgn/lets-app/internal/availability"
)

// Repository defines data access for bookings. Dates and times cross this
// boundary as "2006-01-02" / "15:04" strings to match the wire format.
type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	ListByBusiness(ctx context.Context, businessID int, f ListFilter) ([]Booking, error)
	ListByUser(ctx context.Context, userID int) ([]Booking, error)
	UpdateStatus(ctx context.Context, id int, status string, cameThroughApp *bool) (*Booking, error)
	ListByDateRange(ctx context.Context, businessID int, from, to string) ([]Booking, error)
	Analytics(ctx context.Context, businessID int) (*Analytics, error)
	CountByEmployee(ctx context.Context, businessID int) ([]EmployeeBookingCount, error)

	// FindActiveBookingTimes feeds the availability resolver.
	FindActiveBookingTimes(ctx context.Context, businessID int, date time.Time) ([]string, error)
}

var _ availability.BookingFinder = (Repository)(nil)
