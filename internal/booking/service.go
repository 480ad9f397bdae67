package booking

import (
	"context"
	"errors"
	"time"

	"github.com/NazarovEvgn/lets-app/internal/availability"
	"github.com/NazarovEvgn/lets-app/internal/catalog"
)

var (
	ErrInvalidDate       = errors.New("invalid booking_date format, use YYYY-MM-DD")
	ErrInvalidTime       = errors.New("invalid booking_time format, use HH:MM")
	ErrDateInPast        = errors.New("cannot book in the past")
	ErrServiceNotFound   = errors.New("service not found for this business")
	ErrInvalidStatus     = errors.New("invalid status, must be one of: pending, confirmed, completed, cancelled")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service interface {
	CreateClientBooking(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error)
	CreateWalkIn(ctx context.Context, businessID int, req WalkInRequest) (*Booking, error)
	ListForUser(ctx context.Context, userID int) ([]Booking, error)
	ListForBusiness(ctx context.Context, businessID int, f ListFilter) ([]Booking, error)
	UpdateStatus(ctx context.Context, businessID, bookingID int, req UpdateStatusRequest) (*Booking, error)
	Cancel(ctx context.Context, userID, bookingID int) (*Booking, error)
	GetAnalytics(ctx context.Context, businessID int) (*Analytics, error)
	CountByEmployee(ctx context.Context, businessID int) ([]EmployeeBookingCount, error)
	ExportXLSX(ctx context.Context, businessID int, from, to string) ([]byte, error)
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	clock       availability.Clock
}

func NewService(repo Repository, catalogRepo catalog.Repository, clock availability.Clock) Service {
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		clock:       clock,
	}
}

// validateSlot checks the date/time wire formats and rejects dates before
// today. Slot occupancy is deliberately NOT checked here: availability is
// advisory and two clients racing for one slot both succeed.
func (s *service) validateSlot(dateStr, timeStr string) error {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse("15:04", timeStr); err != nil {
		return ErrInvalidTime
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return ErrDateInPast
	}

	return nil
}

func (s *service) CreateClientBooking(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	if err := s.validateSlot(req.BookingDate, req.BookingTime); err != nil {
		return nil, err
	}

	exists, err := s.catalogRepo.ServiceExists(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrServiceNotFound
	}

	return s.repo.Create(ctx, &Booking{
		BusinessID:     req.BusinessID,
		UserID:         &userID,
		ServiceID:      req.ServiceID,
		EmployeeID:     req.EmployeeID,
		BookingDate:    req.BookingDate,
		BookingTime:    req.BookingTime,
		Status:         StatusPending,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Notes:          req.Notes,
		CameThroughApp: true,
	})
}

// CreateWalkIn records a booking taken over the phone or at the counter.
// Walk-ins are confirmed immediately and carry no user account.
func (s *service) CreateWalkIn(ctx context.Context, businessID int, req WalkInRequest) (*Booking, error) {
	if err := s.validateSlot(req.BookingDate, req.BookingTime); err != nil {
		return nil, err
	}

	exists, err := s.catalogRepo.ServiceExists(ctx, businessID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrServiceNotFound
	}

	return s.repo.Create(ctx, &Booking{
		BusinessID:     businessID,
		ServiceID:      req.ServiceID,
		EmployeeID:     req.EmployeeID,
		BookingDate:    req.BookingDate,
		BookingTime:    req.BookingTime,
		Status:         StatusConfirmed,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		Notes:          req.Notes,
		CameThroughApp: false,
	})
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ListForBusiness(ctx context.Context, businessID int, f ListFilter) ([]Booking, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListByBusiness(ctx, businessID, f)
}

func (s *service) UpdateStatus(ctx context.Context, businessID, bookingID int, req UpdateStatusRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BusinessID != businessID {
		return nil, ErrBookingNotFound
	}

	status := b.Status
	if req.Status != "" && req.Status != b.Status {
		if !ValidStatus(req.Status) {
			return nil, ErrInvalidStatus
		}
		if !CanTransition(b.Status, req.Status) {
			return nil, ErrInvalidTransition
		}
		status = req.Status
	}

	return s.repo.UpdateStatus(ctx, bookingID, status, req.CameThroughApp)
}

// Cancel lets a client cancel their own booking. Bookings are never deleted;
// cancellation is a status transition like any other.
func (s *service) Cancel(ctx context.Context, userID, bookingID int) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID == nil || *b.UserID != userID {
		return nil, ErrBookingNotFound
	}

	if !CanTransition(b.Status, StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, bookingID, StatusCancelled, nil)
}

func (s *service) GetAnalytics(ctx context.Context, businessID int) (*Analytics, error) {
	return s.repo.Analytics(ctx, businessID)
}

func (s *service) CountByEmployee(ctx context.Context, businessID int) ([]EmployeeBookingCount, error) {
	return s.repo.CountByEmployee(ctx, businessID)
}
