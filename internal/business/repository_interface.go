package business

import (
	"context"
	"time"

	"github.com/NazarovEvgn/lets-app/internal/availability"
)

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]Business, error)
	GetByID(ctx context.Context, id int) (*Business, error)
	UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Business, error)

	RegisterBusiness(ctx context.Context, b *Business, adminEmail, passwordHash string) (*Business, *Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	AdminEmailExists(ctx context.Context, email string) (bool, error)

	GetStatus(ctx context.Context, businessID int) (*Status, error)
	GetStatuses(ctx context.Context, businessIDs []int) (map[int]Status, error)
	UpsertStatus(ctx context.Context, businessID, adminID int, status string, waitMinutes int) (*Status, error)
	GetStatusHistory(ctx context.Context, businessID, limit int) ([]StatusHistoryEntry, error)

	GetHours(ctx context.Context, businessID int) ([]DayHoursRow, error)
	CreateDefaultHours(ctx context.Context, businessID int) ([]DayHoursRow, error)
	ReplaceHours(ctx context.Context, businessID int, entries []HoursEntry) ([]DayHoursRow, error)
	FindDayHours(ctx context.Context, businessID, weekday int) (*availability.DayHours, error)
}

var _ availability.HoursFinder = (Repository)(nil)

// timeOfDay parses an "HH:MM" wall-clock string onto the reference date used
// for TIME column values.
func timeOfDay(s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
