package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBookingMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "business_id", "user_id", "service_id", "employee_id",
		"booking_date", "booking_time", "status",
		"client_name", "client_phone", "notes", "came_through_app",
		"created_at", "updated_at",
	})
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	now := time.Now()
	userID := 42

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(1, 42, 2, nil, "2025-06-17", "09:30", StatusPending,
			"Ivan", "+79001234567", nil, true).
		WillReturnRows(bookingRows().AddRow(
			7, 1, 42, 2, nil, "2025-06-17", "09:30", StatusPending,
			"Ivan", "+79001234567", nil, true, now, now,
		))

	b, err := repo.Create(context.Background(), &Booking{
		BusinessID:     1,
		UserID:         &userID,
		ServiceID:      2,
		BookingDate:    "2025-06-17",
		BookingTime:    "09:30",
		Status:         StatusPending,
		ClientName:     "Ivan",
		ClientPhone:    "+79001234567",
		CameThroughApp: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, b.ID)
	assert.Equal(t, "09:30", b.BookingTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestFindActiveBookingTimes(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT to_char\(booking_time, 'HH24:MI'\)`).
		WithArgs(1, "2025-06-17").
		WillReturnRows(sqlmock.NewRows([]string{"to_char"}).
			AddRow("09:30").
			AddRow("14:00"))

	times, err := repo.FindActiveBookingTimes(context.Background(), 1, date)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "14:00"}, times)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByBusiness_StatusFilter(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE business_id = \$1 AND status = \$2`).
		WithArgs(1, StatusPending, 50).
		WillReturnRows(bookingRows().AddRow(
			1, 1, nil, 2, nil, "2025-06-17", "09:30", StatusPending,
			"Ivan", "+79001234567", nil, true, now, now,
		))

	bookings, err := repo.ListByBusiness(context.Background(), 1, ListFilter{Status: StatusPending})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, StatusPending, bookings[0].Status)
}

func TestCountByEmployee(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectQuery(`LEFT JOIN bookings b`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"employee_id", "employee_name", "booking_count"}).
			AddRow(3, "Anna", 4).
			AddRow(5, "Boris", 0))

	counts, err := repo.CountByEmployee(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, EmployeeBookingCount{EmployeeID: 3, EmployeeName: "Anna", BookingCount: 4}, counts[0])
	// Сотрудник без записей тоже попадает в выборку
	assert.Zero(t, counts[1].BookingCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalytics(t *testing.T) {
	repo, mock, close := setupBookingMock(t)
	defer close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE business_id = \$1$`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM bookings`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(StatusPending, 3).
			AddRow(StatusCompleted, 7))

	mock.ExpectQuery(`came_through_app = TRUE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM services`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM promotions`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	a, err := repo.Analytics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, a.TotalBookings)
	assert.Equal(t, map[string]int{StatusPending: 3, StatusCompleted: 7}, a.BookingsByStatus)
	assert.Equal(t, 4, a.BookingsThroughApp)
	assert.InDelta(t, 40.0, a.ConversionRate, 0.001)
	assert.Equal(t, 5, a.TotalServices)
	assert.Equal(t, 2, a.ActivePromotions)
}
