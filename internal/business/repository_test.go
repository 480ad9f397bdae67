package business

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBusinessMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func businessRowColumns() []string {
	return []string{
		"id", "name", "type", "address", "lat", "lon", "phone", "email",
		"description", "logo_url", "subscription_status", "subscription_end_date",
		"created_at", "updated_at",
	}
}

func statusRowColumns() []string {
	return []string{
		"id", "business_id", "status", "estimated_wait_minutes",
		"current_queue_count", "updated_by_admin_id", "updated_at",
	}
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	repo, mock := setupBusinessMock(t)

	mock.ExpectQuery(`FROM businesses WHERE id =`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(businessRowColumns()))

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryList_TypeFilter(t *testing.T) {
	repo, mock := setupBusinessMock(t)

	now := time.Now()
	rows := sqlmock.NewRows(businessRowColumns()).
		AddRow(1, "Shiny Wash", "car_wash", "Main st 1", 55.75, 37.62, "+70000000000",
			nil, nil, nil, "trial", nil, now, now)

	mock.ExpectQuery(`FROM businesses WHERE 1=1 AND type =`).
		WithArgs("car_wash", 50, 0).
		WillReturnRows(rows)

	businesses, err := repo.List(context.Background(), ListFilter{Type: "car_wash"})

	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, "Shiny Wash", businesses[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetStatus_NeverReported(t *testing.T) {
	repo, mock := setupBusinessMock(t)

	mock.ExpectQuery(`FROM business_status`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(statusRowColumns()))

	status, err := repo.GetStatus(context.Background(), 7)

	// Отсутствие строки это не ошибка
	require.NoError(t, err)
	assert.Nil(t, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpsertStatus(t *testing.T) {
	repo, mock := setupBusinessMock(t)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO business_status`).
		WithArgs(1, "busy", 20, 5).
		WillReturnRows(sqlmock.NewRows(statusRowColumns()).
			AddRow(3, 1, "busy", 20, 0, 5, now))
	mock.ExpectExec(`INSERT INTO status_history`).
		WithArgs(1, "busy", 20).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	status, err := repo.UpsertStatus(context.Background(), 1, 5, "busy", 20)

	require.NoError(t, err)
	assert.Equal(t, "busy", status.Status)
	assert.Equal(t, 20, status.EstimatedWaitMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindDayHours(t *testing.T) {
	repo, mock := setupBusinessMock(t)

	columns := []string{
		"id", "business_id", "day_of_week", "open_time", "close_time",
		"is_closed", "created_at", "updated_at",
	}

	t.Run("no row for weekday", func(t *testing.T) {
		mock.ExpectQuery(`FROM business_hours`).
			WithArgs(1, 6).
			WillReturnRows(sqlmock.NewRows(columns))

		hours, err := repo.FindDayHours(context.Background(), 1, 6)

		require.NoError(t, err)
		assert.Nil(t, hours)
	})

	t.Run("open day", func(t *testing.T) {
		now := time.Now()
		open := time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)
		close := time.Date(2000, 1, 1, 18, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`FROM business_hours`).
			WithArgs(1, 0).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(10, 1, 0, open, close, false, now, now))

		hours, err := repo.FindDayHours(context.Background(), 1, 0)

		require.NoError(t, err)
		require.NotNil(t, hours)
		assert.False(t, hours.IsClosed)
		assert.Equal(t, "09:00", hours.Open.Format("15:04"))
		assert.Equal(t, "18:00", hours.Close.Format("15:04"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
