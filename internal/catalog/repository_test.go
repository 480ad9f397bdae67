package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func serviceRowColumns() []string {
	return []string{
		"id", "business_id", "name", "description", "price_from", "price_to",
		"duration_minutes", "photo_url", "is_active", "created_at", "updated_at",
	}
}

func TestListActiveByBusiness(t *testing.T) {
	repo, mock := setupCatalogMock(t)

	now := time.Now()
	rows := sqlmock.NewRows(serviceRowColumns()).
		AddRow(2, 1, "Basic wash", nil, 500.0, 700.0, 30, nil, true, now, now).
		AddRow(3, 1, "Wax coating", nil, 1500.0, nil, 60, nil, true, now, now)

	mock.ExpectQuery(`FROM services\s+WHERE business_id = \$1 AND is_active = TRUE`).
		WithArgs(1).
		WillReturnRows(rows)

	services, err := repo.ListActiveByBusiness(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Basic wash", services[0].Name)
	assert.Equal(t, 60, services[1].DurationMinutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := setupCatalogMock(t)

	mock.ExpectQuery(`FROM services\s+WHERE id = \$1 AND business_id = \$2`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows(serviceRowColumns()))

	_, err := repo.GetByID(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := setupCatalogMock(t)

	t.Run("existing service", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM services WHERE id = \$1 AND business_id = \$2`).
			WithArgs(2, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 1, 2))
	})

	t.Run("missing or foreign service", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM services WHERE id = \$1 AND business_id = \$2`).
			WithArgs(2, 8).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 8, 2), ErrServiceNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceExists(t *testing.T) {
	repo, mock := setupCatalogMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ServiceExists(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
