package photo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPhotoMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func photoRowColumns() []string {
	return []string{"id", "business_id", "photo_url", "display_order", "is_main", "created_at"}
}

func TestListByBusiness_Ordering(t *testing.T) {
	repo, mock := setupPhotoMock(t)

	now := time.Now()
	rows := sqlmock.NewRows(photoRowColumns()).
		AddRow(2, 1, "/uploads/a.jpg", 0, true, now).
		AddRow(3, 1, "/uploads/b.jpg", 1, false, now)

	mock.ExpectQuery(`FROM business_photos\s+WHERE business_id = \$1\s+ORDER BY display_order, created_at`).
		WithArgs(1).
		WillReturnRows(rows)

	photos, err := repo.ListByBusiness(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.True(t, photos[0].IsMain)
	assert.Equal(t, "/uploads/b.jpg", photos[1].PhotoURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NotMainByDefault(t *testing.T) {
	repo, mock := setupPhotoMock(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO business_photos`).
		WithArgs(1, "/uploads/a.jpg", 2).
		WillReturnRows(sqlmock.NewRows(photoRowColumns()).
			AddRow(5, 1, "/uploads/a.jpg", 2, false, now))

	p, err := repo.Create(context.Background(), 1, CreatePhotoRequest{
		PhotoURL:     "/uploads/a.jpg",
		DisplayOrder: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
	assert.False(t, p.IsMain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_PromoteDemotesOthers(t *testing.T) {
	repo, mock := setupPhotoMock(t)

	now := time.Now()
	isMain := true

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM business_photos\s+WHERE id = \$1 AND business_id = \$2`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows(photoRowColumns()).
			AddRow(5, 1, "/uploads/a.jpg", 2, false, now))
	mock.ExpectExec(`UPDATE business_photos SET is_main = FALSE WHERE business_id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`UPDATE business_photos\s+SET photo_url = \$1, display_order = \$2, is_main = \$3`).
		WithArgs("/uploads/a.jpg", 2, true, 5, 1).
		WillReturnRows(sqlmock.NewRows(photoRowColumns()).
			AddRow(5, 1, "/uploads/a.jpg", 2, true, now))
	mock.ExpectCommit()

	p, err := repo.Update(context.Background(), 1, 5, UpdatePhotoRequest{IsMain: &isMain})

	require.NoError(t, err)
	assert.True(t, p.IsMain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := setupPhotoMock(t)

	order := 3

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM business_photos\s+WHERE id = \$1 AND business_id = \$2`).
		WithArgs(99, 1).
		WillReturnRows(sqlmock.NewRows(photoRowColumns()))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 1, 99, UpdatePhotoRequest{DisplayOrder: &order})

	assert.ErrorIs(t, err, ErrPhotoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMain(t *testing.T) {
	t.Run("existing photo", func(t *testing.T) {
		repo, mock := setupPhotoMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE business_photos SET is_main = FALSE WHERE business_id = \$1`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`UPDATE business_photos SET is_main = TRUE WHERE id = \$1 AND business_id = \$2`).
			WithArgs(5, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.SetMain(context.Background(), 1, 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing or foreign photo", func(t *testing.T) {
		repo, mock := setupPhotoMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE business_photos SET is_main = FALSE WHERE business_id = \$1`).
			WithArgs(8).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE business_photos SET is_main = TRUE WHERE id = \$1 AND business_id = \$2`).
			WithArgs(5, 8).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		// Откат не трогает фотографии другого бизнеса
		assert.ErrorIs(t, repo.SetMain(context.Background(), 8, 5), ErrPhotoNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := setupPhotoMock(t)

	mock.ExpectExec(`DELETE FROM business_photos WHERE id = \$1 AND business_id = \$2`).
		WithArgs(99, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 1, 99), ErrPhotoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
