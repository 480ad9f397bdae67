package favorite

import (
	"context"
	"errors"

	"github.com/NazarovEvgn/lets-app/internal/business"

	"github.com/jmoiron/sqlx"
)

var ErrNotFavorite = errors.New("business is not in favorites")

type Repository interface {
	Add(ctx context.Context, userID, businessID int) error
	Remove(ctx context.Context, userID, businessID int) error
	ListBusinesses(ctx context.Context, userID int) ([]business.Business, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Add is idempotent: favoriting an already-favorited business succeeds.
func (r *repository) Add(ctx context.Context, userID, businessID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, business_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, business_id) DO NOTHING
	`, userID, businessID)
	return err
}

func (r *repository) Remove(ctx context.Context, userID, businessID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND business_id = $2`, userID, businessID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFavorite
	}

	return nil
}

func (r *repository) ListBusinesses(ctx context.Context, userID int) ([]business.Business, error) {
	query := `
		SELECT b.id, b.name, b.type, b.address, b.lat, b.lon, b.phone, b.email,
		       b.description, b.logo_url, b.subscription_status, b.subscription_end_date,
		       b.created_at, b.updated_at
		FROM favorites f
		JOIN businesses b ON b.id = f.business_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	var businesses []business.Business
	if err := r.db.SelectContext(ctx, &businesses, query, userID); err != nil {
		return nil, err
	}

	return businesses, nil
}
