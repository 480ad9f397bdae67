package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrServiceNotFound = errors.New("service not found")

const serviceColumns = `id, business_id, name, description, price_from, price_to,
	duration_minutes, photo_url, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveByBusiness(ctx context.Context, businessID int) ([]Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE business_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`

	var services []Service
	if err := r.db.SelectContext(ctx, &services, query, businessID); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID int) ([]Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE business_id = $1
		ORDER BY created_at DESC
	`

	var services []Service
	if err := r.db.SelectContext(ctx, &services, query, businessID); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *repository) GetByID(ctx context.Context, businessID, serviceID int) (*Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE id = $1 AND business_id = $2
	`

	var s Service
	err := r.db.GetContext(ctx, &s, query, serviceID, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Create(ctx context.Context, businessID int, req CreateServiceRequest) (*Service, error) {
	query := `
		INSERT INTO services (business_id, name, description, price_from, price_to, duration_minutes, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + serviceColumns

	var s Service
	err := r.db.GetContext(ctx, &s, query,
		businessID, req.Name, req.Description, req.PriceFrom, req.PriceTo, req.DurationMinutes, req.PhotoURL)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, businessID, serviceID int, req UpdateServiceRequest) (*Service, error) {
	current, err := r.GetByID(ctx, businessID, serviceID)
	if err != nil {
		return nil, err
	}

	merged := merge(*current, req)

	query := `
		UPDATE services
		SET name = $1, description = $2, price_from = $3, price_to = $4,
		    duration_minutes = $5, photo_url = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8 AND business_id = $9
		RETURNING ` + serviceColumns

	var s Service
	err = r.db.GetContext(ctx, &s, query,
		merged.Name, merged.Description, merged.PriceFrom, merged.PriceTo,
		merged.DurationMinutes, merged.PhotoURL, merged.IsActive, serviceID, businessID)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// merge overwrites only the fields present in the request.
func merge(s Service, req UpdateServiceRequest) Service {
	if req.Name != nil {
		s.Name = *req.Name
	}
	if req.Description != nil {
		s.Description = req.Description
	}
	if req.PriceFrom != nil {
		s.PriceFrom = req.PriceFrom
	}
	if req.PriceTo != nil {
		s.PriceTo = req.PriceTo
	}
	if req.DurationMinutes != nil {
		s.DurationMinutes = *req.DurationMinutes
	}
	if req.PhotoURL != nil {
		s.PhotoURL = req.PhotoURL
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	return s
}

func (r *repository) Delete(ctx context.Context, businessID, serviceID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM services WHERE id = $1 AND business_id = $2`, serviceID, businessID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func (r *repository) ServiceExists(ctx context.Context, businessID, serviceID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM services WHERE id = $1 AND business_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, serviceID, businessID); err != nil {
		return false, err
	}

	return exists, nil
}
