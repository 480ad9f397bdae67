package promotion

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrPromotionNotFound = errors.New("promotion not found")

const promotionColumns = `id, business_id, title, description, discount_percent,
	valid_from, valid_until, is_active, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveByBusiness(ctx context.Context, businessID int) ([]Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE business_id = $1 AND is_active = TRUE AND valid_until >= NOW()
		ORDER BY created_at DESC
	`

	var promotions []Promotion
	if err := r.db.SelectContext(ctx, &promotions, query, businessID); err != nil {
		return nil, err
	}

	return promotions, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID int) ([]Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE business_id = $1
		ORDER BY created_at DESC
	`

	var promotions []Promotion
	if err := r.db.SelectContext(ctx, &promotions, query, businessID); err != nil {
		return nil, err
	}

	return promotions, nil
}

func (r *repository) Create(ctx context.Context, businessID int, req CreatePromotionRequest) (*Promotion, error) {
	query := `
		INSERT INTO promotions (business_id, title, description, discount_percent, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + promotionColumns

	var p Promotion
	err := r.db.GetContext(ctx, &p, query,
		businessID, req.Title, req.Description, req.DiscountPercent, req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, businessID, promotionID int, req UpdatePromotionRequest) (*Promotion, error) {
	var current Promotion
	err := r.db.GetContext(ctx, &current,
		`SELECT `+promotionColumns+` FROM promotions WHERE id = $1 AND business_id = $2`,
		promotionID, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, err
	}

	merged := merge(current, req)

	query := `
		UPDATE promotions
		SET title = $1, description = $2, discount_percent = $3,
		    valid_from = $4, valid_until = $5, is_active = $6
		WHERE id = $7 AND business_id = $8
		RETURNING ` + promotionColumns

	var p Promotion
	err = r.db.GetContext(ctx, &p, query,
		merged.Title, merged.Description, merged.DiscountPercent,
		merged.ValidFrom, merged.ValidUntil, merged.IsActive, promotionID, businessID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// merge overwrites only the fields present in the request.
func merge(p Promotion, req UpdatePromotionRequest) Promotion {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.DiscountPercent != nil {
		p.DiscountPercent = req.DiscountPercent
	}
	if req.ValidFrom != nil {
		p.ValidFrom = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		p.ValidUntil = *req.ValidUntil
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p
}

func (r *repository) Delete(ctx context.Context, businessID, promotionID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM promotions WHERE id = $1 AND business_id = $2`, promotionID, businessID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPromotionNotFound
	}

	return nil
}
