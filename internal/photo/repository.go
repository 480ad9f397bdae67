package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrPhotoNotFound = errors.New("photo not found")

const photoColumns = `id, business_id, photo_url, display_order, is_main, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByBusiness(ctx context.Context, businessID int) ([]Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM business_photos
		WHERE business_id = $1
		ORDER BY display_order, created_at
	`

	var photos []Photo
	if err := r.db.SelectContext(ctx, &photos, query, businessID); err != nil {
		return nil, err
	}

	return photos, nil
}

func (r *repository) Create(ctx context.Context, businessID int, req CreatePhotoRequest) (*Photo, error) {
	query := `
		INSERT INTO business_photos (business_id, photo_url, display_order)
		VALUES ($1, $2, $3)
		RETURNING ` + photoColumns

	var p Photo
	err := r.db.GetContext(ctx, &p, query, businessID, req.PhotoURL, req.DisplayOrder)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, businessID, photoID int, req UpdatePhotoRequest) (*Photo, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current Photo
	err = tx.GetContext(ctx, &current, `
		SELECT `+photoColumns+`
		FROM business_photos
		WHERE id = $1 AND business_id = $2
	`, photoID, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}

	merged := merge(current, req)

	// Promoting a photo demotes the rest of the gallery.
	if merged.IsMain && !current.IsMain {
		if _, err := tx.ExecContext(ctx,
			`UPDATE business_photos SET is_main = FALSE WHERE business_id = $1`, businessID); err != nil {
			return nil, fmt.Errorf("demote photos: %w", err)
		}
	}

	query := `
		UPDATE business_photos
		SET photo_url = $1, display_order = $2, is_main = $3
		WHERE id = $4 AND business_id = $5
		RETURNING ` + photoColumns

	var p Photo
	if err := tx.GetContext(ctx, &p, query,
		merged.PhotoURL, merged.DisplayOrder, merged.IsMain, photoID, businessID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &p, nil
}

// merge overwrites only the fields present in the request.
func merge(p Photo, req UpdatePhotoRequest) Photo {
	if req.PhotoURL != nil {
		p.PhotoURL = *req.PhotoURL
	}
	if req.DisplayOrder != nil {
		p.DisplayOrder = *req.DisplayOrder
	}
	if req.IsMain != nil {
		p.IsMain = *req.IsMain
	}
	return p
}

func (r *repository) SetMain(ctx context.Context, businessID, photoID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE business_photos SET is_main = FALSE WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("demote photos: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE business_photos SET is_main = TRUE WHERE id = $1 AND business_id = $2`,
		photoID, businessID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPhotoNotFound
	}

	return tx.Commit()
}

func (r *repository) Delete(ctx context.Context, businessID, photoID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM business_photos WHERE id = $1 AND business_id = $2`, photoID, businessID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPhotoNotFound
	}

	return nil
}
