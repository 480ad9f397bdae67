package employee

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrEmployeeNotFound = errors.New("employee not found")

const employeeColumns = `id, business_id, name, position, photo_url, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListActiveByBusiness(ctx context.Context, businessID int) ([]Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE business_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	var employees []Employee
	if err := r.db.SelectContext(ctx, &employees, query, businessID); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID int) ([]Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE business_id = $1
		ORDER BY name
	`

	var employees []Employee
	if err := r.db.SelectContext(ctx, &employees, query, businessID); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *repository) Create(ctx context.Context, businessID int, req CreateEmployeeRequest) (*Employee, error) {
	query := `
		INSERT INTO employees (business_id, name, position, photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + employeeColumns

	var e Employee
	err := r.db.GetContext(ctx, &e, query, businessID, req.Name, req.Position, req.PhotoURL)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *repository) Update(ctx context.Context, businessID, employeeID int, req UpdateEmployeeRequest) (*Employee, error) {
	var current Employee
	err := r.db.GetContext(ctx, &current,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1 AND business_id = $2`,
		employeeID, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}

	merged := merge(current, req)

	query := `
		UPDATE employees
		SET name = $1, position = $2, photo_url = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5 AND business_id = $6
		RETURNING ` + employeeColumns

	var e Employee
	err = r.db.GetContext(ctx, &e, query,
		merged.Name, merged.Position, merged.PhotoURL, merged.IsActive, employeeID, businessID)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// merge overwrites only the fields present in the request.
func merge(e Employee, req UpdateEmployeeRequest) Employee {
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.PhotoURL != nil {
		e.PhotoURL = req.PhotoURL
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	return e
}

func (r *repository) Delete(ctx context.Context, businessID, employeeID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM employees WHERE id = $1 AND business_id = $2`, employeeID, businessID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}
