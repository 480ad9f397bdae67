package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/NazarovEvgn/lets-app/internal/availability"

	"github.com/jmoiron/sqlx"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrAdminNotFound    = errors.New("admin not found")
)

const businessColumns = `id, name, type, address, lat, lon, phone, email, description, logo_url,
	subscription_status, subscription_end_date, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE 1=1`
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Type != "" {
		query += ` AND type = ` + arg(f.Type)
	}

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query += ` AND (name ILIKE ` + arg(pattern) + ` OR description ILIKE ` + arg(pattern) + `)`
	}

	// Bounding-box approximation: ~111 km per degree of latitude. Good
	// enough for city-scale discovery; PostGIS would replace this.
	if f.Lat != nil && f.Lon != nil {
		radius := f.RadiusKm
		if radius <= 0 {
			radius = 10
		}
		latRange := radius / 111.0
		query += ` AND lat BETWEEN ` + arg(*f.Lat-latRange) + ` AND ` + arg(*f.Lat+latRange)
		query += ` AND lon BETWEEN (` + arg(*f.Lon) + `::float8 - ` + arg(radius) + ` / (111.0 * cos(radians(` + arg(*f.Lat) + `))))` +
			` AND (` + arg(*f.Lon) + `::float8 + ` + arg(radius) + ` / (111.0 * cos(radians(` + arg(*f.Lat) + `))))`
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += ` ORDER BY name LIMIT ` + arg(limit) + ` OFFSET ` + arg(f.Offset)

	var businesses []Business
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`

	var b Business
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Business, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := mergeProfile(*current, req)

	query := `
		UPDATE businesses
		SET name = $1, address = $2, lat = $3, lon = $4, phone = $5,
		    email = $6, description = $7, logo_url = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING ` + businessColumns

	var b Business
	err = r.db.GetContext(ctx, &b, query,
		merged.Name, merged.Address, merged.Lat, merged.Lon, merged.Phone,
		merged.Email, merged.Description, merged.LogoURL, id)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// mergeProfile overwrites only the fields present in the request.
func mergeProfile(b Business, req UpdateProfileRequest) Business {
	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Lat != nil {
		b.Lat = *req.Lat
	}
	if req.Lon != nil {
		b.Lon = *req.Lon
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Email != nil {
		b.Email = req.Email
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.LogoURL != nil {
		b.LogoURL = req.LogoURL
	}
	return b
}

func (r *repository) RegisterBusiness(ctx context.Context, b *Business, adminEmail, passwordHash string) (*Business, *Admin, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	businessQuery := `
		INSERT INTO businesses (name, type, address, lat, lon, phone, email, description,
		                        subscription_status, subscription_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'trial', NOW() + INTERVAL '90 days')
		RETURNING ` + businessColumns

	var created Business
	if err := tx.GetContext(ctx, &created, businessQuery,
		b.Name, b.Type, b.Address, b.Lat, b.Lon, b.Phone, b.Email, b.Description); err != nil {
		return nil, nil, fmt.Errorf("insert business: %w", err)
	}

	adminQuery := `
		INSERT INTO business_admins (business_id, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		RETURNING id, business_id, email, password_hash, role, created_at
	`

	var admin Admin
	if err := tx.GetContext(ctx, &admin, adminQuery, created.ID, adminEmail, passwordHash); err != nil {
		return nil, nil, fmt.Errorf("insert admin: %w", err)
	}

	statusQuery := `
		INSERT INTO business_status (business_id, status, estimated_wait_minutes, updated_by_admin_id)
		VALUES ($1, 'available', 0, $2)
	`

	if _, err := tx.ExecContext(ctx, statusQuery, created.ID, admin.ID); err != nil {
		return nil, nil, fmt.Errorf("insert status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &created, &admin, nil
}

func (r *repository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `
		SELECT id, business_id, email, password_hash, role, created_at
		FROM business_admins
		WHERE email = $1
	`

	var admin Admin
	err := r.db.GetContext(ctx, &admin, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

func (r *repository) AdminEmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM business_admins WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) GetStatus(ctx context.Context, businessID int) (*Status, error) {
	query := `
		SELECT id, business_id, status, estimated_wait_minutes, current_queue_count,
		       updated_by_admin_id, updated_at
		FROM business_status
		WHERE business_id = $1
	`

	var s Status
	err := r.db.GetContext(ctx, &s, query, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetStatuses(ctx context.Context, businessIDs []int) (map[int]Status, error) {
	if len(businessIDs) == 0 {
		return map[int]Status{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, business_id, status, estimated_wait_minutes, current_queue_count,
		       updated_by_admin_id, updated_at
		FROM business_status
		WHERE business_id IN (?)`, businessIDs)
	if err != nil {
		return nil, err
	}

	var statuses []Status
	if err := r.db.SelectContext(ctx, &statuses, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	result := make(map[int]Status, len(statuses))
	for _, s := range statuses {
		result[s.BusinessID] = s
	}

	return result, nil
}

func (r *repository) UpsertStatus(ctx context.Context, businessID, adminID int, status string, waitMinutes int) (*Status, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	upsertQuery := `
		INSERT INTO business_status (business_id, status, estimated_wait_minutes, updated_by_admin_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (business_id) DO UPDATE
		SET status = EXCLUDED.status,
		    estimated_wait_minutes = EXCLUDED.estimated_wait_minutes,
		    updated_by_admin_id = EXCLUDED.updated_by_admin_id,
		    updated_at = NOW()
		RETURNING id, business_id, status, estimated_wait_minutes, current_queue_count,
		          updated_by_admin_id, updated_at
	`

	var s Status
	if err := tx.GetContext(ctx, &s, upsertQuery, businessID, status, waitMinutes, adminID); err != nil {
		return nil, fmt.Errorf("upsert status: %w", err)
	}

	historyQuery := `
		INSERT INTO status_history (business_id, status, estimated_wait_minutes)
		VALUES ($1, $2, $3)
	`

	if _, err := tx.ExecContext(ctx, historyQuery, businessID, status, waitMinutes); err != nil {
		return nil, fmt.Errorf("insert status history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetStatusHistory(ctx context.Context, businessID, limit int) ([]StatusHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, business_id, status, estimated_wait_minutes, updated_at
		FROM status_history
		WHERE business_id = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`

	var history []StatusHistoryEntry
	if err := r.db.SelectContext(ctx, &history, query, businessID, limit); err != nil {
		return nil, err
	}

	return history, nil
}

const hoursColumns = `id, business_id, day_of_week, open_time, close_time, is_closed, created_at, updated_at`

func (r *repository) GetHours(ctx context.Context, businessID int) ([]DayHoursRow, error) {
	query := `
		SELECT ` + hoursColumns + `
		FROM business_hours
		WHERE business_id = $1
		ORDER BY day_of_week
	`

	var hours []DayHoursRow
	if err := r.db.SelectContext(ctx, &hours, query, businessID); err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *repository) CreateDefaultHours(ctx context.Context, businessID int) ([]DayHoursRow, error) {
	query := `
		INSERT INTO business_hours (business_id, day_of_week, is_closed)
		SELECT $1, d, TRUE FROM generate_series(0, 6) AS d
		RETURNING ` + hoursColumns

	var hours []DayHoursRow
	if err := r.db.SelectContext(ctx, &hours, query, businessID); err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *repository) ReplaceHours(ctx context.Context, businessID int, entries []HoursEntry) ([]DayHoursRow, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM business_hours WHERE business_id = $1`, businessID); err != nil {
		return nil, fmt.Errorf("delete hours: %w", err)
	}

	insertQuery := `
		INSERT INTO business_hours (business_id, day_of_week, open_time, close_time, is_closed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + hoursColumns

	hours := make([]DayHoursRow, 0, len(entries))
	for _, e := range entries {
		var open, close interface{}
		if e.OpenTime != nil {
			t, err := timeOfDay(*e.OpenTime)
			if err != nil {
				return nil, fmt.Errorf("day %d: %w", e.DayOfWeek, err)
			}
			open = t
		}
		if e.CloseTime != nil {
			t, err := timeOfDay(*e.CloseTime)
			if err != nil {
				return nil, fmt.Errorf("day %d: %w", e.DayOfWeek, err)
			}
			close = t
		}

		var row DayHoursRow
		if err := tx.GetContext(ctx, &row, insertQuery, businessID, e.DayOfWeek, open, close, e.IsClosed); err != nil {
			return nil, fmt.Errorf("insert hours for day %d: %w", e.DayOfWeek, err)
		}
		hours = append(hours, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *repository) FindDayHours(ctx context.Context, businessID, weekday int) (*availability.DayHours, error) {
	query := `
		SELECT ` + hoursColumns + `
		FROM business_hours
		WHERE business_id = $1 AND day_of_week = $2
	`

	var row DayHoursRow
	err := r.db.GetContext(ctx, &row, query, businessID, weekday)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &availability.DayHours{
		Open:     row.OpenTime,
		Close:    row.CloseTime,
		IsClosed: row.IsClosed,
	}, nil
}
