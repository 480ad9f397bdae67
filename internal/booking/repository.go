package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrBookingNotFound = errors.New("booking not found")

// TIME and DATE columns come back as "HH:MM" / "YYYY-MM-DD" strings so the
// repository never deals in zoned timestamps for slot values.
const bookingColumns = `id, business_id, user_id, service_id, employee_id,
	to_char(booking_date, 'YYYY-MM-DD') AS booking_date,
	to_char(booking_time, 'HH24:MI') AS booking_time,
	status, client_name, client_phone, notes, came_through_app, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (
			business_id, user_id, service_id, employee_id,
			booking_date, booking_time, status,
			client_name, client_phone, notes, came_through_app
		)
		VALUES ($1, $2, $3, $4, $5::date, $6::time, $7, $8, $9, $10, $11)
		RETURNING ` + bookingColumns

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.BusinessID, b.UserID, b.ServiceID, b.EmployeeID,
		b.BookingDate, b.BookingTime, b.Status,
		b.ClientName, b.ClientPhone, b.Notes, b.CameThroughApp)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListByBusiness(ctx context.Context, businessID int, f ListFilter) ([]Booking, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE business_id = $1`
	args := []interface{}{businessID}

	if f.Status != "" {
		query += ` AND status = $2 ORDER BY booking_date DESC, booking_time DESC LIMIT $3`
		args = append(args, f.Status, limit)
	} else {
		query += ` ORDER BY booking_date DESC, booking_time DESC LIMIT $2`
		args = append(args, limit)
	}

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, booking_time DESC
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status string, cameThroughApp *bool) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1,
		    came_through_app = COALESCE($2, came_through_app),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING ` + bookingColumns

	var b Booking
	err := r.db.GetContext(ctx, &b, query, status, cameThroughApp, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListByDateRange(ctx context.Context, businessID int, from, to string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE business_id = $1 AND booking_date BETWEEN $2::date AND $3::date
		ORDER BY booking_date, booking_time
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, businessID, from, to); err != nil {
		return nil, err
	}

	return bookings, nil
}

// FindActiveBookingTimes returns the "HH:MM" start times of pending and
// confirmed bookings on the given date. Terminal statuses never block slots.
func (r *repository) FindActiveBookingTimes(ctx context.Context, businessID int, date time.Time) ([]string, error) {
	query := `
		SELECT to_char(booking_time, 'HH24:MI')
		FROM bookings
		WHERE business_id = $1
		  AND booking_date = $2::date
		  AND status IN ('pending', 'confirmed')
	`

	var times []string
	err := r.db.SelectContext(ctx, &times, query, businessID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	return times, nil
}

// CountByEmployee returns every employee of the business with their count of
// active bookings. Employees with no bookings appear with a zero count.
func (r *repository) CountByEmployee(ctx context.Context, businessID int) ([]EmployeeBookingCount, error) {
	query := `
		SELECT e.id AS employee_id, e.name AS employee_name, COUNT(b.id) AS booking_count
		FROM employees e
		LEFT JOIN bookings b
		  ON b.employee_id = e.id AND b.status IN ('pending', 'confirmed')
		WHERE e.business_id = $1
		GROUP BY e.id, e.name
		ORDER BY e.name
	`

	var counts []EmployeeBookingCount
	if err := r.db.SelectContext(ctx, &counts, query, businessID); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *repository) Analytics(ctx context.Context, businessID int) (*Analytics, error) {
	a := &Analytics{BookingsByStatus: map[string]int{}}

	err := r.db.GetContext(ctx, &a.TotalBookings,
		`SELECT COUNT(*) FROM bookings WHERE business_id = $1`, businessID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryxContext(ctx,
		`SELECT status, COUNT(*) FROM bookings WHERE business_id = $1 GROUP BY status`, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		a.BookingsByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &a.BookingsThroughApp,
		`SELECT COUNT(*) FROM bookings WHERE business_id = $1 AND came_through_app = TRUE`, businessID)
	if err != nil {
		return nil, err
	}

	if a.TotalBookings > 0 {
		a.ConversionRate = float64(a.BookingsThroughApp) / float64(a.TotalBookings) * 100
	}

	err = r.db.GetContext(ctx, &a.TotalServices,
		`SELECT COUNT(*) FROM services WHERE business_id = $1 AND is_active = TRUE`, businessID)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &a.ActivePromotions,
		`SELECT COUNT(*) FROM promotions WHERE business_id = $1 AND is_active = TRUE AND valid_until >= NOW()`,
		businessID)
	if err != nil {
		return nil, err
	}

	return a, nil
}
