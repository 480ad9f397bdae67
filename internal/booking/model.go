package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another. Completed and cancelled are terminal; bookings are never deleted.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

// Booking occupies one slot for a business. UserID is nil for walk-in
// bookings created by the business admin.
type Booking struct {
	ID             int       `db:"id" json:"id"`
	BusinessID     int       `db:"business_id" json:"business_id"`
	UserID         *int      `db:"user_id" json:"user_id"`
	ServiceID      int       `db:"service_id" json:"service_id"`
	EmployeeID     *int      `db:"employee_id" json:"employee_id"`
	BookingDate    string    `db:"booking_date" json:"booking_date" example:"2025-06-16"`
	BookingTime    string    `db:"booking_time" json:"booking_time" example:"09:30"`
	Status         string    `db:"status" json:"status"`
	ClientName     string    `db:"client_name" json:"client_name"`
	ClientPhone    string    `db:"client_phone" json:"client_phone"`
	Notes          *string   `db:"notes" json:"notes"`
	CameThroughApp bool      `db:"came_through_app" json:"came_through_app"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type CreateBookingRequest struct {
	BusinessID  int     `json:"business_id" binding:"required"`
	ServiceID   int     `json:"service_id" binding:"required"`
	EmployeeID  *int    `json:"employee_id"`
	BookingDate string  `json:"booking_date" binding:"required"`
	BookingTime string  `json:"booking_time" binding:"required"`
	ClientName  string  `json:"client_name" binding:"required"`
	ClientPhone string  `json:"client_phone" binding:"required"`
	Notes       *string `json:"notes"`
}

// WalkInRequest is the admin-side booking form for clients who call or walk
// in without the app.
type WalkInRequest struct {
	ServiceID   int     `json:"service_id" binding:"required"`
	EmployeeID  *int    `json:"employee_id"`
	BookingDate string  `json:"booking_date" binding:"required"`
	BookingTime string  `json:"booking_time" binding:"required"`
	ClientName  string  `json:"client_name" binding:"required"`
	ClientPhone string  `json:"client_phone" binding:"required"`
	Notes       *string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status         string `json:"status"`
	CameThroughApp *bool  `json:"came_through_app"`
}

type ListFilter struct {
	Status string
	Limit  int
}

// EmployeeBookingCount is one row of the per-employee workload view: every
// employee of the business with their count of pending and confirmed bookings.
type EmployeeBookingCount struct {
	EmployeeID   int    `db:"employee_id" json:"employee_id"`
	EmployeeName string `db:"employee_name" json:"employee_name"`
	BookingCount int    `db:"booking_count" json:"booking_count"`
}

// Analytics is the admin dashboard summary for a single business.
type Analytics struct {
	TotalBookings      int            `json:"total_bookings"`
	BookingsByStatus   map[string]int `json:"bookings_by_status"`
	BookingsThroughApp int            `json:"bookings_through_app"`
	ConversionRate     float64        `json:"conversion_rate"`
	TotalServices      int            `json:"total_services"`
	ActivePromotions   int            `json:"active_promotions"`
}
