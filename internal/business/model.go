package business

import "time"

const (
	TypeCarWash     = "car_wash"
	TypeRepairShop  = "repair_shop"
	TypeTireService = "tire_service"
)

const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusVeryBusy  = "very_busy"
)

func ValidType(t string) bool {
	return t == TypeCarWash || t == TypeRepairShop || t == TypeTireService
}

func ValidStatus(s string) bool {
	return s == StatusAvailable || s == StatusBusy || s == StatusVeryBusy
}

type Business struct {
	ID                  int        `db:"id" json:"id"`
	Name                string     `db:"name" json:"name"`
	Type                string     `db:"type" json:"type"`
	Address             string     `db:"address" json:"address"`
	Lat                 float64    `db:"lat" json:"lat"`
	Lon                 float64    `db:"lon" json:"lon"`
	Phone               string     `db:"phone" json:"phone"`
	Email               *string    `db:"email" json:"email,omitempty"`
	Description         *string    `db:"description" json:"description,omitempty"`
	LogoURL             *string    `db:"logo_url" json:"logo_url,omitempty"`
	SubscriptionStatus  string     `db:"subscription_status" json:"subscription_status"`
	SubscriptionEndDate *time.Time `db:"subscription_end_date" json:"subscription_end_date,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

type Admin struct {
	ID           int       `db:"id" json:"id"`
	BusinessID   int       `db:"business_id" json:"business_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Status struct {
	ID                   int       `db:"id" json:"-"`
	BusinessID           int       `db:"business_id" json:"-"`
	Status               string    `db:"status" json:"status"`
	EstimatedWaitMinutes int       `db:"estimated_wait_minutes" json:"estimated_wait_minutes"`
	CurrentQueueCount    int       `db:"current_queue_count" json:"current_queue_count"`
	UpdatedByAdminID     *int      `db:"updated_by_admin_id" json:"-"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

type StatusHistoryEntry struct {
	ID                   int       `db:"id" json:"-"`
	BusinessID           int       `db:"business_id" json:"-"`
	Status               string    `db:"status" json:"status"`
	EstimatedWaitMinutes int       `db:"estimated_wait_minutes" json:"estimated_wait_minutes"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// StatusInfo is the public status view; UpdatedAt is nil when the business
// never reported a status (the default "available" case).
type StatusInfo struct {
	Status               string     `json:"status"`
	EstimatedWaitMinutes int        `json:"estimated_wait_minutes"`
	UpdatedAt            *time.Time `json:"updated_at"`
}

// DayHoursRow is a stored operating-hours row, one per (business, weekday),
// Monday-indexed. Open/close carry only the time-of-day component.
type DayHoursRow struct {
	ID         int        `db:"id" json:"id"`
	BusinessID int        `db:"business_id" json:"business_id"`
	DayOfWeek  int        `db:"day_of_week" json:"day_of_week"`
	OpenTime   *time.Time `db:"open_time" json:"-"`
	CloseTime  *time.Time `db:"close_time" json:"-"`
	IsClosed   bool       `db:"is_closed" json:"is_closed"`
	CreatedAt  time.Time  `db:"created_at" json:"-"`
	UpdatedAt  time.Time  `db:"updated_at" json:"-"`
}

type DayHoursResponse struct {
	ID         int     `json:"id"`
	BusinessID int     `json:"business_id"`
	DayOfWeek  int     `json:"day_of_week"`
	OpenTime   *string `json:"open_time"`
	CloseTime  *string `json:"close_time"`
	IsClosed   bool    `json:"is_closed"`
}

func (r DayHoursRow) Response() DayHoursResponse {
	resp := DayHoursResponse{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		DayOfWeek:  r.DayOfWeek,
		IsClosed:   r.IsClosed,
	}
	if r.OpenTime != nil {
		s := r.OpenTime.Format("15:04")
		resp.OpenTime = &s
	}
	if r.CloseTime != nil {
		s := r.CloseTime.Format("15:04")
		resp.CloseTime = &s
	}
	return resp
}

type ListFilter struct {
	Type     string
	Search   string
	Lat      *float64
	Lon      *float64
	RadiusKm float64
	Limit    int
	Offset   int
}

type Summary struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Address     string     `json:"address"`
	Lat         float64    `json:"lat"`
	Lon         float64    `json:"lon"`
	Phone       string     `json:"phone"`
	Description *string    `json:"description,omitempty"`
	LogoURL     *string    `json:"logo_url,omitempty"`
	Status      StatusInfo `json:"status"`
}

type RegisterAdminRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	BusinessName  string  `json:"business_name" binding:"required"`
	BusinessType  string  `json:"business_type" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	Lat           float64 `json:"lat" binding:"required"`
	Lon           float64 `json:"lon" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	BusinessEmail *string `json:"business_email"`
	Description   *string `json:"description"`
}

type LoginAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Admin        Admin  `json:"admin"`
}

// UpdateProfileRequest applies only the fields present in the request body.
type UpdateProfileRequest struct {
	Name        *string  `json:"name"`
	Address     *string  `json:"address"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	Description *string  `json:"description"`
	LogoURL     *string  `json:"logo_url"`
}

type UpdateStatusRequest struct {
	Status               string `json:"status" binding:"required"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes" binding:"gte=0"`
}

type HoursEntry struct {
	DayOfWeek int     `json:"day_of_week" validate:"gte=0,lte=6"`
	OpenTime  *string `json:"open_time"`
	CloseTime *string `json:"close_time"`
	IsClosed  bool    `json:"is_closed"`
}

type UpdateHoursRequest struct {
	Hours []HoursEntry `json:"hours" binding:"required"`
}
