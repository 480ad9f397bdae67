package employee

import "time"

type Employee struct {
	ID         int       `db:"id" json:"id"`
	BusinessID int       `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	Position   *string   `db:"position" json:"position,omitempty"`
	PhotoURL   *string   `db:"photo_url" json:"photo_url,omitempty"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type CreateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required"`
	Position *string `json:"position"`
	PhotoURL *string `json:"photo_url"`
}

// UpdateEmployeeRequest applies only the fields present in the request body.
type UpdateEmployeeRequest struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
	PhotoURL *string `json:"photo_url"`
	IsActive *bool   `json:"is_active"`
}
