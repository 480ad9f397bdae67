package promotion

import "time"

type Promotion struct {
	ID              int       `db:"id" json:"id"`
	BusinessID      int       `db:"business_id" json:"business_id"`
	Title           string    `db:"title" json:"title"`
	Description     *string   `db:"description" json:"description,omitempty"`
	DiscountPercent *int      `db:"discount_percent" json:"discount_percent,omitempty"`
	ValidFrom       time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil      time.Time `db:"valid_until" json:"valid_until"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type CreatePromotionRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     *string   `json:"description"`
	DiscountPercent *int      `json:"discount_percent"`
	ValidFrom       time.Time `json:"valid_from" binding:"required"`
	ValidUntil      time.Time `json:"valid_until" binding:"required"`
}

// UpdatePromotionRequest applies only the fields present in the request body.
type UpdatePromotionRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	DiscountPercent *int       `json:"discount_percent"`
	ValidFrom       *time.Time `json:"valid_from"`
	ValidUntil      *time.Time `json:"valid_until"`
	IsActive        *bool      `json:"is_active"`
}
