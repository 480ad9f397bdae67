package catalog

import "time"

// Service is one offering in a business's catalog. Price is a range; either
// bound may be absent ("from 500", "up to 2000", fixed when equal).
type Service struct {
	ID              int       `db:"id" json:"id"`
	BusinessID      int       `db:"business_id" json:"business_id"`
	Name            string    `db:"name" json:"name"`
	Description     *string   `db:"description" json:"description,omitempty"`
	PriceFrom       *float64  `db:"price_from" json:"price_from,omitempty"`
	PriceTo         *float64  `db:"price_to" json:"price_to,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	PhotoURL        *string   `db:"photo_url" json:"photo_url,omitempty"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type CreateServiceRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     *string  `json:"description"`
	PriceFrom       *float64 `json:"price_from"`
	PriceTo         *float64 `json:"price_to"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=1"`
	PhotoURL        *string  `json:"photo_url"`
}

// UpdateServiceRequest applies only the fields present in the request body.
type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	PriceFrom       *float64 `json:"price_from"`
	PriceTo         *float64 `json:"price_to"`
	DurationMinutes *int     `json:"duration_minutes"`
	PhotoURL        *string  `json:"photo_url"`
	IsActive        *bool    `json:"is_active"`
}
