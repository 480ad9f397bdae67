package photo

import "time"

// Photo is one gallery image of a business. At most one photo per business
// carries IsMain.
type Photo struct {
	ID           int       `db:"id" json:"id"`
	BusinessID   int       `db:"business_id" json:"business_id"`
	PhotoURL     string    `db:"photo_url" json:"photo_url"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsMain       bool      `db:"is_main" json:"is_main"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CreatePhotoRequest struct {
	PhotoURL     string `json:"photo_url" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"gte=0"`
}

// UpdatePhotoRequest applies only the fields present in the request body.
// Setting IsMain to true demotes every other photo of the business.
type UpdatePhotoRequest struct {
	PhotoURL     *string `json:"photo_url"`
	DisplayOrder *int    `json:"display_order"`
	IsMain       *bool   `json:"is_main"`
}
