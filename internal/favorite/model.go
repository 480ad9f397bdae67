package favorite

import "time"

type Favorite struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	BusinessID int       `db:"business_id" json:"business_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
