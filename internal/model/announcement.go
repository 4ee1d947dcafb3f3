package model

import "time"

// Announcement is readable by any authenticated user; only the poster may
// change or remove it.
type Announcement struct {
	ID         string  `db:"id" json:"id"`
	UserID     string  `db:"user_id" json:"user_id"`
	CategoryID *string `db:"category_id" json:"category_id,omitempty"`
	Title      string  `db:"title" json:"title"`
	Body       string  `db:"body" json:"body"`
	Attachment
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
