package model

import "time"

// Assignment is staff-authored and treated as pre-existing data; students
// only read it and work against its due instant.
type Assignment struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DueAt       time.Time `db:"due_at" json:"due_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

func (a *Assignment) Overdue(now time.Time) bool {
	return now.After(a.DueAt)
}
