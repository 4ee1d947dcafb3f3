package model

import "time"

const (
	SubmissionStatusDraft     = "draft"
	SubmissionStatusSubmitted = "submitted"
)

// Submission is a student's work for one assignment. At most one row exists
// per (assignment, user); status only ever advances draft -> submitted.
type Submission struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"user_id"`
	AssignmentID string `db:"assignment_id" json:"assignment_id"`
	Body         string `db:"body" json:"body"`
	Status       string `db:"status" json:"status"`
	Attachment
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (s *Submission) IsDraft() bool {
	return s.Status == SubmissionStatusDraft
}
