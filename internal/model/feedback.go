package model

import "time"

const (
	FeedbackTypeBug       = "bug"
	FeedbackTypeFeature   = "feature"
	FeedbackTypeGeneral   = "general"
	FeedbackTypeComplaint = "complaint"

	FeedbackStatusPending  = "pending"
	FeedbackStatusReviewed = "reviewed"
	FeedbackStatusResolved = "resolved"
)

type Feedback struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Subject   string    `db:"subject" json:"subject"`
	Message   string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func ValidFeedbackType(t string) bool {
	switch t {
	case FeedbackTypeBug, FeedbackTypeFeature, FeedbackTypeGeneral, FeedbackTypeComplaint:
		return true
	}
	return false
}
