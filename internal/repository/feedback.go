package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	ByID(id string) (*model.Feedback, error)
	ByUser(userID string) ([]*model.Feedback, error)
	Update(feedback *model.Feedback) error
	Delete(id string) error
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.Feedback) error {
	query := `INSERT INTO feedback (id, user_id, subject, message, type, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		feedback.ID,
		feedback.UserID,
		feedback.Subject,
		feedback.Message,
		feedback.Type,
		feedback.Status,
		feedback.CreatedAt,
		feedback.UpdatedAt,
	)

	return err
}

func (r *feedbackRepository) ByID(id string) (*model.Feedback, error) {
	feedback := &model.Feedback{}
	query := `SELECT * FROM feedback WHERE id = $1`

	err := r.db.Get(feedback, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFeedbackNotFound
	}

	return feedback, err
}

func (r *feedbackRepository) ByUser(userID string) ([]*model.Feedback, error) {
	var items []*model.Feedback
	query := `SELECT * FROM feedback WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&items, query, userID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *feedbackRepository) Update(feedback *model.Feedback) error {
	query := `UPDATE feedback
	          SET subject = $1, message = $2, type = $3, status = $4, updated_at = $5
	          WHERE id = $6`

	result, err := r.db.Exec(query,
		feedback.Subject,
		feedback.Message,
		feedback.Type,
		feedback.Status,
		feedback.UpdatedAt,
		feedback.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}

func (r *feedbackRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}
