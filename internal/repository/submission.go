package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrSubmissionExists signals the (assignment, user) uniqueness
	// constraint fired; the caller resolves the race as an update.
	ErrSubmissionExists = errors.New("submission already exists for this assignment")
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	ByID(id string) (*model.Submission, error)
	ByAssignmentAndUser(assignmentID, userID string) (*model.Submission, error)
	Submissions(userID string) ([]*model.Submission, error)
	Update(submission *model.Submission) error
	Delete(id string) error
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, assignment_id, body, status,
	              attachment_path, attachment_name, attachment_type, attachment_size,
	              created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		submission.ID,
		submission.UserID,
		submission.AssignmentID,
		submission.Body,
		submission.Status,
		submission.Attachment.Path,
		submission.Attachment.Name,
		submission.Attachment.MediaType,
		submission.Attachment.Size,
		submission.CreatedAt,
		submission.UpdatedAt,
	)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrSubmissionExists
		}
		return err
	}

	return nil
}

func (r *submissionRepository) ByID(id string) (*model.Submission, error) {
	submission := &model.Submission{}
	query := `SELECT * FROM submissions WHERE id = $1`

	err := r.db.Get(submission, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrSubmissionNotFound
	}

	return submission, err
}

func (r *submissionRepository) ByAssignmentAndUser(assignmentID, userID string) (*model.Submission, error) {
	submission := &model.Submission{}
	query := `SELECT * FROM submissions WHERE assignment_id = $1 AND user_id = $2`

	err := r.db.Get(submission, query, assignmentID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrSubmissionNotFound
	}

	return submission, err
}

func (r *submissionRepository) Submissions(userID string) ([]*model.Submission, error) {
	var submissions []*model.Submission
	query := `SELECT * FROM submissions WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&submissions, query, userID)
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) Update(submission *model.Submission) error {
	query := `UPDATE submissions
	          SET body = $1, status = $2,
	              attachment_path = $3, attachment_name = $4, attachment_type = $5, attachment_size = $6,
	              updated_at = $7
	          WHERE id = $8`

	result, err := r.db.Exec(query,
		submission.Body,
		submission.Status,
		submission.Attachment.Path,
		submission.Attachment.Name,
		submission.Attachment.MediaType,
		submission.Attachment.Size,
		submission.UpdatedAt,
		submission.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

func (r *submissionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}
