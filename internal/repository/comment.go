package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	ByID(id string) (*model.Comment, error)
	ByAnnouncement(announcementID string) ([]*model.Comment, error)
	Update(comment *model.Comment) error
	Delete(id string) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (id, user_id, announcement_id, body, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		comment.ID,
		comment.UserID,
		comment.AnnouncementID,
		comment.Body,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	return err
}

func (r *commentRepository) ByID(id string) (*model.Comment, error) {
	comment := &model.Comment{}
	query := `SELECT * FROM comments WHERE id = $1`

	err := r.db.Get(comment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}

	return comment, err
}

func (r *commentRepository) ByAnnouncement(announcementID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	query := `SELECT * FROM comments WHERE announcement_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&comments, query, announcementID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	query := `UPDATE comments SET body = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, comment.Body, comment.UpdatedAt, comment.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (r *commentRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}
