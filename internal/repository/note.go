package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

var (
	ErrNoteNotFound = errors.New("note not found")
)

type NoteRepository interface {
	Create(note *model.Note) error
	ByID(id string) (*model.Note, error)
	Notes(userID string) ([]*model.Note, error)
	Update(note *model.Note) error
	Delete(id string) error
}

type noteRepository struct {
	db *sqlx.DB
}

func NewNoteRepository(db *sqlx.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(note *model.Note) error {
	query := `INSERT INTO notes (id, user_id, category_id, title, body,
	              attachment_path, attachment_name, attachment_type, attachment_size,
	              created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		note.ID,
		note.UserID,
		note.CategoryID,
		note.Title,
		note.Body,
		note.Attachment.Path,
		note.Attachment.Name,
		note.Attachment.MediaType,
		note.Attachment.Size,
		note.CreatedAt,
		note.UpdatedAt,
	)

	return err
}

func (r *noteRepository) ByID(id string) (*model.Note, error) {
	note := &model.Note{}
	query := `SELECT * FROM notes WHERE id = $1`

	err := r.db.Get(note, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}

	return note, err
}

func (r *noteRepository) Notes(userID string) ([]*model.Note, error) {
	var notes []*model.Note
	query := `SELECT * FROM notes WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&notes, query, userID)
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) Update(note *model.Note) error {
	query := `UPDATE notes
	          SET category_id = $1, title = $2, body = $3,
	              attachment_path = $4, attachment_name = $5, attachment_type = $6, attachment_size = $7,
	              updated_at = $8
	          WHERE id = $9`

	result, err := r.db.Exec(query,
		note.CategoryID,
		note.Title,
		note.Body,
		note.Attachment.Path,
		note.Attachment.Name,
		note.Attachment.MediaType,
		note.Attachment.Size,
		note.UpdatedAt,
		note.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (r *noteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNoteNotFound
	}

	return nil
}
