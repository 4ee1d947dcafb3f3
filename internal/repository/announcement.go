package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

type AnnouncementRepository interface {
	Create(announcement *model.Announcement) error
	ByID(id string) (*model.Announcement, error)
	Announcements() ([]*model.Announcement, error)
	Update(announcement *model.Announcement) error
	Delete(id string) error
}

type announcementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(announcement *model.Announcement) error {
	query := `INSERT INTO announcements (id, user_id, category_id, title, body,
	              attachment_path, attachment_name, attachment_type, attachment_size,
	              created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		announcement.ID,
		announcement.UserID,
		announcement.CategoryID,
		announcement.Title,
		announcement.Body,
		announcement.Attachment.Path,
		announcement.Attachment.Name,
		announcement.Attachment.MediaType,
		announcement.Attachment.Size,
		announcement.CreatedAt,
		announcement.UpdatedAt,
	)

	return err
}

func (r *announcementRepository) ByID(id string) (*model.Announcement, error) {
	announcement := &model.Announcement{}
	query := `SELECT * FROM announcements WHERE id = $1`

	err := r.db.Get(announcement, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAnnouncementNotFound
	}

	return announcement, err
}

func (r *announcementRepository) Announcements() ([]*model.Announcement, error) {
	var announcements []*model.Announcement
	query := `SELECT * FROM announcements ORDER BY created_at DESC`

	err := r.db.Select(&announcements, query)
	if err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *announcementRepository) Update(announcement *model.Announcement) error {
	query := `UPDATE announcements
	          SET category_id = $1, title = $2, body = $3,
	              attachment_path = $4, attachment_name = $5, attachment_type = $6, attachment_size = $7,
	              updated_at = $8
	          WHERE id = $9`

	result, err := r.db.Exec(query,
		announcement.CategoryID,
		announcement.Title,
		announcement.Body,
		announcement.Attachment.Path,
		announcement.Attachment.Name,
		announcement.Attachment.MediaType,
		announcement.Attachment.Size,
		announcement.UpdatedAt,
		announcement.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}

func (r *announcementRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}
