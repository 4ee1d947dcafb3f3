package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

type CategoryRepository interface {
	ByID(id string) (*model.Category, error)
	Categories(kind string) ([]*model.Category, error)
	Delete(id string) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) ByID(id string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT * FROM categories WHERE id = $1`

	err := r.db.Get(category, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}

	return category, err
}

func (r *categoryRepository) Categories(kind string) ([]*model.Category, error) {
	var categories []*model.Category

	if kind == "" {
		err := r.db.Select(&categories, `SELECT * FROM categories ORDER BY name ASC`)
		return categories, err
	}

	err := r.db.Select(&categories, `SELECT * FROM categories WHERE kind = $1 ORDER BY name ASC`, kind)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Delete is a maintenance operation; dependent notes and announcements fall
// back to uncategorized through the ON DELETE SET NULL foreign keys.
func (r *categoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
