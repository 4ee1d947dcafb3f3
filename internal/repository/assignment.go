package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Assignments are staff-authored outside this application, so the repository
// only reads them.
type AssignmentRepository interface {
	ByID(id string) (*model.Assignment, error)
	Assignments() ([]*model.Assignment, error)
}

type assignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ByID(id string) (*model.Assignment, error) {
	assignment := &model.Assignment{}
	query := `SELECT * FROM assignments WHERE id = $1`

	err := r.db.Get(assignment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAssignmentNotFound
	}

	return assignment, err
}

func (r *assignmentRepository) Assignments() ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	query := `SELECT * FROM assignments ORDER BY due_at ASC`

	err := r.db.Select(&assignments, query)
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
