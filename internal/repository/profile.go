package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/model"
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.Profile, error)
	Create(profile *model.Profile) error
	UpdateNames(userID, firstName, lastName string) error
	UpdateAvatarPath(userID, avatarPath string) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO profiles (id, user_id, first_name, last_name, avatar_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, profile.ID, profile.UserID, profile.FirstName, profile.LastName, profile.AvatarPath, profile.CreatedAt, profile.UpdatedAt)

	return err
}

func (r *profileRepository) UpdateNames(userID, firstName, lastName string) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET first_name = $1, last_name = $2, updated_at = $3
		WHERE user_id = $4
	`, firstName, lastName, time.Now(), userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *profileRepository) UpdateAvatarPath(userID, avatarPath string) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET avatar_path = $1, updated_at = $2
		WHERE user_id = $3
	`, avatarPath, time.Now(), userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
