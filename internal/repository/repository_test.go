package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/studyshare/studyshare/internal/db"
	"github.com/studyshare/studyshare/internal/model"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	err = db.RunMigrations(conn.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return conn
}

func createTestUser(t *testing.T, conn *sqlx.DB, email string) *model.User {
	t.Helper()

	hash := "$2a$10$notarealhashnotarealhashnotarealhash"
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
	}
	err := NewUserRepository(conn).Create(user)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestAssignment(t *testing.T, conn *sqlx.DB, title string, dueAt time.Time) string {
	t.Helper()

	id := uuid.New().String()
	_, err := conn.Exec(`INSERT INTO assignments (id, title, description, due_at, created_at, updated_at)
	                     VALUES ($1, $2, '', $3, $4, $4)`, id, title, dueAt, time.Now())
	if err != nil {
		t.Fatalf("failed to create assignment: %v", err)
	}
	return id
}

func TestUserEmailUnique(t *testing.T) {
	conn := newTestDB(t)
	repo := NewUserRepository(conn)

	createTestUser(t, conn, "ada@example.edu")

	err := repo.Create(&model.User{
		ID:        uuid.New().String(),
		Email:     "ada@example.edu",
		CreatedAt: time.Now(),
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("Create() duplicate email error = %v, want ErrDuplicateEmail", err)
	}
}

func TestSubmissionUniquePerAssignmentAndUser(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSubmissionRepository(conn)

	user := createTestUser(t, conn, "ada@example.edu")
	assignmentID := createTestAssignment(t, conn, "PS1", time.Now().Add(24*time.Hour))

	first := &model.Submission{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		AssignmentID: assignmentID,
		Status:       model.SubmissionStatusDraft,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	err := repo.Create(first)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	second := &model.Submission{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		AssignmentID: assignmentID,
		Status:       model.SubmissionStatusDraft,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	err = repo.Create(second)
	if !errors.Is(err, ErrSubmissionExists) {
		t.Fatalf("Create() second submission error = %v, want ErrSubmissionExists", err)
	}

	got, err := repo.ByAssignmentAndUser(assignmentID, user.ID)
	if err != nil {
		t.Fatalf("ByAssignmentAndUser() error = %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("surviving submission = %q, want %q", got.ID, first.ID)
	}
}

func TestSubmissionAttachmentRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSubmissionRepository(conn)

	user := createTestUser(t, conn, "ada@example.edu")
	assignmentID := createTestAssignment(t, conn, "PS1", time.Now().Add(24*time.Hour))

	sub := &model.Submission{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		AssignmentID: assignmentID,
		Body:         "draft text",
		Status:       model.SubmissionStatusDraft,
		Attachment: model.Attachment{
			Path:      user.ID + "/submissions/abc.pdf",
			Name:      "hw.pdf",
			MediaType: "application/pdf",
			Size:      1024,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err := repo.Create(sub)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.ByID(sub.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if !got.Attachment.Bound() {
		t.Fatal("attachment not bound after round trip")
	}
	if got.Attachment.Path != sub.Attachment.Path || got.Attachment.Size != 1024 {
		t.Errorf("attachment = %+v", got.Attachment)
	}
	if got.Attachment.OwnerID() != user.ID {
		t.Errorf("OwnerID() = %q, want %q", got.Attachment.OwnerID(), user.ID)
	}
}

func TestSubmissionUpdatePersistsModelTimestamp(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSubmissionRepository(conn)

	user := createTestUser(t, conn, "ada@example.edu")
	assignmentID := createTestAssignment(t, conn, "PS1", time.Now().Add(24*time.Hour))

	sub := &model.Submission{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		AssignmentID: assignmentID,
		Status:       model.SubmissionStatusDraft,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	err := repo.Create(sub)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The service stamps the model from its own clock; the row must carry
	// that exact instant, not one the store picked later.
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sub.Body = "edited"
	sub.UpdatedAt = want
	err = repo.Update(sub)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.ByID(sub.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if !got.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, want)
	}
}

func TestAnnouncementDeleteCascadesComments(t *testing.T) {
	conn := newTestDB(t)
	announcementRepo := NewAnnouncementRepository(conn)
	commentRepo := NewCommentRepository(conn)

	user := createTestUser(t, conn, "ada@example.edu")

	announcement := &model.Announcement{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Title:     "Midterm moved",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	err := announcementRepo.Create(announcement)
	if err != nil {
		t.Fatalf("Create() announcement error = %v", err)
	}

	comment := &model.Comment{
		ID:             uuid.New().String(),
		UserID:         user.ID,
		AnnouncementID: announcement.ID,
		Body:           "to when?",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	err = commentRepo.Create(comment)
	if err != nil {
		t.Fatalf("Create() comment error = %v", err)
	}

	err = announcementRepo.Delete(announcement.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = commentRepo.ByID(comment.ID)
	if !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("ByID() after cascade error = %v, want ErrCommentNotFound", err)
	}
}

func TestCategoryDeleteSetsNoteCategoryNull(t *testing.T) {
	conn := newTestDB(t)
	noteRepo := NewNoteRepository(conn)
	categoryRepo := NewCategoryRepository(conn)

	user := createTestUser(t, conn, "ada@example.edu")

	categoryID := "cat-note-lecture" // seeded
	note := &model.Note{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		CategoryID: &categoryID,
		Title:      "Week 1",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	err := noteRepo.Create(note)
	if err != nil {
		t.Fatalf("Create() note error = %v", err)
	}

	err = categoryRepo.Delete(categoryID)
	if err != nil {
		t.Fatalf("Delete() category error = %v", err)
	}

	got, err := noteRepo.ByID(note.ID)
	if err != nil {
		t.Fatalf("ByID() error = %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("CategoryID = %q, want NULL after category removal", *got.CategoryID)
	}
}

func TestUserDeleteCascadesOwnedRows(t *testing.T) {
	conn := newTestDB(t)
	userRepo := NewUserRepository(conn)
	profileRepo := NewProfileRepository(conn)
	noteRepo := NewNoteRepository(conn)
	submissionRepo := NewSubmissionRepository(conn)

	user := createTestUser(t, conn, "ada@example.edu")
	assignmentID := createTestAssignment(t, conn, "PS1", time.Now().Add(24*time.Hour))

	err := profileRepo.Create(&model.Profile{UserID: user.ID, FirstName: "Ada"})
	if err != nil {
		t.Fatalf("Create() profile error = %v", err)
	}

	note := &model.Note{
		ID: uuid.New().String(), UserID: user.ID, Title: "n",
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	err = noteRepo.Create(note)
	if err != nil {
		t.Fatalf("Create() note error = %v", err)
	}

	sub := &model.Submission{
		ID: uuid.New().String(), UserID: user.ID, AssignmentID: assignmentID,
		Status: model.SubmissionStatusDraft, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	err = submissionRepo.Create(sub)
	if err != nil {
		t.Fatalf("Create() submission error = %v", err)
	}

	err = userRepo.Delete(user.ID)
	if err != nil {
		t.Fatalf("Delete() user error = %v", err)
	}

	if _, err = profileRepo.ByUserID(user.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("profile after cascade error = %v, want ErrProfileNotFound", err)
	}
	if _, err = noteRepo.ByID(note.ID); !errors.Is(err, ErrNoteNotFound) {
		t.Errorf("note after cascade error = %v, want ErrNoteNotFound", err)
	}
	if _, err = submissionRepo.ByID(sub.ID); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("submission after cascade error = %v, want ErrSubmissionNotFound", err)
	}
}

func TestSeededCategoriesByKind(t *testing.T) {
	conn := newTestDB(t)
	repo := NewCategoryRepository(conn)

	noteCategories, err := repo.Categories(model.CategoryKindNote)
	if err != nil {
		t.Fatalf("Categories(note) error = %v", err)
	}
	if len(noteCategories) == 0 {
		t.Fatal("no seeded note categories")
	}
	for _, c := range noteCategories {
		if c.Kind != model.CategoryKindNote {
			t.Errorf("category %q has kind %q", c.ID, c.Kind)
		}
	}
}
