package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/policy"
	"github.com/studyshare/studyshare/internal/repository"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidCategory = errors.New("invalid category")
)

// NoteService manages a user's private notes. Notes are fully owner-scoped:
// nobody else can even read them.
type NoteService struct {
	noteRepo     repository.NoteRepository
	categoryRepo repository.CategoryRepository
	attachments  *AttachmentService
}

func NewNoteService(
	noteRepo repository.NoteRepository,
	categoryRepo repository.CategoryRepository,
	attachments *AttachmentService,
) *NoteService {
	return &NoteService{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		attachments:  attachments,
	}
}

func (s *NoteService) Create(ctx context.Context, actor policy.Actor, title, body string, categoryID *string, up *Upload) (*model.Note, error) {
	if !policy.Evaluate(actor, policy.OpCreate, policy.EntityNote, policy.Row{OwnerID: actor.ID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	if title == "" {
		return nil, ErrTitleRequired
	}

	categoryID, err := s.checkCategory(categoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note := &model.Note{
		ID:         uuid.New().String(),
		UserID:     actor.ID,
		CategoryID: categoryID,
		Title:      title,
		Body:       body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if up != nil {
		att, err := s.attachments.Bind(ctx, actor.ID, AttachmentKindNote, *up)
		if err != nil {
			return nil, err
		}
		note.Attachment = att
	}

	err = s.noteRepo.Create(note)
	if err != nil {
		// Release the stored object so no orphan is left behind
		_ = s.attachments.Unbind(ctx, note.Attachment)
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

func (s *NoteService) ByID(ctx context.Context, actor policy.Actor, noteID string) (*model.Note, error) {
	note, err := s.noteRepo.ByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpRead, policy.EntityNote, policy.Row{OwnerID: note.UserID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	return note, nil
}

func (s *NoteService) Notes(ctx context.Context, actor policy.Actor) ([]*model.Note, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}
	return s.noteRepo.Notes(actor.ID)
}

func (s *NoteService) Update(ctx context.Context, actor policy.Actor, noteID, title, body string, categoryID *string, up *Upload) (*model.Note, error) {
	note, err := s.noteRepo.ByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntityNote, policy.Row{OwnerID: note.UserID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	if title == "" {
		return nil, ErrTitleRequired
	}

	categoryID, err = s.checkCategory(categoryID)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Body = body
	note.CategoryID = categoryID
	note.UpdatedAt = time.Now()

	// Bind the replacement first and release the old object only after the
	// row is persisted, so a failed update never leaves the row pointing at
	// a deleted object.
	old := note.Attachment
	replace := up != nil
	if replace {
		att, err := s.attachments.Bind(ctx, note.UserID, AttachmentKindNote, *up)
		if err != nil {
			return nil, err
		}
		note.Attachment = att
	}

	err = s.noteRepo.Update(note)
	if err != nil {
		if replace {
			_ = s.attachments.Unbind(ctx, note.Attachment)
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	if replace {
		_ = s.attachments.Unbind(ctx, old)
	}

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, actor policy.Actor, noteID string) error {
	note, err := s.noteRepo.ByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to get note: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpDelete, policy.EntityNote, policy.Row{OwnerID: note.UserID}).Allowed() {
		return apperr.ErrPermissionDenied
	}

	err = s.noteRepo.Delete(note.ID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	_ = s.attachments.Unbind(ctx, note.Attachment)

	return nil
}

func (s *NoteService) checkCategory(categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}

	category, err := s.categoryRepo.ByID(*categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category.Kind != model.CategoryKindNote {
		return nil, ErrInvalidCategory
	}

	return categoryID, nil
}
