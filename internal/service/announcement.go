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

// AnnouncementService manages community-wide posts: readable by everyone who
// is signed in, writable only by the poster.
type AnnouncementService struct {
	announcementRepo repository.AnnouncementRepository
	categoryRepo     repository.CategoryRepository
	attachments      *AttachmentService
}

func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepository,
	categoryRepo repository.CategoryRepository,
	attachments *AttachmentService,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		categoryRepo:     categoryRepo,
		attachments:      attachments,
	}
}

func (s *AnnouncementService) Create(ctx context.Context, actor policy.Actor, title, body string, categoryID *string, up *Upload) (*model.Announcement, error) {
	if !policy.Evaluate(actor, policy.OpCreate, policy.EntityAnnouncement, policy.Row{OwnerID: actor.ID}).Allowed() {
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
	announcement := &model.Announcement{
		ID:         uuid.New().String(),
		UserID:     actor.ID,
		CategoryID: categoryID,
		Title:      title,
		Body:       body,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if up != nil {
		att, err := s.attachments.Bind(ctx, actor.ID, AttachmentKindAnnouncement, *up)
		if err != nil {
			return nil, err
		}
		announcement.Attachment = att
	}

	err = s.announcementRepo.Create(announcement)
	if err != nil {
		_ = s.attachments.Unbind(ctx, announcement.Attachment)
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	return announcement, nil
}

func (s *AnnouncementService) ByID(ctx context.Context, actor policy.Actor, announcementID string) (*model.Announcement, error) {
	announcement, err := s.announcementRepo.ByID(announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpRead, policy.EntityAnnouncement, policy.Row{OwnerID: announcement.UserID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	return announcement, nil
}

func (s *AnnouncementService) Announcements(ctx context.Context, actor policy.Actor) ([]*model.Announcement, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}
	return s.announcementRepo.Announcements()
}

func (s *AnnouncementService) Update(ctx context.Context, actor policy.Actor, announcementID, title, body string, categoryID *string, up *Upload) (*model.Announcement, error) {
	announcement, err := s.announcementRepo.ByID(announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntityAnnouncement, policy.Row{OwnerID: announcement.UserID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	if title == "" {
		return nil, ErrTitleRequired
	}

	categoryID, err = s.checkCategory(categoryID)
	if err != nil {
		return nil, err
	}

	announcement.Title = title
	announcement.Body = body
	announcement.CategoryID = categoryID
	announcement.UpdatedAt = time.Now()

	// Same ordering as note updates: new object stored first, old object
	// released only after the row is persisted.
	old := announcement.Attachment
	replace := up != nil
	if replace {
		att, err := s.attachments.Bind(ctx, announcement.UserID, AttachmentKindAnnouncement, *up)
		if err != nil {
			return nil, err
		}
		announcement.Attachment = att
	}

	err = s.announcementRepo.Update(announcement)
	if err != nil {
		if replace {
			_ = s.attachments.Unbind(ctx, announcement.Attachment)
		}
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	if replace {
		_ = s.attachments.Unbind(ctx, old)
	}

	return announcement, nil
}

// Delete removes the announcement; the store cascades away its comments.
func (s *AnnouncementService) Delete(ctx context.Context, actor policy.Actor, announcementID string) error {
	announcement, err := s.announcementRepo.ByID(announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to get announcement: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpDelete, policy.EntityAnnouncement, policy.Row{OwnerID: announcement.UserID}).Allowed() {
		return apperr.ErrPermissionDenied
	}

	err = s.announcementRepo.Delete(announcement.ID)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	_ = s.attachments.Unbind(ctx, announcement.Attachment)

	return nil
}

func (s *AnnouncementService) checkCategory(categoryID *string) (*string, error) {
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
	if category.Kind != model.CategoryKindAnnouncement {
		return nil, ErrInvalidCategory
	}

	return categoryID, nil
}
