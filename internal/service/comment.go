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
	ErrBodyRequired = errors.New("body is required")
)

type CommentService struct {
	commentRepo      repository.CommentRepository
	announcementRepo repository.AnnouncementRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	announcementRepo repository.AnnouncementRepository,
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		announcementRepo: announcementRepo,
	}
}

// Create adds a comment under an announcement. The parent must exist; its
// removal later takes the comment with it.
func (s *CommentService) Create(ctx context.Context, actor policy.Actor, announcementID, body string) (*model.Comment, error) {
	if !policy.Evaluate(actor, policy.OpCreate, policy.EntityComment, policy.Row{OwnerID: actor.ID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	if body == "" {
		return nil, ErrBodyRequired
	}

	_, err := s.announcementRepo.ByID(announcementID)
	if err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	now := time.Now()
	comment := &model.Comment{
		ID:             uuid.New().String(),
		UserID:         actor.ID,
		AnnouncementID: announcementID,
		Body:           body,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.commentRepo.Create(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

func (s *CommentService) ByAnnouncement(ctx context.Context, actor policy.Actor, announcementID string) ([]*model.Comment, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}
	return s.commentRepo.ByAnnouncement(announcementID)
}

func (s *CommentService) Update(ctx context.Context, actor policy.Actor, commentID, body string) (*model.Comment, error) {
	comment, err := s.commentRepo.ByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntityComment, policy.Row{OwnerID: comment.UserID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	if body == "" {
		return nil, ErrBodyRequired
	}

	comment.Body = body
	comment.UpdatedAt = time.Now()

	err = s.commentRepo.Update(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor policy.Actor, commentID string) error {
	comment, err := s.commentRepo.ByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpDelete, policy.EntityComment, policy.Row{OwnerID: comment.UserID}).Allowed() {
		return apperr.ErrPermissionDenied
	}

	return s.commentRepo.Delete(comment.ID)
}
