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
	ErrInvalidFeedbackType = errors.New("invalid feedback type")
	ErrSubjectRequired     = errors.New("subject is required")
)

// FeedbackService manages user feedback. Entries start pending and can be
// edited or withdrawn by their author only until staff pick them up.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
	}
}

func (s *FeedbackService) Create(ctx context.Context, actor policy.Actor, subject, message, feedbackType string) (*model.Feedback, error) {
	if !policy.Evaluate(actor, policy.OpCreate, policy.EntityFeedback, policy.Row{OwnerID: actor.ID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	if subject == "" {
		return nil, ErrSubjectRequired
	}
	if !model.ValidFeedbackType(feedbackType) {
		return nil, ErrInvalidFeedbackType
	}

	now := time.Now()
	feedback := &model.Feedback{
		ID:        uuid.New().String(),
		UserID:    actor.ID,
		Subject:   subject,
		Message:   message,
		Type:      feedbackType,
		Status:    model.FeedbackStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.feedbackRepo.Create(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return feedback, nil
}

func (s *FeedbackService) ByUser(ctx context.Context, actor policy.Actor) ([]*model.Feedback, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}
	return s.feedbackRepo.ByUser(actor.ID)
}

func (s *FeedbackService) Update(ctx context.Context, actor policy.Actor, feedbackID, subject, message, feedbackType string) (*model.Feedback, error) {
	feedback, err := s.feedbackRepo.ByID(feedbackID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	if feedback.UserID != actor.ID {
		return nil, apperr.ErrPermissionDenied
	}
	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntityFeedback, feedbackRow(feedback)).Allowed() {
		// Owner but no longer pending
		return nil, apperr.Lifecycle("feedback has already been %s", feedback.Status)
	}

	if subject == "" {
		return nil, ErrSubjectRequired
	}
	if !model.ValidFeedbackType(feedbackType) {
		return nil, ErrInvalidFeedbackType
	}

	feedback.Subject = subject
	feedback.Message = message
	feedback.Type = feedbackType
	feedback.UpdatedAt = time.Now()

	err = s.feedbackRepo.Update(feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}

	return feedback, nil
}

func (s *FeedbackService) Delete(ctx context.Context, actor policy.Actor, feedbackID string) error {
	feedback, err := s.feedbackRepo.ByID(feedbackID)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to get feedback: %w", err)
	}

	if feedback.UserID != actor.ID {
		return apperr.ErrPermissionDenied
	}
	if !policy.Evaluate(actor, policy.OpDelete, policy.EntityFeedback, feedbackRow(feedback)).Allowed() {
		return apperr.Lifecycle("feedback has already been %s", feedback.Status)
	}

	return s.feedbackRepo.Delete(feedback.ID)
}

func feedbackRow(f *model.Feedback) policy.Row {
	return policy.Row{OwnerID: f.UserID, Status: f.Status}
}
