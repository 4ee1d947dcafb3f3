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

// SubmissionService owns the draft -> submitted state machine for a
// student's work on one assignment. Every operation first consults the
// policy evaluator, then applies the state-transition rule; both must pass.
// Deadlines are always compared against the injected clock at the moment of
// the call, never against anything the caller supplies.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	attachments    *AttachmentService

	now func() time.Time
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	attachments *AttachmentService,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		attachments:    attachments,
		now:            time.Now,
	}
}

// StartOrUpdateDraft creates the actor's draft for the assignment, or
// updates it when one already exists. Starting a new draft after the due
// instant is rejected; editing a draft that survived the deadline is not.
func (s *SubmissionService) StartOrUpdateDraft(ctx context.Context, actor policy.Actor, assignmentID, body string, up *Upload) (*model.Submission, error) {
	assignment, err := s.assignmentRepo.ByID(assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpCreate, policy.EntitySubmission, policy.Row{OwnerID: actor.ID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	existing, err := s.submissionRepo.ByAssignmentAndUser(assignmentID, actor.ID)
	if err != nil && !errors.Is(err, repository.ErrSubmissionNotFound) {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if existing != nil {
		return s.updateDraft(ctx, actor, existing, body, up)
	}

	// No draft yet: new submissions cannot be started once overdue.
	if assignment.Overdue(s.now()) {
		return nil, apperr.Lifecycle("assignment %q is past due", assignment.Title)
	}

	now := s.now()
	submission := &model.Submission{
		ID:           uuid.New().String(),
		UserID:       actor.ID,
		AssignmentID: assignmentID,
		Body:         body,
		Status:       model.SubmissionStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if up != nil {
		att, err := s.attachments.Bind(ctx, actor.ID, AttachmentKindSubmission, *up)
		if err != nil {
			return nil, err
		}
		submission.Attachment = att
	}

	err = s.submissionRepo.Create(submission)
	if errors.Is(err, repository.ErrSubmissionExists) {
		// Lost a concurrent create race: exactly one row exists, owned by
		// the winner. Resolve this call as an update of that row.
		winner, getErr := s.submissionRepo.ByAssignmentAndUser(assignmentID, actor.ID)
		if getErr != nil {
			_ = s.attachments.Unbind(ctx, submission.Attachment)
			return nil, fmt.Errorf("concurrent submission could not be resolved: %w", apperr.ErrConflict)
		}
		return s.applyDraftUpdate(ctx, actor, winner, body, submission.Attachment, up != nil)
	}
	if err != nil {
		_ = s.attachments.Unbind(ctx, submission.Attachment)
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return submission, nil
}

func (s *SubmissionService) updateDraft(ctx context.Context, actor policy.Actor, existing *model.Submission, body string, up *Upload) (*model.Submission, error) {
	var replacement model.Attachment
	if up != nil {
		att, err := s.attachments.Bind(ctx, actor.ID, AttachmentKindSubmission, *up)
		if err != nil {
			return nil, err
		}
		replacement = att
	}

	return s.applyDraftUpdate(ctx, actor, existing, body, replacement, up != nil)
}

// applyDraftUpdate writes body and, when replace is set, swaps the
// attachment binding. The replacement is already stored; on rejection it is
// released so no orphaned object remains.
func (s *SubmissionService) applyDraftUpdate(ctx context.Context, actor policy.Actor, submission *model.Submission, body string, replacement model.Attachment, replace bool) (*model.Submission, error) {
	release := func() {
		if replace {
			_ = s.attachments.Unbind(ctx, replacement)
		}
	}

	if !policy.Evaluate(actor, policy.OpRead, policy.EntitySubmission, submissionRow(submission)).Allowed() {
		release()
		return nil, apperr.ErrPermissionDenied
	}
	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntitySubmission, submissionRow(submission)).Allowed() {
		// Ownership held, so the deny can only be the submitted status
		release()
		return nil, apperr.Lifecycle("submission has already been submitted")
	}

	old := submission.Attachment
	submission.Body = body
	if replace {
		submission.Attachment = replacement
	}
	submission.UpdatedAt = s.now()

	err := s.submissionRepo.Update(submission)
	if err != nil {
		release()
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	if replace {
		_ = s.attachments.Unbind(ctx, old)
	}

	return submission, nil
}

// Submit finalizes a draft. This is the single point where draft ->
// submitted occurs; it is irreversible.
func (s *SubmissionService) Submit(ctx context.Context, actor policy.Actor, submissionID string) (*model.Submission, error) {
	submission, err := s.submissionRepo.ByID(submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpRead, policy.EntitySubmission, submissionRow(submission)).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}
	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntitySubmission, submissionRow(submission)).Allowed() {
		return nil, apperr.Lifecycle("submission has already been submitted")
	}

	assignment, err := s.assignmentRepo.ByID(submission.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment.Overdue(s.now()) {
		return nil, apperr.Lifecycle("assignment %q is past due", assignment.Title)
	}

	submission.Status = model.SubmissionStatusSubmitted
	submission.UpdatedAt = s.now()

	err = s.submissionRepo.Update(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to submit: %w", err)
	}

	return submission, nil
}

// DeleteDraft removes a draft entirely, releasing its attachment binding.
// Submitted work can never be deleted.
func (s *SubmissionService) DeleteDraft(ctx context.Context, actor policy.Actor, submissionID string) error {
	submission, err := s.submissionRepo.ByID(submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to get submission: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpRead, policy.EntitySubmission, submissionRow(submission)).Allowed() {
		return apperr.ErrPermissionDenied
	}
	if !policy.Evaluate(actor, policy.OpDelete, policy.EntitySubmission, submissionRow(submission)).Allowed() {
		return apperr.Lifecycle("submission has already been submitted")
	}

	err = s.submissionRepo.Delete(submission.ID)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	_ = s.attachments.Unbind(ctx, submission.Attachment)

	return nil
}

// ByAssignment returns the actor's own submission for the assignment.
func (s *SubmissionService) ByAssignment(ctx context.Context, actor policy.Actor, assignmentID string) (*model.Submission, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}

	submission, err := s.submissionRepo.ByAssignmentAndUser(assignmentID, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if !policy.Evaluate(actor, policy.OpRead, policy.EntitySubmission, submissionRow(submission)).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	return submission, nil
}

// Submissions returns all of the actor's own submissions.
func (s *SubmissionService) Submissions(ctx context.Context, actor policy.Actor) ([]*model.Submission, error) {
	if actor.IsAnonymous() {
		return nil, apperr.ErrPermissionDenied
	}
	return s.submissionRepo.Submissions(actor.ID)
}

func submissionRow(sub *model.Submission) policy.Row {
	return policy.Row{OwnerID: sub.UserID, Status: sub.Status}
}
