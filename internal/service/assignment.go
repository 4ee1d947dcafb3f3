package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/policy"
	"github.com/studyshare/studyshare/internal/repository"
)

// AssignmentService reads the staff-authored assignment catalog.
type AssignmentService struct {
	assignmentRepo repository.AssignmentRepository
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
	}
}

func (s *AssignmentService) ByID(ctx context.Context, actor policy.Actor, assignmentID string) (*model.Assignment, error) {
	if !policy.Evaluate(actor, policy.OpRead, policy.EntityAssignment, policy.Row{}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	assignment, err := s.assignmentRepo.ByID(assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return assignment, nil
}

func (s *AssignmentService) Assignments(ctx context.Context, actor policy.Actor) ([]*model.Assignment, error) {
	if !policy.Evaluate(actor, policy.OpRead, policy.EntityAssignment, policy.Row{}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	return s.assignmentRepo.Assignments()
}
