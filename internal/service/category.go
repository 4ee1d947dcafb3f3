package service

import (
	"context"

	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/policy"
	"github.com/studyshare/studyshare/internal/repository"
)

// CategoryService serves the seeded category labels. They are read-only
// from the application's point of view.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *CategoryService) Categories(ctx context.Context, actor policy.Actor, kind string) ([]*model.Category, error) {
	if !policy.Evaluate(actor, policy.OpRead, policy.EntityCategory, policy.Row{}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	return s.categoryRepo.Categories(kind)
}
