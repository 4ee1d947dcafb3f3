package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/policy"
	"github.com/studyshare/studyshare/internal/repository"
	"github.com/studyshare/studyshare/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
)

type UserService struct {
	userRepo    repository.UserRepository
	attachments *AttachmentService
}

func NewUserService(userRepo repository.UserRepository, attachments *AttachmentService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		attachments: attachments,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepo.ByID(id)
}

func (s *UserService) UpdatePassword(ctx context.Context, actor policy.Actor, currentPassword, newPassword string) error {
	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntityUser, policy.Row{OwnerID: actor.ID}).Allowed() {
		return apperr.ErrPermissionDenied
	}

	user, err := s.userRepo.ByID(actor.ID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return ErrInvalidCurrentPassword
	}

	err = validation.ValidatePassword(newPassword)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hashedPassword)
	user.PasswordHash = &hashStr

	err = s.userRepo.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// DeleteAccount removes the actor's account. The storage namespace under the
// owner-ID prefix goes first, then the user row; the store cascades removal
// of every owned entity.
func (s *UserService) DeleteAccount(ctx context.Context, actor policy.Actor) error {
	if !policy.Evaluate(actor, policy.OpDelete, policy.EntityUser, policy.Row{OwnerID: actor.ID}).Allowed() {
		return apperr.ErrPermissionDenied
	}

	err := s.attachments.DeleteNamespace(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("failed to clear storage namespace: %w", err)
	}

	err = s.userRepo.Delete(actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
