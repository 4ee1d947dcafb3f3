package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/policy"
	"github.com/studyshare/studyshare/internal/repository"
	"github.com/studyshare/studyshare/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	attachments *AttachmentService
}

func NewProfileService(profileRepo repository.ProfileRepository, attachments *AttachmentService) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		attachments: attachments,
	}
}

// ByUser returns the actor's own profile; profiles are never visible to
// anyone else.
func (s *ProfileService) ByUser(ctx context.Context, actor policy.Actor, userID string) (*model.Profile, error) {
	if !policy.Evaluate(actor, policy.OpRead, policy.EntityProfile, policy.Row{OwnerID: userID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.AvatarPath != "" {
		profile.AvatarURL = s.attachments.URL(ctx, model.Attachment{Path: profile.AvatarPath})
	}

	return profile, nil
}

func (s *ProfileService) UpdateNames(ctx context.Context, actor policy.Actor, firstName, lastName string) error {
	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntityProfile, policy.Row{OwnerID: actor.ID}).Allowed() {
		return apperr.ErrPermissionDenied
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	err := validation.ValidateName(firstName)
	if err != nil {
		return err
	}
	err = validation.ValidateName(lastName)
	if err != nil {
		return err
	}

	return s.profileRepo.UpdateNames(actor.ID, firstName, lastName)
}

// SetAvatar rebinds the actor's avatar object and records the new path.
func (s *ProfileService) SetAvatar(ctx context.Context, actor policy.Actor, up Upload) (*model.Profile, error) {
	if !policy.Evaluate(actor, policy.OpUpdate, policy.EntityProfile, policy.Row{OwnerID: actor.ID}).Allowed() {
		return nil, apperr.ErrPermissionDenied
	}

	profile, err := s.profileRepo.ByUserID(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	// New avatar object goes in first; the old one is released only after
	// the path is persisted, so a failed write keeps the current avatar.
	old := model.Attachment{Path: profile.AvatarPath}
	att, err := s.attachments.Bind(ctx, actor.ID, AttachmentKindAvatar, up)
	if err != nil {
		return nil, err
	}

	err = s.profileRepo.UpdateAvatarPath(actor.ID, att.Path)
	if err != nil {
		_ = s.attachments.Unbind(ctx, att)
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}

	_ = s.attachments.Unbind(ctx, old)

	profile.AvatarPath = att.Path
	profile.AvatarURL = s.attachments.URL(ctx, att)

	return profile, nil
}
