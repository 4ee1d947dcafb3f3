package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/storage"
)

// MaxAttachmentSize is the hard ceiling for a bound object. The check runs
// before any storage write.
const MaxAttachmentSize = 50 << 20 // 50 MiB

const (
	AttachmentKindNote         = "note"
	AttachmentKindAnnouncement = "announcement"
	AttachmentKindSubmission   = "submission"
	AttachmentKindAvatar       = "avatar"
)

// Upload is a candidate object handed in by the caller, typically straight
// from a multipart form.
type Upload struct {
	Name      string
	MediaType string
	Size      int64
	Content   io.Reader
}

// AttachmentService associates at most one binary object with a note,
// announcement, submission, or profile, keeping storage paths prefixed by
// the owning user's ID.
type AttachmentService struct {
	storage storage.Storage
}

func NewAttachmentService(storage storage.Storage) *AttachmentService {
	return &AttachmentService{
		storage: storage,
	}
}

// Bind stores the object under an owner-prefixed path and returns its
// descriptor. Oversized payloads are rejected without touching storage.
func (s *AttachmentService) Bind(ctx context.Context, ownerID, kind string, up Upload) (model.Attachment, error) {
	if up.Size > MaxAttachmentSize {
		return model.Attachment{}, fmt.Errorf("attachment is %d bytes: %w", up.Size, apperr.ErrPayloadTooLarge)
	}

	ext := filepath.Ext(up.Name)
	path := fmt.Sprintf("%s/%ss/%s%s", ownerID, kind, uuid.New().String(), ext)

	mediaType := up.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	err := s.storage.Save(ctx, path, up.Content)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("failed to store attachment: %w", err)
	}

	return model.Attachment{
		Path:      path,
		Name:      up.Name,
		MediaType: mediaType,
		Size:      up.Size,
	}, nil
}

// Unbind removes the underlying object. Unbinding an already-cleared
// descriptor is a no-op, and a missing object is not an error.
func (s *AttachmentService) Unbind(ctx context.Context, att model.Attachment) error {
	if !att.Bound() {
		return nil
	}

	err := s.storage.Delete(ctx, att.Path)
	if err != nil {
		// The object may already be gone; the reference is cleared either way
		slog.Warn("failed to delete attachment from storage", "path", att.Path, "error", err)
	}

	return nil
}

// URL returns a download link for a bound descriptor, presigned when the
// backing store supports it.
func (s *AttachmentService) URL(ctx context.Context, att model.Attachment) string {
	if !att.Bound() {
		return ""
	}

	s3Storage, ok := s.storage.(*storage.S3Storage)
	if ok {
		url, err := s3Storage.PresignedURL(ctx, att.Path)
		if err == nil {
			return url
		}
		// Fallback to direct URL if presigning fails
	}

	return s.storage.URL(att.Path)
}

// DeleteNamespace removes every object owned by the given user. Called when
// the account itself is deleted.
func (s *AttachmentService) DeleteNamespace(ctx context.Context, ownerID string) error {
	return s.storage.DeletePrefix(ctx, ownerID+"/")
}
