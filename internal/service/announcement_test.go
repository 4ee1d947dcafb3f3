package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/repository"
)

type fakeAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	updateErr     error
}

func (f *fakeAnnouncementRepo) Create(a *model.Announcement) error {
	cp := *a
	f.announcements[a.ID] = &cp
	return nil
}

func (f *fakeAnnouncementRepo) ByID(id string) (*model.Announcement, error) {
	a, ok := f.announcements[id]
	if !ok {
		return nil, repository.ErrAnnouncementNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAnnouncementRepo) Announcements() ([]*model.Announcement, error) {
	var out []*model.Announcement
	for _, a := range f.announcements {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAnnouncementRepo) Update(a *model.Announcement) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	_, ok := f.announcements[a.ID]
	if !ok {
		return repository.ErrAnnouncementNotFound
	}
	cp := *a
	f.announcements[a.ID] = &cp
	return nil
}

func (f *fakeAnnouncementRepo) Delete(id string) error {
	_, ok := f.announcements[id]
	if !ok {
		return repository.ErrAnnouncementNotFound
	}
	delete(f.announcements, id)
	return nil
}

func newAnnouncementFixture() (*AnnouncementService, *fakeAnnouncementRepo, *fakeStorage) {
	repo := &fakeAnnouncementRepo{announcements: map[string]*model.Announcement{}}
	categoryRepo := &fakeCategoryRepo{categories: map[string]*model.Category{
		"cat-ann-general": {ID: "cat-ann-general", Kind: model.CategoryKindAnnouncement, Name: "General"},
	}}
	store := newFakeStorage()
	return NewAnnouncementService(repo, categoryRepo, NewAttachmentService(store)), repo, store
}

func TestAnnouncementReadableByOthersWritableByPoster(t *testing.T) {
	svc, _, _ := newAnnouncementFixture()

	announcement, err := svc.Create(context.Background(), student, "Midterm moved", "to Friday", nil, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Any signed-in user can read it
	_, err = svc.ByID(context.Background(), otherUser, announcement.ID)
	if err != nil {
		t.Errorf("ByID() by other user error = %v", err)
	}

	// Only the poster can change or remove it
	_, err = svc.Update(context.Background(), otherUser, announcement.ID, "Hijacked", "", nil, nil)
	if err == nil {
		t.Error("Update() by other user succeeded")
	}
	err = svc.Delete(context.Background(), otherUser, announcement.ID)
	if err == nil {
		t.Error("Delete() by other user succeeded")
	}

	err = svc.Delete(context.Background(), student, announcement.ID)
	if err != nil {
		t.Errorf("Delete() by poster error = %v", err)
	}
}

func TestAnnouncementUpdateFailureKeepsOldAttachment(t *testing.T) {
	svc, repo, store := newAnnouncementFixture()

	up := &Upload{Name: "v1.pdf", Size: 2, Content: bytes.NewReader([]byte("v1"))}
	announcement, err := svc.Create(context.Background(), student, "Syllabus", "attached", nil, up)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	oldPath := announcement.Attachment.Path

	repo.updateErr = errors.New("connection reset")
	up2 := &Upload{Name: "v2.pdf", Size: 2, Content: bytes.NewReader([]byte("v2"))}
	_, err = svc.Update(context.Background(), student, announcement.ID, "Syllabus", "attached", nil, up2)
	if err == nil {
		t.Fatal("Update() error = nil, want persistence failure")
	}

	got, getErr := repo.ByID(announcement.ID)
	if getErr != nil {
		t.Fatalf("ByID() error = %v", getErr)
	}
	if got.Attachment.Path != oldPath {
		t.Errorf("persisted row references %q, want old %q", got.Attachment.Path, oldPath)
	}
	if _, ok := store.objects[oldPath]; !ok {
		t.Error("old object gone after failed update (dangling reference)")
	}
	if len(store.objects) != 1 {
		t.Errorf("storage has %d objects, want 1 (the original)", len(store.objects))
	}
}
