package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/policy"
	"github.com/studyshare/studyshare/internal/repository"
)

type fakeAssignmentRepo struct {
	assignments map[string]*model.Assignment
}

func (f *fakeAssignmentRepo) ByID(id string) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, repository.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeAssignmentRepo) Assignments() ([]*model.Assignment, error) {
	var out []*model.Assignment
	for _, a := range f.assignments {
		out = append(out, a)
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	submissions map[string]*model.Submission

	// hideOnce makes the next ByAssignmentAndUser miss even when a row
	// exists, simulating a lost concurrent-create race; hideAlways keeps
	// the row invisible so the race can never be resolved.
	hideOnce   bool
	hideAlways bool
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[string]*model.Submission{}}
}

func (f *fakeSubmissionRepo) Create(sub *model.Submission) error {
	for _, s := range f.submissions {
		if s.AssignmentID == sub.AssignmentID && s.UserID == sub.UserID {
			return repository.ErrSubmissionExists
		}
	}
	cp := *sub
	f.submissions[sub.ID] = &cp
	return nil
}

func (f *fakeSubmissionRepo) ByID(id string) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, repository.ErrSubmissionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubmissionRepo) ByAssignmentAndUser(assignmentID, userID string) (*model.Submission, error) {
	if f.hideAlways {
		return nil, repository.ErrSubmissionNotFound
	}
	if f.hideOnce {
		f.hideOnce = false
		return nil, repository.ErrSubmissionNotFound
	}
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrSubmissionNotFound
}

func (f *fakeSubmissionRepo) Submissions(userID string) ([]*model.Submission, error) {
	var out []*model.Submission
	for _, s := range f.submissions {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) Update(sub *model.Submission) error {
	_, ok := f.submissions[sub.ID]
	if !ok {
		return repository.ErrSubmissionNotFound
	}
	cp := *sub
	f.submissions[sub.ID] = &cp
	return nil
}

func (f *fakeSubmissionRepo) Delete(id string) error {
	_, ok := f.submissions[id]
	if !ok {
		return repository.ErrSubmissionNotFound
	}
	delete(f.submissions, id)
	return nil
}

var (
	dueAt      = time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	beforeDue  = dueAt.Add(-time.Hour)
	afterDue   = dueAt.Add(time.Hour)
	student    = policy.Actor{ID: "u1"}
	otherUser  = policy.Actor{ID: "u2"}
	assignment = &model.Assignment{ID: "a1", Title: "Problem Set 3", DueAt: dueAt}
)

func newSubmissionFixture(now time.Time) (*SubmissionService, *fakeSubmissionRepo, *fakeStorage) {
	subRepo := newFakeSubmissionRepo()
	store := newFakeStorage()
	svc := NewSubmissionService(
		subRepo,
		&fakeAssignmentRepo{assignments: map[string]*model.Assignment{"a1": assignment}},
		NewAttachmentService(store),
	)
	svc.now = func() time.Time { return now }
	return svc, subRepo, store
}

func TestStartDraftBeforeDue(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	sub, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "first pass", nil)
	if err != nil {
		t.Fatalf("StartOrUpdateDraft() error = %v", err)
	}
	if sub.Status != model.SubmissionStatusDraft {
		t.Errorf("status = %q, want draft", sub.Status)
	}
	if sub.Body != "first pass" {
		t.Errorf("body = %q", sub.Body)
	}
}

func TestStartDraftAfterDueRejected(t *testing.T) {
	svc, _, _ := newSubmissionFixture(afterDue)

	_, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "late", nil)
	if !apperr.IsLifecycle(err) {
		t.Fatalf("StartOrUpdateDraft() error = %v, want lifecycle rejection", err)
	}
}

func TestStartDraftUnknownAssignment(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	_, err := svc.StartOrUpdateDraft(context.Background(), student, "missing", "x", nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("StartOrUpdateDraft() error = %v, want ErrNotFound", err)
	}
}

func TestEditDraftAfterDueAllowed(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	sub, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "v1", nil)
	if err != nil {
		t.Fatalf("StartOrUpdateDraft() error = %v", err)
	}

	// The deadline passes; the existing draft stays editable
	svc.now = func() time.Time { return afterDue }
	updated, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "v2", nil)
	if err != nil {
		t.Fatalf("StartOrUpdateDraft() after due error = %v", err)
	}
	if updated.ID != sub.ID {
		t.Errorf("update created a second submission")
	}
	if updated.Body != "v2" {
		t.Errorf("body = %q, want v2", updated.Body)
	}
}

func TestSubmitBeforeDue(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	sub, _ := svc.StartOrUpdateDraft(context.Background(), student, "a1", "done", nil)

	submitted, err := svc.Submit(context.Background(), student, sub.ID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if submitted.Status != model.SubmissionStatusSubmitted {
		t.Errorf("status = %q, want submitted", submitted.Status)
	}
}

func TestSubmitAfterDueRejected(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	sub, _ := svc.StartOrUpdateDraft(context.Background(), student, "a1", "done", nil)

	svc.now = func() time.Time { return afterDue }
	_, err := svc.Submit(context.Background(), student, sub.ID)
	if !apperr.IsLifecycle(err) {
		t.Fatalf("Submit() after due error = %v, want lifecycle rejection", err)
	}
}

func TestSubmittedIsFinal(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	sub, _ := svc.StartOrUpdateDraft(context.Background(), student, "a1", "done", nil)
	_, err := svc.Submit(context.Background(), student, sub.ID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Edit, resubmit, and delete are all lifecycle violations now
	_, err = svc.StartOrUpdateDraft(context.Background(), student, "a1", "more", nil)
	if !apperr.IsLifecycle(err) {
		t.Errorf("edit after submit error = %v, want lifecycle rejection", err)
	}

	_, err = svc.Submit(context.Background(), student, sub.ID)
	if !apperr.IsLifecycle(err) {
		t.Errorf("double submit error = %v, want lifecycle rejection", err)
	}

	err = svc.DeleteDraft(context.Background(), student, sub.ID)
	if !apperr.IsLifecycle(err) {
		t.Errorf("delete after submit error = %v, want lifecycle rejection", err)
	}
}

func TestSubmissionInvisibleToOthers(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	sub, _ := svc.StartOrUpdateDraft(context.Background(), student, "a1", "mine", nil)

	_, err := svc.Submit(context.Background(), otherUser, sub.ID)
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("Submit() by other user error = %v, want ErrPermissionDenied", err)
	}

	err = svc.DeleteDraft(context.Background(), otherUser, sub.ID)
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("DeleteDraft() by other user error = %v, want ErrPermissionDenied", err)
	}
}

func TestDeleteDraftReleasesAttachment(t *testing.T) {
	svc, subRepo, store := newSubmissionFixture(beforeDue)

	up := &Upload{Name: "draft.pdf", Size: 4, Content: bytes.NewReader([]byte("work"))}
	sub, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "with file", up)
	if err != nil {
		t.Fatalf("StartOrUpdateDraft() error = %v", err)
	}
	if !sub.Attachment.Bound() {
		t.Fatal("attachment not bound")
	}

	err = svc.DeleteDraft(context.Background(), student, sub.ID)
	if err != nil {
		t.Fatalf("DeleteDraft() error = %v", err)
	}

	if _, getErr := subRepo.ByID(sub.ID); !errors.Is(getErr, repository.ErrSubmissionNotFound) {
		t.Error("submission row still present after delete")
	}
	if len(store.objects) != 0 {
		t.Errorf("storage has %d objects after delete, want 0", len(store.objects))
	}
}

func TestConcurrentCreateResolvesAsUpdate(t *testing.T) {
	svc, subRepo, store := newSubmissionFixture(beforeDue)

	winner, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "winner", nil)
	if err != nil {
		t.Fatalf("StartOrUpdateDraft() error = %v", err)
	}

	// The loser's lookup raced ahead of the winner's insert
	subRepo.hideOnce = true
	up := &Upload{Name: "late.pdf", Size: 4, Content: bytes.NewReader([]byte("late"))}
	loser, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "loser", up)
	if err != nil {
		t.Fatalf("racing StartOrUpdateDraft() error = %v", err)
	}

	if loser.ID != winner.ID {
		t.Errorf("race produced a second submission: %q vs %q", loser.ID, winner.ID)
	}
	if loser.Body != "loser" {
		t.Errorf("body = %q, want the racing call applied as update", loser.Body)
	}
	if !loser.Attachment.Bound() {
		t.Error("racing call's attachment was dropped")
	}
	if len(store.objects) != 1 {
		t.Errorf("storage has %d objects, want exactly the surviving attachment", len(store.objects))
	}
}

func TestUnresolvableCreateRaceIsConflict(t *testing.T) {
	svc, subRepo, store := newSubmissionFixture(beforeDue)

	_, err := svc.StartOrUpdateDraft(context.Background(), student, "a1", "winner", nil)
	if err != nil {
		t.Fatalf("StartOrUpdateDraft() error = %v", err)
	}

	// The insert keeps failing on the uniqueness rule but the winning row
	// never becomes visible to this call
	subRepo.hideAlways = true
	up := &Upload{Name: "late.pdf", Size: 4, Content: bytes.NewReader([]byte("late"))}
	_, err = svc.StartOrUpdateDraft(context.Background(), student, "a1", "loser", up)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("StartOrUpdateDraft() error = %v, want ErrConflict", err)
	}

	// The already-stored replacement must have been released
	if len(store.objects) != 0 {
		t.Errorf("storage has %d objects after unresolved race, want 0", len(store.objects))
	}
}

func TestAnonymousDenied(t *testing.T) {
	svc, _, _ := newSubmissionFixture(beforeDue)

	_, err := svc.StartOrUpdateDraft(context.Background(), policy.Anonymous(), "a1", "x", nil)
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("anonymous StartOrUpdateDraft() error = %v, want ErrPermissionDenied", err)
	}

	_, err = svc.Submissions(context.Background(), policy.Anonymous())
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("anonymous Submissions() error = %v, want ErrPermissionDenied", err)
	}
}
