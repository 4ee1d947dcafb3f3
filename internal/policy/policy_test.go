package policy

import (
	"testing"

	"github.com/studyshare/studyshare/internal/model"
)

var (
	alice = Actor{ID: "u1"}
	bob   = Actor{ID: "u2"}
)

func TestEvaluateAnonymous(t *testing.T) {
	// Anonymous actors are denied everything except account self-creation.
	entities := []Entity{
		EntityUser, EntityProfile, EntityCategory, EntityNote,
		EntityAnnouncement, EntityComment, EntityAssignment,
		EntitySubmission, EntityFeedback, EntityAttachment,
	}
	ops := []Operation{OpCreate, OpRead, OpUpdate, OpDelete}

	for _, entity := range entities {
		for _, op := range ops {
			got := Evaluate(Anonymous(), op, entity, Row{OwnerID: "u1", Path: "u1/files/a.pdf"})
			want := Deny
			if entity == EntityUser && op == OpCreate {
				want = Allow
			}
			if got != want {
				t.Errorf("Evaluate(anonymous, %s, %s) = %v, want %v", op, entity, got, want)
			}
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		op     Operation
		entity Entity
		row    Row
		want   Decision
	}{
		// Profile: self only, no direct create/delete.
		{name: "profile read self", actor: alice, op: OpRead, entity: EntityProfile, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "profile read other", actor: bob, op: OpRead, entity: EntityProfile, row: Row{OwnerID: "u1"}, want: Deny},
		{name: "profile update self", actor: alice, op: OpUpdate, entity: EntityProfile, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "profile create denied", actor: alice, op: OpCreate, entity: EntityProfile, row: Row{OwnerID: "u1"}, want: Deny},
		{name: "profile delete denied", actor: alice, op: OpDelete, entity: EntityProfile, row: Row{OwnerID: "u1"}, want: Deny},

		// User: self-creation open, everything else self only.
		{name: "user delete self", actor: alice, op: OpDelete, entity: EntityUser, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "user delete other", actor: bob, op: OpDelete, entity: EntityUser, row: Row{OwnerID: "u1"}, want: Deny},

		// Notes: fully owner-scoped, including read.
		{name: "note create own", actor: alice, op: OpCreate, entity: EntityNote, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "note create for other", actor: bob, op: OpCreate, entity: EntityNote, row: Row{OwnerID: "u1"}, want: Deny},
		{name: "note read owner", actor: alice, op: OpRead, entity: EntityNote, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "note read other", actor: bob, op: OpRead, entity: EntityNote, row: Row{OwnerID: "u1"}, want: Deny},
		{name: "note delete other", actor: bob, op: OpDelete, entity: EntityNote, row: Row{OwnerID: "u1"}, want: Deny},

		// Categories and assignments: read-only seeded data.
		{name: "category read", actor: alice, op: OpRead, entity: EntityCategory, row: Row{}, want: Allow},
		{name: "category create", actor: alice, op: OpCreate, entity: EntityCategory, row: Row{}, want: Deny},
		{name: "category delete", actor: alice, op: OpDelete, entity: EntityCategory, row: Row{}, want: Deny},
		{name: "assignment read", actor: alice, op: OpRead, entity: EntityAssignment, row: Row{}, want: Allow},
		{name: "assignment update", actor: alice, op: OpUpdate, entity: EntityAssignment, row: Row{}, want: Deny},

		// Announcements and comments: broad read, owner-scoped writes.
		{name: "announcement read any", actor: bob, op: OpRead, entity: EntityAnnouncement, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "announcement update other", actor: bob, op: OpUpdate, entity: EntityAnnouncement, row: Row{OwnerID: "u1"}, want: Deny},
		{name: "announcement delete owner", actor: alice, op: OpDelete, entity: EntityAnnouncement, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "comment read any", actor: bob, op: OpRead, entity: EntityComment, row: Row{OwnerID: "u1"}, want: Allow},
		{name: "comment update other", actor: bob, op: OpUpdate, entity: EntityComment, row: Row{OwnerID: "u1"}, want: Deny},

		// Submissions: owner-scoped, update/delete only while draft.
		{name: "submission read owner", actor: alice, op: OpRead, entity: EntitySubmission, row: Row{OwnerID: "u1", Status: model.SubmissionStatusDraft}, want: Allow},
		{name: "submission read other", actor: bob, op: OpRead, entity: EntitySubmission, row: Row{OwnerID: "u1", Status: model.SubmissionStatusDraft}, want: Deny},
		{name: "submission update draft", actor: alice, op: OpUpdate, entity: EntitySubmission, row: Row{OwnerID: "u1", Status: model.SubmissionStatusDraft}, want: Allow},
		{name: "submission update submitted", actor: alice, op: OpUpdate, entity: EntitySubmission, row: Row{OwnerID: "u1", Status: model.SubmissionStatusSubmitted}, want: Deny},
		{name: "submission delete submitted", actor: alice, op: OpDelete, entity: EntitySubmission, row: Row{OwnerID: "u1", Status: model.SubmissionStatusSubmitted}, want: Deny},
		{name: "submission update draft other", actor: bob, op: OpUpdate, entity: EntitySubmission, row: Row{OwnerID: "u1", Status: model.SubmissionStatusDraft}, want: Deny},

		// Feedback: owner-scoped, mutable only while pending.
		{name: "feedback read owner", actor: alice, op: OpRead, entity: EntityFeedback, row: Row{OwnerID: "u1", Status: model.FeedbackStatusPending}, want: Allow},
		{name: "feedback read other", actor: bob, op: OpRead, entity: EntityFeedback, row: Row{OwnerID: "u1", Status: model.FeedbackStatusPending}, want: Deny},
		{name: "feedback update pending", actor: alice, op: OpUpdate, entity: EntityFeedback, row: Row{OwnerID: "u1", Status: model.FeedbackStatusPending}, want: Allow},
		{name: "feedback update reviewed", actor: alice, op: OpUpdate, entity: EntityFeedback, row: Row{OwnerID: "u1", Status: model.FeedbackStatusReviewed}, want: Deny},
		{name: "feedback delete resolved", actor: alice, op: OpDelete, entity: EntityFeedback, row: Row{OwnerID: "u1", Status: model.FeedbackStatusResolved}, want: Deny},

		// Attachments: broad authenticated read, prefix-scoped writes.
		{name: "attachment read any", actor: bob, op: OpRead, entity: EntityAttachment, row: Row{Path: "u1/notes/f.pdf"}, want: Allow},
		{name: "attachment create own prefix", actor: alice, op: OpCreate, entity: EntityAttachment, row: Row{Path: "u1/notes/f.pdf"}, want: Allow},
		{name: "attachment create foreign prefix", actor: bob, op: OpCreate, entity: EntityAttachment, row: Row{Path: "u1/notes/f.pdf"}, want: Deny},
		{name: "attachment update foreign prefix", actor: bob, op: OpUpdate, entity: EntityAttachment, row: Row{Path: "u1/notes/f.pdf"}, want: Deny},
		{name: "attachment delete own prefix", actor: alice, op: OpDelete, entity: EntityAttachment, row: Row{Path: "u1/notes/f.pdf"}, want: Allow},
		{name: "attachment delete bare prefix", actor: bob, op: OpDelete, entity: EntityAttachment, row: Row{Path: "u1"}, want: Deny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.actor, tt.op, tt.entity, tt.row); got != tt.want {
				t.Errorf("Evaluate(%s, %s, %s) = %v, want %v", tt.actor.ID, tt.op, tt.entity, got, tt.want)
			}
		})
	}
}
