// Package policy decides, for every (actor, operation, entity, row) tuple,
// whether the operation is permitted. Evaluate is a pure function: it never
// touches storage and a caller can replay any decision in isolation. A deny
// is just a deny; it does not reveal whether the row exists.
package policy

import (
	"strings"

	"github.com/studyshare/studyshare/internal/model"
)

type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

type Entity string

const (
	EntityUser         Entity = "user"
	EntityProfile      Entity = "profile"
	EntityCategory     Entity = "category"
	EntityNote         Entity = "note"
	EntityAnnouncement Entity = "announcement"
	EntityComment      Entity = "comment"
	EntityAssignment   Entity = "assignment"
	EntitySubmission   Entity = "submission"
	EntityFeedback     Entity = "feedback"
	EntityAttachment   Entity = "attachment"
)

// Actor is the identity making a request. The zero value is anonymous.
type Actor struct {
	ID string
}

func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

// Row carries the attributes of the candidate row that decisions depend on.
// For create operations it describes the row about to be written.
type Row struct {
	// OwnerID is the owning user's ID. For user and profile rows it is the
	// account the row belongs to.
	OwnerID string
	// Status is the submission or feedback status, empty for other entities.
	Status string
	// Path is the storage path, set only for attachment objects.
	Path string
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool {
	return d == Allow
}

// Evaluate applies the access rule table. Anonymous actors are denied
// everything except creating their own account.
func Evaluate(actor Actor, op Operation, entity Entity, row Row) Decision {
	if actor.IsAnonymous() {
		if entity == EntityUser && op == OpCreate {
			return Allow
		}
		return Deny
	}

	switch entity {
	case EntityUser:
		if op == OpCreate {
			return Allow
		}
		return owns(actor, row)

	case EntityProfile:
		// Issued by the system at sign-up and removed only with the account,
		// so direct create/delete is never granted.
		switch op {
		case OpRead, OpUpdate:
			return owns(actor, row)
		}
		return Deny

	case EntityCategory, EntityAssignment:
		// Seeded / staff-authored data: read-only for everyone.
		if op == OpRead {
			return Allow
		}
		return Deny

	case EntityNote:
		return owns(actor, row)

	case EntityAnnouncement, EntityComment:
		if op == OpRead {
			return Allow
		}
		return owns(actor, row)

	case EntitySubmission:
		switch op {
		case OpUpdate, OpDelete:
			if row.Status != model.SubmissionStatusDraft {
				return Deny
			}
		}
		return owns(actor, row)

	case EntityFeedback:
		switch op {
		case OpUpdate, OpDelete:
			if row.Status != model.FeedbackStatusPending {
				return Deny
			}
		}
		return owns(actor, row)

	case EntityAttachment:
		// Reads are open to any authenticated user so attachments can be
		// served alongside their parent content; writes stay scoped to the
		// owner-ID path prefix.
		if op == OpRead {
			return Allow
		}
		if pathOwner(row.Path) == actor.ID {
			return Allow
		}
		return Deny
	}

	return Deny
}

func owns(actor Actor, row Row) Decision {
	if row.OwnerID != "" && row.OwnerID == actor.ID {
		return Allow
	}
	return Deny
}

func pathOwner(path string) string {
	owner, _, _ := strings.Cut(path, "/")
	return owner
}
