package model

import "strings"

// Attachment describes a file bound to a note, announcement, or submission.
// The zero value means nothing is bound. Storage paths always begin with the
// owning user's ID; that prefix is the scoping signal for object access.
type Attachment struct {
	Path      string `db:"attachment_path" json:"path,omitempty"`
	Name      string `db:"attachment_name" json:"name,omitempty"`
	MediaType string `db:"attachment_type" json:"media_type,omitempty"`
	Size      int64  `db:"attachment_size" json:"size,omitempty"`
}

func (a Attachment) Bound() bool {
	return a.Path != ""
}

// OwnerID returns the first path segment, the ID of the owning user.
func (a Attachment) OwnerID() string {
	id, _, _ := strings.Cut(a.Path, "/")
	return id
}
