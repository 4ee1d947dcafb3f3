package model

const (
	CategoryKindNote         = "note"
	CategoryKindAnnouncement = "announcement"
)

// Category is a seeded label; not owned by any user.
type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Kind string `db:"kind" json:"kind"`
}
