package entity

import (
	"time"
)

// Post is a blog article authored by a practitioner. The author is referenced
// by id; matching by display name exists only as a one-time backfill for
// legacy rows (see cmd/backfill_posts).
type Post struct {
	ID         string
	AuthorID   string
	AuthorName string // joined for display, not stored on the row
	Title      string
	Content    string
	Tags       []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
