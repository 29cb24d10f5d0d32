package model

import "time"

// InteractionKind names the toggleable per-user per-post interactions.
type InteractionKind string

const (
	KindLike     InteractionKind = "like"
	KindRepost   InteractionKind = "repost"
	KindBookmark InteractionKind = "bookmark"
)

// HasCounter reports whether the kind maintains a denormalized counter on
// the post. Bookmarks are presence-only.
func (k InteractionKind) HasCounter() bool {
	return k == KindLike || k == KindRepost
}

// Interaction is a join record: a user liked/reposted/bookmarked a post.
// Unique per (UserID, PostID) within a kind.
type Interaction struct {
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Reply is append-only; it has no uniqueness constraint and bumps the
// post's replies counter exactly once on creation.
type Reply struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// InteractionStatus is the read-only view of a user's toggles on a post.
type InteractionStatus struct {
	Liked      bool `json:"liked"`
	Reposted   bool `json:"reposted"`
	Bookmarked bool `json:"bookmarked"`
}
