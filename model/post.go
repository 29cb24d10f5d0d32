package model

import "time"

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

func (m MediaType) Valid() bool {
	switch m {
	case MediaImage, MediaVideo, MediaAudio:
		return true
	}
	return false
}

// MaxTitleLen bounds post titles (runes, not bytes).
const MaxTitleLen = 280

// Post is a media post. Likes/Reposts/Replies/Views are denormalized
// counters; the join records in the interaction tables are the source of
// truth and the counters are adjusted only through atomic single-row
// updates floored at zero.
type Post struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	MediaType MediaType `json:"mediaType" db:"media_type"`
	MediaURL  *string   `json:"mediaUrl,omitempty" db:"media_url"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	Price     *float64  `json:"price,omitempty" db:"price"`
	Likes     int       `json:"likes" db:"likes"`
	Reposts   int       `json:"reposts" db:"reposts"`
	Replies   int       `json:"replies" db:"replies"`
	Views     int       `json:"views" db:"views"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PostUpdate carries the owner-mutable fields of a post. Nil means
// "leave unchanged"; ClearPrice removes the price entirely.
type PostUpdate struct {
	Title      *string
	MediaURL   *string
	Price      *float64
	ClearPrice bool
}

func (u PostUpdate) Empty() bool {
	return u.Title == nil && u.MediaURL == nil && u.Price == nil && !u.ClearPrice
}
