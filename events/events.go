package events

import "time"

// Subjects published to NATS. Subscribers are external; nothing in this
// process depends on them.
const (
	PostCreated     = "post.created"
	PostInteraction = "post.interaction"
	UserFollowed    = "user.followed"
	MessageSent     = "message.sent"
)

type PostCreatedEvent struct {
	PostID    string    `json:"postId"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	MediaType string    `json:"mediaType"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostInteractionEvent covers like/repost/bookmark toggles, replies and
// first views. Active is the state after the toggle.
type PostInteractionEvent struct {
	Kind   string `json:"kind"`
	PostID string `json:"postId"`
	UserID string `json:"userId"`
	Active bool   `json:"active"`
	Count  int    `json:"count,omitempty"`
}

type UserFollowedEvent struct {
	FollowerID string `json:"followerId"`
	FolloweeID string `json:"followeeId"`
	Active     bool   `json:"active"`
}

type MessageSentEvent struct {
	MessageID string    `json:"messageId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	CreatedAt time.Time `json:"createdAt"`
}
