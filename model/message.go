package model

import "time"

// MaxMessageLen bounds direct-message text; longer input is truncated,
// not rejected.
const MaxMessageLen = 2000

// Message is a direct message. Messages live only in process memory for
// the lifetime of the server.
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationSummary is one row of the conversation list: the peer, the
// most recent message either way, and how many of the peer's messages
// arrived after the viewer's read watermark.
type ConversationSummary struct {
	UserID      string   `json:"userId"`
	LastMessage *Message `json:"lastMessage"`
	Unread      int      `json:"unread"`
}
