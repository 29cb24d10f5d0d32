package model

import "time"

// FollowEdge is a directed edge in the follow graph, unique per ordered
// (FollowerID, FolloweeID) pair. Self-follows are rejected at write time.
type FollowEdge struct {
	FollowerID string    `json:"followerId" db:"follower_id"`
	FolloweeID string    `json:"followeeId" db:"followee_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
