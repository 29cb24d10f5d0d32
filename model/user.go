package model

import "time"

// User is a registered account. PasswordHash never leaves the process:
// it is excluded from JSON and stripped from all public projections.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Profile is the minimal public projection of a user, used by the
// directory, lookup, and expanded follower/following listings.
type Profile struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// UserCard is a directory entry: the public profile plus follower and
// following counts for the cards view.
type UserCard struct {
	Profile
	Bio       *string   `json:"bio,omitempty"`
	Followers int       `json:"followers"`
	Following int       `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}
