package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

// MemoryStore is the in-process fallback backend used when Postgres is
// unavailable (or when STORE=memory). It exposes the same repository
// interfaces as the database-backed implementations; all state lives for
// the lifetime of the process and is guarded by a single RWMutex, so the
// check-then-write sequences inside one call are atomic here.
type MemoryStore struct {
	mu           sync.RWMutex
	users        []model.User
	posts        []model.Post
	interactions map[model.InteractionKind]map[string]model.Interaction
	views        map[string]model.Interaction
	replies      []model.Reply
	follows      []model.FollowEdge
	carts        map[string][]model.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		interactions: map[model.InteractionKind]map[string]model.Interaction{
			model.KindLike:     {},
			model.KindRepost:   {},
			model.KindBookmark: {},
		},
		views: map[string]model.Interaction{},
		carts: map[string][]model.CartItem{},
	}
}

func pairKey(userID, postID string) string { return userID + "|" + postID }

// Clear drops all state. Dev/test helper.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.posts = nil
	s.replies = nil
	s.follows = nil
	for kind := range s.interactions {
		s.interactions[kind] = map[string]model.Interaction{}
	}
	s.views = map[string]model.Interaction{}
	s.carts = map[string][]model.CartItem{}
}

// seedPasswordHash is a bcrypt-shaped placeholder, not a digest of any
// known password: seeded accounts are deliberately impossible to log
// into.
const seedPasswordHash = "$2a$10$8e3H1vK0b8l6m6m6m6m6.u0vJxXo1KjvKqGm1dQw9G7nKQy2p2Q2"

// Seed inserts the demo bot accounts and a couple of posts so a fresh dev
// environment has something to render. Returns the number of posts added.
func (s *MemoryStore) Seed() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	bots := []struct {
		username string
		bio      string
	}{
		{"PAZE", "Prioritizing relaxation since 2025."},
		{"PrDeep", "Went so deep the stack overflowed."},
		{"SHAIVATE", "Refactors coffee into code."},
		{"MITRA", "Mentors code and caffeine."},
		{"MACRO", "Automates breakfast; debugs toast."},
		{"RB", "Rebuilds builds to build character."},
	}

	byName := map[string]string{}
	for _, u := range s.users {
		byName[u.Username] = u.ID
	}
	for _, b := range bots {
		if _, ok := byName[b.username]; ok {
			continue
		}
		bio := b.bio
		user := model.User{
			ID:           uuid.NewString(),
			Username:     b.username,
			PasswordHash: seedPasswordHash,
			Bio:          &bio,
			CreatedAt:    now,
		}
		s.users = append(s.users, user)
		byName[b.username] = user.ID
	}

	ownerID := "seed-user"
	seedPosts := []model.Post{
		{ID: uuid.NewString(), Title: "Welcome to UNIUN", MediaType: model.MediaImage, OwnerID: ownerID, Likes: 3, Reposts: 1, Views: 10, CreatedAt: now},
		{ID: uuid.NewString(), Title: "Second post", MediaType: model.MediaVideo, OwnerID: ownerID, Likes: 1, Views: 5, CreatedAt: now},
		{ID: uuid.NewString(), Title: "PAZE: “Budgeted my energy; budget was zero.”", MediaType: model.MediaImage, OwnerID: byName["PAZE"], Likes: 2, Views: 12, CreatedAt: now},
		{ID: uuid.NewString(), Title: "PrDeep: “Edge case discovered: reality.”", MediaType: model.MediaImage, OwnerID: byName["PrDeep"], Likes: 5, Replies: 1, Reposts: 1, Views: 20, CreatedAt: now},
	}
	s.posts = append(seedPosts, s.posts...)
	return len(seedPosts)
}
