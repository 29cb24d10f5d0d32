package repository

import (
	"context"
	"sort"
	"time"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
)

type memoryFollowRepository struct {
	store *MemoryStore
}

func NewMemoryFollowRepository(store *MemoryStore) FollowRepository {
	return &memoryFollowRepository{store: store}
}

func (r *memoryFollowRepository) Follow(_ context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return apperrors.ErrSelfFollow
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.follows {
		if e.FollowerID == followerID && e.FolloweeID == followeeID {
			return nil
		}
	}
	s.follows = append(s.follows, model.FollowEdge{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (r *memoryFollowRepository) Unfollow(_ context.Context, followerID, followeeID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.follows {
		if e.FollowerID == followerID && e.FolloweeID == followeeID {
			s.follows = append(s.follows[:i], s.follows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryFollowRepository) Followers(_ context.Context, userID string) ([]model.FollowEdge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.FollowEdge, 0)
	for _, e := range s.follows {
		if e.FolloweeID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryFollowRepository) Following(_ context.Context, userID string) ([]model.FollowEdge, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.FollowEdge, 0)
	for _, e := range s.follows {
		if e.FollowerID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryFollowRepository) CountFollowers(_ context.Context, userID string) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.follows {
		if e.FolloweeID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memoryFollowRepository) CountFollowing(_ context.Context, userID string) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.follows {
		if e.FollowerID == userID {
			count++
		}
	}
	return count, nil
}
