package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
)

type memoryUserRepository struct {
	store *MemoryStore
}

func NewMemoryUserRepository(store *MemoryStore) UserRepository {
	return &memoryUserRepository{store: store}
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return apperrors.ErrUsernameTaken
		}
	}
	s.users = append(s.users, *user)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) GetByIDs(_ context.Context, ids []string) ([]model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	out := make([]model.User, 0, len(ids))
	for _, u := range s.users {
		if _, ok := wanted[u.ID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memoryUserRepository) List(_ context.Context, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 50
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]model.User(nil), s.users...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryUserRepository) Search(_ context.Context, query string, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	q := strings.ToLower(query)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0)
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), q) {
			out = append(out, u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
