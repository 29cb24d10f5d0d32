package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

type memoryInteractionRepository struct {
	store *MemoryStore
}

func NewMemoryInteractionRepository(store *MemoryStore) InteractionRepository {
	return &memoryInteractionRepository{store: store}
}

func (r *memoryInteractionRepository) Add(_ context.Context, kind model.InteractionKind, userID, postID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.interactions[kind]
	if !ok {
		return false, nil
	}
	key := pairKey(userID, postID)
	if _, exists := set[key]; exists {
		return false, nil
	}
	set[key] = model.Interaction{UserID: userID, PostID: postID, CreatedAt: time.Now()}
	return true, nil
}

func (r *memoryInteractionRepository) Remove(_ context.Context, kind model.InteractionKind, userID, postID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.interactions[kind]
	if !ok {
		return false, nil
	}
	key := pairKey(userID, postID)
	if _, exists := set[key]; !exists {
		return false, nil
	}
	delete(set, key)
	return true, nil
}

func (r *memoryInteractionRepository) Has(_ context.Context, kind model.InteractionKind, userID, postID string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.interactions[kind]
	if !ok {
		return false, nil
	}
	_, exists := set[pairKey(userID, postID)]
	return exists, nil
}

func (r *memoryInteractionRepository) ListByUser(_ context.Context, kind model.InteractionKind, userID string) ([]model.Interaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.interactions[kind]
	if !ok {
		return []model.Interaction{}, nil
	}
	out := make([]model.Interaction, 0)
	for _, it := range set {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryInteractionRepository) AddView(_ context.Context, userID, postID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(userID, postID)
	if _, exists := s.views[key]; exists {
		return false, nil
	}
	s.views[key] = model.Interaction{UserID: userID, PostID: postID, CreatedAt: time.Now()}
	return true, nil
}

func (r *memoryInteractionRepository) AddReply(_ context.Context, reply *model.Reply) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	s.replies = append(s.replies, *reply)
	return nil
}

func (r *memoryInteractionRepository) ListRepliesByUser(_ context.Context, userID string) ([]model.Reply, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Reply, 0)
	for _, rep := range s.replies {
		if rep.UserID == userID {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
