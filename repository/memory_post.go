package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

type memoryPostRepository struct {
	store *MemoryStore
}

func NewMemoryPostRepository(store *MemoryStore) PostRepository {
	return &memoryPostRepository{store: store}
}

func (r *memoryPostRepository) Create(_ context.Context, post *model.Post) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append([]model.Post{*post}, s.posts...)
	return nil
}

func (r *memoryPostRepository) GetByID(_ context.Context, id string) (*model.Post, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.posts {
		if s.posts[i].ID == id {
			p := s.posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memoryPostRepository) List(_ context.Context, ownerID string, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if ownerID != "" && p.OwnerID != ownerID {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryPostRepository) Update(_ context.Context, id, ownerID string, upd model.PostUpdate) (bool, error) {
	if upd.Empty() {
		return false, nil
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		p := &s.posts[i]
		if p.ID != id || p.OwnerID != ownerID {
			continue
		}
		if upd.Title != nil {
			p.Title = *upd.Title
		}
		if upd.MediaURL != nil {
			p.MediaURL = upd.MediaURL
		}
		if upd.ClearPrice {
			p.Price = nil
		} else if upd.Price != nil {
			p.Price = upd.Price
		}
		return true, nil
	}
	return false, nil
}

func (r *memoryPostRepository) Delete(_ context.Context, id, ownerID string) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		if s.posts[i].ID == id && s.posts[i].OwnerID == ownerID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPostRepository) Search(_ context.Context, query string, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = 50
	}
	q := strings.ToLower(query)

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Post, 0)
	for _, p := range s.posts {
		if strings.Contains(strings.ToLower(p.Title), q) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *memoryPostRepository) AdjustCounter(_ context.Context, postID string, counter Counter, delta int) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.posts {
		p := &s.posts[i]
		if p.ID != postID {
			continue
		}
		var field *int
		switch counter {
		case CounterLikes:
			field = &p.Likes
		case CounterReposts:
			field = &p.Reposts
		case CounterReplies:
			field = &p.Replies
		case CounterViews:
			field = &p.Views
		default:
			return 0, nil
		}
		*field += delta
		if *field < 0 {
			*field = 0
		}
		return *field, nil
	}

	// Missing post: counter update matches nothing.
	return 0, nil
}
