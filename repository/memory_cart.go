package repository

import (
	"context"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

type memoryCartRepository struct {
	store *MemoryStore
}

func NewMemoryCartRepository(store *MemoryStore) CartRepository {
	return &memoryCartRepository{store: store}
}

func (r *memoryCartRepository) AddItem(_ context.Context, userID string, item model.CartItem) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = append(s.carts[userID], item)
	return nil
}

func (r *memoryCartRepository) Get(_ context.Context, userID string) (*model.Cart, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := append([]model.CartItem{}, s.carts[userID]...)
	return &model.Cart{UserID: userID, Items: items}, nil
}
