package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

// CartService owns the per-user cart and the mock checkout.
type CartService struct {
	carts repository.CartRepository
}

func NewCartService(carts repository.CartRepository) *CartService {
	return &CartService{carts: carts}
}

// AddItem appends an item to the caller's cart. Duplicates are allowed.
func (s *CartService) AddItem(ctx context.Context, userID string, item model.CartItem) error {
	if item.ItemID == "" {
		return apperrors.ErrItemRequired
	}
	if item.Price < 0 {
		item.Price = 0
	}
	return s.carts.AddItem(ctx, userID, item)
}

// Get returns the caller's cart, empty when nothing was added.
func (s *CartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	return s.carts.Get(ctx, userID)
}

// Checkout returns a pretend payment URL. There is no payment provider
// behind it.
func (s *CartService) Checkout(_ context.Context, _ string) string {
	return fmt.Sprintf("https://checkout.example.com/session/%s", uuid.NewString())
}
