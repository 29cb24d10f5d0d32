package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

type CartRepository interface {
	// AddItem appends the item to the user's cart; the cart is created on
	// first use.
	AddItem(ctx context.Context, userID string, item model.CartItem) error
	// Get returns the user's cart; an empty cart when nothing was added.
	Get(ctx context.Context, userID string) (*model.Cart, error)
}

type cartRepository struct {
	db *sqlx.DB
}

func NewCartRepository(db *sqlx.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) AddItem(ctx context.Context, userID string, item model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, user_id, item_id, price, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), userID, item.ItemID, item.Price, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) Get(ctx context.Context, userID string) (*model.Cart, error) {
	query := `
		SELECT item_id, price
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	var items []model.CartItem
	err := r.db.SelectContext(ctx, &items, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if items == nil {
		items = []model.CartItem{}
	}
	return &model.Cart{UserID: userID, Items: items}, nil
}
