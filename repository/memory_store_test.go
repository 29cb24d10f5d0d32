package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

func seedPost(t *testing.T, posts PostRepository) string {
	t.Helper()
	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     "fixture",
		MediaType: model.MediaImage,
		OwnerID:   "owner-1",
		CreatedAt: time.Now(),
	}
	require.NoError(t, posts.Create(context.Background(), post))
	return post.ID
}

func TestAdjustCounterFloorsAtZero(t *testing.T) {
	store := NewMemoryStore()
	posts := NewMemoryPostRepository(store)
	ctx := context.Background()
	id := seedPost(t, posts)

	count, err := posts.AdjustCounter(ctx, id, CounterLikes, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = posts.AdjustCounter(ctx, id, CounterLikes, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAdjustCounterMissingPost(t *testing.T) {
	store := NewMemoryStore()
	posts := NewMemoryPostRepository(store)

	count, err := posts.AdjustCounter(context.Background(), "missing", CounterViews, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestInteractionAddRemove(t *testing.T) {
	store := NewMemoryStore()
	interactions := NewMemoryInteractionRepository(store)
	ctx := context.Background()

	inserted, err := interactions.Add(ctx, model.KindLike, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, inserted)

	// duplicate insert is a no-op
	inserted, err = interactions.Add(ctx, model.KindLike, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, inserted)

	has, err := interactions.Has(ctx, model.KindLike, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, has)

	existed, err := interactions.Remove(ctx, model.KindLike, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = interactions.Remove(ctx, model.KindLike, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestInteractionKindsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	interactions := NewMemoryInteractionRepository(store)
	ctx := context.Background()

	_, err := interactions.Add(ctx, model.KindLike, "u1", "p1")
	require.NoError(t, err)

	has, err := interactions.Has(ctx, model.KindRepost, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAddViewFirstOnly(t *testing.T) {
	store := NewMemoryStore()
	interactions := NewMemoryInteractionRepository(store)
	ctx := context.Background()

	first, err := interactions.AddView(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, first)

	first, err = interactions.AddView(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, first)

	first, err = interactions.AddView(ctx, "u2", "p1")
	require.NoError(t, err)
	assert.True(t, first)
}

func TestCartAppends(t *testing.T) {
	store := NewMemoryStore()
	carts := NewMemoryCartRepository(store)
	ctx := context.Background()

	cart, err := carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)

	require.NoError(t, carts.AddItem(ctx, "u1", model.CartItem{ItemID: "sku-1", Price: 5}))
	require.NoError(t, carts.AddItem(ctx, "u1", model.CartItem{ItemID: "sku-1", Price: 5}))

	cart, err = carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestSeedAndClear(t *testing.T) {
	store := NewMemoryStore()
	users := NewMemoryUserRepository(store)
	posts := NewMemoryPostRepository(store)
	ctx := context.Background()

	inserted := store.Seed()
	assert.Equal(t, 4, inserted)

	paze, err := users.GetByUsername(ctx, "PAZE")
	require.NoError(t, err)
	require.NotNil(t, paze)

	// seeding twice does not duplicate accounts
	store.Seed()
	all, err := users.List(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	store.Clear()
	all, err = users.List(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, all)

	listed, err := posts.List(ctx, "", 50)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUserSearchCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()
	users := NewMemoryUserRepository(store)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{ID: "1", Username: "Alice", CreatedAt: time.Now()}))
	require.NoError(t, users.Create(ctx, &model.User{ID: "2", Username: "malicious", CreatedAt: time.Now()}))
	require.NoError(t, users.Create(ctx, &model.User{ID: "3", Username: "bob", CreatedAt: time.Now()}))

	found, err := users.Search(ctx, "alic", 50)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
