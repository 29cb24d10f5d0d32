package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

// Counter names the denormalized aggregates on a post. Only these four
// values are accepted; the column name is interpolated into SQL, so the
// whitelist matters.
type Counter string

const (
	CounterLikes   Counter = "likes"
	CounterReposts Counter = "reposts"
	CounterReplies Counter = "replies"
	CounterViews   Counter = "views"
)

func (c Counter) valid() bool {
	switch c {
	case CounterLikes, CounterReposts, CounterReplies, CounterViews:
		return true
	}
	return false
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// List returns recent posts, newest first, optionally filtered by owner.
	List(ctx context.Context, ownerID string, limit int) ([]model.Post, error)
	// Update applies the owner-scoped partial update; it reports whether a
	// post owned by ownerID matched.
	Update(ctx context.Context, id, ownerID string, upd model.PostUpdate) (bool, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]model.Post, error)
	// AdjustCounter atomically adds delta to the named counter, floored at
	// zero, and returns the refreshed value. A missing post matches zero
	// rows and yields (0, nil).
	AdjustCounter(ctx context.Context, postID string, counter Counter, delta int) (int, error)
}

type postRepository struct {
	db    *sqlx.DB
	cache *recentPostsCache
}

// NewPostRepository creates the Postgres-backed post repository. The redis
// client is optional; nil disables the recent-posts cache.
func NewPostRepository(db *sqlx.DB, rdb *redis.Client) PostRepository {
	return &postRepository{db: db, cache: newRecentPostsCache(rdb)}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, title, media_type, media_url, owner_id, price,
		                   likes, reposts, replies, views, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.MediaType, post.MediaURL, post.OwnerID, post.Price,
		post.Likes, post.Reposts, post.Replies, post.Views, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	r.cache.invalidate(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
		SELECT id, title, media_type, media_url, owner_id, price,
		       likes, reposts, replies, views, created_at
		FROM posts
		WHERE id = $1
	`

	var post model.Post
	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *postRepository) List(ctx context.Context, ownerID string, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	// The unfiltered recent listing is the hot path (home feed); serve it
	// from the id cache when possible.
	if ownerID == "" {
		if ids, ok := r.cache.recentIDs(ctx, limit); ok {
			posts, err := r.getByIDs(ctx, ids)
			if err == nil && len(posts) > 0 {
				return posts, nil
			}
		}
	}

	query := `
		SELECT id, title, media_type, media_url, owner_id, price,
		       likes, reposts, replies, views, created_at
		FROM posts
	`
	args := []interface{}{}
	if ownerID != "" {
		query += ` WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, ownerID, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	var posts []model.Post
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if ownerID == "" {
		r.cache.store(ctx, posts)
	}

	return posts, nil
}

func (r *postRepository) getByIDs(ctx context.Context, ids []string) ([]model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, title, media_type, media_url, owner_id, price,
		       likes, reposts, replies, views, created_at
		FROM posts
		WHERE id IN (?)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var posts []model.Post
	err = r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by ids: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, id, ownerID string, upd model.PostUpdate) (bool, error) {
	sets := []string{}
	args := []interface{}{}
	arg := 1

	if upd.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", arg))
		args = append(args, *upd.Title)
		arg++
	}
	if upd.MediaURL != nil {
		sets = append(sets, fmt.Sprintf("media_url = $%d", arg))
		args = append(args, *upd.MediaURL)
		arg++
	}
	if upd.ClearPrice {
		sets = append(sets, "price = NULL")
	} else if upd.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", arg))
		args = append(args, *upd.Price)
		arg++
	}

	if len(sets) == 0 {
		return false, nil
	}

	query := fmt.Sprintf(
		"UPDATE posts SET %s WHERE id = $%d AND owner_id = $%d",
		strings.Join(sets, ", "), arg, arg+1,
	)
	args = append(args, id, ownerID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		r.cache.invalidate(ctx)
	}
	return rowsAffected > 0, nil
}

func (r *postRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	query := `DELETE FROM posts WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		r.cache.invalidate(ctx)
	}
	return rowsAffected > 0, nil
}

func (r *postRepository) Search(ctx context.Context, query string, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = 50
	}

	stmt := `
		SELECT id, title, media_type, media_url, owner_id, price,
		       likes, reposts, replies, views, created_at
		FROM posts
		WHERE title ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2
	`

	var posts []model.Post
	err := r.db.SelectContext(ctx, &posts, stmt, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) AdjustCounter(ctx context.Context, postID string, counter Counter, delta int) (int, error) {
	if !counter.valid() {
		return 0, fmt.Errorf("unknown counter %q", counter)
	}

	query := fmt.Sprintf(
		`UPDATE posts SET %s = GREATEST(%s + $1, 0) WHERE id = $2 RETURNING %s`,
		counter, counter, counter,
	)

	var value int
	err := r.db.GetContext(ctx, &value, query, delta, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Counter update on a missing post is a no-op, not a failure.
			return 0, nil
		}
		return 0, fmt.Errorf("failed to adjust %s: %w", counter, err)
	}

	r.cache.invalidate(ctx)
	return value, nil
}

// recentPostsCache keeps a short-lived ZSET of recent post ids in Redis,
// scored by creation time. All methods are no-ops when the client is nil
// and swallow cache errors: the database stays the source of truth.
type recentPostsCache struct {
	rdb *redis.Client
}

const (
	recentPostsKey = "posts:recent"
	recentPostsTTL = time.Minute
)

func newRecentPostsCache(rdb *redis.Client) *recentPostsCache {
	return &recentPostsCache{rdb: rdb}
}

func (c *recentPostsCache) recentIDs(ctx context.Context, limit int) ([]string, bool) {
	if c.rdb == nil {
		return nil, false
	}
	ids, err := c.rdb.ZRevRange(ctx, recentPostsKey, 0, int64(limit-1)).Result()
	if err != nil || len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

func (c *recentPostsCache) store(ctx context.Context, posts []model.Post) {
	if c.rdb == nil || len(posts) == 0 {
		return
	}
	pipe := c.rdb.Pipeline()
	for _, post := range posts {
		pipe.ZAdd(ctx, recentPostsKey, redis.Z{
			Score:  float64(post.CreatedAt.Unix()),
			Member: post.ID,
		})
	}
	pipe.Expire(ctx, recentPostsKey, recentPostsTTL)
	_, _ = pipe.Exec(ctx)
}

func (c *recentPostsCache) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, recentPostsKey).Err()
}
