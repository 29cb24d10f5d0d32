package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
)

type FollowRepository interface {
	// Follow upserts the edge; following twice is a no-op. Self-follows
	// are rejected with ErrSelfFollow.
	Follow(ctx context.Context, followerID, followeeID string) error
	// Unfollow deletes the edge if present; deleting a missing edge is a
	// no-op, not an error.
	Unfollow(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]model.FollowEdge, error)
	Following(ctx context.Context, userID string) ([]model.FollowEdge, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return apperrors.ErrSelfFollow
	}

	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}

	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	query := `
		DELETE FROM follows
		WHERE follower_id = $1 AND followee_id = $2
	`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	return nil
}

func (r *followRepository) Followers(ctx context.Context, userID string) ([]model.FollowEdge, error) {
	query := `
		SELECT follower_id, followee_id, created_at
		FROM follows
		WHERE followee_id = $1
		ORDER BY created_at DESC
	`

	var edges []model.FollowEdge
	err := r.db.SelectContext(ctx, &edges, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	return edges, nil
}

func (r *followRepository) Following(ctx context.Context, userID string) ([]model.FollowEdge, error) {
	query := `
		SELECT follower_id, followee_id, created_at
		FROM follows
		WHERE follower_id = $1
		ORDER BY created_at DESC
	`

	var edges []model.FollowEdge
	err := r.db.SelectContext(ctx, &edges, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}

	return edges, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM follows WHERE followee_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}

	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM follows WHERE follower_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}

	return count, nil
}
