package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
)

// kindTables maps an interaction kind to its join table. The table name is
// interpolated into SQL, so only values from this map are ever used.
var kindTables = map[model.InteractionKind]string{
	model.KindLike:     "likes",
	model.KindRepost:   "reposts",
	model.KindBookmark: "bookmarks",
}

type InteractionRepository interface {
	// Add inserts the join record and reports whether it was actually
	// inserted (false when the record already existed).
	Add(ctx context.Context, kind model.InteractionKind, userID, postID string) (bool, error)
	// Remove deletes the join record and reports whether it existed.
	Remove(ctx context.Context, kind model.InteractionKind, userID, postID string) (bool, error)
	Has(ctx context.Context, kind model.InteractionKind, userID, postID string) (bool, error)
	ListByUser(ctx context.Context, kind model.InteractionKind, userID string) ([]model.Interaction, error)

	// AddView records a first view; it reports false when the user already
	// viewed the post (at-most-one-increment-per-user lifetime).
	AddView(ctx context.Context, userID, postID string) (bool, error)

	AddReply(ctx context.Context, reply *model.Reply) error
	ListRepliesByUser(ctx context.Context, userID string) ([]model.Reply, error)
}

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Add(ctx context.Context, kind model.InteractionKind, userID, postID string) (bool, error) {
	table, ok := kindTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown interaction kind %q", kind)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, post_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`, table)

	result, err := r.db.ExecContext(ctx, query, userID, postID, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to add %s: %w", kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *interactionRepository) Remove(ctx context.Context, kind model.InteractionKind, userID, postID string) (bool, error) {
	table, ok := kindTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown interaction kind %q", kind)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND post_id = $2`, table)

	result, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to remove %s: %w", kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *interactionRepository) Has(ctx context.Context, kind model.InteractionKind, userID, postID string) (bool, error) {
	table, ok := kindTables[kind]
	if !ok {
		return false, fmt.Errorf("unknown interaction kind %q", kind)
	}

	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM %s WHERE user_id = $1 AND post_id = $2
		)
	`, table)

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", kind, err)
	}

	return exists, nil
}

func (r *interactionRepository) ListByUser(ctx context.Context, kind model.InteractionKind, userID string) ([]model.Interaction, error) {
	table, ok := kindTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown interaction kind %q", kind)
	}

	query := fmt.Sprintf(`
		SELECT user_id, post_id, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, table)

	var records []model.Interaction
	err := r.db.SelectContext(ctx, &records, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", kind, err)
	}

	return records, nil
}

func (r *interactionRepository) AddView(ctx context.Context, userID, postID string) (bool, error) {
	query := `
		INSERT INTO views (user_id, post_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, userID, postID, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to add view: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *interactionRepository) AddReply(ctx context.Context, reply *model.Reply) error {
	query := `
		INSERT INTO replies (id, user_id, post_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, query,
		reply.ID, reply.UserID, reply.PostID, reply.Text, reply.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add reply: %w", err)
	}

	return nil
}

func (r *interactionRepository) ListRepliesByUser(ctx context.Context, userID string) ([]model.Reply, error) {
	query := `
		SELECT id, user_id, post_id, text, created_at
		FROM replies
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var replies []model.Reply
	err := r.db.SelectContext(ctx, &replies, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	return replies, nil
}
