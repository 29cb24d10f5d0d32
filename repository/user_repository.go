package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.User, error)
	List(ctx context.Context, limit int) ([]model.User, error)
	Search(ctx context.Context, query string, limit int) ([]model.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user; a duplicate username maps to ErrUsernameTaken.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, avatar_url, bio, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.AvatarURL, user.Bio, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperrors.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id; (nil, nil) when absent.
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, avatar_url, bio, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves a user by username; (nil, nil) when absent.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, avatar_url, bio, created_at
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// GetByIDs retrieves users for a set of ids; unknown ids are skipped.
func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, username, password_hash, avatar_url, bio, created_at
		FROM users
		WHERE id IN (?)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var users []model.User
	err = r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}

	return users, nil
}

// List returns up to limit users for the directory view.
func (r *userRepository) List(ctx context.Context, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, username, password_hash, avatar_url, bio, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`

	var users []model.User
	err := r.db.SelectContext(ctx, &users, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Search matches usernames by case-insensitive substring.
func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 50
	}

	stmt := `
		SELECT id, username, password_hash, avatar_url, bio, created_at
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2
	`

	var users []model.User
	err := r.db.SelectContext(ctx, &users, stmt, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return users, nil
}
