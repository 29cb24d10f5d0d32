package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/jwt"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

// defaultAvatarURL is assigned to accounts registered without one.
const defaultAvatarURL = "/avatars/veee.png"

// AuthService handles registration and credential login.
type AuthService struct {
	users       repository.UserRepository
	jwtManager  *jwt.Manager
	tokenExpiry time.Duration
}

func NewAuthService(users repository.UserRepository, jwtManager *jwt.Manager, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		jwtManager:  jwtManager,
		tokenExpiry: tokenExpiry,
	}
}

// Register creates a new account. The username must be unused.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrCredentialsRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatar := defaultAvatarURL
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		AvatarURL:    &avatar,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.ErrCredentialsRequired
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user.ID, user.Username, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
