package service

import (
	"context"

	"github.com/Idyll-Intelligent-Systems/UNIUN/events"
	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

// UserService exposes the user directory and the follow graph.
type UserService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	pub     *events.Publisher
}

func NewUserService(users repository.UserRepository, follows repository.FollowRepository, pub *events.Publisher) *UserService {
	return &UserService{users: users, follows: follows, pub: pub}
}

// List returns the directory, newest accounts first.
func (s *UserService) List(ctx context.Context, limit int) ([]model.User, error) {
	return s.users.List(ctx, limit)
}

// Directory returns the user listing as cards with follower/following
// counts attached. Count lookups that fail degrade to 0 so a partially
// unavailable store never breaks the listing.
func (s *UserService) Directory(ctx context.Context, limit int) ([]model.UserCard, error) {
	users, err := s.users.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	cards := make([]model.UserCard, 0, len(users))
	for _, u := range users {
		followers, following := s.FollowCounts(ctx, u.ID)
		cards = append(cards, model.UserCard{
			Profile:   u.Profile(),
			Bio:       u.Bio,
			Followers: followers,
			Following: following,
			CreatedAt: u.CreatedAt,
		})
	}
	return cards, nil
}

// FollowCounts returns the user's edge counts, falling back to 0 when
// the repository errors.
func (s *UserService) FollowCounts(ctx context.Context, userID string) (followers, following int) {
	if n, err := s.follows.CountFollowers(ctx, userID); err == nil {
		followers = n
	}
	if n, err := s.follows.CountFollowing(ctx, userID); err == nil {
		following = n
	}
	return followers, following
}

// Get returns the user or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// Lookup resolves a username to a user, or ErrUserNotFound.
func (s *UserService) Lookup(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// Search matches users by username substring.
func (s *UserService) Search(ctx context.Context, query string, limit int) ([]model.User, error) {
	return s.users.Search(ctx, query, limit)
}

// Follow creates the edge; following twice is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID string) error {
	if err := s.follows.Follow(ctx, followerID, followeeID); err != nil {
		return err
	}

	s.pub.Publish(events.UserFollowed, events.UserFollowedEvent{
		FollowerID: followerID,
		FolloweeID: followeeID,
		Active:     true,
	})
	return nil
}

// Unfollow removes the edge; removing a missing edge is a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := s.follows.Unfollow(ctx, followerID, followeeID); err != nil {
		return err
	}

	s.pub.Publish(events.UserFollowed, events.UserFollowedEvent{
		FollowerID: followerID,
		FolloweeID: followeeID,
		Active:     false,
	})
	return nil
}

// Followers returns the edges pointing at userID.
func (s *UserService) Followers(ctx context.Context, userID string) ([]model.FollowEdge, error) {
	edges, err := s.follows.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if edges == nil {
		edges = []model.FollowEdge{}
	}
	return edges, nil
}

// Following returns the edges originating from userID.
func (s *UserService) Following(ctx context.Context, userID string) ([]model.FollowEdge, error) {
	edges, err := s.follows.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	if edges == nil {
		edges = []model.FollowEdge{}
	}
	return edges, nil
}

// ExpandProfiles resolves ids to public profiles, de-duplicated and with
// unknown ids dropped.
func (s *UserService) ExpandProfiles(ctx context.Context, ids []string) ([]model.Profile, error) {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	users, err := s.users.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	profiles := make([]model.Profile, 0, len(unique))
	for _, id := range unique {
		if u, ok := byID[id]; ok {
			profiles = append(profiles, u.Profile())
		}
	}
	return profiles, nil
}
