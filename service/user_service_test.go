package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

func newUserFixture(t *testing.T) (*UserService, []string) {
	t.Helper()

	store := repository.NewMemoryStore()
	users := repository.NewMemoryUserRepository(store)
	follows := repository.NewMemoryFollowRepository(store)
	auth := NewAuthService(users, nil, 0)

	ids := make([]string, 0, 3)
	for _, name := range []string{"alice", "bob", "carol"} {
		u, err := auth.Register(context.Background(), name, "pw")
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	return NewUserService(users, follows, nil), ids
}

func TestFollowIdempotent(t *testing.T) {
	svc, ids := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, ids[0], ids[1]))
	require.NoError(t, svc.Follow(ctx, ids[0], ids[1]))

	followers, err := svc.Followers(ctx, ids[1])
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

func TestSelfFollowRejected(t *testing.T) {
	svc, ids := newUserFixture(t)

	err := svc.Follow(context.Background(), ids[0], ids[0])
	assert.ErrorIs(t, err, apperrors.ErrSelfFollow)
}

func TestUnfollowIdempotent(t *testing.T) {
	svc, ids := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, ids[0], ids[1]))
	require.NoError(t, svc.Unfollow(ctx, ids[0], ids[1]))
	// removing an already-removed edge is still fine
	require.NoError(t, svc.Unfollow(ctx, ids[0], ids[1]))

	followers, err := svc.Followers(ctx, ids[1])
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestFollowersAndFollowing(t *testing.T) {
	svc, ids := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, ids[0], ids[2]))
	require.NoError(t, svc.Follow(ctx, ids[1], ids[2]))
	require.NoError(t, svc.Follow(ctx, ids[2], ids[0]))

	followers, err := svc.Followers(ctx, ids[2])
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := svc.Following(ctx, ids[2])
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, ids[0], following[0].FolloweeID)
}

func TestExpandProfiles(t *testing.T) {
	svc, ids := newUserFixture(t)
	ctx := context.Background()

	// duplicates collapse, unknown ids drop
	profiles, err := svc.ExpandProfiles(ctx, []string{ids[0], ids[0], "missing", ids[1]})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alice", profiles[0].Username)
	assert.Equal(t, "bob", profiles[1].Username)
}

func TestDirectoryCarriesFollowCounts(t *testing.T) {
	svc, ids := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, ids[0], ids[2]))
	require.NoError(t, svc.Follow(ctx, ids[1], ids[2]))

	cards, err := svc.Directory(ctx, 50)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	byID := map[string]int{}
	for i, c := range cards {
		byID[c.ID] = i
	}
	assert.Equal(t, 2, cards[byID[ids[2]]].Followers)
	assert.Equal(t, 0, cards[byID[ids[2]]].Following)
	assert.Equal(t, 1, cards[byID[ids[0]]].Following)
}

// brokenFollows simulates a follow store that stopped answering count
// queries; listings must still come back with zeroed counts.
type brokenFollows struct {
	repository.FollowRepository
}

func (brokenFollows) CountFollowers(context.Context, string) (int, error) {
	return 0, errors.New("store offline")
}

func (brokenFollows) CountFollowing(context.Context, string) (int, error) {
	return 0, errors.New("store offline")
}

func TestFollowCountsDegradeToZero(t *testing.T) {
	store := repository.NewMemoryStore()
	users := repository.NewMemoryUserRepository(store)
	auth := NewAuthService(users, nil, 0)
	ctx := context.Background()

	u, err := auth.Register(ctx, "alice", "pw")
	require.NoError(t, err)

	svc := NewUserService(users, brokenFollows{repository.NewMemoryFollowRepository(store)}, nil)

	followers, following := svc.FollowCounts(ctx, u.ID)
	assert.Zero(t, followers)
	assert.Zero(t, following)

	cards, err := svc.Directory(ctx, 50)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Zero(t, cards[0].Followers)
}

func TestLookupUnknownUser(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = svc.Lookup(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
