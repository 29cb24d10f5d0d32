package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

func newInteractionFixture(t *testing.T) (*InteractionService, *PostService, string) {
	t.Helper()

	store := repository.NewMemoryStore()
	posts := repository.NewMemoryPostRepository(store)
	interactions := repository.NewMemoryInteractionRepository(store)

	postSvc := NewPostService(posts, nil)
	interSvc := NewInteractionService(interactions, posts, nil)

	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     "hello",
		MediaType: model.MediaImage,
		OwnerID:   "owner-1",
		CreatedAt: time.Now(),
	}
	require.NoError(t, posts.Create(context.Background(), post))

	return interSvc, postSvc, post.ID
}

func TestToggleLike(t *testing.T) {
	svc, postSvc, postID := newInteractionFixture(t)
	ctx := context.Background()

	result, err := svc.Toggle(ctx, model.KindLike, "user-1", postID)
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, 1, result.Count)

	// second toggle removes the like and restores the counter
	result, err = svc.Toggle(ctx, model.KindLike, "user-1", postID)
	require.NoError(t, err)
	assert.False(t, result.Active)
	assert.Equal(t, 0, result.Count)

	post, err := postSvc.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Likes)
}

func TestToggleLikeTwoUsers(t *testing.T) {
	svc, _, postID := newInteractionFixture(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, model.KindLike, "user-1", postID)
	require.NoError(t, err)
	result, err := svc.Toggle(ctx, model.KindLike, "user-2", postID)
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, 2, result.Count)

	result, err = svc.Toggle(ctx, model.KindLike, "user-1", postID)
	require.NoError(t, err)
	assert.False(t, result.Active)
	assert.Equal(t, 1, result.Count)
}

func TestToggleBookmarkHasNoCounter(t *testing.T) {
	svc, postSvc, postID := newInteractionFixture(t)
	ctx := context.Background()

	result, err := svc.Toggle(ctx, model.KindBookmark, "user-1", postID)
	require.NoError(t, err)
	assert.True(t, result.Active)

	post, err := postSvc.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Likes)
	assert.Equal(t, 0, post.Reposts)

	result, err = svc.Toggle(ctx, model.KindBookmark, "user-1", postID)
	require.NoError(t, err)
	assert.False(t, result.Active)
}

func TestToggleMissingPost(t *testing.T) {
	svc, _, _ := newInteractionFixture(t)

	result, err := svc.Toggle(context.Background(), model.KindLike, "user-1", "no-such-post")
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, 0, result.Count)
}

func TestRecordViewFirstOnly(t *testing.T) {
	svc, _, postID := newInteractionFixture(t)
	ctx := context.Background()

	result, err := svc.RecordView(ctx, "user-1", postID)
	require.NoError(t, err)
	assert.True(t, result.Viewed)
	assert.Equal(t, 1, result.Views)

	// repeated view leaves the counter untouched
	result, err = svc.RecordView(ctx, "user-1", postID)
	require.NoError(t, err)
	assert.True(t, result.Viewed)
	assert.Equal(t, 1, result.Views)

	// a different user bumps it exactly once
	result, err = svc.RecordView(ctx, "user-2", postID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Views)
}

func TestReply(t *testing.T) {
	svc, postSvc, postID := newInteractionFixture(t)
	ctx := context.Background()

	_, err := svc.Reply(ctx, "user-1", postID, "")
	assert.Error(t, err)

	reply, err := svc.Reply(ctx, "user-1", postID, "first")
	require.NoError(t, err)
	assert.NotEmpty(t, reply.ID)

	_, err = svc.Reply(ctx, "user-1", postID, "second")
	require.NoError(t, err)

	post, err := postSvc.Get(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, 2, post.Replies)

	replies, err := svc.Replies(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, replies, 2)
}

func TestStatus(t *testing.T) {
	svc, _, postID := newInteractionFixture(t)
	ctx := context.Background()

	status, err := svc.Status(ctx, "user-1", postID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.False(t, status.Reposted)
	assert.False(t, status.Bookmarked)

	_, err = svc.Toggle(ctx, model.KindLike, "user-1", postID)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, model.KindBookmark, "user-1", postID)
	require.NoError(t, err)

	status, err = svc.Status(ctx, "user-1", postID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.False(t, status.Reposted)
	assert.True(t, status.Bookmarked)

	// another user's view is independent
	status, err = svc.Status(ctx, "user-2", postID)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.False(t, status.Bookmarked)
}
