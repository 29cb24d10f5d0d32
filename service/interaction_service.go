package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Idyll-Intelligent-Systems/UNIUN/events"
	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/apperrors"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

// ToggleResult is the outcome of flipping a like/repost/bookmark.
type ToggleResult struct {
	// Active is the state after the call: true when the interaction now
	// exists for (user, post).
	Active bool
	// Count is the post's counter after the call. Meaningless for kinds
	// without a counter (bookmarks).
	Count int
}

// ViewResult is the outcome of recording a view.
type ViewResult struct {
	Views  int
	Viewed bool
}

// InteractionService owns the per-user per-post toggles, replies and
// view tracking, keeping the denormalized post counters in step with the
// join records.
type InteractionService struct {
	interactions repository.InteractionRepository
	posts        repository.PostRepository
	pub          *events.Publisher
}

func NewInteractionService(interactions repository.InteractionRepository, posts repository.PostRepository, pub *events.Publisher) *InteractionService {
	return &InteractionService{interactions: interactions, posts: posts, pub: pub}
}

// Toggle flips the interaction for (user, post). The insert is attempted
// first; losing the insert means the record existed, so it is removed
// instead. Each path adjusts the counter only when a record was actually
// written or deleted, which keeps repeated toggles idempotent per state.
func (s *InteractionService) Toggle(ctx context.Context, kind model.InteractionKind, userID, postID string) (*ToggleResult, error) {
	inserted, err := s.interactions.Add(ctx, kind, userID, postID)
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{Active: inserted}
	changed := inserted
	if !inserted {
		changed, err = s.interactions.Remove(ctx, kind, userID, postID)
		if err != nil {
			return nil, err
		}
	}

	if kind.HasCounter() {
		counter := counterFor(kind)
		if changed {
			delta := -1
			if result.Active {
				delta = 1
			}
			result.Count, err = s.posts.AdjustCounter(ctx, postID, counter, delta)
		} else {
			result.Count, err = s.readCounter(ctx, postID, counter)
		}
		if err != nil {
			return nil, err
		}
	}

	s.pub.Publish(events.PostInteraction, events.PostInteractionEvent{
		Kind:   string(kind),
		PostID: postID,
		UserID: userID,
		Active: result.Active,
		Count:  result.Count,
	})

	return result, nil
}

// Reply appends a reply and bumps the post's replies counter once.
func (s *InteractionService) Reply(ctx context.Context, userID, postID, text string) (*model.Reply, error) {
	if text == "" {
		return nil, apperrors.ErrTextRequired
	}

	reply := &model.Reply{
		ID:        uuid.NewString(),
		UserID:    userID,
		PostID:    postID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.interactions.AddReply(ctx, reply); err != nil {
		return nil, err
	}

	if _, err := s.posts.AdjustCounter(ctx, postID, repository.CounterReplies, 1); err != nil {
		return nil, err
	}

	s.pub.Publish(events.PostInteraction, events.PostInteractionEvent{
		Kind:   "reply",
		PostID: postID,
		UserID: userID,
		Active: true,
	})

	return reply, nil
}

// RecordView counts the first view per (user, post); later views leave
// the counter untouched.
func (s *InteractionService) RecordView(ctx context.Context, userID, postID string) (*ViewResult, error) {
	first, err := s.interactions.AddView(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	var views int
	if first {
		views, err = s.posts.AdjustCounter(ctx, postID, repository.CounterViews, 1)
	} else {
		views, err = s.readCounter(ctx, postID, repository.CounterViews)
	}
	if err != nil {
		return nil, err
	}

	// The view record exists after every successful call, first or not.
	return &ViewResult{Views: views, Viewed: true}, nil
}

// Status reports the caller's toggles on a post.
func (s *InteractionService) Status(ctx context.Context, userID, postID string) (*model.InteractionStatus, error) {
	liked, err := s.interactions.Has(ctx, model.KindLike, userID, postID)
	if err != nil {
		return nil, err
	}
	reposted, err := s.interactions.Has(ctx, model.KindRepost, userID, postID)
	if err != nil {
		return nil, err
	}
	bookmarked, err := s.interactions.Has(ctx, model.KindBookmark, userID, postID)
	if err != nil {
		return nil, err
	}

	return &model.InteractionStatus{Liked: liked, Reposted: reposted, Bookmarked: bookmarked}, nil
}

// Bookmarks returns the caller's bookmark records, newest first.
func (s *InteractionService) Bookmarks(ctx context.Context, userID string) ([]model.Interaction, error) {
	return s.interactions.ListByUser(ctx, model.KindBookmark, userID)
}

// Reposts returns the caller's repost records, newest first.
func (s *InteractionService) Reposts(ctx context.Context, userID string) ([]model.Interaction, error) {
	return s.interactions.ListByUser(ctx, model.KindRepost, userID)
}

// Replies returns the caller's replies, newest first.
func (s *InteractionService) Replies(ctx context.Context, userID string) ([]model.Reply, error) {
	return s.interactions.ListRepliesByUser(ctx, userID)
}

func (s *InteractionService) readCounter(ctx context.Context, postID string, counter repository.Counter) (int, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil || post == nil {
		return 0, err
	}
	switch counter {
	case repository.CounterLikes:
		return post.Likes, nil
	case repository.CounterReposts:
		return post.Reposts, nil
	case repository.CounterReplies:
		return post.Replies, nil
	case repository.CounterViews:
		return post.Views, nil
	}
	return 0, nil
}

func counterFor(kind model.InteractionKind) repository.Counter {
	if kind == model.KindRepost {
		return repository.CounterReposts
	}
	return repository.CounterLikes
}
