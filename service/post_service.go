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

// CreatePostInput carries the user-supplied fields of a new post.
type CreatePostInput struct {
	Title     string
	MediaType model.MediaType
	MediaURL  *string
	Price     *float64
}

// PostService owns the post lifecycle.
type PostService struct {
	posts repository.PostRepository
	pub   *events.Publisher
}

func NewPostService(posts repository.PostRepository, pub *events.Publisher) *PostService {
	return &PostService{posts: posts, pub: pub}
}

// Create validates and stores a new post with all counters at zero.
func (s *PostService) Create(ctx context.Context, ownerID string, in CreatePostInput) (*model.Post, error) {
	if in.Title == "" || !in.MediaType.Valid() {
		return nil, apperrors.ErrInvalidPost
	}
	if len([]rune(in.Title)) > model.MaxTitleLen {
		return nil, apperrors.ErrTitleTooLong
	}

	post := &model.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		MediaType: in.MediaType,
		MediaURL:  in.MediaURL,
		OwnerID:   ownerID,
		Price:     in.Price,
		CreatedAt: time.Now(),
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.pub.Publish(events.PostCreated, events.PostCreatedEvent{
		PostID:    post.ID,
		OwnerID:   post.OwnerID,
		Title:     post.Title,
		MediaType: string(post.MediaType),
		CreatedAt: post.CreatedAt,
	})

	return post, nil
}

// Get returns the post or ErrPostNotFound.
func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperrors.ErrPostNotFound
	}
	return post, nil
}

// List returns posts newest first, optionally filtered by owner.
func (s *PostService) List(ctx context.Context, ownerID string, limit int) ([]model.Post, error) {
	return s.posts.List(ctx, ownerID, limit)
}

// Update applies the patch to the caller's own post. A post owned by
// someone else is indistinguishable from a missing one.
func (s *PostService) Update(ctx context.Context, id, ownerID string, upd model.PostUpdate) error {
	if upd.Empty() {
		return apperrors.ErrNoUpdatableFields
	}
	if upd.Title != nil && len([]rune(*upd.Title)) > model.MaxTitleLen {
		return apperrors.ErrTitleTooLong
	}

	matched, err := s.posts.Update(ctx, id, ownerID, upd)
	if err != nil {
		return err
	}
	if !matched {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// Delete removes the caller's own post.
func (s *PostService) Delete(ctx context.Context, id, ownerID string) error {
	matched, err := s.posts.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if !matched {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// Search matches posts by title substring.
func (s *PostService) Search(ctx context.Context, query string, limit int) ([]model.Post, error) {
	return s.posts.Search(ctx, query, limit)
}
