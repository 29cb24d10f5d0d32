package service

import (
	"context"

	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
)

// SearchResult groups the matches of a combined query.
type SearchResult struct {
	Users []model.User `json:"users"`
	Posts []model.Post `json:"posts"`
}

// SearchService runs substring search over usernames and post titles.
type SearchService struct {
	users repository.UserRepository
	posts repository.PostRepository
}

func NewSearchService(users repository.UserRepository, posts repository.PostRepository) *SearchService {
	return &SearchService{users: users, posts: posts}
}

// Search returns users and posts matching the query. An empty query
// matches nothing.
func (s *SearchService) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	result := &SearchResult{Users: []model.User{}, Posts: []model.Post{}}
	if query == "" {
		return result, nil
	}

	users, err := s.users.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if users != nil {
		result.Users = users
	}
	if posts != nil {
		result.Posts = posts
	}
	return result, nil
}
