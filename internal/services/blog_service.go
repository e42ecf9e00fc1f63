package services

import (
	"context"
	"fmt"

	"buildwith.dev/internal/models"
)

// PreviewLimit is how many posts the home page shows.
const PreviewLimit = 4

// BlogService handles blog-related operations
type BlogService struct {
	source Source
}

// NewBlogService creates a new BlogService
func NewBlogService(source Source) *BlogService {
	return &BlogService{source: source}
}

// Recent returns posts newest first; limit <= 0 returns all of them.
func (s *BlogService) Recent(ctx context.Context, limit int) ([]models.Blog, error) {
	blogs, err := s.source.Blogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}

// GetBySlug returns one post.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog, err := s.source.Blog(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("loading blog: %w", err)
	}
	return blog, nil
}
