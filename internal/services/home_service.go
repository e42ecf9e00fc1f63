package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"buildwith.dev/internal/models"
)

// Home is the data behind the landing page. Each block carries its own
// error so one failing fetch does not blank the other.
type Home struct {
	Projects    []models.ProjectSummary
	ProjectsErr error
	Blogs       []models.Blog
	BlogsErr    error
}

// HomeService gathers the landing page data.
type HomeService struct {
	projects *ProjectService
	blogs    *BlogService
	logger   *zap.Logger
}

// NewHomeService creates a new HomeService
func NewHomeService(projects *ProjectService, blogs *BlogService, logger *zap.Logger) *HomeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HomeService{projects: projects, blogs: blogs, logger: logger}
}

// Load fetches projects and the blog preview concurrently.
func (s *HomeService) Load(ctx context.Context) *Home {
	home := &Home{}

	var g errgroup.Group
	g.Go(func() error {
		home.Projects, home.ProjectsErr = s.projects.GetAll(ctx)
		if home.ProjectsErr != nil {
			s.logger.Error("home: failed to load projects", zap.Error(home.ProjectsErr))
		}
		return nil
	})
	g.Go(func() error {
		home.Blogs, home.BlogsErr = s.blogs.Recent(ctx, PreviewLimit)
		if home.BlogsErr != nil {
			s.logger.Error("home: failed to load blogs", zap.Error(home.BlogsErr))
		}
		return nil
	})
	_ = g.Wait()

	return home
}
