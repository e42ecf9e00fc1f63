// Package fixtures serves portfolio content from JSON files on disk, in the
// same shape the backend API returns. It backs offline development and the
// static exporter.
//
// Layout under the data directory:
//
//	projects.json         list of project summaries
//	projects/{slug}.json  one full project with sections
//	blogs.json            list of blog posts
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/models"
)

const (
	projectsFile = "projects.json"
	projectsDir  = "projects"
	blogsFile    = "blogs.json"
)

// Store loads fixture files lazily and caches the parsed result until the
// file changes.
type Store struct {
	dataPath string
	logger   *zap.Logger

	mu        sync.RWMutex
	summaries []models.ProjectSummary
	projects  map[string]*models.Project
	blogs     []models.Blog
}

// NewStore creates a Store rooted at dataPath.
func NewStore(dataPath string, logger *zap.Logger) (*Store, error) {
	info, err := os.Stat(dataPath)
	if err != nil {
		return nil, siteerrors.NewConfig("data.path", err.Error())
	}
	if !info.IsDir() {
		return nil, siteerrors.NewConfig("data.path", dataPath+" is not a directory")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		dataPath: dataPath,
		logger:   logger,
		projects: make(map[string]*models.Project),
	}, nil
}

// Path returns the data directory.
func (s *Store) Path() string { return s.dataPath }

// Projects returns every project summary in file order.
func (s *Store) Projects(ctx context.Context) ([]models.ProjectSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached := s.summaries
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var summaries []models.ProjectSummary
	if err := s.readJSON("list projects", projectsFile, &summaries); err != nil {
		if siteerrors.IsNotFound(err) {
			return []models.ProjectSummary{}, nil
		}
		return nil, err
	}
	if summaries == nil {
		summaries = []models.ProjectSummary{}
	}

	s.mu.Lock()
	s.summaries = summaries
	s.mu.Unlock()
	return summaries, nil
}

// Project returns the full project stored under slug.
func (s *Store) Project(ctx context.Context, slug string) (*models.Project, error) {
	const op = "get project"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validSlug(slug) {
		return nil, siteerrors.NewNotFound(op, slug)
	}

	s.mu.RLock()
	cached, ok := s.projects[slug]
	s.mu.RUnlock()
	if ok {
		p := *cached
		return &p, nil
	}

	var project models.Project
	if err := s.readJSON(op, filepath.Join(projectsDir, slug+".json"), &project); err != nil {
		if se := new(siteerrors.SiteError); errors.As(err, &se) {
			se.Slug = slug
		}
		return nil, err
	}
	if project.Slug == "" {
		project.Slug = slug
	}

	s.mu.Lock()
	s.projects[slug] = &project
	s.mu.Unlock()

	p := project
	return &p, nil
}

// Blogs returns posts newest first, at most limit when limit > 0.
func (s *Store) Blogs(ctx context.Context, limit int) ([]models.Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blogs, err := s.allBlogs()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(blogs) > limit {
		blogs = blogs[:limit]
	}
	return blogs, nil
}

// Blog returns the post with the given slug.
func (s *Store) Blog(ctx context.Context, slug string) (*models.Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blogs, err := s.allBlogs()
	if err != nil {
		return nil, err
	}
	for i := range blogs {
		if blogs[i].Slug == slug {
			b := blogs[i]
			return &b, nil
		}
	}
	return nil, siteerrors.NewNotFound("get blog", slug)
}

func (s *Store) allBlogs() ([]models.Blog, error) {
	s.mu.RLock()
	cached := s.blogs
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	var blogs []models.Blog
	if err := s.readJSON("list blogs", blogsFile, &blogs); err != nil {
		if siteerrors.IsNotFound(err) {
			return []models.Blog{}, nil
		}
		return nil, err
	}
	sort.SliceStable(blogs, func(i, j int) bool {
		return blogs[i].CreatedAt.After(blogs[j].CreatedAt.Time)
	})
	if blogs == nil {
		blogs = []models.Blog{}
	}

	s.mu.Lock()
	s.blogs = blogs
	s.mu.Unlock()
	return blogs, nil
}

// Invalidate drops whatever was cached from path. Paths outside the data
// directory are ignored.
func (s *Store) Invalidate(path string) {
	rel, err := filepath.Rel(s.dataPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	rel = filepath.ToSlash(rel)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case rel == projectsFile:
		s.summaries = nil
	case rel == blogsFile:
		s.blogs = nil
	case strings.HasPrefix(rel, projectsDir+"/"):
		slug := strings.TrimSuffix(strings.TrimPrefix(rel, projectsDir+"/"), ".json")
		delete(s.projects, slug)
	default:
		return
	}
	s.logger.Debug("fixture cache invalidated", zap.String("file", rel))
}

// readJSON reads name relative to the data directory into v.
func (s *Store) readJSON(op, name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dataPath, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return siteerrors.NewNotFound(op, "")
		}
		return siteerrors.NewFetchFailed(op, 0, fmt.Errorf("failed to read %s: %w", name, err))
	}

	if err := json.Unmarshal(data, v); err != nil {
		return siteerrors.NewFetchFailed(op, 0, fmt.Errorf("failed to parse %s: %w", name, err))
	}
	return nil
}

func validSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." &&
		!strings.ContainsAny(slug, `/\`)
}
