package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/models"
)

type fakeSource struct {
	projects    []models.ProjectSummary
	projectsErr error
	project     *models.Project
	blogs       []models.Blog
	blogsErr    error
	delay       time.Duration
	inFlight    int32
	maxInFlight int32
}

func (f *fakeSource) enter() func() {
	n := atomic.AddInt32(&f.inFlight, 1)
	for {
		m := atomic.LoadInt32(&f.maxInFlight)
		if n <= m || atomic.CompareAndSwapInt32(&f.maxInFlight, m, n) {
			break
		}
	}
	time.Sleep(f.delay)
	return func() { atomic.AddInt32(&f.inFlight, -1) }
}

func (f *fakeSource) Projects(ctx context.Context) ([]models.ProjectSummary, error) {
	defer f.enter()()
	return f.projects, f.projectsErr
}

func (f *fakeSource) Project(ctx context.Context, slug string) (*models.Project, error) {
	if f.project == nil || f.project.Slug != slug {
		return nil, siteerrors.NewNotFound("get project", slug)
	}
	return f.project, nil
}

func (f *fakeSource) Blogs(ctx context.Context, limit int) ([]models.Blog, error) {
	defer f.enter()()
	if limit > 0 && len(f.blogs) > limit {
		return f.blogs[:limit], f.blogsErr
	}
	return f.blogs, f.blogsErr
}

func (f *fakeSource) Blog(ctx context.Context, slug string) (*models.Blog, error) {
	for i := range f.blogs {
		if f.blogs[i].Slug == slug {
			return &f.blogs[i], nil
		}
	}
	return nil, siteerrors.NewNotFound("get blog", slug)
}

func decodeProject(t *testing.T, raw string) *models.Project {
	t.Helper()
	var p models.Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestGetBySlugLogsContentProblems(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	src := &fakeSource{project: decodeProject(t, `{
		"title": "Kirana Connect",
		"slug": "kirana-connect",
		"sections": [
			{"type": "hologram"},
			{"type": "metrics", "metrics": "oops"},
			{"type": "list", "faqs": [{"question": "A"}, {"question": "A"}]},
			{"type": "quote", "content": "ok"}
		]
	}`)}
	svc := NewProjectService(src, zap.New(core))

	p, err := svc.GetBySlug(context.Background(), "kirana-connect")
	require.NoError(t, err)
	assert.Len(t, p.Sections, 4, "sections are kept in order, bad ones render as nothing")

	assert.Equal(t, 1, logs.FilterMessage("skipping unknown section type").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping malformed section").Len())
	issues := logs.FilterMessage("section items share a key").All()
	require.Len(t, issues, 1)
	assert.Equal(t, `faqs: duplicate key "A"`, issues[0].ContextMap()["issue"])
}

func TestGetBySlugNotFound(t *testing.T) {
	svc := NewProjectService(&fakeSource{}, nil)

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.True(t, siteerrors.IsNotFound(err))
}

func TestGetBySlugRequiresTitle(t *testing.T) {
	src := &fakeSource{project: &models.Project{ProjectSummary: models.ProjectSummary{Slug: "untitled"}}}
	svc := NewProjectService(src, nil)

	_, err := svc.GetBySlug(context.Background(), "untitled")
	assert.True(t, siteerrors.IsFetchFailed(err))
}

func TestBlogService(t *testing.T) {
	src := &fakeSource{blogs: []models.Blog{
		{Slug: "a"}, {Slug: "b"}, {Slug: "c"}, {Slug: "d"}, {Slug: "e"},
	}}
	svc := NewBlogService(src)

	recent, err := svc.Recent(context.Background(), PreviewLimit)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	b, err := svc.GetBySlug(context.Background(), "c")
	require.NoError(t, err)
	assert.Equal(t, "c", b.Slug)

	_, err = svc.GetBySlug(context.Background(), "z")
	assert.True(t, siteerrors.IsNotFound(err))
}

func TestHomeLoadsConcurrently(t *testing.T) {
	src := &fakeSource{
		projects: []models.ProjectSummary{{Slug: "p"}},
		blogs:    []models.Blog{{Slug: "b"}},
		delay:    50 * time.Millisecond,
	}
	home := NewHomeService(NewProjectService(src, nil), NewBlogService(src), nil).Load(context.Background())

	require.NoError(t, home.ProjectsErr)
	require.NoError(t, home.BlogsErr)
	assert.Len(t, home.Projects, 1)
	assert.Len(t, home.Blogs, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.maxInFlight))
}

func TestHomeFailuresAreIndependent(t *testing.T) {
	src := &fakeSource{
		projectsErr: siteerrors.NewFetchFailed("list projects", 503, nil),
		blogs:       []models.Blog{{Slug: "b"}},
	}
	home := NewHomeService(NewProjectService(src, nil), NewBlogService(src), nil).Load(context.Background())

	assert.True(t, siteerrors.IsFetchFailed(home.ProjectsErr))
	assert.Nil(t, home.Projects)
	require.NoError(t, home.BlogsErr)
	assert.Len(t, home.Blogs, 1)

	src = &fakeSource{blogsErr: errors.New("boom")}
	home = NewHomeService(NewProjectService(src, nil), NewBlogService(src), nil).Load(context.Background())
	assert.NoError(t, home.ProjectsErr)
	assert.Error(t, home.BlogsErr)
}
