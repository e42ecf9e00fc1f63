package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, projectsFile), `[
		{"id": 1, "title": "Kirana Connect", "slug": "kirana-connect", "short_description": "Groceries"},
		{"id": 2, "title": "Fleet", "slug": "fleet", "short_description": "Trucks"}
	]`)
	writeFile(t, filepath.Join(dir, projectsDir, "kirana-connect.json"), `{
		"id": 1,
		"title": "Kirana Connect",
		"slug": "kirana-connect",
		"sections": [
			{"type": "heading", "title": "Hello"},
			{"type": "hologram", "beam": true},
			{"type": "quote", "content": "Fast."}
		]
	}`)
	writeFile(t, filepath.Join(dir, blogsFile), `[
		{"title": "Old", "slug": "old", "created_at": "2023-01-01T00:00:00Z"},
		{"title": "New", "slug": "new", "created_at": "2024-06-01T00:00:00Z"},
		{"title": "Mid", "slug": "mid", "created_at": "2023-09-01T00:00:00Z"}
	]`)

	s, err := NewStore(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s, dir
}

func TestNewStoreRequiresDirectory(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, siteerrors.ErrConfig)
}

func TestProjects(t *testing.T) {
	s, _ := newTestStore(t)

	projects, err := s.Projects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "kirana-connect", projects[0].Slug)
	assert.Equal(t, "fleet", projects[1].Slug)
}

func TestProjectDecodesSections(t *testing.T) {
	s, _ := newTestStore(t)

	p, err := s.Project(context.Background(), "kirana-connect")
	require.NoError(t, err)
	require.Len(t, p.Sections, 3)
	assert.Equal(t, models.SectionHeading, p.Sections[0].Type())
	assert.IsType(t, &models.UnknownSection{}, p.Sections[1])
	assert.Equal(t, models.SectionQuote, p.Sections[2].Type())
}

func TestProjectNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	for _, slug := range []string{"nope", "../projects", "", "a/b"} {
		_, err := s.Project(context.Background(), slug)
		assert.True(t, siteerrors.IsNotFound(err), "slug %q", slug)
	}
}

func TestProjectMalformedFile(t *testing.T) {
	s, dir := newTestStore(t)
	writeFile(t, filepath.Join(dir, projectsDir, "broken.json"), `{"title": `)

	_, err := s.Project(context.Background(), "broken")
	assert.True(t, siteerrors.IsFetchFailed(err))
	assert.Contains(t, err.Error(), "slug=broken")
}

func TestBlogsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)

	blogs, err := s.Blogs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, blogs, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{blogs[0].Slug, blogs[1].Slug, blogs[2].Slug})

	limited, err := s.Blogs(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	b, err := s.Blog(context.Background(), "mid")
	require.NoError(t, err)
	assert.Equal(t, "Mid", b.Title)

	_, err = s.Blog(context.Background(), "gone")
	assert.True(t, siteerrors.IsNotFound(err))
}

func TestMissingListsAreEmpty(t *testing.T) {
	s, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	projects, err := s.Projects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)

	blogs, err := s.Blogs(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, blogs)
}

func TestCancelledContext(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Project(ctx, "kirana-connect")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidate(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	p, err := s.Project(ctx, "kirana-connect")
	require.NoError(t, err)
	assert.Equal(t, "Kirana Connect", p.Title)

	path := filepath.Join(dir, projectsDir, "kirana-connect.json")
	writeFile(t, path, `{"title": "Renamed", "slug": "kirana-connect", "sections": []}`)

	p, err = s.Project(ctx, "kirana-connect")
	require.NoError(t, err)
	assert.Equal(t, "Kirana Connect", p.Title, "served from cache until invalidated")

	s.Invalidate(path)
	p, err = s.Project(ctx, "kirana-connect")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Title)

	s.Invalidate("/somewhere/else/projects.json")
}

func TestWatchInvalidatesOnWrite(t *testing.T) {
	s, dir := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.Projects(ctx)
	require.NoError(t, err)

	changed := make(chan string, 8)
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, func(p string) { changed <- p }) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	tmp := filepath.Join(dir, "projects.tmp")
	writeFile(t, tmp, `[{"title": "Only", "slug": "only"}]`)
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, projectsFile)))

	select {
	case p := <-changed:
		assert.Equal(t, projectsFile, filepath.Base(p))
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}

	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "only", projects[0].Slug)

	cancel()
	assert.NoError(t, <-done)
}
