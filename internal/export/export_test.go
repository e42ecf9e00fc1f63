package export

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/models"
)

type stubSource struct {
	projects []models.ProjectSummary
	blogs    []models.Blog
	err      error
}

func (s stubSource) Projects(ctx context.Context) ([]models.ProjectSummary, error) {
	return s.projects, s.err
}

func (s stubSource) Project(ctx context.Context, slug string) (*models.Project, error) {
	return nil, siteerrors.NewNotFound("project", slug)
}

func (s stubSource) Blogs(ctx context.Context, limit int) ([]models.Blog, error) {
	return s.blogs, s.err
}

func (s stubSource) Blog(ctx context.Context, slug string) (*models.Blog, error) {
	return nil, siteerrors.NewNotFound("blog", slug)
}

func stubRouter() http.Handler {
	r := chi.NewRouter()
	page := func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>" + r.URL.Path + "</html>"))
	}
	r.Get("/", page)
	r.Get("/projects", page)
	r.Get("/projects/{slug}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "slug") == "broken" {
			http.Error(w, "upstream", http.StatusBadGateway)
			return
		}
		page(w, r)
	})
	r.Get("/blogs", page)
	r.Get("/blogs/{slug}", page)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>missing</html>"))
	})
	return r
}

func TestPageFile(t *testing.T) {
	tests := map[string]string{
		"/":                    "index.html",
		"/projects":            "projects/index.html",
		"/projects/fleet":      "projects/fleet/index.html",
		"/blogs/../etc/passwd": "etc/passwd/index.html",
	}
	for in, want := range tests {
		assert.Equal(t, filepath.FromSlash(want), PageFile(in), in)
	}
}

func TestExport(t *testing.T) {
	out := t.TempDir()
	var progress bytes.Buffer

	e := &Exporter{
		Handler: stubRouter(),
		Source: stubSource{
			projects: []models.ProjectSummary{{Slug: "fleet"}, {Slug: "broken"}},
			blogs:    []models.Blog{{Slug: "hello"}},
		},
		Static:    fstest.MapFS{"site.css": {Data: []byte("body{}")}, "img/logo.svg": {Data: []byte("<svg/>")}},
		OutputDir: out,
		Progress:  &progress,
	}

	report, err := e.Export(context.Background())
	require.NoError(t, err)

	// index, projects, blogs, fleet, hello and 404
	assert.Equal(t, 6, report.Pages)
	assert.Equal(t, 2, report.Assets)
	assert.Equal(t, []string{"/projects/broken"}, report.Failed)

	read := func(rel string) string {
		data, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		return string(data)
	}
	assert.Equal(t, "<html>/</html>", read("index.html"))
	assert.Equal(t, "<html>/projects/fleet</html>", read("projects/fleet/index.html"))
	assert.Equal(t, "<html>/blogs/hello</html>", read("blogs/hello/index.html"))
	assert.Equal(t, "<html>missing</html>", read("404.html"))
	assert.Equal(t, "<svg/>", read("static/img/logo.svg"))

	assert.NoFileExists(t, filepath.Join(out, "projects", "broken", "index.html"))
	assert.True(t, strings.Contains(progress.String(), "ERROR: status 502"))
}

func TestExportFailsWhenListingFails(t *testing.T) {
	e := &Exporter{
		Handler:   stubRouter(),
		Source:    stubSource{err: siteerrors.NewFetchFailed("projects", 500, nil)},
		OutputDir: t.TempDir(),
	}

	_, err := e.Export(context.Background())
	assert.ErrorIs(t, err, siteerrors.ErrFetchFailed)
}

func TestExportStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &Exporter{
		Handler:   stubRouter(),
		Source:    stubSource{},
		OutputDir: t.TempDir(),
	}

	_, err := e.Export(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
