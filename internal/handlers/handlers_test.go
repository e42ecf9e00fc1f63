package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/livereload"
	"buildwith.dev/internal/models"
)

const projectJSON = `{
	"id": 1,
	"title": "Kirana Connect",
	"slug": "kirana-connect",
	"short_description": "Groceries in ten minutes",
	"hero_image": "/img/hero.jpg",
	"client": "Kirana",
	"sections": [
		{"type": "heading", "title": "Hello", "cta_text": "Go", "cta_url": "/x"},
		{"type": "media_tabs", "media_tabs": [
			{"id": 1, "title": "Browse", "image": "/img/a.jpg"},
			{"id": 2, "title": "Checkout", "image": "/img/b.jpg"}
		]},
		{"type": "hologram"}
	]
}`

type fakeSource struct {
	mu          sync.Mutex
	project     *models.Project
	blogs       []models.Blog
	projectsErr error
	blogsErr    error
	panicOnBlog bool
	lastLimit   int
}

func newFakeSource(t *testing.T) *fakeSource {
	t.Helper()
	var p models.Project
	require.NoError(t, json.Unmarshal([]byte(projectJSON), &p))
	return &fakeSource{
		project: &p,
		blogs: []models.Blog{
			{Title: "Shipping Flutter apps", Slug: "shipping", Tags: "mobile,flutter", Content: "<p>Body</p>"},
			{Title: "On design", Slug: "design", Tags: "design"},
		},
	}
}

func (f *fakeSource) Projects(ctx context.Context) ([]models.ProjectSummary, error) {
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	return []models.ProjectSummary{f.project.ProjectSummary}, nil
}

func (f *fakeSource) Project(ctx context.Context, slug string) (*models.Project, error) {
	if f.projectsErr != nil {
		return nil, f.projectsErr
	}
	if slug != f.project.Slug {
		return nil, siteerrors.NewNotFound("project", slug)
	}
	return f.project, nil
}

func (f *fakeSource) Blogs(ctx context.Context, limit int) ([]models.Blog, error) {
	f.mu.Lock()
	f.lastLimit = limit
	f.mu.Unlock()
	if f.blogsErr != nil {
		return nil, f.blogsErr
	}
	if limit > 0 && limit < len(f.blogs) {
		return f.blogs[:limit], nil
	}
	return f.blogs, nil
}

func (f *fakeSource) Blog(ctx context.Context, slug string) (*models.Blog, error) {
	if f.panicOnBlog {
		panic("template exploded")
	}
	for i := range f.blogs {
		if f.blogs[i].Slug == slug {
			return &f.blogs[i], nil
		}
	}
	return nil, siteerrors.NewNotFound("blog", slug)
}

func newRouter(src *fakeSource, mods ...func(*Deps)) http.Handler {
	d := Deps{
		Source: src,
		Static: fstest.MapFS{"site.css": {Data: []byte("body{}")}},
		Logger: zap.NewNop(),
	}
	for _, m := range mods {
		m(&d)
	}
	return SetupRoutes(d)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, c := range strings.Fields(attrOf(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func TestUnknownProjectSlug(t *testing.T) {
	rec := get(t, newRouter(newFakeSource(t)), "/projects/does-not-exist")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Project Not Found")

	doc := parseBody(t, rec)
	links := findAll(doc, byClass("cta"))
	require.Len(t, links, 1)
	assert.Equal(t, "/projects", attrOf(links[0], "href"))
}

func TestProjectPage(t *testing.T) {
	rec := get(t, newRouter(newFakeSource(t)), "/projects/kirana-connect?s1.tab=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	doc := parseBody(t, rec)
	sections := findAll(doc, byClass("section"))
	require.Len(t, sections, 2, "unknown section renders nothing")
	assert.Equal(t, "/projects/kirana-connect/sections/0", attrOf(sections[0], "data-fragment"))

	title := findAll(doc, func(n *html.Node) bool { return n.Data == "title" })
	require.Len(t, title, 1)
	assert.Equal(t, "Kirana Connect | build with saransh", title[0].FirstChild.Data)

	tabs := findAll(doc, byClass("media-tab"))
	require.Len(t, tabs, 2)
	assert.Equal(t, "false", attrOf(tabs[0], "data-active"))
	assert.Equal(t, "true", attrOf(tabs[1], "data-active"))
}

func TestProjectSectionFragment(t *testing.T) {
	router := newRouter(newFakeSource(t))

	t.Run("renders one section", func(t *testing.T) {
		rec := get(t, router, "/projects/kirana-connect/sections/1?s1.tab=0")
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.True(t, strings.HasPrefix(body, `<section id="section-1"`), body)
		assert.NotContains(t, body, "<nav")
	})

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"index out of range", "/projects/kirana-connect/sections/3", http.StatusNotFound},
		{"negative index", "/projects/kirana-connect/sections/-1", http.StatusBadRequest},
		{"bad index", "/projects/kirana-connect/sections/abc", http.StatusBadRequest},
		{"unknown project", "/projects/nope/sections/0", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, router, tt.target).Code)
		})
	}
}

func TestFetchFailures(t *testing.T) {
	src := newFakeSource(t)
	src.projectsErr = siteerrors.NewFetchFailed("projects", http.StatusInternalServerError, nil)
	router := newRouter(src)

	t.Run("listing", func(t *testing.T) {
		rec := get(t, router, "/projects")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to load projects")
	})

	t.Run("detail shows no partial project", func(t *testing.T) {
		rec := get(t, router, "/projects/kirana-connect")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to load project")
		assert.NotContains(t, rec.Body.String(), "Kirana Connect")
	})

	t.Run("home fails per block", func(t *testing.T) {
		rec := get(t, router, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Failed to load projects")
		assert.NotContains(t, body, "Failed to load blogs")
		assert.Contains(t, body, "Shipping Flutter apps")
	})
}

func TestHomeRequestsPreview(t *testing.T) {
	src := newFakeSource(t)
	rec := get(t, newRouter(src), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kirana Connect")
	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Equal(t, 4, src.lastLimit)
}

func TestBlogPages(t *testing.T) {
	router := newRouter(newFakeSource(t))

	rec := get(t, router, "/blogs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "On design")

	rec = get(t, router, "/blogs/shipping")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>Body</p>")

	rec = get(t, router, "/blogs/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Blog Post Not Found")
}

func TestAPI(t *testing.T) {
	src := newFakeSource(t)
	router := newRouter(src)

	t.Run("health", func(t *testing.T) {
		rec := get(t, router, "/api/health")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("project", func(t *testing.T) {
		rec := get(t, router, "/api/projects/kirana-connect")
		require.Equal(t, http.StatusOK, rec.Code)

		var p models.Project
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, "Kirana Connect", p.Title)
		assert.Len(t, p.Sections, 3)
	})

	t.Run("missing project", func(t *testing.T) {
		rec := get(t, router, "/api/projects/nope")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
	})

	t.Run("blog limit is clamped", func(t *testing.T) {
		rec := get(t, router, "/api/blogs?limit=5000")
		require.Equal(t, http.StatusOK, rec.Code)
		src.mu.Lock()
		assert.Equal(t, maxBlogLimit, src.lastLimit)
		src.mu.Unlock()
	})

	t.Run("blog failure", func(t *testing.T) {
		failing := newFakeSource(t)
		failing.blogsErr = siteerrors.NewFetchFailed("blogs", 0, errors.New("connection refused"))
		rec := get(t, newRouter(failing), "/api/blogs")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestPanicRendersErrorPage(t *testing.T) {
	src := newFakeSource(t)
	src.panicOnBlog = true

	rec := get(t, newRouter(src), "/blogs/shipping")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestStaticAndNotFound(t *testing.T) {
	router := newRouter(newFakeSource(t))

	rec := get(t, router, "/static/site.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())

	rec = get(t, router, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestLiveReloadRoute(t *testing.T) {
	src := newFakeSource(t)

	without := get(t, newRouter(src), "/livereload")
	assert.Equal(t, http.StatusNotFound, without.Code)

	hub := livereload.NewHub(nil)
	defer hub.Close()
	router := newRouter(src, func(d *Deps) { d.LiveReload = hub })

	// A plain GET is not an upgrade, but the route exists.
	rec := get(t, router, "/livereload")
	assert.NotEqual(t, http.StatusNotFound, rec.Code)

	page := get(t, router, "/")
	assert.Contains(t, page.Body.String(), "/static/livereload.js")
}
