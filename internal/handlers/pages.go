package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/media"
	"buildwith.dev/internal/models"
	"buildwith.dev/internal/render"
	"buildwith.dev/internal/services"
	"buildwith.dev/internal/view"
)

// PageConfig wires a PageHandler.
type PageConfig struct {
	Projects   *services.ProjectService
	Blogs      *services.BlogService
	Home       *services.HomeService
	Media      *media.Fetcher
	Site       *models.SiteContent
	Content    render.ContentPolicy
	LiveReload bool
	Logger     *zap.Logger
}

// PageHandler serves the HTML pages.
type PageHandler struct {
	cfg    PageConfig
	logger *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(cfg PageConfig) *PageHandler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Site == nil {
		cfg.Site = models.DefaultSiteContent()
	}
	return &PageHandler{cfg: cfg, logger: cfg.Logger}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	scope := view.NewScope(r.Context(), h.logger)
	defer scope.Close()

	home, err := view.Load(scope, func(ctx context.Context) (*services.Home, error) {
		return h.cfg.Home.Load(ctx), nil
	})
	if err != nil {
		h.fail(w, r, scope, err, nil, "page")
		return
	}

	env := h.env(r, scope, HomeImages(home), "")
	h.page(w, r, http.StatusOK, render.Page{
		Description: h.cfg.Site.Hero.Tagline,
	}, render.Home(h.cfg.Site, home, env))
}

// Projects handles GET /projects
func (h *PageHandler) Projects(w http.ResponseWriter, r *http.Request) {
	scope := view.NewScope(r.Context(), h.logger)
	defer scope.Close()

	projects, err := view.Load(scope, h.cfg.Projects.GetAll)
	if err != nil {
		h.fail(w, r, scope, err, nil, "projects")
		return
	}

	env := h.env(r, scope, SummaryImages(projects), "")
	h.page(w, r, http.StatusOK, render.Page{Title: "Work"}, render.ProjectsIndex(projects, env))
}

// Project handles GET /projects/{slug}
func (h *PageHandler) Project(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	scope := view.NewScope(r.Context(), h.logger)
	defer scope.Close()

	project, err := h.loadProject(scope, slug)
	if err != nil {
		h.fail(w, r, scope, err, render.ProjectNotFound(), "project")
		return
	}

	env := h.env(r, scope, project.ImageURLs(), render.ProjectURL(slug))
	h.page(w, r, http.StatusOK, render.Page{
		Title:       project.Title,
		Description: project.ShortDescription,
	}, render.ProjectDetail(project, env))
}

// ProjectSection handles GET /projects/{slug}/sections/{index}. It returns
// the bare section markup for in-place widget updates.
func (h *PageHandler) ProjectSection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		http.Error(w, "invalid section index", http.StatusBadRequest)
		return
	}

	scope := view.NewScope(r.Context(), h.logger)
	defer scope.Close()

	project, err := h.loadProject(scope, slug)
	if err != nil {
		status, _ := classify(err)
		if status == 0 {
			return
		}
		http.Error(w, http.StatusText(status), status)
		return
	}
	if index >= len(project.Sections) {
		http.Error(w, "section not found", http.StatusNotFound)
		return
	}

	env := h.env(r, scope, project.ImageURLs(), render.ProjectURL(slug))
	h.write(w, r, http.StatusOK, render.Section(project.Sections[index], index, env))
}

// Blogs handles GET /blogs
func (h *PageHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	scope := view.NewScope(r.Context(), h.logger)
	defer scope.Close()

	blogs, err := view.Load(scope, func(ctx context.Context) ([]models.Blog, error) {
		return h.cfg.Blogs.Recent(ctx, 0)
	})
	if err != nil {
		h.fail(w, r, scope, err, nil, "blogs")
		return
	}

	env := h.env(r, scope, BlogImages(blogs), "")
	h.page(w, r, http.StatusOK, render.Page{Title: "Blogs"}, render.BlogsIndex(blogs, env))
}

// Blog handles GET /blogs/{slug}
func (h *PageHandler) Blog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	scope := view.NewScope(r.Context(), h.logger)
	defer scope.Close()

	blog, err := view.Load(scope, func(ctx context.Context) (*models.Blog, error) {
		return h.cfg.Blogs.GetBySlug(ctx, slug)
	})
	if err != nil {
		h.fail(w, r, scope, err, render.BlogNotFound(), "blog post")
		return
	}

	env := h.env(r, scope, []string{blog.CoverImage}, "")
	h.page(w, r, http.StatusOK, render.Page{
		Title:       blog.Title,
		Description: blog.Excerpt,
	}, render.BlogDetail(blog, env))
}

// NotFound renders the 404 page for unknown paths.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusNotFound, render.Page{Title: "Not Found"},
		render.ErrorView("Page Not Found", "There is nothing at this address."))
}

// InternalError renders the 500 page.
func (h *PageHandler) InternalError(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusInternalServerError, render.Page{Title: "Error"},
		render.ErrorView("Something went wrong", "Please try again in a moment."))
}

func (h *PageHandler) loadProject(scope *view.Scope, slug string) (*models.Project, error) {
	return view.Load(scope, func(ctx context.Context) (*models.Project, error) {
		return h.cfg.Projects.GetBySlug(ctx, slug)
	})
}

// env resolves the page images under the view scope and reads the widget
// state from the query.
func (h *PageHandler) env(r *http.Request, scope *view.Scope, images []string, base string) render.Env {
	return render.Env{
		State:   view.ParseState(r.URL.Query()),
		Images:  h.cfg.Media.ResolveAll(scope.Context(), images),
		Content: h.cfg.Content,
		Base:    base,
	}
}

// classify maps a load error to a response status. Zero means the client
// has gone away and nothing should be written.
func classify(err error) (int, bool) {
	switch {
	case errors.Is(err, context.Canceled):
		return 0, false
	case siteerrors.IsNotFound(err):
		return http.StatusNotFound, true
	case siteerrors.IsFetchFailed(err), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway, false
	}
	return http.StatusInternalServerError, false
}

// fail renders the error page for err. notFound is shown for missing
// entities; what names the failed resource in the message.
func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, scope *view.Scope, err error, notFound templ.Component, what string) {
	status, missing := classify(err)
	if status == 0 {
		scope.Logger().Debug("request cancelled", zap.String("path", r.URL.Path))
		return
	}

	if missing && notFound != nil {
		h.page(w, r, status, render.Page{Title: "Not Found"}, notFound)
		return
	}

	scope.Logger().Error("failed to load "+what, zap.String("path", r.URL.Path), zap.Error(err))
	h.page(w, r, status, render.Page{Title: "Error"},
		render.ErrorView("Something went wrong", "Failed to load "+what))
}

// page renders body inside the layout.
func (h *PageHandler) page(w http.ResponseWriter, r *http.Request, status int, p render.Page, body templ.Component) {
	p.Site = h.cfg.Site
	p.LiveReload = h.cfg.LiveReload
	h.write(w, r, status, render.Layout(p, body))
}

// write buffers c so a render failure can still become a clean 500.
func (h *PageHandler) write(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// HomeImages lists the images on the landing page.
func HomeImages(home *services.Home) []string {
	return append(SummaryImages(home.Projects), BlogImages(home.Blogs)...)
}

// SummaryImages lists project card images.
func SummaryImages(projects []models.ProjectSummary) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.HeroImage)
	}
	return out
}

// BlogImages lists blog cover images.
func BlogImages(blogs []models.Blog) []string {
	out := make([]string, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, b.CoverImage)
	}
	return out
}
