package handlers

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"buildwith.dev/internal/config"
	"buildwith.dev/internal/livereload"
	"buildwith.dev/internal/media"
	"buildwith.dev/internal/middleware"
	"buildwith.dev/internal/models"
	"buildwith.dev/internal/render"
	"buildwith.dev/internal/services"
	"buildwith.dev/static"
)

// Deps is everything the routes need.
type Deps struct {
	Source  services.Source
	Site    *models.SiteContent
	Media   *media.Fetcher
	Content render.ContentPolicy
	Static  fs.FS
	Logger  *zap.Logger
	// LiveReload mounts /livereload and the reload client when set.
	LiveReload *livereload.Hub
	// Timeout bounds page and API requests. Zero means 30s.
	Timeout time.Duration
}

// NewDeps derives the route dependencies from cfg.
func NewDeps(cfg *config.Config, source services.Source, logger *zap.Logger) Deps {
	return Deps{
		Source: source,
		Site:   cfg.SiteContent,
		Media: media.New(media.Options{
			Fallbacks: cfg.Media.Fallbacks,
			TTL:       cfg.Media.TTL,
			Verify:    cfg.Media.Verify,
			Logger:    logger,
		}),
		Content: render.NewContentPolicy(cfg.Content.SanitizeHTML),
		Static:  static.FS,
		Logger:  logger,
		Timeout: cfg.Server.WriteTimeout,
	}
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Media == nil {
		d.Media = media.New(media.Options{Logger: d.Logger})
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}

	// Initialize services
	projectService := services.NewProjectService(d.Source, d.Logger)
	blogService := services.NewBlogService(d.Source)
	homeService := services.NewHomeService(projectService, blogService, d.Logger)

	// Initialize handlers
	pages := NewPageHandler(PageConfig{
		Projects:   projectService,
		Blogs:      blogService,
		Home:       homeService,
		Media:      d.Media,
		Site:       d.Site,
		Content:    d.Content,
		LiveReload: d.LiveReload != nil,
		Logger:     d.Logger,
	})
	projectHandler := NewProjectHandler(projectService, blogService)

	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger, http.HandlerFunc(pages.InternalError)))

	// The reload socket is long lived, so it sits outside the timeout.
	if d.LiveReload != nil {
		r.Get("/livereload", d.LiveReload.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))
		r.Use(chimw.Timeout(d.Timeout))

		// Pages
		r.Get("/", pages.Home)
		r.Get("/projects", pages.Projects)
		r.Get("/projects/{slug}", pages.Project)
		r.Get("/projects/{slug}/sections/{index}", pages.ProjectSection)
		r.Get("/blogs", pages.Blogs)
		r.Get("/blogs/{slug}", pages.Blog)

		// API routes
		r.Route("/api", func(r chi.Router) {
			r.Get("/projects", projectHandler.ListProjects)
			r.Get("/projects/{slug}", projectHandler.GetProject)
			r.Get("/blogs", projectHandler.ListBlogs)

			// Health check
			r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
				respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			})
		})

		// Static files
		if d.Static != nil {
			fileServer := http.FileServer(http.FS(d.Static))
			r.Handle("/static/*", http.StripPrefix("/static", fileServer))
		}

		r.NotFound(pages.NotFound)
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; nothing useful can be done on failure.
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer query parameter with a default value
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// clamp limits a value to a range
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
