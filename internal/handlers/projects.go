package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/services"
)

// maxBlogLimit caps /api/blogs?limit=N.
const maxBlogLimit = 100

// ProjectHandler handles the JSON content endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	blogService    *services.BlogService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService, bs *services.BlogService) *ProjectHandler {
	return &ProjectHandler{projectService: ps, blogService: bs}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetAll(r.Context())
	if err != nil {
		respondLoadError(w, err, "Failed to load projects")
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{slug}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.projectService.GetBySlug(r.Context(), slug)
	if err != nil {
		respondLoadError(w, err, "Failed to load project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// ListBlogs handles GET /api/blogs?limit=N
func (h *ProjectHandler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	limit := clamp(parseIntParam(r, "limit", services.PreviewLimit), 1, maxBlogLimit)

	blogs, err := h.blogService.Recent(r.Context(), limit)
	if err != nil {
		respondLoadError(w, err, "Failed to load blogs")
		return
	}
	respondJSON(w, http.StatusOK, blogs)
}

func respondLoadError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, context.Canceled):
		return
	case siteerrors.IsNotFound(err):
		respondError(w, http.StatusNotFound, "Not found")
	default:
		respondError(w, http.StatusBadGateway, message)
	}
}
