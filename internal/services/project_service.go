package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/models"
)

// ProjectService handles project-related operations
type ProjectService struct {
	source Source
	logger *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(source Source, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{source: source, logger: logger}
}

// GetAll returns all project summaries
func (s *ProjectService) GetAll(ctx context.Context) ([]models.ProjectSummary, error) {
	projects, err := s.source.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// GetBySlug returns a specific project. Sections that could not be decoded
// are logged here and left in place; they render as nothing.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	project, err := s.source.Project(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if err := project.Validate(); err != nil {
		return nil, siteerrors.NewFetchFailed("get project", 0, err)
	}

	s.inspect(project)
	return project, nil
}

// inspect logs content problems without failing the view.
func (s *ProjectService) inspect(p *models.Project) {
	log := s.logger.With(zap.String("slug", p.Slug))
	for i, section := range p.Sections {
		if u, ok := section.(*models.UnknownSection); ok {
			if u.Err != nil {
				log.Warn("skipping malformed section",
					zap.Int("index", i), zap.String("type", u.Kind), zap.Error(u.Err))
			} else {
				log.Info("skipping unknown section type",
					zap.Int("index", i), zap.String("type", u.Kind))
			}
			continue
		}
		for _, issue := range models.SectionKeyIssues(section) {
			log.Warn("section items share a key",
				zap.Int("index", i), zap.String("type", string(section.Type())), zap.String("issue", issue))
		}
	}
}
