package services

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"buildwith.dev/internal/api"
	"buildwith.dev/internal/config"
	"buildwith.dev/internal/fixtures"
	"buildwith.dev/internal/models"
)

// Source is where portfolio content comes from: the backend API or the
// fixture store.
type Source interface {
	Projects(ctx context.Context) ([]models.ProjectSummary, error)
	Project(ctx context.Context, slug string) (*models.Project, error)
	Blogs(ctx context.Context, limit int) ([]models.Blog, error)
	Blog(ctx context.Context, slug string) (*models.Blog, error)
}

// OpenSource builds the source selected by cfg.Source.
func OpenSource(cfg *config.Config, logger *zap.Logger) (Source, error) {
	switch cfg.Source {
	case config.SourceAPI:
		client, err := api.New(cfg.API.BaseURL,
			api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
			api.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.SourceFixtures:
		store, err := fixtures.NewStore(cfg.Data.Path, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unsupported source %q", cfg.Source)
}
