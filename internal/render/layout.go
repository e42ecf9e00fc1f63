package render

import "buildwith.dev/internal/models"

// Page carries the per-page chrome settings.
type Page struct {
	Title       string
	Description string
	Site        *models.SiteContent
	// LiveReload adds the development reload client.
	LiveReload bool
}

func (p Page) site() *models.SiteContent {
	if p.Site == nil {
		return models.DefaultSiteContent()
	}
	return p.Site
}

func (p Page) documentTitle(site *models.SiteContent) string {
	if p.Title == "" {
		return site.Brand
	}
	return p.Title + " | " + site.Brand
}
