package render

import (
	"github.com/a-h/templ"

	"buildwith.dev/internal/models"
)

// Section renders one project section. index is the section's position on
// the page; it names the section's widget state and staggers its entrance.
// Sections of unknown type render nothing.
func Section(s models.Section, index int, env Env) templ.Component {
	ss := env.State.Section(index)

	switch v := s.(type) {
	case *models.HeadingSection:
		return sectionShell(env, ss, v.Type(), themeClass(v.Theme), headingBody(v))
	case *models.ParagraphSection:
		return sectionShell(env, ss, v.Type(), themeClass(v.Theme), paragraphBody(env, v, ss))
	case *models.MetricsSection:
		return sectionShell(env, ss, v.Type(), "theme-muted", metricsBody(v))
	case *models.MediaTabsSection:
		return sectionShell(env, ss, v.Type(), themeClass(models.ThemeDefault), mediaTabsBody(env, v, ss))
	case *models.FeaturesSection:
		return sectionShell(env, ss, v.Type(), themeClass(models.ThemeDefault), featuresBody(env, v, ss))
	case *models.ImageSection:
		return sectionShell(env, ss, v.Type(), themeClass(v.Theme), imageBody(env, v))
	case *models.GallerySection:
		return sectionShell(env, ss, v.Type(), themeClass(v.Theme), galleryBody(env, v))
	case *models.VideoSection:
		return sectionShell(env, ss, v.Type(), themeClass(models.ThemeDefault), videoBody(v))
	case *models.QuoteSection:
		return sectionShell(env, ss, v.Type(), themeClass(v.Theme), quoteBody(v))
	case *models.ListSection:
		return sectionShell(env, ss, v.Type(), themeClass(models.ThemeDefault), listBody(v, ss))
	}

	return templ.NopComponent
}

// imageAlt is the alt text of an image section.
func imageAlt(v *models.ImageSection) string {
	if v.Caption == "" {
		return "Project image"
	}
	return v.Caption
}
