package render

import (
	"net/url"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"buildwith.dev/internal/models"
	"buildwith.dev/internal/view"
	"buildwith.dev/internal/widget"
)

// upperCase is locale aware. A Caser is stateful, so one is made per call.
func upperCase(s string) string {
	return cases.Upper(language.English).String(s)
}

// ProjectURL is the detail page path of a project.
func ProjectURL(slug string) string { return "/projects/" + url.PathEscape(slug) }

// BlogURL is the detail page path of a blog post.
func BlogURL(slug string) string { return "/blogs/" + url.PathEscape(slug) }

// ProjectNotFound is shown for a slug without a project.
func ProjectNotFound() templ.Component {
	return notFound("Project Not Found", "/projects", "Back to Projects")
}

// BlogNotFound is shown for a slug without a post.
func BlogNotFound() templ.Component {
	return notFound("Blog Post Not Found", "/", "Go Home")
}

func heroCTA(h models.Hero) models.CallToAction {
	return models.CallToAction{Text: h.CTAText, URL: h.CTAURL}
}

// homeFAQLink links the landing page accordion, anchored at #faq.
func homeFAQLink(s view.State) func(open int) string {
	return func(open int) string {
		if open == widget.None {
			return s.Href(view.KeyFAQ, "faq")
		}
		return s.Href(view.KeyFAQ, "faq", itoa(open))
	}
}
