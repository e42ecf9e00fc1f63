// Package render turns models into HTML. Components are templ templates
// (the *.templ files, compiled with templ generate), so pages, fragments
// and the static exporter share one code path.
package render

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.906 generate

import (
	"fmt"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"

	"buildwith.dev/internal/media"
	"buildwith.dev/internal/models"
	"buildwith.dev/internal/view"
	"buildwith.dev/internal/widget"
)

// Env is what a component needs to know about the view it renders into.
type Env struct {
	// State is the widget state from the page URL.
	State view.State
	// Images holds checked image states. The zero value treats every image
	// as loaded.
	Images media.Resolved
	// Content renders backend supplied HTML.
	Content ContentPolicy
	// Base is the page path, used to build section fragment URLs.
	Base string
}

// Viewport is the client width hint, or widget.DefaultViewport.
func (e Env) Viewport() int {
	return e.State.Viewport(widget.DefaultViewport)
}

// ContentPolicy decides how trusted HTML from the backend is emitted. The
// zero value passes it through unchanged.
type ContentPolicy struct {
	policy *bluemonday.Policy
}

// NewContentPolicy returns a sanitizing policy when sanitize is set.
func NewContentPolicy(sanitize bool) ContentPolicy {
	if !sanitize {
		return ContentPolicy{}
	}
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("loading").OnElements("img")
	return ContentPolicy{policy: p}
}

// Sanitizing reports whether HTML is cleaned before output.
func (c ContentPolicy) Sanitizing() bool { return c.policy != nil }

// HTML returns s as a raw component, sanitized when the policy says so.
func (c ContentPolicy) HTML(s string) templ.Component {
	if c.policy != nil {
		s = c.policy.Sanitize(s)
	}
	return templ.Raw(s)
}

// themeClass maps a section theme to its CSS class.
func themeClass(t models.Theme) string {
	switch t {
	case models.ThemeDark:
		return "theme-dark"
	case models.ThemeAccent:
		return "theme-accent"
	}
	return "theme-default"
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// revealStyle staggers the entrance animation of the section at index.
func revealStyle(index int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("--reveal-delay: %dms;", widget.RevealDelay(index).Milliseconds()))
}

// leadStyle aligns an element with the first carousel card.
func leadStyle(viewport int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("padding-left: %dpx;", widget.LeadPadding(viewport)))
}

func trackStyle(viewport int) templ.SafeCSS {
	lead := widget.LeadPadding(viewport)
	return templ.SafeCSS(fmt.Sprintf("padding-left: %dpx; scroll-padding-left: %dpx;", lead, lead))
}

func spacerStyle(viewport int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("width: %dpx;", widget.TrailingSpacer(viewport)))
}

func meterStyle(percent int) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("width: %d%%;", percent))
}

// copyright is the footer notice, defaulting to the current year and brand.
func copyright(site *models.SiteContent) string {
	if site.Footer.Copyright != "" {
		return site.Footer.Copyright
	}
	return "\u00a9 " + strconv.Itoa(time.Now().Year()) + " " + site.Brand
}
