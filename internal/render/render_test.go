package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"buildwith.dev/internal/media"
	"buildwith.dev/internal/models"
	"buildwith.dev/internal/services"
	"buildwith.dev/internal/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func parse(t *testing.T, c templ.Component) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(renderString(t, c)))
	require.NoError(t, err)
	return doc
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func attrLookup(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrOf(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
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

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func decode(t *testing.T, raw string) models.Section {
	t.Helper()
	s := models.DecodeSection(json.RawMessage(raw))
	require.NoError(t, models.Problem(s))
	return s
}

func stateEnv(q string) Env {
	vals, _ := url.ParseQuery(q)
	return Env{State: view.ParseState(vals), Base: "/projects/kirana-connect"}
}

func TestHeadingWithCTA(t *testing.T) {
	s := decode(t, `{"type": "heading", "title": "Hello", "cta_text": "Go", "cta_url": "/x"}`)
	doc := parse(t, Section(s, 0, Env{}))

	titles := findAll(doc, byTag("h2"))
	require.Len(t, titles, 1)
	assert.Equal(t, "Hello", textOf(titles[0]))

	links := findAll(doc, byTag("a"))
	require.Len(t, links, 1)
	assert.Equal(t, "/x", attrOf(links[0], "href"))
	assert.Equal(t, "Go", textOf(links[0]))
}

func TestHeadingWithoutURLHasNoCTA(t *testing.T) {
	s := decode(t, `{"type": "heading", "title": "Hello", "cta_text": "Go"}`)
	doc := parse(t, Section(s, 0, Env{}))

	assert.Empty(t, findAll(doc, byTag("a")))
}

func TestGalleryRendersFramesInOrder(t *testing.T) {
	s := decode(t, `{"type": "gallery", "extra": {"images": ["a.jpg", "b.jpg", "c.jpg"]}}`)
	doc := parse(t, Section(s, 2, Env{}))

	frames := findAll(doc, byClass("gallery-frame"))
	require.Len(t, frames, 3)
	for i, want := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		imgs := findAll(frames[i], byTag("img"))
		require.Len(t, imgs, 1)
		assert.Equal(t, want, attrOf(imgs[0], "src"))
	}
}

func TestUnknownSectionRendersNothing(t *testing.T) {
	s := models.DecodeSection(json.RawMessage(`{"type": "hologram", "beam": true}`))
	assert.Equal(t, "", renderString(t, Section(s, 0, Env{})))

	malformed := models.DecodeSection(json.RawMessage(`{"type": "metrics", "metrics": "oops"}`))
	assert.Equal(t, "", renderString(t, Section(malformed, 1, Env{})))
}

func TestSectionShell(t *testing.T) {
	s := decode(t, `{"type": "quote", "content": "Ship it.", "theme": "dark"}`)
	doc := parse(t, Section(s, 3, stateEnv("")))

	sections := findAll(doc, byTag("section"))
	require.Len(t, sections, 1)
	sec := sections[0]
	assert.Equal(t, "section-3", attrOf(sec, "id"))
	assert.Equal(t, "quote", attrOf(sec, "data-section-type"))
	assert.Equal(t, "once", attrOf(sec, "data-reveal"))
	assert.Equal(t, "--reveal-delay: 150ms;", attrOf(sec, "style"))
	assert.Equal(t, "/projects/kirana-connect/sections/3", attrOf(sec, "data-fragment"))
	assert.True(t, hasClass(sec, "theme-dark"))
}

func TestThemeFallsBackToDefault(t *testing.T) {
	s := decode(t, `{"type": "image", "image": "a.jpg", "theme": "neon"}`)
	doc := parse(t, Section(s, 0, Env{}))

	sec := findAll(doc, byTag("section"))[0]
	assert.True(t, hasClass(sec, "theme-default"))
}

func TestImageSectionWithoutImageShowsEmptyFrame(t *testing.T) {
	s := decode(t, `{"type": "image", "caption": "Soon"}`)
	doc := parse(t, Section(s, 0, Env{}))

	assert.Empty(t, findAll(doc, byTag("img")))
	assert.Len(t, findAll(doc, byClass("media-frame-empty")), 1)
	assert.Equal(t, "Soon", textOf(findAll(doc, byClass("image-caption"))[0]))
}

func TestFailingImageUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := media.New(media.Options{Verify: true, Fallbacks: []string{"https://cdn.example.com/fallback.jpg"}})
	src := srv.URL + "/broken.jpg"
	env := Env{Images: f.ResolveAll(context.Background(), []string{src})}

	s := decode(t, `{"type": "image", "image": "`+src+`"}`)
	doc := parse(t, Section(s, 0, env))

	imgs := findAll(doc, byTag("img"))
	require.Len(t, imgs, 1)
	assert.Equal(t, "https://cdn.example.com/fallback.jpg", attrOf(imgs[0], "src"))
	assert.Equal(t, "error", attrOf(imgs[0], "data-state"))
}

func TestImageCarriesClientFallback(t *testing.T) {
	f := media.New(media.Options{Fallbacks: []string{"/static/fallback.jpg"}})
	env := Env{Images: f.ResolveAll(context.Background(), []string{"https://x.example.com/a.jpg"})}

	s := decode(t, `{"type": "image", "image": "https://x.example.com/a.jpg"}`)
	doc := parse(t, Section(s, 0, env))

	img := findAll(doc, byTag("img"))[0]
	assert.Equal(t, "https://x.example.com/a.jpg", attrOf(img, "src"))
	assert.Equal(t, "/static/fallback.jpg", attrOf(img, "data-fallback"))
}

const tabsSection = `{"type": "media_tabs", "media_tabs": [
	{"title": "Browse", "description": "Find shops", "image": "browse.jpg"},
	{"title": "Order", "subtitle": "Two taps", "description": "Checkout", "image": "order.jpg"},
	{"title": "Track", "image": "track.jpg"}
]}`

func TestMediaTabsSingleActivePanel(t *testing.T) {
	s := decode(t, tabsSection)

	tests := []struct {
		query   string
		active  string
		caption string
	}{
		{query: "", active: "Browse", caption: "Find shops"},
		{query: "s1.tab=1", active: "Order", caption: "Two taps"},
		{query: "s1.tab=9", active: "Browse", caption: "Find shops"},
		{query: "s1.tab=-1", active: "Browse", caption: "Find shops"},
		{query: "s1.tab=x", active: "Browse", caption: "Find shops"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			doc := parse(t, Section(s, 1, stateEnv(tt.query)))

			panels := findAll(doc, byClass("media-panel"))
			require.Len(t, panels, 1)
			assert.Equal(t, tt.active, textOf(findAll(panels[0], byClass("media-panel-title"))[0]))
			assert.Equal(t, tt.caption, textOf(findAll(panels[0], byClass("media-panel-subtitle"))[0]))

			selected := findAll(doc, func(n *html.Node) bool { return attrOf(n, "aria-selected") == "true" })
			require.Len(t, selected, 1)
			assert.Equal(t, tt.active, textOf(selected[0]))

			assert.Len(t, findAll(doc, byClass("media-dot")), 3)
		})
	}
}

func TestMediaTabsLinks(t *testing.T) {
	s := decode(t, tabsSection)
	doc := parse(t, Section(s, 1, stateEnv("s0.faq=2")))

	triggers := findAll(doc, byClass("media-tab-trigger"))
	require.Len(t, triggers, 3)
	assert.Equal(t, "?s0.faq=2&s1.tab=2#section-1", attrOf(triggers[2], "href"))
}

func TestMediaTabsActiveControlsDoNotSwap(t *testing.T) {
	s := decode(t, tabsSection)
	doc := parse(t, Section(s, 1, stateEnv("s1.tab=1")))

	triggers := findAll(doc, byClass("media-tab-trigger"))
	require.Len(t, triggers, 3)
	dots := findAll(doc, byClass("media-dot"))
	require.Len(t, dots, 3)
	for i := range triggers {
		_, swaps := attrLookup(triggers[i], "data-swap")
		_, dotSwaps := attrLookup(dots[i], "data-swap")
		assert.Equal(t, i != 1, swaps, "trigger %d", i)
		assert.Equal(t, i != 1, dotSwaps, "dot %d", i)
	}
	assert.Equal(t, "true", attrOf(dots[1], "aria-current"))
	assert.Equal(t, "", attrOf(dots[0], "aria-current"))
}

func TestMediaTabsEmpty(t *testing.T) {
	s := decode(t, `{"type": "media_tabs", "media_tabs": []}`)
	doc := parse(t, Section(s, 0, Env{}))

	assert.Contains(t, textOf(doc), "Select a section to view related content")
	assert.Empty(t, findAll(doc, byClass("media-dot")))
}

func TestMediaTabsSingleTabHasNoDots(t *testing.T) {
	s := decode(t, `{"type": "media_tabs", "media_tabs": [{"title": "Only", "image": "a.jpg"}]}`)
	doc := parse(t, Section(s, 0, Env{}))

	assert.Empty(t, findAll(doc, byClass("media-dot")))
	assert.Len(t, findAll(doc, byClass("media-panel")), 1)
}

const faqSection = `{"type": "list", "title": "FAQ", "faqs": [
	{"id": 1, "question": "Price?", "answer": "Fair."},
	{"id": 2, "question": "Time?", "answer": "Weeks."},
	{"id": 3, "question": "Support?", "answer": "Yes."}
]}`

func TestAccordionAtMostOneOpen(t *testing.T) {
	s := decode(t, faqSection)

	doc := parse(t, Section(s, 4, stateEnv("s4.faq=1")))
	items := findAll(doc, byClass("faq-item"))
	require.Len(t, items, 3)
	assert.Equal(t, []string{"false", "true", "false"},
		[]string{attrOf(items[0], "data-open"), attrOf(items[1], "data-open"), attrOf(items[2], "data-open")})

	toggles := findAll(doc, byClass("faq-toggle"))
	assert.Equal(t, "?s4.faq=0#section-4", attrOf(toggles[0], "href"))
	assert.Equal(t, "?#section-4", attrOf(toggles[1], "href"), "toggling the open entry closes it")

	closed := parse(t, Section(s, 4, stateEnv("")))
	for _, item := range findAll(closed, byClass("faq-item")) {
		assert.Equal(t, "false", attrOf(item, "data-open"))
	}
}

func TestAccordionsAreIndependentPerSection(t *testing.T) {
	s := decode(t, faqSection)
	env := stateEnv("s0.faq=2")

	first := parse(t, Section(s, 0, env))
	second := parse(t, Section(s, 1, env))

	assert.Equal(t, "true", attrOf(findAll(first, byClass("faq-item"))[2], "data-open"))
	for _, item := range findAll(second, byClass("faq-item")) {
		assert.Equal(t, "false", attrOf(item, "data-open"))
	}
}

const featuresSection = `{"type": "features", "content": "Highlights", "features": [
	{"id": "a", "title": "Fast", "style": "portrait", "modal_title": "Really fast", "modal_content": "<p>Details</p><script>alert(1)</script>"},
	{"id": "b", "title": "Cheap", "icon_text": "$"}
]}`

func TestFeatureModalPerCard(t *testing.T) {
	s := decode(t, featuresSection)

	doc := parse(t, Section(s, 2, stateEnv("")))
	assert.Empty(t, findAll(doc, byClass("modal")))
	cards := findAll(doc, byClass("feature-card"))
	require.Len(t, cards, 2)
	assert.Equal(t, "?s2.modal=a#section-2", attrOf(cards[0], "href"))

	doc = parse(t, Section(s, 2, stateEnv("s2.modal=a")))
	modals := findAll(doc, byClass("modal"))
	require.Len(t, modals, 1)
	assert.Equal(t, "Really fast", textOf(findAll(modals[0], byClass("modal-title"))[0]))
	assert.Equal(t, "?#section-2", attrOf(findAll(modals[0], byClass("modal-backdrop"))[0], "href"))
	assert.Equal(t, "?#section-2", attrOf(findAll(modals[0], byClass("modal-close"))[0], "href"))

	cards = findAll(doc, byClass("feature-card"))
	assert.Equal(t, "true", attrOf(cards[0], "aria-expanded"))
	assert.Equal(t, "false", attrOf(cards[1], "aria-expanded"))
	assert.Equal(t, "?s2.modal=a&s2.modal=b#section-2", attrOf(cards[1], "href"))
}

func TestModalContentSanitization(t *testing.T) {
	s := decode(t, featuresSection)

	trusted := renderString(t, Section(s, 0, Env{State: stateEnv("s0.modal=a").State}))
	assert.Contains(t, trusted, "<script>")

	clean := renderString(t, Section(s, 0, Env{State: stateEnv("s0.modal=a").State, Content: NewContentPolicy(true)}))
	assert.NotContains(t, clean, "<script>")
	assert.Contains(t, clean, "<p>Details</p>")
}

func TestCarouselArrowsAndPadding(t *testing.T) {
	s := decode(t, featuresSection)

	doc := parse(t, Section(s, 0, stateEnv("s0.x=100&vw=700")))
	prev := findAll(doc, byClass("carousel-prev"))[0]
	next := findAll(doc, byClass("carousel-next"))[0]
	// 0.8 * 700 = 560, capped at 420
	assert.Equal(t, "?s0.x=0&vw=700#section-0", attrOf(prev, "href"))
	assert.Equal(t, "?s0.x=520&vw=700#section-0", attrOf(next, "href"))

	track := findAll(doc, byClass("carousel-track"))[0]
	assert.Equal(t, "padding-left: 48px; scroll-padding-left: 48px;", attrOf(track, "style"))
	assert.Equal(t, "100", attrOf(track, "data-offset"))
	assert.Equal(t, "24", attrOf(track, "data-gap"))

	spacer := findAll(doc, byClass("carousel-spacer"))[0]
	assert.Equal(t, "width: 48px;", attrOf(spacer, "style"))

	narrow := parse(t, Section(s, 0, stateEnv("vw=320")))
	next = findAll(narrow, byClass("carousel-next"))[0]
	assert.Equal(t, "?s0.x=256&vw=320#section-0", attrOf(next, "href"))
}

func TestCarouselAppliesScrollRequest(t *testing.T) {
	s := decode(t, featuresSection)

	doc := parse(t, Section(s, 0, stateEnv("s0.dir=next&vw=700")))
	track := findAll(doc, byClass("carousel-track"))[0]
	assert.Equal(t, "420", attrOf(track, "data-offset"))

	prev := findAll(doc, byClass("carousel-prev"))[0]
	next := findAll(doc, byClass("carousel-next"))[0]
	assert.Equal(t, "?s0.x=0&vw=700#section-0", attrOf(prev, "href"))
	assert.Equal(t, "?s0.x=840&vw=700#section-0", attrOf(next, "href"))
	for _, card := range findAll(doc, byClass("feature-card")) {
		assert.NotContains(t, attrOf(card, "href"), "s0.dir")
	}

	doc = parse(t, Section(s, 0, stateEnv("s0.x=100&s0.dir=sideways")))
	assert.Equal(t, "100", attrOf(findAll(doc, byClass("carousel-track"))[0], "data-offset"))
}

func TestCarouselIgnoresNonFiniteOffsets(t *testing.T) {
	s := decode(t, featuresSection)

	for _, q := range []string{"s0.x=NaN", "s0.x=Inf", "s0.x=-Inf"} {
		t.Run(q, func(t *testing.T) {
			doc := parse(t, Section(s, 0, stateEnv(q+"&vw=700")))
			assert.Equal(t, "0", attrOf(findAll(doc, byClass("carousel-track"))[0], "data-offset"))
			assert.Equal(t, "?s0.x=420&vw=700#section-0", attrOf(findAll(doc, byClass("carousel-next"))[0], "href"))
		})
	}
}

func TestFeatureKeysStayDistinct(t *testing.T) {
	s := decode(t, `{"type": "features", "features": [
		{"id": "a", "title": "First", "modal_title": "One"},
		{"id": "a~2", "title": "Second", "modal_title": "Two"},
		{"id": "a", "title": "Third", "modal_title": "Three"}
	]}`)

	doc := parse(t, Section(s, 0, stateEnv("s0.modal=a~2")))
	modals := findAll(doc, byClass("modal"))
	require.Len(t, modals, 1)
	assert.Equal(t, "Two", textOf(findAll(modals[0], byClass("modal-title"))[0]))

	cards := findAll(doc, byClass("feature-card"))
	require.Len(t, cards, 3)
	assert.Equal(t, []string{"a", "a~2", "a~3"},
		[]string{attrOf(cards[0], "data-key"), attrOf(cards[1], "data-key"), attrOf(cards[2], "data-key")})
}

func TestEmptyMetricsHaveNoGrid(t *testing.T) {
	s := decode(t, `{"type": "metrics", "title": "Impact", "metrics": []}`)
	doc := parse(t, Section(s, 0, Env{}))

	assert.Len(t, findAll(doc, byTag("section")), 1)
	assert.Empty(t, findAll(doc, byClass("metric-grid")))

	s = decode(t, `{"type": "metrics", "metrics": [{"label": "Users", "value": "10k"}]}`)
	doc = parse(t, Section(s, 0, Env{}))
	assert.Len(t, findAll(doc, byClass("metric-grid")), 1)
	assert.Len(t, findAll(doc, byClass("metric")), 1)
}

func TestParagraphSubCollections(t *testing.T) {
	s := decode(t, `{"type": "paragraph", "title": "Scope", "content": "We built it.",
		"tiles": [{"title": "iOS", "action_text": "See", "action_url": "/ios"}, {"title": "Android", "action_text": "No url"}],
		"specs": [{"label": "Users", "value": "10k"}],
		"cta_text": "Contact", "cta_url": "/#contact"}`)
	doc := parse(t, Section(s, 0, Env{}))

	assert.Len(t, findAll(doc, byClass("tile")), 2)
	assert.Len(t, findAll(doc, byClass("tile-action")), 1)
	assert.Len(t, findAll(doc, byClass("spec")), 1)
	assert.Empty(t, findAll(doc, byClass("accordion")))
	ctas := findAll(doc, byClass("cta"))
	require.Len(t, ctas, 1)
	assert.Equal(t, "/#contact", attrOf(ctas[0], "href"))
}

func TestUnsafeCTAIsNeutralised(t *testing.T) {
	s := decode(t, `{"type": "heading", "title": "x", "cta_text": "Go", "cta_url": "javascript:alert(1)"}`)
	out := renderString(t, Section(s, 0, Env{}))
	assert.NotContains(t, out, "javascript:")
}

func TestProjectWithoutSections(t *testing.T) {
	p := &models.Project{ProjectSummary: models.ProjectSummary{Title: "Kirana Connect", Slug: "kirana-connect", HeroImage: "hero.jpg"}}
	doc := parse(t, ProjectDetail(p, Env{}))

	assert.Len(t, findAll(doc, byClass("project-hero")), 1)
	assert.Empty(t, findAll(doc, func(n *html.Node) bool { return attrOf(n, "data-section-type") != "" }))
	assert.Empty(t, findAll(doc, byClass("project-website")))
}

func TestProjectDetailRendersSectionsInOrder(t *testing.T) {
	var p models.Project
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Kirana Connect", "slug": "kirana-connect", "client": "Acme", "website_url": "https://kc.example.com",
		"sections": [
			{"type": "quote", "content": "one"},
			{"type": "hologram"},
			{"type": "heading", "title": "three"}
		]
	}`), &p))
	doc := parse(t, ProjectDetail(&p, Env{}))

	secs := findAll(doc, func(n *html.Node) bool { return attrOf(n, "data-section-type") != "" })
	require.Len(t, secs, 2)
	assert.Equal(t, "section-0", attrOf(secs[0], "id"))
	assert.Equal(t, "section-2", attrOf(secs[1], "id"))
	assert.Len(t, findAll(doc, byClass("project-website")), 1)
}

func TestProjectNotFound(t *testing.T) {
	doc := parse(t, ProjectNotFound())

	assert.Contains(t, textOf(doc), "Project Not Found")
	links := findAll(doc, byTag("a"))
	require.Len(t, links, 1)
	assert.Equal(t, "/projects", attrOf(links[0], "href"))
}

func TestBlogNotFound(t *testing.T) {
	doc := parse(t, BlogNotFound())

	assert.Contains(t, textOf(doc), "Blog Post Not Found")
	assert.Equal(t, "/", attrOf(findAll(doc, byTag("a"))[0], "href"))
}

func TestBlogsIndexUppercasesMeta(t *testing.T) {
	blogs := []models.Blog{{
		Title:     "Shipping fast",
		Slug:      "shipping-fast",
		Tags:      "design, ios",
		CreatedAt: models.Timestamp{Time: time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)},
	}}
	doc := parse(t, BlogsIndex(blogs, Env{}))

	assert.Equal(t, "MARCH 4, 2025", textOf(findAll(doc, byClass("blog-card-date"))[0]))
	assert.Equal(t, "DESIGN", textOf(findAll(doc, byClass("chip"))[0]))
	assert.Equal(t, "/blogs/shipping-fast", attrOf(findAll(doc, byClass("blog-card"))[0], "href"))
}

func TestBlogDetail(t *testing.T) {
	b := &models.Blog{Title: "Shipping fast", Content: "<h2>Intro</h2>", Tags: "a,b", EstimatedReadTime: "4 min read"}
	doc := parse(t, BlogDetail(b, Env{}))

	assert.Len(t, findAll(doc, byTag("h2")), 1)
	assert.Len(t, findAll(doc, byClass("chip")), 2)
	assert.Contains(t, textOf(doc), "4 min read")
}

func TestHomeFailuresAreIndependent(t *testing.T) {
	site := models.DefaultSiteContent()
	site.FAQs = []models.FAQ{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}}
	home := &services.Home{
		ProjectsErr: errors.New("boom"),
		Blogs:       []models.Blog{{Title: "Post", Slug: "post"}},
	}
	vals, _ := url.ParseQuery("faq=1")
	doc := parse(t, Home(site, home, Env{State: view.ParseState(vals)}))

	text := textOf(doc)
	assert.Contains(t, text, "Failed to load projects")
	assert.NotContains(t, text, "Failed to load blogs")
	assert.Len(t, findAll(doc, byClass("blog-card")), 1)

	items := findAll(doc, byClass("faq-item"))
	require.Len(t, items, 2)
	assert.Equal(t, "true", attrOf(items[1], "data-open"))
	assert.Equal(t, "?#faq", attrOf(findAll(doc, byClass("faq-toggle"))[1], "href"))
}

func TestLayout(t *testing.T) {
	site := models.DefaultSiteContent()
	doc := parse(t, Layout(Page{Title: "Work", Site: site, LiveReload: true}, ProjectNotFound()))

	titles := findAll(doc, byTag("title"))
	require.Len(t, titles, 1)
	assert.Equal(t, "Work | "+site.Brand, textOf(titles[0]))
	assert.Len(t, findAll(doc, byClass("nav-item")), len(site.Nav))
	assert.Len(t, findAll(doc, func(n *html.Node) bool { return attrOf(n, "data-endpoint") == "/livereload" }), 1)
	assert.Len(t, findAll(doc, byTag("footer")), 1)
}
