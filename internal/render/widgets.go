package render

import (
	"slices"

	"buildwith.dev/internal/models"
	"buildwith.dev/internal/view"
	"buildwith.dev/internal/widget"
)

// restoreAccordion rebuilds an accordion over n entries from the open
// index stored under view.KeyFAQ.
func restoreAccordion(n int, stored func(key string) (int, bool)) *widget.Accordion {
	acc := widget.NewAccordion(n)
	if k, ok := stored(view.KeyFAQ); ok {
		acc.Restore(k)
	}
	return acc
}

// sectionFAQLink links a section accordion to a new open index.
func sectionFAQLink(ss view.SectionState) func(open int) string {
	return func(open int) string {
		if open == widget.None {
			return ss.Href(view.KeyFAQ)
		}
		return ss.Href(view.KeyFAQ, itoa(open))
	}
}

// restoreTabs rebuilds the media tabs of one section. An index outside
// the tab list leaves the first tab active.
func restoreTabs(n int, ss view.SectionState) *widget.MediaTabs {
	tabs := widget.NewMediaTabs(n)
	if j, ok := ss.Int(view.KeyTab); ok {
		tabs.Select(j)
	}
	return tabs
}

// restoreCarousel rebuilds the carousel of one section from its stored
// offset, then applies a pending scroll request.
func restoreCarousel(ss view.SectionState, viewport int) *widget.Carousel {
	offset, _ := ss.Float(view.KeyOffset)
	c := widget.NewCarousel(offset)
	if dir, ok := widget.ParseDirection(ss.Value(view.KeyScroll)); ok {
		c.Scroll(dir, 0, float64(viewport))
	}
	return c
}

// arrow names the control for dir.
func arrow(dir widget.Direction) (name, label string) {
	if dir == widget.Right {
		return "next", "Scroll right"
	}
	return "prev", "Scroll left"
}

// featureModalState returns the overlay state of the card with key.
func featureModalState(openKeys []string, key string) *widget.Modal {
	m := &widget.Modal{}
	if slices.Contains(openKeys, key) {
		m.Open()
	}
	return m
}

func featureShape(f models.Feature) string {
	if f.Portrait() {
		return "feature-portrait"
	}
	return "feature-square"
}

func featureBackground(f models.Feature) string {
	if f.BackgroundColor == "" {
		return "feature-bg-default"
	}
	return f.BackgroundColor
}

func featureForeground(f models.Feature) string {
	if f.TextColor == "" {
		return "feature-fg-default"
	}
	return f.TextColor
}

func appendUnique(keys []string, key string) []string {
	if slices.Contains(keys, key) {
		return slices.Clone(keys)
	}
	return append(slices.Clone(keys), key)
}

func without(keys []string, key string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
