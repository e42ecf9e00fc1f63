// Package widget holds the interaction state machines behind the project
// page sub-widgets: accordions, media tabs, feature modals and the feature
// carousel. Each value is owned by exactly one rendered widget instance.
package widget

import "time"

// None is the accordion index meaning "no entry open".
const None = -1

// Accordion tracks which entry of one FAQ list is expanded. At most one
// entry is open at a time.
type Accordion struct {
	n    int
	open int
}

// NewAccordion returns a closed accordion over n entries.
func NewAccordion(n int) *Accordion {
	return &Accordion{n: n, open: None}
}

// Toggle closes entry k if it is open and opens it otherwise, closing any
// other entry. Indexes outside the list are ignored.
func (a *Accordion) Toggle(k int) {
	if k < 0 || k >= a.n {
		return
	}
	if a.open == k {
		a.open = None
		return
	}
	a.open = k
}

// Restore sets the open entry from persisted state, ignoring bad values.
func (a *Accordion) Restore(k int) {
	if k >= 0 && k < a.n {
		a.open = k
	}
}

// Open returns the open index, or None.
func (a *Accordion) Open() int { return a.open }

// IsOpen reports whether entry k is expanded.
func (a *Accordion) IsOpen(k int) bool { return a.open != None && a.open == k }

// Len returns the number of entries.
func (a *Accordion) Len() int { return a.n }

// Next returns the open index that toggling k would produce, without
// changing a.
func (a *Accordion) Next(k int) int {
	c := *a
	c.Toggle(k)
	return c.open
}

// MediaTabs tracks the active tab of a media_tabs section. With n > 0
// exactly one tab is active and the index stays in [0, n).
type MediaTabs struct {
	n      int
	active int
}

// NewMediaTabs returns tabs over n entries with the first one active.
func NewMediaTabs(n int) *MediaTabs {
	if n < 0 {
		n = 0
	}
	return &MediaTabs{n: n}
}

// Select activates tab j. It reports false when j is already active or
// out of range, leaving the state untouched.
func (t *MediaTabs) Select(j int) bool {
	if j < 0 || j >= t.n || j == t.active {
		return false
	}
	t.active = j
	return true
}

// Active returns the active index. It is meaningless when Empty.
func (t *MediaTabs) Active() int { return t.active }

// Empty reports whether there are no tabs to show.
func (t *MediaTabs) Empty() bool { return t.n == 0 }

// Len returns the number of tabs.
func (t *MediaTabs) Len() int { return t.n }

// Modal is the open/closed state of one feature card's overlay.
type Modal struct {
	open bool
}

func (m *Modal) Open()        { m.open = true }
func (m *Modal) Close()       { m.open = false }
func (m *Modal) IsOpen() bool { return m.open }

// RevealStep is the per-section stagger of the entrance animation.
const RevealStep = 50 * time.Millisecond

// RevealDelay returns the entrance delay for the section at index.
func RevealDelay(index int) time.Duration {
	if index < 0 {
		return 0
	}
	return time.Duration(index) * RevealStep
}
