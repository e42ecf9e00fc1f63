package view

import (
	"math"
	"net/url"
	"slices"
	"strconv"
)

// Query keys for widget state. Per-section keys are prefixed "s{index}.".
const (
	KeyTab      = "tab"
	KeyFAQ      = "faq"
	KeyModal    = "modal"
	KeyOffset   = "x"
	KeyScroll   = "dir"
	KeyViewport = "vw"
)

// State is the widget state of a page, carried in the URL query so every
// transition is an ordinary link.
type State struct {
	values url.Values
}

// ParseState copies q.
func ParseState(q url.Values) State {
	values := make(url.Values, len(q))
	for k, v := range q {
		values[k] = slices.Clone(v)
	}
	return State{values: values}
}

// SectionKey returns the query key of a per-section widget value.
func SectionKey(index int, name string) string {
	return "s" + strconv.Itoa(index) + "." + name
}

// SectionAnchor is the fragment id of the section at index.
func SectionAnchor(index int) string {
	return "section-" + strconv.Itoa(index)
}

// Int returns the integer value of key.
func (s State) Int(key string) (int, bool) {
	v := s.values.Get(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Float returns the numeric value of key. NaN and infinities are
// rejected.
func (s State) Float(key string) (float64, bool) {
	v := s.values.Get(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Value returns the first value of key.
func (s State) Value(key string) string {
	return s.values.Get(key)
}

// Without returns a copy of the state with key removed.
func (s State) Without(key string) State {
	next := ParseState(s.values)
	next.values.Del(key)
	return next
}

// Strings returns every value of key.
func (s State) Strings(key string) []string {
	return s.values[key]
}

// Viewport returns the client reported viewport width, or def.
func (s State) Viewport(def int) int {
	if vw, ok := s.Int(KeyViewport); ok && vw > 0 {
		return vw
	}
	return def
}

// Href builds a link to the same page with key replaced by vals (removed
// when vals is empty) and the given fragment.
func (s State) Href(key, anchor string, vals ...string) string {
	next := make(url.Values, len(s.values))
	for k, v := range s.values {
		next[k] = slices.Clone(v)
	}
	next.Del(key)
	for _, v := range vals {
		next.Add(key, v)
	}

	href := "?"
	if enc := next.Encode(); enc != "" {
		href += enc
	}
	if anchor != "" {
		href += "#" + anchor
	}
	return href
}

// Encode returns the query string of the state.
func (s State) Encode() string {
	return s.values.Encode()
}

// Section narrows the state to one section.
func (s State) Section(index int) SectionState {
	return SectionState{state: s, index: index}
}

// SectionState reads and links widget values of one section.
type SectionState struct {
	state State
	index int
}

// Index is the ordinal of the section on the page.
func (ss SectionState) Index() int { return ss.index }

// Anchor is the section fragment id.
func (ss SectionState) Anchor() string { return SectionAnchor(ss.index) }

// Int reads a per-section integer.
func (ss SectionState) Int(name string) (int, bool) {
	return ss.state.Int(SectionKey(ss.index, name))
}

// Float reads a per-section number.
func (ss SectionState) Float(name string) (float64, bool) {
	return ss.state.Float(SectionKey(ss.index, name))
}

// Value reads a per-section string.
func (ss SectionState) Value(name string) string {
	return ss.state.Value(SectionKey(ss.index, name))
}

// Without drops a per-section key, so links built from the result no
// longer carry it.
func (ss SectionState) Without(name string) SectionState {
	return SectionState{state: ss.state.Without(SectionKey(ss.index, name)), index: ss.index}
}

// Strings reads a multi-valued per-section key.
func (ss SectionState) Strings(name string) []string {
	return ss.state.Strings(SectionKey(ss.index, name))
}

// Viewport returns the page level viewport hint.
func (ss SectionState) Viewport(def int) int {
	return ss.state.Viewport(def)
}

// Href links to the page with a per-section value replaced.
func (ss SectionState) Href(name string, vals ...string) string {
	return ss.state.Href(SectionKey(ss.index, name), ss.Anchor(), vals...)
}

// Query returns the full page query, used by fragment requests.
func (ss SectionState) Query() string {
	return ss.state.Encode()
}
