package widget

import "math"

// Direction is a carousel scroll direction.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// ParseDirection maps "left"/"prev" and "right"/"next".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left", "prev":
		return Left, true
	case "right", "next":
		return Right, true
	}
	return 0, false
}

const (
	// CardGap is the horizontal gap between feature cards in px.
	CardGap = 24
	// FallbackFraction of the viewport is scrolled when no card is measured.
	FallbackFraction = 0.8
	// FallbackMax caps the fallback step in px.
	FallbackMax = 420
	// MinTrailingSpacer keeps the last card off the viewport edge.
	MinTrailingSpacer = 40
	// DefaultViewport is assumed when the client did not report a width.
	DefaultViewport = 1280
)

// Breakpoint pairs a minimum viewport width with the leading padding used
// from that width upwards.
type Breakpoint struct {
	MinWidth int
	Padding  int
}

// Breakpoints is the leading padding table, ascending by MinWidth.
var Breakpoints = []Breakpoint{
	{MinWidth: 0, Padding: 40},
	{MinWidth: 640, Padding: 48},
	{MinWidth: 768, Padding: 80},
	{MinWidth: 1024, Padding: 96},
}

// LeadPadding returns the leading padding for a viewport width.
func LeadPadding(viewport int) int {
	pad := Breakpoints[0].Padding
	for _, bp := range Breakpoints {
		if viewport >= bp.MinWidth {
			pad = bp.Padding
		}
	}
	return pad
}

// TrailingSpacer returns the width of the spacer after the last card.
func TrailingSpacer(viewport int) int {
	return max(LeadPadding(viewport), MinTrailingSpacer)
}

// Step returns the scroll distance of one activation: one measured card
// plus the gap, or a viewport based estimate when cardWidth is zero.
func Step(cardWidth, viewport float64) float64 {
	if cardWidth > 0 {
		return cardWidth + CardGap
	}
	return math.Min(viewport*FallbackFraction, FallbackMax)
}

// Carousel tracks the horizontal offset of one feature carousel. Offsets
// accumulate relative to the current position rather than snapping to
// card boundaries.
type Carousel struct {
	offset float64
}

// NewCarousel starts at offset, clamped to zero. A non-finite offset
// starts at zero.
func NewCarousel(offset float64) *Carousel {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		offset = 0
	}
	return &Carousel{offset: math.Max(offset, 0)}
}

// Offset returns the current scroll offset in px.
func (c *Carousel) Offset() float64 { return c.offset }

// Scroll moves one step in dir and returns the new offset.
func (c *Carousel) Scroll(dir Direction, cardWidth, viewport float64) float64 {
	c.offset = math.Max(c.offset+float64(dir)*Step(cardWidth, viewport), 0)
	return c.offset
}

// Peek returns the offset Scroll would produce without moving.
func (c *Carousel) Peek(dir Direction, cardWidth, viewport float64) float64 {
	n := *c
	return n.Scroll(dir, cardWidth, viewport)
}
