package widget

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccordionToggle(t *testing.T) {
	a := NewAccordion(3)
	assert.Equal(t, None, a.Open())

	a.Toggle(1)
	assert.Equal(t, 1, a.Open())
	assert.True(t, a.IsOpen(1))

	a.Toggle(2)
	assert.Equal(t, 2, a.Open())
	assert.False(t, a.IsOpen(1))

	a.Toggle(2)
	assert.Equal(t, None, a.Open())

	a.Toggle(7)
	a.Toggle(-1)
	assert.Equal(t, None, a.Open())
}

func TestAccordionNextDoesNotMutate(t *testing.T) {
	a := NewAccordion(2)
	a.Restore(0)

	assert.Equal(t, None, a.Next(0))
	assert.Equal(t, 1, a.Next(1))
	assert.Equal(t, 0, a.Open())
}

func TestAccordionRestoreIgnoresBadIndex(t *testing.T) {
	a := NewAccordion(2)
	a.Restore(5)
	assert.Equal(t, None, a.Open())
	a.Restore(1)
	assert.Equal(t, 1, a.Open())
}

func TestAccordionInstancesAreIndependent(t *testing.T) {
	first := NewAccordion(2)
	second := NewAccordion(2)

	first.Toggle(0)
	assert.Equal(t, 0, first.Open())
	assert.Equal(t, None, second.Open())
}

func TestMediaTabsSelect(t *testing.T) {
	tabs := NewMediaTabs(3)
	assert.Equal(t, 0, tabs.Active())

	assert.False(t, tabs.Select(0), "selecting the active tab is a no-op")
	assert.True(t, tabs.Select(2))
	assert.Equal(t, 2, tabs.Active())

	assert.False(t, tabs.Select(3))
	assert.False(t, tabs.Select(-1))
	assert.Equal(t, 2, tabs.Active())
}

func TestMediaTabsEmpty(t *testing.T) {
	tabs := NewMediaTabs(0)
	assert.True(t, tabs.Empty())
	assert.False(t, tabs.Select(0))
}

func TestModal(t *testing.T) {
	var a, b Modal
	a.Open()
	assert.True(t, a.IsOpen())
	assert.False(t, b.IsOpen())

	a.Close()
	assert.False(t, a.IsOpen())
}

func TestRevealDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), RevealDelay(0))
	assert.Equal(t, 150*time.Millisecond, RevealDelay(3))
	assert.Equal(t, time.Duration(0), RevealDelay(-2))
}

func TestLeadPadding(t *testing.T) {
	tests := []struct {
		viewport int
		want     int
	}{
		{320, 40},
		{639, 40},
		{640, 48},
		{767, 48},
		{768, 80},
		{1023, 80},
		{1024, 96},
		{1920, 96},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LeadPadding(tt.viewport), "viewport %d", tt.viewport)
	}
	assert.Equal(t, 40, TrailingSpacer(320))
	assert.Equal(t, 96, TrailingSpacer(1440))
}

func TestCarouselStep(t *testing.T) {
	assert.Equal(t, 324.0, Step(300, 1280))
	assert.Equal(t, 420.0, Step(0, 1280))
	assert.Equal(t, 300.0, Step(0, 375))
}

func TestCarouselScrollAccumulates(t *testing.T) {
	c := NewCarousel(0)

	assert.Equal(t, 324.0, c.Scroll(Right, 300, 1280))
	assert.Equal(t, 648.0, c.Scroll(Right, 300, 1280))
	assert.Equal(t, 324.0, c.Scroll(Left, 300, 1280))
	assert.Equal(t, 0.0, c.Scroll(Left, 300, 1280))
	assert.Equal(t, 0.0, c.Scroll(Left, 300, 1280), "never scrolls past the start")

	assert.Equal(t, 420.0, c.Peek(Right, 0, 1280))
	assert.Equal(t, 0.0, c.Offset())
}

func TestCarouselIgnoresNonFiniteOffset(t *testing.T) {
	for _, offset := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -50} {
		c := NewCarousel(offset)
		assert.Equal(t, 0.0, c.Offset(), "%v", offset)
		assert.Equal(t, 420.0, c.Peek(Right, 0, 1280))
	}
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("next")
	assert.True(t, ok)
	assert.Equal(t, Right, d)

	d, ok = ParseDirection("left")
	assert.True(t, ok)
	assert.Equal(t, Left, d)

	_, ok = ParseDirection("up")
	assert.False(t, ok)
}
