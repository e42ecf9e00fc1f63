package view

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestLoadReturnsResult(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScope(context.Background(), zaptest.NewLogger(t))
	defer s.Close()

	v, err := Load(s, func(ctx context.Context) (string, error) {
		return "kirana-connect", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "kirana-connect", v)
	assert.NotEmpty(t, s.ID())
}

func TestLoadPropagatesError(t *testing.T) {
	s := NewScope(context.Background(), nil)
	defer s.Close()

	boom := errors.New("boom")
	_, err := Load(s, func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestLoadRaisesPanicOnCaller(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScope(context.Background(), nil)
	defer s.Close()

	assert.PanicsWithValue(t, "decoder exploded", func() {
		_, _ = Load(s, func(ctx context.Context) (int, error) {
			panic("decoder exploded")
		})
	})
}

func TestCloseCancelsInFlightFetch(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScope(context.Background(), zaptest.NewLogger(t))
	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := Load(s, func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		done <- err
	}()

	<-started
	s.Close()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestParentCancellationEndsScope(t *testing.T) {
	defer goleak.VerifyNone(t)

	parent, cancel := context.WithCancel(context.Background())
	s := NewScope(parent, nil)
	cancel()

	_, err := Load(s, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	s.Close()
}

func TestStateReadsSectionValues(t *testing.T) {
	st := ParseState(url.Values{
		"s1.tab":   {"2"},
		"s1.x":     {"324.5"},
		"s3.modal": {"a", "b"},
		"s4.faq":   {"nope"},
		"vw":       {"800"},
	})

	tab, ok := st.Section(1).Int(KeyTab)
	require.True(t, ok)
	assert.Equal(t, 2, tab)

	x, ok := st.Section(1).Float(KeyOffset)
	require.True(t, ok)
	assert.Equal(t, 324.5, x)

	assert.Equal(t, []string{"a", "b"}, st.Section(3).Strings(KeyModal))

	_, ok = st.Section(4).Int(KeyFAQ)
	assert.False(t, ok)

	assert.Equal(t, 800, st.Viewport(1280))
	assert.Equal(t, 1280, ParseState(nil).Viewport(1280))
}

func TestStateRejectsNonFiniteFloats(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity", "1e400"} {
		st := ParseState(url.Values{"s0.x": {raw}})
		_, ok := st.Section(0).Float(KeyOffset)
		assert.False(t, ok, raw)
	}

	st := ParseState(url.Values{"s0.x": {"-12"}})
	x, ok := st.Section(0).Float(KeyOffset)
	require.True(t, ok)
	assert.Equal(t, -12.0, x)
}

func TestStateWithout(t *testing.T) {
	st := ParseState(url.Values{"s2.dir": {"next"}, "s2.x": {"40"}, "vw": {"800"}})
	ss := st.Section(2)

	assert.Equal(t, "next", ss.Value(KeyScroll))
	trimmed := ss.Without(KeyScroll)
	assert.Equal(t, "", trimmed.Value(KeyScroll))
	assert.Equal(t, "?s2.x=0&vw=800#section-2", trimmed.Href(KeyOffset, "0"))
	assert.Equal(t, "next", ss.Value(KeyScroll), "the original state is untouched")
}

func TestStateHref(t *testing.T) {
	st := ParseState(url.Values{"s1.tab": {"2"}, "vw": {"800"}})

	assert.Equal(t, "?s1.tab=0&vw=800#section-1", st.Section(1).Href(KeyTab, "0"))
	assert.Equal(t, "?vw=800#section-1", st.Section(1).Href(KeyTab))
	assert.Equal(t, "?s1.tab=2&s2.modal=a+b&s2.modal=c&vw=800#section-2", st.Section(2).Href(KeyModal, "a b", "c"))
	assert.Equal(t, "?faq=3#faq", ParseState(nil).Href(KeyFAQ, "faq", "3"))
	assert.Equal(t, "?", ParseState(nil).Href(KeyFAQ, ""))
}

func TestParseStateCopiesInput(t *testing.T) {
	q := url.Values{"s0.tab": {"1"}}
	st := ParseState(q)
	q.Set("s0.tab", "5")

	tab, _ := st.Section(0).Int(KeyTab)
	assert.Equal(t, 1, tab)
}
