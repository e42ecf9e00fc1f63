package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newImageServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		switch r.URL.Path {
		case "/ok.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.WriteHeader(http.StatusOK)
		case "/head-rejected.jpg":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			assert.Equal(t, "bytes=0-0", r.Header.Get("Range"))
			w.WriteHeader(http.StatusPartialContent)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveLoaded(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	f := New(Options{Verify: true, Logger: zaptest.NewLogger(t)})

	img := f.Resolve(context.Background(), srv.URL+"/ok.jpg")
	assert.Equal(t, StateLoaded, img.State)
	assert.Equal(t, srv.URL+"/ok.jpg", img.Src)
	assert.True(t, img.Usable())

	f.Resolve(context.Background(), srv.URL+"/ok.jpg")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second resolve is served from cache")
}

func TestResolveFailureUsesFallback(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	f := New(Options{Verify: true, Fallbacks: []string{"/static/fallback.jpg"}})

	img := f.Resolve(context.Background(), srv.URL+"/missing.jpg")
	assert.Equal(t, StateError, img.State)
	assert.Equal(t, "/static/fallback.jpg", img.Src)
	assert.Equal(t, srv.URL+"/missing.jpg", img.Original)
	assert.True(t, img.Usable())
}

func TestResolveRetriesWithGet(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	f := New(Options{Verify: true})

	img := f.Resolve(context.Background(), srv.URL+"/head-rejected.jpg")
	assert.Equal(t, StateLoaded, img.State)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestResolveUnreachableHost(t *testing.T) {
	f := New(Options{
		Verify:     true,
		Client:    &http.Client{Timeout: 200 * time.Millisecond},
		Fallbacks: []string{"fallback.jpg"},
	})

	img := f.Resolve(context.Background(), "http://127.0.0.1:1/gone.png")
	assert.Equal(t, StateError, img.State)
	assert.Equal(t, "fallback.jpg", img.Src)
}

func TestResolveEmptyAndRelative(t *testing.T) {
	f := New(Options{Verify: true})

	assert.Equal(t, StateEmpty, f.Resolve(context.Background(), "").State)
	assert.False(t, f.Resolve(context.Background(), "").Usable())

	rel := f.Resolve(context.Background(), "/media/hero.png")
	assert.Equal(t, StateLoaded, rel.State)
	assert.Equal(t, "/media/hero.png", rel.Src)
}

func TestVerifyDisabled(t *testing.T) {
	f := New(Options{Verify: false})
	img := f.Resolve(context.Background(), "https://cdn.example.invalid/a.jpg")
	assert.Equal(t, StateLoaded, img.State)
	assert.NotEmpty(t, img.Fallback)
}

func TestCancelledCheckIsNotCached(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	f := New(Options{Verify: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := f.Resolve(ctx, srv.URL+"/ok.jpg")
	assert.Equal(t, StateLoading, img.State)

	img = f.Resolve(context.Background(), srv.URL+"/ok.jpg")
	assert.Equal(t, StateLoaded, img.State)
}

func TestCancelledCallerDoesNotFailWaitingCallers(t *testing.T) {
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case arrived <- struct{}{}:
		default:
		}
		<-release
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	f := New(Options{Verify: true, Fallbacks: []string{"fb.jpg"}, Logger: zaptest.NewLogger(t)})
	src := srv.URL + "/slow.jpg"

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan Image, 1)
	go func() { first <- f.Resolve(ctx, src) }()
	<-arrived

	second := make(chan Image, 1)
	go func() { second <- f.Resolve(context.Background(), src) }()

	cancel()
	assert.Equal(t, StateLoading, (<-first).State, "the cancelled caller stops waiting")

	close(release)
	img := <-second
	assert.Equal(t, StateError, img.State)
	assert.Equal(t, "fb.jpg", img.Src)

	cached, ok := f.lookup(src)
	require.True(t, ok)
	assert.Equal(t, StateError, cached.State)
}

func TestCacheExpires(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	f := New(Options{Verify: true, TTL: time.Minute})

	now := time.Now()
	f.now = func() time.Time { return now }
	f.Resolve(context.Background(), srv.URL+"/ok.jpg")

	now = now.Add(2 * time.Minute)
	f.Resolve(context.Background(), srv.URL+"/ok.jpg")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestExpiredEntriesAreEvicted(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	f := New(Options{Verify: true, TTL: time.Minute})

	now := time.Now()
	f.now = func() time.Time { return now }
	f.Resolve(context.Background(), srv.URL+"/ok.jpg")
	f.Resolve(context.Background(), srv.URL+"/bad.jpg")

	now = now.Add(2 * time.Minute)
	_, ok := f.lookup(srv.URL + "/bad.jpg")
	assert.False(t, ok)

	f.Resolve(context.Background(), srv.URL+"/head-rejected.jpg")

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Len(t, f.cache, 1, "stale entries are swept when a new one is stored")
	assert.Contains(t, f.cache, srv.URL+"/head-rejected.jpg")
}

func TestFallbackForIsDeterministic(t *testing.T) {
	f := New(Options{})
	a := f.FallbackFor("https://x/a.jpg")
	assert.Equal(t, a, f.FallbackFor("https://x/a.jpg"))
	assert.Contains(t, DefaultFallbacks, a)

	none := New(Options{Fallbacks: []string{}})
	assert.Equal(t, "", none.FallbackFor("x"))
}

func TestResolveAll(t *testing.T) {
	var hits int32
	srv := newImageServer(t, &hits)
	f := New(Options{Verify: true, Fallbacks: []string{"fb.jpg"}, Concurrency: 2})

	ok := srv.URL + "/ok.jpg"
	bad := srv.URL + "/bad.jpg"
	res := f.ResolveAll(context.Background(), []string{ok, bad, ok, ""})

	require.Equal(t, StateLoaded, res.Get(ok).State)
	require.Equal(t, StateError, res.Get(bad).State)
	assert.Equal(t, "fb.jpg", res.Get(bad).Src)
	assert.Equal(t, StateEmpty, res.Get("").State)
	assert.Equal(t, StateLoading, res.Get(srv.URL+"/never-resolved.jpg").State)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestZeroResolved(t *testing.T) {
	var res Resolved
	assert.Equal(t, StateLoaded, res.Get("a.jpg").State)
	assert.Equal(t, StateEmpty, res.Get("").State)
}
