// Package media resolves image references to something displayable. Each
// remote image is checked once per TTL; an image that cannot be loaded is
// replaced by a fallback so a page never shows a broken frame.
package media

import (
	"context"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	siteerrors "buildwith.dev/internal/errors"
)

// State is the load state of an image.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
)

// DefaultFallbacks are used when no fallback list is configured.
var DefaultFallbacks = []string{
	"https://www.apple.com/newsroom/images/product/iphone/standard/Apple_announce-iphone12pro_10132020.jpg.og.jpg",
	"https://images.unsplash.com/photo-1441986300917-64674bd600d8?auto=format&fit=crop&w=2070&q=80",
	"https://images.unsplash.com/photo-1460925895917-afdab827c52f?auto=format&fit=crop&w=2015&q=80",
}

// Image is a resolved image reference.
type Image struct {
	// Src is what should be rendered.
	Src string
	// Original is the reference the content asked for.
	Original string
	// Fallback replaces Src if the browser fails to load it.
	Fallback string
	State    State
}

// Usable reports whether there is anything to draw.
func (i Image) Usable() bool {
	return i.State != StateEmpty && i.Src != ""
}

// Options configures a Fetcher.
type Options struct {
	Client      *http.Client
	Fallbacks   []string
	TTL         time.Duration
	Timeout     time.Duration
	Verify      bool
	Concurrency int
	Logger      *zap.Logger
}

type entry struct {
	img     Image
	expires time.Time
}

// Fetcher resolves and caches image states. It is safe for concurrent use.
type Fetcher struct {
	client      *http.Client
	fallbacks   []string
	ttl         time.Duration
	timeout     time.Duration
	verify      bool
	concurrency int
	logger      *zap.Logger
	now         func() time.Time

	mu        sync.Mutex
	cache     map[string]entry
	nextSweep time.Time
	group     singleflight.Group
}

// New creates a Fetcher, filling unset options with defaults.
func New(opts Options) *Fetcher {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 5 * time.Second}
	}
	if opts.Fallbacks == nil {
		opts.Fallbacks = DefaultFallbacks
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Fetcher{
		client:      opts.Client,
		fallbacks:   opts.Fallbacks,
		ttl:         opts.TTL,
		timeout:     opts.Timeout,
		verify:      opts.Verify,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
		now:         time.Now,
		cache:       make(map[string]entry),
	}
}

// FallbackFor picks a fallback deterministically so the same broken
// image always gets the same replacement.
func (f *Fetcher) FallbackFor(src string) string {
	if len(f.fallbacks) == 0 {
		return ""
	}
	h := fnv.New32a()
	_, _ = io.WriteString(h, src)
	return f.fallbacks[h.Sum32()%uint32(len(f.fallbacks))]
}

// Unresolved describes src without probing it.
func (f *Fetcher) Unresolved(src string) Image {
	if src == "" {
		return Image{State: StateEmpty}
	}
	state := StateLoading
	if !f.verify || !checkable(src) {
		state = StateLoaded
	}
	return Image{Src: src, Original: src, Fallback: f.FallbackFor(src), State: state}
}

// Resolve returns the displayable form of src. Concurrent callers for the
// same src share one check. The check does not inherit the caller's
// cancellation, so a caller that gives up only stops waiting for it.
func (f *Fetcher) Resolve(ctx context.Context, src string) Image {
	img := f.Unresolved(src)
	if img.State != StateLoading {
		return img
	}
	if cached, ok := f.lookup(src); ok {
		return cached
	}
	if ctx.Err() != nil {
		return img
	}

	ch := f.group.DoChan(src, func() (interface{}, error) {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
		defer cancel()
		return f.check(pctx, src), nil
	})
	select {
	case r := <-ch:
		return r.Val.(Image)
	case <-ctx.Done():
		return img
	}
}

// lookup returns the cached state of src. An expired entry is dropped.
func (f *Fetcher) lookup(src string) (Image, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.cache[src]
	if !ok {
		return Image{}, false
	}
	if !f.now().Before(e.expires) {
		delete(f.cache, src)
		return Image{}, false
	}
	return e.img, true
}

// store caches img and sweeps expired entries at most once per TTL.
func (f *Fetcher) store(src string, img Image) {
	now := f.now()
	f.mu.Lock()
	defer f.mu.Unlock()
	if !now.Before(f.nextSweep) {
		for k, e := range f.cache {
			if !now.Before(e.expires) {
				delete(f.cache, k)
			}
		}
		f.nextSweep = now.Add(f.ttl)
	}
	f.cache[src] = entry{img: img, expires: now.Add(f.ttl)}
}

// check requests src and records the outcome.
func (f *Fetcher) check(ctx context.Context, src string) Image {
	img := f.Unresolved(src)

	status, err := f.head(ctx, src)
	if err == nil && status >= 200 && status < 300 {
		img.State = StateLoaded
	} else {
		f.logger.Debug("image unavailable, using fallback",
			zap.Error(siteerrors.NewImageLoad(src, status, err)),
			zap.String("fallback", img.Fallback))
		img.State = StateError
		if img.Fallback != "" {
			img.Src = img.Fallback
		}
	}

	f.store(src, img)
	return img
}

// head issues a HEAD request, retrying with a ranged GET for servers that
// reject HEAD.
func (f *Fetcher) head(ctx context.Context, src string) (int, error) {
	status, err := f.do(ctx, http.MethodHead, src)
	if err != nil || (status != http.StatusMethodNotAllowed && status != http.StatusNotImplemented) {
		return status, err
	}
	return f.do(ctx, http.MethodGet, src)
}

func (f *Fetcher) do(ctx context.Context, method, src string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, src, nil)
	if err != nil {
		return 0, err
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
	return resp.StatusCode, nil
}

// Resolved is a set of images resolved for one view.
type Resolved struct {
	images  map[string]Image
	fetcher *Fetcher
}

// Get returns the resolved image for src, describing it unchecked when it
// was not part of the resolved set.
func (r Resolved) Get(src string) Image {
	if img, ok := r.images[src]; ok {
		return img
	}
	if r.fetcher == nil {
		if src == "" {
			return Image{State: StateEmpty}
		}
		return Image{Src: src, Original: src, State: StateLoaded}
	}
	return r.fetcher.Unresolved(src)
}

// ResolveAll resolves every distinct src concurrently.
func (f *Fetcher) ResolveAll(ctx context.Context, srcs []string) Resolved {
	res := Resolved{images: make(map[string]Image, len(srcs)), fetcher: f}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	seen := make(map[string]bool, len(srcs))
	for _, src := range srcs {
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true

		g.Go(func() error {
			img := f.Resolve(gctx, src)
			mu.Lock()
			res.images[src] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func checkable(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
