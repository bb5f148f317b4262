// Package registry caches named alphabets loaded through a
// dictstore.Store, for engines that open many dictionaries against the
// same storage backend.
package registry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/triekit/alphamap"
	"github.com/triekit/alphamap/dictstore"
	"github.com/triekit/alphamap/mapfile"
)

const defaultWarmConcurrency = 4

type options struct {
	logger      *alphamap.Logger
	limiter     *rate.Limiter
	warmLimit   int
	loadOptions []alphamap.Option
}

// Option configures a Registry.
type Option func(*options)

// WithLogger configures structured logging for fetches. A nil logger
// is ignored.
func WithLogger(logger *alphamap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFetchLimit throttles fetches against the backing store to perSec
// requests with the given burst, which keeps warm-up traffic polite to
// rate-limited remote stores. Zero or negative disables throttling.
func WithFetchLimit(perSec float64, burst int) Option {
	return func(o *options) {
		if perSec > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithWarmConcurrency bounds the parallel fetches issued by Warm.
func WithWarmConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.warmLimit = n
		}
	}
}

// WithLoadOptions forwards options to the text decoder for resources
// stored in the textual definition format.
func WithLoadOptions(optFns ...alphamap.Option) Option {
	return func(o *options) {
		o.loadOptions = optFns
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:    alphamap.NewLogger(nil),
		warmLimit: defaultWarmConcurrency,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Registry caches alphabets by name. Cached maps are shared between
// callers and must be treated as immutable; the registry guards only
// its own cache, never the maps.
type Registry struct {
	store dictstore.Store
	o     options

	mu   sync.RWMutex
	maps map[string]*alphamap.Map
}

// New creates a Registry on top of a store.
func New(store dictstore.Store, optFns ...Option) *Registry {
	return &Registry{
		store: store,
		o:     applyOptions(optFns),
		maps:  make(map[string]*alphamap.Map),
	}
}

// Get returns the named alphabet, fetching and caching it on first
// use. Concurrent Gets for an uncached name may fetch more than once;
// whichever fetch finishes last stays cached. The resource format is
// detected automatically: a mapfile container, a bare binary alphabet
// block, or the textual definition format, in that probe order.
func (r *Registry) Get(ctx context.Context, name string) (*alphamap.Map, error) {
	r.mu.RLock()
	m, ok := r.maps[name]
	r.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := r.fetch(ctx, name)
	if err != nil {
		r.o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	r.o.logger.LogLoad(ctx, name, m.RangeCount(), nil)

	r.mu.Lock()
	r.maps[name] = m
	r.mu.Unlock()
	return m, nil
}

func (r *Registry) fetch(ctx context.Context, name string) (*alphamap.Map, error) {
	if r.o.limiter != nil {
		if err := r.o.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	blob, err := r.store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open alphabet %q: %w", name, err)
	}
	defer blob.Close()

	data, err := blobBytes(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to read alphabet %q: %w", name, err)
	}

	if mapfile.Sniff(data) {
		m, err := mapfile.Read(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode alphabet %q: %w", name, err)
		}
		return m, nil
	}

	// A bare binary block is recognized by its own signature probe;
	// anything else decodes as text.
	if m, ok, err := alphamap.ReadBinary(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to decode alphabet %q: %w", name, err)
	} else if ok {
		return m, nil
	}

	m, err := alphamap.ReadText(bytes.NewReader(data), r.o.loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to decode alphabet %q: %w", name, err)
	}
	return m, nil
}

// blobBytes reads the whole resource, zero-copy when the blob exposes
// its bytes directly.
func blobBytes(blob dictstore.Blob) ([]byte, error) {
	if mb, ok := blob.(dictstore.Mappable); ok {
		return mb.Bytes()
	}
	data := make([]byte, blob.Size())
	if _, err := io.ReadFull(io.NewSectionReader(blob, 0, blob.Size()), data); err != nil {
		return nil, err
	}
	return data, nil
}

// Warm prefetches the named alphabets with bounded parallelism. The
// first fetch error cancels the remaining fetches; already cached
// names are skipped for free.
func (r *Registry) Warm(ctx context.Context, names ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.o.warmLimit)

	for _, name := range names {
		name := name
		g.Go(func() error {
			_, err := r.Get(ctx, name)
			return err
		})
	}
	return g.Wait()
}

// Invalidate drops the cached alphabet for name, forcing the next Get
// to fetch. Maps handed out earlier stay valid.
func (r *Registry) Invalidate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.maps, name)
}

// Len returns the number of cached alphabets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.maps)
}
