package material

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"pitch-renderer/internal/dataset"
)

// Provider hands out the shared material for a pitch type.
type Provider interface {
	Material(pitchType string) *Material
}

// Overrides supplies pre-made rasters in place of synthesis.
type Overrides interface {
	Lookup(pitchType string) (albedo, bump *image.NRGBA, ok bool)
}

// Cache is a concurrency-safe material cache keyed by base pitch type.
// Entries live for the lifetime of the cache; the set of pitch types is
// small and fixed.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*Material
	group singleflight.Group

	opts      Options
	overrides Overrides
	log       zerolog.Logger

	built atomic.Int64
}

// NewCache creates an empty cache. overrides may be nil.
func NewCache(opts Options, overrides Overrides, log zerolog.Logger) *Cache {
	return &Cache{
		items:     make(map[string]*Material),
		opts:      opts,
		overrides: overrides,
		log:       log,
	}
}

// Material returns the material for a pitch type, building it on first
// use. Full keys such as "FF 5" share the "FF" entry. Concurrent callers
// asking for the same type wait on a single build.
func (c *Cache) Material(pitchType string) *Material {
	key := dataset.TypeOf(pitchType)

	// Fast path: read lock
	c.mu.RLock()
	if m, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		m, ok := c.items[key]
		c.mu.RUnlock()
		if ok {
			return m, nil
		}

		m = c.build(key)

		c.mu.Lock()
		c.items[key] = m
		c.mu.Unlock()
		return m, nil
	})
	return v.(*Material)
}

func (c *Cache) build(key string) *Material {
	var albedo, bump *image.NRGBA
	if c.overrides != nil {
		var ok bool
		if albedo, bump, ok = c.overrides.Lookup(key); ok {
			c.log.Debug().
				Str("pitchType", key).
				Bool("albedo", albedo != nil).
				Bool("bump", bump != nil).
				Msg("material override textures")
		}
	}

	m := assemble(key, c.opts, albedo, bump)
	c.built.Add(1)
	c.log.Debug().
		Str("pitchType", key).
		Int("width", m.Albedo.Rect.Dx()).
		Int("height", m.Albedo.Rect.Dy()).
		Msg("material ready")
	return m
}

// Warm builds materials for the given pitch types in parallel.
func (c *Cache) Warm(ctx context.Context, pitchTypes []string, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, pt := range pitchTypes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Material(pt)
			return nil
		})
	}
	return g.Wait()
}

// Len returns the number of cached materials.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Built returns how many materials have been constructed.
func (c *Cache) Built() int64 {
	return c.built.Load()
}
