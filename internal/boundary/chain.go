// Package boundary resolves the sub-district boundary layer from a chain
// of sources: local files, published GeoJSON mirrors, Overpass, and a
// rectangular fallback built from the configured district bounds.
package boundary

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/bps-nganjuk/tagmap/internal/geo"
)

// Source is one way of obtaining the boundary collection.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (*geo.Collection, error)
}

// Chain tries each source in order and returns the first collection that
// yields at least one feature. Construct it with a Fallback source last
// and Resolve cannot fail.
type Chain struct {
	sources []Source
	timeout time.Duration
	log     *zap.Logger
}

// NewChain builds a chain over the given sources. perSourceTimeout bounds
// each individual attempt; zero means no per-attempt deadline beyond the
// caller's context.
func NewChain(perSourceTimeout time.Duration, sources ...Source) *Chain {
	return &Chain{
		sources: sources,
		timeout: perSourceTimeout,
		log:     zap.L().With(zap.String("component", "boundary")),
	}
}

// Resolve walks the chain. The returned source name identifies which
// attempt succeeded.
func (c *Chain) Resolve(ctx context.Context) (*geo.Collection, string, error) {
	var lastErr error
	for _, src := range c.sources {
		attemptCtx := ctx
		cancel := func() {}
		if c.timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}

		c.log.Info("trying boundary source", zap.String("source", src.Name()))
		col, err := src.Fetch(attemptCtx)
		cancel()

		if err != nil {
			lastErr = err
			c.log.Warn("boundary source failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			continue
		}
		if col == nil || len(col.Features) == 0 {
			lastErr = eris.Errorf("boundary: source %s returned no features", src.Name())
			c.log.Warn("boundary source returned no features", zap.String("source", src.Name()))
			continue
		}

		c.log.Info("boundary source succeeded",
			zap.String("source", src.Name()),
			zap.Int("features", len(col.Features)),
		)
		return col, src.Name(), nil
	}

	if lastErr == nil {
		lastErr = eris.New("boundary: no sources configured")
	}
	return nil, "", eris.Wrap(lastErr, "boundary: all sources exhausted")
}
