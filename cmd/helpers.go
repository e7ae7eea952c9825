package main

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bps-nganjuk/tagmap/internal/boundary"
	"github.com/bps-nganjuk/tagmap/internal/config"
	"github.com/bps-nganjuk/tagmap/internal/engine"
	"github.com/bps-nganjuk/tagmap/internal/fetcher"
	"github.com/bps-nganjuk/tagmap/internal/geo"
	"github.com/bps-nganjuk/tagmap/internal/registry"
	"github.com/bps-nganjuk/tagmap/internal/resolve"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

func districtProfile(c *config.Config) resolve.DistrictProfile {
	return resolve.DistrictProfile{Code: c.District.Code, Name: c.District.Name}
}

func fallbackBounds(c *config.Config) geo.Bounds {
	return geo.Bounds{
		MinLat: c.District.MinLat,
		MaxLat: c.District.MaxLat,
		MinLon: c.District.MinLon,
		MaxLon: c.District.MaxLon,
	}
}

func newEngine(c *config.Config) *engine.Engine {
	return engine.New(engine.Options{
		Profile:        districtProfile(c),
		FallbackBounds: fallbackBounds(c),
		CanvasWidth:    c.Canvas.Width,
		CanvasHeight:   c.Canvas.Height,
	})
}

// boundaryChain assembles the source chain from config: local file and
// shapefile first, then published GeoJSON mirrors, then Overpass, then the
// bbox fallback which cannot fail.
func boundaryChain(c *config.Config) *boundary.Chain {
	client := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout: time.Duration(c.Boundary.FetchTimeoutSecs) * time.Second,
	})

	var sources []boundary.Source
	if c.Boundary.File != "" {
		sources = append(sources, &boundary.File{Path: c.Boundary.File})
	}
	if c.Boundary.Shapefile != "" {
		sources = append(sources, &boundary.Shapefile{Path: c.Boundary.Shapefile})
	}
	for _, u := range c.Boundary.GeoJSONURLs {
		sources = append(sources, &boundary.StaticURL{URL: u, Client: client})
	}
	for _, ep := range c.Boundary.OverpassEndpoints {
		sources = append(sources, &boundary.Overpass{
			Endpoint:   ep,
			AreaName:   c.Boundary.OverpassArea,
			AdminLevel: c.Boundary.AdminLevel,
			Client:     client,
		})
	}
	sources = append(sources, &boundary.Fallback{
		DistrictName: c.District.Name,
		Bounds:       fallbackBounds(c),
	})

	timeout := time.Duration(c.Boundary.StaticTimeoutSecs) * time.Second
	return boundary.NewChain(timeout, sources...)
}

// loadInputs reads the tagging rows and the registry concurrently.
// registryPath may be empty, in which case the returned registry is empty
// and percentages fall back to the share of filtered rows.
func loadInputs(ctx context.Context, rowsPath, registryPath string) ([]rowset.Row, *registry.Registry, error) {
	var rows []rowset.Row
	reg := registry.Load(nil)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := fetcher.LoadTable(rowsPath, fetcher.TableOptions{})
		if err != nil {
			return err
		}
		rows = loaded
		return nil
	})
	if registryPath != "" {
		g.Go(func() error {
			loaded, err := fetcher.LoadTable(registryPath, fetcher.TableOptions{})
			if err != nil {
				return err
			}
			reg = registry.Load(loaded)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rows, reg, nil
}
