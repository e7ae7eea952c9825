package boundary

import (
	"context"
	"os"

	"github.com/rotisserie/eris"

	"github.com/bps-nganjuk/tagmap/internal/geo"
)

// Getter fetches a URL body. *fetcher.HTTPFetcher satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// StaticURL loads a published GeoJSON document over HTTP.
type StaticURL struct {
	URL    string
	Client Getter
}

func (s *StaticURL) Name() string { return "geojson:" + s.URL }

func (s *StaticURL) Fetch(ctx context.Context) (*geo.Collection, error) {
	data, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: fetch %s", s.URL)
	}
	col, err := geo.ParseGeoJSON(data)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: parse %s", s.URL)
	}
	return col, nil
}

// File loads a GeoJSON document from the local filesystem.
type File struct {
	Path string
}

func (f *File) Name() string { return "file:" + f.Path }

func (f *File) Fetch(_ context.Context) (*geo.Collection, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: read %s", f.Path)
	}
	col, err := geo.ParseGeoJSON(data)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: parse %s", f.Path)
	}
	return col, nil
}

// Fallback produces a single rectangular feature covering the configured
// district bounds. It never fails, so placed last it guarantees the chain
// resolves.
type Fallback struct {
	DistrictName string
	Bounds       geo.Bounds
}

func (f *Fallback) Name() string { return "fallback-bbox" }

func (f *Fallback) Fetch(_ context.Context) (*geo.Collection, error) {
	return geo.BBoxPolygon(f.DistrictName, f.Bounds), nil
}
