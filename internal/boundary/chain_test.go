package boundary

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bps-nganjuk/tagmap/internal/geo"
)

var nganjukBounds = geo.Bounds{MinLat: -7.8, MaxLat: -7.2, MinLon: 111.6, MaxLon: 112.2}

type stubSource struct {
	name string
	col  *geo.Collection
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context) (*geo.Collection, error) {
	return s.col, s.err
}

func TestChain_FirstSuccessWins(t *testing.T) {
	want := geo.BBoxPolygon("A", nganjukBounds)
	chain := NewChain(0,
		&stubSource{name: "a", col: want},
		&stubSource{name: "b", err: eris.New("unreachable")},
	)

	col, source, err := chain.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", source)
	assert.Same(t, want, col)
}

func TestChain_FallsThroughFailures(t *testing.T) {
	want := geo.BBoxPolygon("C", nganjukBounds)
	chain := NewChain(0,
		&stubSource{name: "a", err: eris.New("down")},
		&stubSource{name: "b", col: &geo.Collection{}}, // no features
		&stubSource{name: "c", col: want},
	)

	col, source, err := chain.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "c", source)
	assert.Same(t, want, col)
}

func TestChain_AllExhausted(t *testing.T) {
	chain := NewChain(0, &stubSource{name: "a", err: eris.New("down")})
	_, _, err := chain.Resolve(context.Background())
	assert.Error(t, err)
}

func TestChain_FallbackNeverFails(t *testing.T) {
	chain := NewChain(0,
		&stubSource{name: "a", err: eris.New("down")},
		&Fallback{DistrictName: "NGANJUK", Bounds: nganjukBounds},
	)

	col, source, err := chain.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fallback-bbox", source)
	require.Len(t, col.Features, 1)
	assert.Equal(t, "NGANJUK", col.Features[0].Name)
}

type stubGetter struct {
	data []byte
	err  error
}

func (g *stubGetter) Get(_ context.Context, _ string) ([]byte, error) {
	return g.data, g.err
}

func TestStaticURL_ParsesGeoJSON(t *testing.T) {
	body := []byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"Berbek"},"geometry":{"type":"Polygon","coordinates":[[[111.8,-7.6],[111.9,-7.6],[111.9,-7.5],[111.8,-7.6]]]}}]}`)
	src := &StaticURL{URL: "https://example.test/nganjuk.geojson", Client: &stubGetter{data: body}}

	col, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, col.Features, 1)
	assert.Equal(t, "Berbek", col.Features[0].Name)
}

func TestStaticURL_FetchError(t *testing.T) {
	src := &StaticURL{URL: "https://example.test/x", Client: &stubGetter{err: eris.New("timeout")}}
	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
