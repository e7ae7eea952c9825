package boundary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/bps-nganjuk/tagmap/internal/geo"
)

// overpassQueryTemplate selects administrative relations inside the named
// district area and emits full way geometry.
const overpassQueryTemplate = `[out:json][timeout:25];
area["name"="%s"]["boundary"="administrative"]->.searchArea;
relation["admin_level"="%d"](area.searchArea);
out body;
>;
out geom;`

// Overpass assembles sub-district polygons from an Overpass API endpoint.
// Relations are administrative boundaries; their outer member ways are
// closed into rings, one polygon per ring.
type Overpass struct {
	Endpoint   string
	AreaName   string // e.g. "Kabupaten Nganjuk"
	AdminLevel int    // 6 for kecamatan in OSM's Indonesia mapping
	Client     interface {
		Post(ctx context.Context, url, body string) ([]byte, error)
	}
}

type overpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassMember struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Geometry []overpassPoint   `json:"geometry"`
	Members  []overpassMember  `json:"members"`
	Tags     map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

func (o *Overpass) Name() string { return "overpass:" + o.Endpoint }

func (o *Overpass) Fetch(ctx context.Context) (*geo.Collection, error) {
	level := o.AdminLevel
	if level == 0 {
		level = 6
	}
	query := fmt.Sprintf(overpassQueryTemplate, o.AreaName, level)

	data, err := o.Client.Post(ctx, o.Endpoint, "data="+url.QueryEscape(query))
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: overpass query %s", o.Endpoint)
	}

	var resp overpassResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, eris.Wrap(err, "boundary: decode overpass response")
	}

	return assembleOverpass(resp), nil
}

// assembleOverpass mirrors the relation/way stitching of the boundary
// layer: outer (or role-less) member ways become closed rings, each ring
// its own polygon, multiple rings a MultiPolygon.
func assembleOverpass(resp overpassResponse) *geo.Collection {
	ways := make(map[int64][]geom.Coord)
	var relations []overpassElement
	for _, el := range resp.Elements {
		switch el.Type {
		case "way":
			if len(el.Geometry) == 0 {
				continue
			}
			coords := make([]geom.Coord, 0, len(el.Geometry))
			for _, pt := range el.Geometry {
				coords = append(coords, geom.Coord{pt.Lon, pt.Lat})
			}
			ways[el.ID] = coords
		case "relation":
			relations = append(relations, el)
		}
	}

	col := &geo.Collection{}
	for _, rel := range relations {
		var rings [][]geom.Coord
		for _, m := range rel.Members {
			if m.Type != "way" || (m.Role != "outer" && m.Role != "") {
				continue
			}
			ring, ok := ways[m.Ref]
			if !ok || len(ring) == 0 {
				continue
			}
			closed := closeRing(ring)
			rings = append(rings, closed)
		}
		if len(rings) == 0 {
			continue
		}

		var g geom.T
		if len(rings) == 1 {
			g = polygonFromRing(rings[0])
		} else {
			mp := geom.NewMultiPolygon(geom.XY)
			for _, ring := range rings {
				_ = mp.Push(polygonFromRing(ring))
			}
			g = mp
		}

		props := make(map[string]any, len(rel.Tags))
		for k, v := range rel.Tags {
			props[k] = v
		}
		col.Features = append(col.Features, geo.Feature{
			Name:       geo.DisplayName(props),
			Geometry:   g,
			Properties: props,
		})
	}
	return col
}

func closeRing(ring []geom.Coord) []geom.Coord {
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		ring = append(ring, first)
	}
	return ring
}

func polygonFromRing(ring []geom.Coord) *geom.Polygon {
	poly := geom.NewPolygon(geom.XY)
	_ = poly.Push(geom.NewLinearRing(geom.XY).MustSetCoords(ring))
	return poly
}
