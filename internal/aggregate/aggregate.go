// Package aggregate folds resolved tagging rows into per-village counts and
// coverage percentages. Every recomputation is a whole pass over the row
// set; nothing is patched incrementally.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/bps-nganjuk/tagmap/internal/registry"
	"github.com/bps-nganjuk/tagmap/internal/resolve"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// Record summarizes one village.
type Record struct {
	Village     string   // display name, first-seen casing
	SubDistrict string   // display name, may be empty
	Count       int      // rows resolved to this village
	Workload    float64  // expected workload, 0 when unknown
	Percentage  *float64 // coverage; nil only when no denominator exists
	seq         int      // first-encountered order, for stable tie-breaks
}

// Seq returns the record's first-encountered sequence number.
func (r Record) Seq() int { return r.seq }

// Result is the output of one aggregation pass.
type Result struct {
	Records   []Record // first-encountered order; sorting is presentation
	TotalRows int      // rows that passed the district filter
	Points    []rowset.Point
}

// Run aggregates rows against the registry and workload index. Rows failing
// the district filter are dropped before resolution; rows with no resolvable
// village name are excluded from counting entirely. Coordinates that parse
// to valid WGS84 values become Points regardless of whether the village name
// resolved.
func Run(rows []rowset.Row, reg *registry.Registry, idx *registry.WorkloadIndex, profile resolve.DistrictProfile) Result {
	counts := make(map[string]*Record)
	var order []string

	res := Result{}
	for i, row := range rows {
		if !resolve.InDistrict(row, profile) {
			continue
		}
		res.TotalRows++

		entity, ok := resolve.Resolve(row, reg)
		if ok {
			key := resolve.VillageKey(entity.Village)
			rec, seen := counts[key]
			if !seen {
				rec = &Record{
					Village:     entity.Village,
					SubDistrict: entity.SubDistrict,
					seq:         len(order),
				}
				counts[key] = rec
				order = append(order, key)
			}
			rec.Count++
			if rec.SubDistrict == "" && entity.SubDistrict != "" {
				rec.SubDistrict = entity.SubDistrict
			}
		}

		if lat, lon, valid := rowset.Coordinates(row); valid {
			label := strings.TrimSpace(entity.Village)
			if label == "" {
				label = "-"
			}
			res.Points = append(res.Points, rowset.Point{
				ID:      fmt.Sprintf("%d-%s", i, label),
				Village: label,
				Lat:     lat,
				Lon:     lon,
				Row:     row,
			})
		}
	}

	for _, key := range order {
		rec := counts[key]
		if w, ok := idx.Lookup(rec.SubDistrict, rec.Village); ok && w > 0 {
			rec.Workload = w
			pct := 100 * float64(rec.Count) / w
			rec.Percentage = &pct
		} else if res.TotalRows > 0 {
			pct := 100 * float64(rec.Count) / float64(res.TotalRows)
			rec.Percentage = &pct
		}
		res.Records = append(res.Records, *rec)
	}
	return res
}

// Stats carries the headline numbers shown alongside the table.
type Stats struct {
	Villages   int
	TotalCount int
	MeanCount  float64
	MaxCount   int
}

// Summarize computes headline statistics for a result.
func Summarize(res Result) Stats {
	s := Stats{Villages: len(res.Records)}
	for _, rec := range res.Records {
		s.TotalCount += rec.Count
		if rec.Count > s.MaxCount {
			s.MaxCount = rec.Count
		}
	}
	if s.Villages > 0 {
		s.MeanCount = float64(s.TotalCount) / float64(s.Villages)
	}
	return s
}
