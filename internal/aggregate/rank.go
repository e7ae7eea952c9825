package aggregate

import (
	"sort"
	"strings"

	"github.com/bps-nganjuk/tagmap/internal/registry"
	"github.com/bps-nganjuk/tagmap/internal/resolve"
)

// Order selects the presentation sort direction for ranked output.
type Order string

const (
	// Descending ranks the busiest villages first. Default.
	Descending Order = "desc"
	// Ascending ranks the quietest villages first.
	Ascending Order = "asc"
)

// RankedRow is one line of the export table.
type RankedRow struct {
	Rank        int
	SubDistrict string
	Village     string
	Count       int
	Percentage  *float64
}

// Rank sorts records by count in the requested order and assigns 1-based
// ranks. Ties keep first-encountered input order, so equal counts rank in
// the order their villages first appeared in the upload.
func Rank(records []Record, order Order) []RankedRow {
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			if order == Ascending {
				return sorted[i].Count < sorted[j].Count
			}
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].seq < sorted[j].seq
	})

	out := make([]RankedRow, len(sorted))
	for i, rec := range sorted {
		out[i] = RankedRow{
			Rank:        i + 1,
			SubDistrict: rec.SubDistrict,
			Village:     rec.Village,
			Count:       rec.Count,
			Percentage:  rec.Percentage,
		}
	}
	return out
}

// Filter keeps records whose village display name contains the filter text,
// case-insensitively. An empty filter keeps everything.
func Filter(records []Record, text string) []Record {
	if text == "" {
		return records
	}
	needle := strings.ToLower(text)
	var out []Record
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Village), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// ZeroCount lists registry villages that received no tagging rows, in
// registry load order. Matching uses normalized keys so display-casing
// differences between the registry and the upload do not hide coverage.
func ZeroCount(res Result, reg *registry.Registry) []Record {
	if reg == nil {
		return nil
	}
	tagged := make(map[string]bool, len(res.Records))
	for _, rec := range res.Records {
		tagged[resolve.VillageKey(rec.Village)] = true
	}

	var out []Record
	seen := make(map[string]bool)
	for _, rec := range reg.Records() {
		if rec.Village == "" {
			continue
		}
		key := resolve.VillageKey(rec.Village)
		if key == "" || tagged[key] || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Record{
			Village:     rec.Village,
			SubDistrict: rec.SubDistrict,
		})
	}
	return out
}
