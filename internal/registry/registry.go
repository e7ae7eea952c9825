// Package registry holds the authoritative village list ("daftar desa"):
// 10-digit administrative codes mapped to canonical names and expected
// workload figures. A registry is built once per load and never mutated; a
// new upload replaces it wholesale.
package registry

import (
	"strings"

	"github.com/bps-nganjuk/tagmap/internal/resolve"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// Record is one authoritative registry entry.
type Record struct {
	Code        string
	Village     string
	SubDistrict string
	Workload    *float64
	Row         rowset.Row
}

// Registry indexes records by their 10-digit administrative code.
type Registry struct {
	byCode map[string]Record
	order  []string
}

// Load builds a registry from decoded rows. Records without a recoverable
// 10-digit identifier are dropped silently; the caller only learns the
// resulting size. Duplicate codes keep the last occurrence, matching the
// source workbook's own override behavior.
func Load(rows []rowset.Row) *Registry {
	reg := &Registry{byCode: make(map[string]Record, len(rows))}
	for _, r := range rows {
		id, ok := resolve.RegistryID(r)
		if !ok {
			continue
		}
		village, _ := r.Lookup(rowset.RegistryVillageColumns)
		subDistrict, _ := r.Lookup(rowset.RegistrySubDistrictColumns)
		var workload *float64
		if raw, found := r.Lookup(rowset.RegistryWorkloadColumns); found {
			workload = rowset.ParseNumber(raw)
		}
		if _, exists := reg.byCode[id]; !exists {
			reg.order = append(reg.order, id)
		}
		reg.byCode[id] = Record{
			Code:        id,
			Village:     strings.TrimSpace(village),
			SubDistrict: strings.TrimSpace(subDistrict),
			Workload:    workload,
			Row:         r,
		}
	}
	return reg
}

// Len reports the number of registry records.
func (g *Registry) Len() int {
	if g == nil {
		return 0
	}
	return len(g.byCode)
}

// Get returns the record for a code.
func (g *Registry) Get(code string) (Record, bool) {
	if g == nil {
		return Record{}, false
	}
	rec, ok := g.byCode[code]
	return rec, ok
}

// Canonical implements resolve.RegistryLookup.
func (g *Registry) Canonical(code string) (village, subDistrict string, ok bool) {
	rec, found := g.Get(code)
	if !found {
		return "", "", false
	}
	return rec.Village, rec.SubDistrict, true
}

// Records returns all records in load order.
func (g *Registry) Records() []Record {
	if g == nil {
		return nil
	}
	out := make([]Record, 0, len(g.order))
	for _, code := range g.order {
		out = append(out, g.byCode[code])
	}
	return out
}
