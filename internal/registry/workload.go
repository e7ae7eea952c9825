package registry

import "github.com/bps-nganjuk/tagmap/internal/resolve"

// WorkloadIndex resolves expected workload ("muatan") figures by name keys.
// Lookup tries the compound (sub-district + village) key first and falls
// back to the village-only key; when both levels carry different values the
// compound entry wins.
type WorkloadIndex struct {
	byCompound map[string]float64
	byVillage  map[string]float64
}

// BuildWorkloadIndex derives the two-level workload index from a registry.
// Records without a parsable workload figure are excluded; the compound
// index additionally requires a non-empty sub-district name. The index is
// immutable once built and is rebuilt wholesale on registry change.
func BuildWorkloadIndex(reg *Registry) *WorkloadIndex {
	idx := &WorkloadIndex{
		byCompound: make(map[string]float64),
		byVillage:  make(map[string]float64),
	}
	if reg == nil {
		return idx
	}
	for _, rec := range reg.Records() {
		if rec.Workload == nil || rec.Village == "" {
			continue
		}
		villageKey := resolve.VillageKey(rec.Village)
		if villageKey == "" {
			continue
		}
		idx.byVillage[villageKey] = *rec.Workload
		if rec.SubDistrict != "" {
			idx.byCompound[resolve.CompoundKey(rec.SubDistrict, rec.Village)] = *rec.Workload
		}
	}
	return idx
}

// Lookup returns the workload for a village under a sub-district, preferring
// the compound entry. ok is false when neither level has an entry.
func (idx *WorkloadIndex) Lookup(subDistrict, village string) (float64, bool) {
	if idx == nil {
		return 0, false
	}
	if subDistrict != "" {
		if w, ok := idx.byCompound[resolve.CompoundKey(subDistrict, village)]; ok {
			return w, true
		}
	}
	w, ok := idx.byVillage[resolve.VillageKey(village)]
	return w, ok
}

// Size reports the entry counts of both index levels.
func (idx *WorkloadIndex) Size() (compound, village int) {
	if idx == nil {
		return 0, 0
	}
	return len(idx.byCompound), len(idx.byVillage)
}
