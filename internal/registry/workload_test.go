package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

func TestBuildWorkloadIndex_Levels(t *testing.T) {
	reg := Load([]rowset.Row{
		registryRow("3518056007", "Berbek", "Sonopatik", "120"),
		registryRow("3518070003", "", "Prambon", "40"),
		registryRow("3518056008", "Berbek", "Bendungrejo", ""),
	})
	idx := BuildWorkloadIndex(reg)
	compound, village := idx.Size()
	// Prambon has no sub-district and only lands in the village level;
	// Bendungrejo has no workload at all.
	assert.Equal(t, 1, compound)
	assert.Equal(t, 2, village)
}

func TestLookup_CompoundWins(t *testing.T) {
	// Same village name under two sub-districts with different workloads.
	reg := Load([]rowset.Row{
		registryRow("3518056007", "Berbek", "Kepuh", "100"),
		registryRow("3518070003", "Prambon", "Kepuh", "30"),
	})
	idx := BuildWorkloadIndex(reg)

	w, ok := idx.Lookup("Prambon", "Kepuh")
	require.True(t, ok)
	assert.Equal(t, 30.0, w)
}

func TestLookup_VillageFallback(t *testing.T) {
	reg := Load([]rowset.Row{
		registryRow("3518056007", "Berbek", "Sonopatik", "120"),
	})
	idx := BuildWorkloadIndex(reg)

	// Unknown sub-district falls through to the village-only level.
	w, ok := idx.Lookup("Ngronggot", "Sonopatik")
	require.True(t, ok)
	assert.Equal(t, 120.0, w)
}

func TestLookup_NormalizedKeys(t *testing.T) {
	reg := Load([]rowset.Row{
		registryRow("3518056007", "Berbek", "Sonopatik", "120"),
	})
	idx := BuildWorkloadIndex(reg)

	w, ok := idx.Lookup("berbek", "[007] Desa SONOPATIK")
	require.True(t, ok)
	assert.Equal(t, 120.0, w)
}

func TestLookup_Miss(t *testing.T) {
	idx := BuildWorkloadIndex(Load(nil))
	_, ok := idx.Lookup("Berbek", "Sonopatik")
	assert.False(t, ok)
}
