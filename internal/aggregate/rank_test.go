package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bps-nganjuk/tagmap/internal/registry"
	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

func TestRank_Descending(t *testing.T) {
	rows := []rowset.Row{
		taggingRow("Bendungrejo", "Berbek"),
		taggingRow("Sonopatik", "Berbek"),
		taggingRow("Sonopatik", "Berbek"),
	}
	res := Run(rows, emptyRegistry(), emptyIndex(), nganjuk)
	ranked := Rank(res.Records, Descending)

	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Sonopatik", ranked[0].Village)
	assert.Equal(t, 2, ranked[0].Count)
	assert.Equal(t, "Bendungrejo", ranked[1].Village)
}

func TestRank_Ascending(t *testing.T) {
	rows := []rowset.Row{
		taggingRow("Sonopatik", "Berbek"),
		taggingRow("Sonopatik", "Berbek"),
		taggingRow("Bendungrejo", "Berbek"),
	}
	res := Run(rows, emptyRegistry(), emptyIndex(), nganjuk)
	ranked := Rank(res.Records, Ascending)

	assert.Equal(t, "Bendungrejo", ranked[0].Village)
	assert.Equal(t, "Sonopatik", ranked[1].Village)
}

func TestRank_TiesKeepFirstEncounteredOrder(t *testing.T) {
	rows := []rowset.Row{
		taggingRow("Candirejo", "Loceret"),
		taggingRow("Warujayeng", "Tanjunganom"),
		taggingRow("Ngetos", "Ngetos"),
	}
	res := Run(rows, emptyRegistry(), emptyIndex(), nganjuk)
	ranked := Rank(res.Records, Descending)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Candirejo", ranked[0].Village)
	assert.Equal(t, "Warujayeng", ranked[1].Village)
	assert.Equal(t, "Ngetos", ranked[2].Village)
}

func TestFilter(t *testing.T) {
	rows := []rowset.Row{
		taggingRow("Sonopatik", "Berbek"),
		taggingRow("Sumberagung", "Gondang"),
	}
	res := Run(rows, emptyRegistry(), emptyIndex(), nganjuk)

	assert.Len(t, Filter(res.Records, "sono"), 1)
	assert.Len(t, Filter(res.Records, "SUMBER"), 1)
	assert.Len(t, Filter(res.Records, ""), 2)
	assert.Len(t, Filter(res.Records, "zzz"), 0)
}

func TestZeroCount(t *testing.T) {
	reg := registry.Load([]rowset.Row{
		rowset.NewRow(
			[]string{"id_desa", "nama_kecamatan", "nama_desa"},
			[]string{"3518056007", "Berbek", "Sonopatik"},
		),
		rowset.NewRow(
			[]string{"id_desa", "nama_kecamatan", "nama_desa"},
			[]string{"3518056008", "Berbek", "Bendungrejo"},
		),
	})
	rows := []rowset.Row{taggingRow("Desa SONOPATIK", "Berbek")}
	res := Run(rows, reg, registry.BuildWorkloadIndex(reg), nganjuk)

	zero := ZeroCount(res, reg)
	require.Len(t, zero, 1)
	assert.Equal(t, "Bendungrejo", zero[0].Village)
	assert.Equal(t, "Berbek", zero[0].SubDistrict)
}

func TestZeroCount_NilRegistry(t *testing.T) {
	assert.Nil(t, ZeroCount(Result{}, nil))
}
