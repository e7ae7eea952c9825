package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bps-nganjuk/tagmap/internal/aggregate"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "tagmap.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func pctPtr(v float64) *float64 { return &v }

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.SaveRun(ctx, Run{
		SourceFile:     "tagging_maret.xlsx",
		DistrictCode:   "3518",
		BoundarySource: "overpass:overpass-api.de",
		TotalRows:      120,
		Villages:       18,
		Points:         95,
		Ranked: []aggregate.RankedRow{
			{Rank: 1, SubDistrict: "Berbek", Village: "Sonopatik", Count: 40, Percentage: pctPtr(80)},
			{Rank: 2, SubDistrict: "Berbek", Village: "Bendungan", Count: 12},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "tagging_maret.xlsx", got.SourceFile)
	assert.Equal(t, "overpass:overpass-api.de", got.BoundarySource)
	assert.Equal(t, 120, got.TotalRows)
	require.Len(t, got.Ranked, 2)
	assert.Equal(t, "Sonopatik", got.Ranked[0].Village)
	require.NotNil(t, got.Ranked[0].Percentage)
	assert.InDelta(t, 80, *got.Ranked[0].Percentage, 1e-9)
	assert.Nil(t, got.Ranked[1].Percentage)
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLatestRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRun(ctx, Run{SourceFile: "old.xlsx", DistrictCode: "3518", TotalRows: 10})
	require.NoError(t, err)
	_, err = s.SaveRun(ctx, Run{SourceFile: "other.xlsx", DistrictCode: "3519", TotalRows: 5})
	require.NoError(t, err)
	newest, err := s.SaveRun(ctx, Run{SourceFile: "new.xlsx", DistrictCode: "3518", TotalRows: 20})
	require.NoError(t, err)

	got, err := s.LatestRun(ctx, "3518")
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)
	assert.Equal(t, "new.xlsx", got.SourceFile)
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.xlsx", "b.xlsx", "c.xlsx"} {
		_, err := s.SaveRun(ctx, Run{SourceFile: name, DistrictCode: "3518"})
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c.xlsx", runs[0].SourceFile)
	assert.Equal(t, "a.xlsx", runs[2].SourceFile)

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEmptyRankedRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.SaveRun(ctx, Run{SourceFile: "empty.xlsx", DistrictCode: "3518"})
	require.NoError(t, err)

	got, err := s.GetRun(ctx, saved.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ranked)
}
