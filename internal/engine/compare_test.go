package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SpritePack/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.AtlasConfig{Width: 1024, Height: 1024, Padding: 2, Sort: model.SortNameAsc}
	scenarios := BuildDefaultScenarios(base)

	// current + 5 other non-custom sorts + next size
	require.Len(t, scenarios, 7)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Config)

	last := scenarios[len(scenarios)-1]
	assert.Equal(t, 2048, last.Config.Width)
	assert.Equal(t, 1024, last.Config.Height)

	for _, s := range scenarios[1 : len(scenarios)-1] {
		assert.NotEqual(t, model.SortCustom, s.Config.Sort)
		assert.NotEqual(t, base.Sort, s.Config.Sort)
	}
}

func TestBuildDefaultScenarios_LargestSizeHasNoGrowth(t *testing.T) {
	base := model.AtlasConfig{Width: 8192, Height: 8192, Sort: model.SortCustom}
	scenarios := BuildDefaultScenarios(base)

	// current + all six sorted methods, no larger size
	assert.Len(t, scenarios, 7)
	for _, s := range scenarios {
		assert.Equal(t, 8192, s.Config.Width)
	}
}

func TestCompareScenarios(t *testing.T) {
	entries := []model.ImageEntry{
		{ID: "a", Name: "a", Width: 60, Height: 60, ByteSize: 3},
		{ID: "b", Name: "b", Width: 60, Height: 60, ByteSize: 2},
		{ID: "c", Name: "c", Width: 60, Height: 60, ByteSize: 1},
	}
	scenarios := []ComparisonScenario{
		{Name: "small", Config: model.AtlasConfig{Width: 128, Height: 64, Sort: model.SortNameAsc}},
		{Name: "large", Config: model.AtlasConfig{Width: 256, Height: 128, Sort: model.SortSizeAsc}},
		{Name: "broken", Config: model.AtlasConfig{Width: 0, Height: 64}},
	}

	results := CompareScenarios(scenarios, entries)

	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].PlacedCount)
	assert.Equal(t, 1, results[0].RejectedCount)
	assert.Equal(t, []string{"c"}, results[0].Result.Rejected)

	assert.Equal(t, 3, results[1].PlacedCount)
	assert.Equal(t, "c", results[1].Result.Placed[0].SourceID, "size-asc puts the smallest file first")
	assert.InDelta(t, 10800.0/32768.0*100, results[1].Efficiency, 1e-9)

	assert.ErrorIs(t, results[2].Err, model.ErrInvalidConfig)

	assert.Equal(t, 1, BestScenario(results))
}

func TestBestScenario_AllFailed(t *testing.T) {
	results := []ComparisonResult{{Err: model.ErrInvalidConfig}}
	assert.Equal(t, -1, BestScenario(results))
	assert.Equal(t, -1, BestScenario(nil))
}

func TestSmallestFit(t *testing.T) {
	var entries []model.ImageEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, model.ImageEntry{ID: string(rune('a' + i)), Name: string(rune('a' + i)), Width: 100, Height: 100})
	}
	base := model.AtlasConfig{Width: 64, Height: 64, Padding: 0, Sort: model.SortNameAsc}

	cfg, result, ok := SmallestFit(entries, base, model.AtlasSizes)

	require.True(t, ok)
	// 8 sprites of 100x100: 512x256 holds 5x2 = 10.
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 256, cfg.Height)
	assert.Len(t, result.Placed, 8)
	assert.Empty(t, result.Rejected)
}

func TestSmallestFit_NothingFits(t *testing.T) {
	entries := []model.ImageEntry{{ID: "huge", Name: "huge", Width: 9000, Height: 10}}
	base := model.DefaultAtlasConfig()

	cfg, _, ok := SmallestFit(entries, base, model.AtlasSizes)

	assert.False(t, ok)
	assert.Equal(t, base, cfg)
}
