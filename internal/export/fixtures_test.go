package export

import (
	"time"

	"github.com/piwi3910/SpritePack/internal/model"
)

// buildTestResult returns a small packed atlas with one rejected image.
func buildTestResult() (model.PackResult, model.AtlasConfig, []model.ImageEntry) {
	mod := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []model.ImageEntry{
		{ID: "/art/hero_idle.png", Name: "hero_idle", Width: 64, Height: 64, ByteSize: 2048, ModifiedAt: mod},
		{ID: "/art/hero_walk.png", Name: "hero_walk", Width: 128, Height: 64, ByteSize: 4096, ModifiedAt: mod},
		{ID: "/art/coin.png", Name: "coin", Width: 16, Height: 16, ByteSize: 300, ModifiedAt: mod},
		{ID: "/art/backdrop.png", Name: "backdrop", Width: 512, Height: 300, ByteSize: 90000, ModifiedAt: mod},
	}
	cfg := model.AtlasConfig{Width: 256, Height: 256, Padding: 2, Sort: model.SortCustom}
	result := model.PackResult{
		Placed: []model.PlacedRect{
			{X: 2, Y: 2, Width: 64, Height: 64, SourceID: "/art/hero_idle.png"},
			{X: 70, Y: 2, Width: 128, Height: 64, SourceID: "/art/hero_walk.png"},
			{X: 202, Y: 2, Width: 16, Height: 16, SourceID: "/art/coin.png"},
		},
		Rejected: []string{"/art/backdrop.png"},
	}
	return result, cfg, entries
}
