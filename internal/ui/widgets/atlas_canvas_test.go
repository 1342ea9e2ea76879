package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/SpritePack/internal/model"
)

func testLayout() (model.PackResult, model.AtlasConfig, []model.ImageEntry) {
	cfg := model.AtlasConfig{Width: 64, Height: 64, Padding: 2, Sort: model.SortNameAsc}
	result := model.PackResult{Placed: []model.PlacedRect{
		{X: 2, Y: 2, Width: 16, Height: 16, SourceID: "/sprites/a.png"},
		{X: 22, Y: 2, Width: 8, Height: 8, SourceID: "/sprites/b.png"},
	}}
	entries := []model.ImageEntry{
		{ID: "/sprites/a.png", Name: "a", Width: 16, Height: 16},
		{ID: "/sprites/b.png", Name: "b", Width: 8, Height: 8},
	}
	return result, cfg, entries
}

func TestFrameAtScalesByZoom(t *testing.T) {
	test.NewTempApp(t)
	result, cfg, entries := testLayout()
	ac := NewAtlasCanvas(cfg, 2)
	ac.SetAtlas(nil, result, cfg, entries)

	id, ok := ac.FrameAt(fyne.NewPos(10, 10))
	assert.True(t, ok)
	assert.Equal(t, "/sprites/a.png", id)

	id, ok = ac.FrameAt(fyne.NewPos(50, 10))
	assert.True(t, ok)
	assert.Equal(t, "/sprites/b.png", id)

	// padding gap between the two frames
	_, ok = ac.FrameAt(fyne.NewPos(39, 10))
	assert.False(t, ok)

	ac.SetZoom(1)
	_, ok = ac.FrameAt(fyne.NewPos(50, 10))
	assert.False(t, ok)
}

func TestTappedSelectsFrame(t *testing.T) {
	test.NewTempApp(t)
	result, cfg, entries := testLayout()
	ac := NewAtlasCanvas(cfg, 1)
	ac.SetAtlas(nil, result, cfg, entries)

	var got string
	ac.OnTapped = func(id string) { got = id }

	ac.Tapped(&fyne.PointEvent{Position: fyne.NewPos(25, 5)})
	assert.Equal(t, "/sprites/b.png", got)
	assert.Equal(t, "/sprites/b.png", ac.Selected)

	ac.Tapped(&fyne.PointEvent{Position: fyne.NewPos(60, 60)})
	assert.Empty(t, got)
	assert.Empty(t, ac.Selected)
}

func TestMinSizeFollowsZoom(t *testing.T) {
	test.NewTempApp(t)
	_, cfg, _ := testLayout()
	ac := NewAtlasCanvas(cfg, 0.5)
	assert.Equal(t, fyne.NewSize(32, 32), ac.MinSize())
	assert.Equal(t, float32(0.5), ac.Zoom())
}
