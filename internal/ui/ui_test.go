package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/SpritePack/internal/model"
)

func TestNextThemeNameCycles(t *testing.T) {
	name := model.ThemeSystem
	seen := []string{}
	for i := 0; i < 3; i++ {
		name = nextThemeName(name)
		seen = append(seen, name)
	}
	assert.Equal(t, []string{model.ThemeLight, model.ThemeDark, model.ThemeSystem}, seen)
	assert.Equal(t, model.ThemeLight, nextThemeName("bogus"))
}

func TestThemeForcesVariant(t *testing.T) {
	test.NewTempApp(t)
	base := theme.DefaultTheme()

	dark := NewSpritePackTheme(model.ThemeDark)
	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))

	light := NewSpritePackTheme(model.ThemeLight)
	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantLight),
		light.Color(theme.ColorNameBackground, theme.VariantDark))

	system := NewSpritePackTheme(model.ThemeSystem)
	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantDark),
		system.Color(theme.ColorNameBackground, theme.VariantDark))

	system.SetThemeName(model.ThemeLight)
	assert.Equal(t,
		base.Color(theme.ColorNameBackground, theme.VariantLight),
		system.Color(theme.ColorNameBackground, theme.VariantDark))
}

func TestThemeCompactSizes(t *testing.T) {
	th := NewSpritePackTheme(model.ThemeSystem)
	assert.Equal(t, float32(12), th.Size(theme.SizeNameText))
	assert.Equal(t, float32(3), th.Size(theme.SizeNamePadding))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}

func TestStatusText(t *testing.T) {
	cfg := model.AtlasConfig{Width: 100, Height: 100, Padding: 2, Sort: model.SortNameAsc}
	result := model.PackResult{
		Placed:   []model.PlacedRect{{X: 2, Y: 2, Width: 10, Height: 10, SourceID: "a.png"}},
		Rejected: []string{"big.png"},
	}

	text := statusText(result, cfg, 2)
	assert.Contains(t, text, "100x100 atlas")
	assert.Contains(t, text, "placed 1 of 2 sprites")
	assert.Contains(t, text, "used 14x14")
	assert.Contains(t, text, "1 sprite(s) did not fit")

	result.Rejected = nil
	assert.NotContains(t, statusText(result, cfg, 1), "did not fit")
}

func TestContainsString(t *testing.T) {
	assert.True(t, containsString([]string{"a", "b"}, "b"))
	assert.False(t, containsString(nil, "a"))
}
