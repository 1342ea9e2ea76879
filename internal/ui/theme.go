// Package ui provides the SpritePack desktop application.
//
// This file defines a compact Fyne theme with a switchable light/dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/piwi3910/SpritePack/internal/model"
)

// SpritePackTheme wraps the default Fyne theme with compact sizing and a
// variant chosen from the app config instead of the OS.
type SpritePackTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewSpritePackTheme creates a theme following the configured theme name.
func NewSpritePackTheme(name string) *SpritePackTheme {
	t := &SpritePackTheme{base: theme.DefaultTheme()}
	t.SetThemeName(name)
	return t
}

// SetThemeName switches between model.ThemeLight, model.ThemeDark and
// model.ThemeSystem.
func (t *SpritePackTheme) SetThemeName(name string) {
	switch name {
	case model.ThemeDark:
		t.variant, t.system = theme.VariantDark, false
	case model.ThemeLight:
		t.variant, t.system = theme.VariantLight, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme, forcing the stored variant unless the
// theme follows the system.
func (t *SpritePackTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

func (t *SpritePackTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *SpritePackTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *SpritePackTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}

// nextThemeName cycles system -> light -> dark -> system.
func nextThemeName(name string) string {
	switch name {
	case model.ThemeLight:
		return model.ThemeDark
	case model.ThemeDark:
		return model.ThemeSystem
	default:
		return model.ThemeLight
	}
}
