package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Accent used for primary buttons and the selection outline.
var accentColor = color.NRGBA{R: 0x8c, G: 0x5a, B: 0x2b, A: 0xff}

// ShopTheme wraps the default Fyne theme with compact sizing, a warm accent
// and an optional forced light/dark variant.
type ShopTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	forced  bool
}

// NewShopTheme creates a theme for an AppConfig theme name: "light",
// "dark", or anything else for the system default.
func NewShopTheme(name string) *ShopTheme {
	t := &ShopTheme{base: theme.DefaultTheme()}
	t.SetVariantName(name)
	return t
}

// SetVariantName switches between light, dark and system.
func (t *ShopTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.forced = theme.VariantLight, true
	case "dark":
		t.variant, t.forced = theme.VariantDark, true
	default:
		t.forced = false
	}
}

func (t *ShopTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.forced {
		variant = t.variant
	}
	if name == theme.ColorNamePrimary {
		return accentColor
	}
	return t.base.Color(name, variant)
}

func (t *ShopTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *ShopTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for the dense form panel.
func (t *ShopTheme) Size(name fyne.ThemeSizeName) float32 {
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
	default:
		return t.base.Size(name)
	}
}
