package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/minaretapp/minaret/internal/app"
)

const (
	colorNameActivePrayer fyne.ThemeColorName = "activePrayer"
)

var themeColors = map[fyne.ThemeColorName][]color.Color{
	colorNameActivePrayer: { // green
		color.RGBA{46, 125, 50, 255},
		color.RGBA{129, 199, 132, 255},
	},
}

type myTheme struct {
	mode app.ThemeChoice
}

func (ct myTheme) Color(c fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	switch ct.mode {
	case app.ThemeDark:
		v = theme.VariantDark
	case app.ThemeLight:
		v = theme.VariantLight
	}
	switch c {
	case colorNameActivePrayer:
		return themeColors[c][v]
	default:
		return theme.DefaultTheme().Color(c, v)
	}
}

func (myTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (myTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (myTheme) Size(s fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(s)
}
