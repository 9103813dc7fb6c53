package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SoundboardTheme is a dark, compact theme suited to a stage console
type SoundboardTheme struct{}

// NewSoundboardTheme creates the application theme
func NewSoundboardTheme() fyne.Theme {
	return &SoundboardTheme{}
}

// Color returns theme colors
func (t *SoundboardTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	case theme.ColorNameForeground:
		return LightText
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	case theme.ColorNameWarning:
		return WarningText
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	}

	// dark variant of the default theme for everything else
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *SoundboardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *SoundboardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *SoundboardTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 10
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 4
	case theme.SizeNameSelectionRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
