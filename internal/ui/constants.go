package ui

import "image/color"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconAdd      = "＋"
	IconClose    = "×"
	IconLeft     = "‹"
	IconRight    = "›"
	IconWarning  = "⚠"

	IconDucking = "🦆"
	IconLoop    = "↻"
	IconRestart = "↩"
	IconColor   = "🎨"
	IconFadeIn  = "⤴"
	IconFadeOut = "⤵"
)

// Text fragments
const (
	RemainingPrefix = "-"
)

// Layout sizing
const (
	TabScrollStep float32 = 150
	TabBarHeight  float32 = 40

	TileMinWidth     float32 = 120
	TileMinHeight    float32 = 110
	TileCornerRadius float32 = 10
	TileBorderWidth  float32 = 3
	TileNameSize     float32 = 15
	TileInfoSize     float32 = 12

	SwatchSize    float32 = 28
	PaletteColumn         = 10

	WindowMinWidth  float32 = 720
	WindowMinHeight float32 = 480
)

// Tile text contrast
const (
	ContrastThreshold = 160
)

var (
	// DarkText is used on bright pad colors
	DarkText = color.NRGBA{R: 0x0b, G: 0x0f, B: 0x19, A: 0xff}
	// LightText is used on dark pad colors
	LightText = color.NRGBA{R: 0xf7, G: 0xf7, B: 0xfb, A: 0xff}
	// WarningText marks pads whose audio must be reloaded
	WarningText = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	// PlaceholderFill is the background of the "add pad" tile
	PlaceholderFill = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	// PlaceholderBorder outlines the "add pad" tile
	PlaceholderBorder = color.NRGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xff}
)

// Accepted file extensions for the open dialogs
var (
	AudioExtensions   = []string{".wav", ".mp3", ".ogg", ".oga"}
	ProjectExtensions = []string{".json"}
)
