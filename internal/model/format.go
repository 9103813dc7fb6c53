package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Border color derivation
const (
	borderBrightness = 1.18
	maxChannel       = 255
)

// fallback channels used when a color cannot be parsed
var fallbackRGB = [3]uint8{68, 82, 110}

// FormatTime formats seconds as mm:ss. Negative or non-finite values give "00:00".
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "00:00"
	}
	minutes := int(math.Floor(seconds / 60))
	rest := int(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d", minutes, rest)
}

// ParseHexColor parses "#rrggbb" (the leading # is optional)
func ParseHexColor(hex string) (r, g, b uint8, ok bool) {
	clean := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(clean) < 6 {
		return 0, 0, 0, false
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(clean[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = uint8(v)
	}
	return channels[0], channels[1], channels[2], true
}

// RGB returns the channels of a hex color, or a neutral slate when the color
// cannot be parsed.
func RGB(hex string) (r, g, b uint8) {
	r, g, b, ok := ParseHexColor(hex)
	if !ok {
		return fallbackRGB[0], fallbackRGB[1], fallbackRGB[2]
	}
	return r, g, b
}

// BorderColor brightens each channel of a hex color and returns it as rgb(r, g, b)
func BorderColor(hex string) string {
	r, g, b := RGB(hex)
	brighten := func(v uint8) int {
		return int(math.Min(maxChannel, math.Round(float64(v)*borderBrightness)))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", brighten(r), brighten(g), brighten(b))
}

// StripExtension removes the extension from a file name. Names whose only dot
// is the first character (".hidden") are kept as is.
func StripExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name
	}
	return name[:idx]
}
