package ui

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/ytget/soundboard/internal/model"
)

// padColor converts a #rrggbb pad color, falling back to the model default
func padColor(hex string) color.NRGBA {
	r, g, b := model.RGB(hex)
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// parseRGB parses the "rgb(r, g, b)" form stored as pad border
func parseRGB(css string) (color.NRGBA, bool) {
	inner, ok := strings.CutPrefix(strings.TrimSpace(css), "rgb(")
	if !ok {
		return color.NRGBA{}, false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return color.NRGBA{}, false
	}

	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return color.NRGBA{}, false
	}
	var rgb [3]uint8
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, false
		}
		rgb[i] = uint8(v)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, true
}

// borderColor returns the stored border, deriving it from base when unparsable
func borderColor(css, base string) color.NRGBA {
	if c, ok := parseRGB(css); ok {
		return c
	}
	c, _ := parseRGB(model.BorderColor(base))
	return c
}

// brightness is the perceived luminance of a color in the 0-255 range
func brightness(c color.NRGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// textColorFor picks dark text on bright pads and light text on dark ones
func textColorFor(hex string) color.NRGBA {
	if brightness(padColor(hex)) > ContrastThreshold {
		return DarkText
	}
	return LightText
}
