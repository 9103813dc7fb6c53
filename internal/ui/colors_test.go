package ui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextColorFor(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want color.NRGBA
	}{
		{"white", "#ffffff", DarkText},
		{"yellow", "#fde047", DarkText},
		{"navy", "#0f172a", LightText},
		{"purple", "#5b21b6", LightText},
		{"invalid falls back to dark default", "nope", LightText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textColorFor(tt.hex))
		})
	}
}

func TestBorderColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 118, G: 118, B: 118, A: 0xff}, borderColor("rgb(118, 118, 118)", "#000000"))
	assert.Equal(t, color.NRGBA{R: 118, G: 118, B: 118, A: 0xff}, borderColor("garbage", "#646464"))
	assert.Equal(t, color.NRGBA{R: 118, G: 118, B: 118, A: 0xff}, borderColor("rgb(1, 2)", "#646464"))
	assert.Equal(t, color.NRGBA{R: 118, G: 118, B: 118, A: 0xff}, borderColor("rgb(1, 2, 300)", "#646464"))
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		duration  float64
		playing   bool
		want      float64
	}{
		{"stopped", 5, 10, false, 0},
		{"half", 5, 10, true, 0.5},
		{"no duration", 5, 0, true, 0},
		{"overflow", 12, 10, true, 1},
		{"negative", -1, 10, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, progressFraction(tt.remaining, tt.duration, tt.playing), 1e-9)
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "Aplausos", truncateRunes("Aplausos", 10))
	assert.Equal(t, "Ñandú ca…", truncateRunes("Ñandú canta fuerte", 9))
}
