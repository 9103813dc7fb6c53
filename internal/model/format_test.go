package model

import (
	"math"
	"strings"
	"testing"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00"},
		{75, "01:15"},
		{59.9, "00:59"},
		{3600, "60:00"},
		{-1, "00:00"},
		{math.NaN(), "00:00"},
		{math.Inf(1), "00:00"},
		{math.Inf(-1), "00:00"},
	}

	for _, test := range tests {
		result := FormatTime(test.seconds)
		if result != test.expected {
			t.Errorf("FormatTime(%v) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}

func TestBorderColor(t *testing.T) {
	for _, base := range Palette {
		border := BorderColor(base)
		if border == base {
			t.Errorf("BorderColor(%s) should differ from its input", base)
		}
		if !strings.HasPrefix(border, "rgb(") || !strings.HasSuffix(border, ")") {
			t.Errorf("BorderColor(%s) = %s, expected rgb(...) triple", base, border)
		}
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"#000000", "rgb(0, 0, 0)"},
		{"#ffffff", "rgb(255, 255, 255)"},
		{"#646464", "rgb(118, 118, 118)"},
		{"bad", "rgb(80, 97, 130)"},
	}
	for _, test := range tests {
		result := BorderColor(test.input)
		if result != test.expected {
			t.Errorf("BorderColor(%s) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestStripExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"applause.wav", "applause"},
		{"my.song.final.mp3", "my.song.final"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
		{"", ""},
	}

	for _, test := range tests {
		result := StripExtension(test.input)
		if result != test.expected {
			t.Errorf("StripExtension(%s) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b, ok := ParseHexColor("#fb923c")
	if !ok || r != 0xfb || g != 0x92 || b != 0x3c {
		t.Errorf("ParseHexColor(#fb923c) = %d %d %d %v", r, g, b, ok)
	}
	if _, _, _, ok := ParseHexColor("#12"); ok {
		t.Error("Short color should not parse")
	}
	if _, _, _, ok := ParseHexColor("#zzzzzz"); ok {
		t.Error("Non-hex color should not parse")
	}
}
