package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// wavHeader is the smallest prefix the content sniffer recognizes as WAV
var wavHeader = []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x02\x00\x44\xac\x00\x00\x10\xb1\x02\x00\x04\x00\x10\x00data\x00\x00\x00\x00")

func TestNormalizeMIME(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"audio/x-wav", "audio/wav"},
		{"AUDIO/MPEG", "audio/mpeg"},
		{"audio/mp3", "audio/mpeg"},
		{"audio/ogg; codecs=vorbis", "audio/ogg"},
		{"application/ogg", "audio/ogg"},
		{" text/plain ", "text/plain"},
		{"", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, NormalizeMIME(test.input), "NormalizeMIME(%q)", test.input)
	}
}

func TestIsAudioMIME(t *testing.T) {
	assert.True(t, IsAudioMIME("audio/wav"))
	assert.True(t, IsAudioMIME("Audio/Mpeg"))
	assert.True(t, IsAudioMIME("application/ogg"))
	assert.False(t, IsAudioMIME("text/plain"))
	assert.False(t, IsAudioMIME("image/png"))
	assert.False(t, IsAudioMIME(""))
}

func TestDetectAudioMIME(t *testing.T) {
	assert.Equal(t, "audio/wav", DetectAudioMIME("clip.bin", wavHeader))
	assert.Equal(t, "audio/mpeg", DetectAudioMIME("song.MP3", nil))
	assert.Equal(t, "audio/ogg", DetectAudioMIME("loop.ogg", []byte{0, 1, 2}))
	assert.Equal(t, "", DetectAudioMIME("notes", nil))
	assert.False(t, IsAudioMIME(DetectAudioMIME("notes.txt", []byte("hello world"))))
}

func TestExtensionForMIME(t *testing.T) {
	assert.Equal(t, ".wav", ExtensionForMIME("audio/x-wav"))
	assert.Equal(t, ".mp3", ExtensionForMIME("audio/mpeg"))
	assert.Equal(t, ".bin", ExtensionForMIME("application/octet-stream"))
}
