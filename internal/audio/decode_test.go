package audio_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytget/soundboard/internal/audio"
	"github.com/ytget/soundboard/internal/audio/audiotest"
)

func TestDecode_WAV(t *testing.T) {
	tests := []struct {
		name       string
		seconds    float64
		sampleRate int
		channels   int
	}{
		{"stereo 44.1k", 0.5, 44100, 2},
		{"mono 44.1k", 0.25, 44100, 1},
		{"stereo 22.05k resampled", 0.5, 22050, 2},
		{"mono 48k resampled", 1, 48000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := audiotest.WAV(t, tt.seconds, tt.sampleRate, tt.channels)

			pcm, err := audio.Decode(data, "audio/wav")
			require.NoError(t, err)
			assert.InDelta(t, tt.seconds, pcm.Seconds(), 0.001)
			assert.Equal(t, pcm.Frames()*audio.Channels, len(pcm.Samples))
			for _, s := range pcm.Samples {
				if s < -1 || s > 1 {
					t.Fatalf("sample out of range: %v", s)
				}
			}
		})
	}
}

func TestDecode_ResampleKeepsPitch(t *testing.T) {
	for _, rate := range []int{22050, 48000} {
		data := audiotest.WAV(t, 1, rate, 1)

		pcm, err := audio.Decode(data, "audio/wav")
		require.NoError(t, err, "rate %d", rate)
		require.Equal(t, audio.SampleRate, pcm.Frames(), "rate %d", rate)

		// a 440 Hz tone crosses zero twice per cycle
		crossings := 0
		for f := 1; f < pcm.Frames(); f++ {
			prev, cur := pcm.Samples[(f-1)*audio.Channels], pcm.Samples[f*audio.Channels]
			if (prev < 0) != (cur < 0) {
				crossings++
			}
		}
		assert.InDelta(t, 880, crossings, 40, "rate %d", rate)
	}
}

func TestDecode_SniffsGenericMIME(t *testing.T) {
	data := audiotest.WAV(t, 0.1, 44100, 2)

	for _, mime := range []string{"", "application/octet-stream", "audio/x-wav"} {
		pcm, err := audio.Decode(data, mime)
		require.NoError(t, err, "mime %q", mime)
		assert.InDelta(t, 0.1, pcm.Seconds(), 0.001)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := audio.Decode([]byte("hello, this is not audio"), "text/plain")
	assert.True(t, errors.Is(err, audio.ErrUnsupportedFormat), "got %v", err)

	_, err = audio.Decode([]byte{1, 2, 3}, "audio/flac")
	assert.True(t, errors.Is(err, audio.ErrUnsupportedFormat), "got %v", err)

	_, err = audio.Decode([]byte("garbage"), "audio/wav")
	assert.Error(t, err)

	_, err = audio.Decode([]byte("garbage"), "audio/ogg")
	assert.Error(t, err)
}
