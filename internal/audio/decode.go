package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	resampler "github.com/tphakala/go-audio-resampler"
	"github.com/ytget/soundboard/internal/platform"
)

// Output format
const (
	SampleRate    = 44100
	Channels      = 2
	BytesPerFrame = Channels * 4
)

var (
	// ErrUnsupportedFormat is returned for MIME types no decoder handles
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrEmptyAudio is returned when decoding produced no samples
	ErrEmptyAudio = errors.New("audio has no samples")
)

// PCM is decoded audio: interleaved stereo float32 at SampleRate
type PCM struct {
	Samples []float32
}

// Frames returns the number of stereo frames
func (p *PCM) Frames() int {
	return len(p.Samples) / Channels
}

// Seconds returns the playback length
func (p *PCM) Seconds() float64 {
	return float64(p.Frames()) / SampleRate
}

// Decode turns an encoded audio payload into PCM. The MIME type picks the
// decoder; an empty or generic type is sniffed from the content.
func Decode(data []byte, mime string) (*PCM, error) {
	kind := platform.NormalizeMIME(mime)
	if !platform.IsAudioMIME(kind) {
		kind = platform.DetectAudioMIME("", data)
	}

	var (
		samples  []float32
		rate     int
		channels int
		err      error
	)
	switch kind {
	case "audio/wav":
		samples, rate, channels, err = decodeWAV(data)
	case "audio/mpeg":
		samples, rate, channels, err = decodeMP3(data)
	case "audio/ogg":
		samples, rate, channels, err = decodeOgg(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime)
	}
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 || channels == 0 || rate <= 0 {
		return nil, ErrEmptyAudio
	}

	stereo, err := resample(toStereo(samples, channels), rate, SampleRate)
	if err != nil {
		return nil, err
	}
	return &PCM{Samples: stereo}, nil
}

func decodeWAV(data []byte) ([]float32, int, int, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("invalid wav file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode wav: %w", err)
	}
	if buf.Format == nil {
		return nil, 0, 0, fmt.Errorf("wav has no format chunk")
	}

	bitDepth := int(d.BitDepth)
	out := make([]float32, len(buf.Data))
	if bitDepth == 8 {
		// 8-bit WAV is unsigned
		for i, v := range buf.Data {
			out[i] = float32(v-128) / 128
		}
	} else {
		scale := float32(math.Pow(2, float64(bitDepth-1)))
		for i, v := range buf.Data {
			out[i] = float32(v) / scale
		}
	}
	return out, buf.Format.SampleRate, buf.Format.NumChannels, nil
}

func decodeMP3(data []byte) ([]float32, int, int, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open mp3: %w", err)
	}
	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode mp3: %w", err)
	}

	// go-mp3 always yields 16-bit little-endian stereo
	out := make([]float32, len(raw)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		out[i] = float32(v) / 32768
	}
	return out, d.SampleRate(), 2, nil
}

func decodeOgg(data []byte) ([]float32, int, int, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode ogg: %w", err)
	}
	return samples, format.SampleRate, format.Channels, nil
}

// toStereo duplicates mono and drops channels beyond the first two
func toStereo(samples []float32, channels int) []float32 {
	if channels == Channels {
		return samples
	}
	frames := len(samples) / channels
	out := make([]float32, frames*Channels)
	for f := 0; f < frames; f++ {
		left := samples[f*channels]
		right := left
		if channels > 1 {
			right = samples[f*channels+1]
		}
		out[f*2] = left
		out[f*2+1] = right
	}
	return out
}

// ResampleQuality is the filter preset used to reach SampleRate
const ResampleQuality = resampler.QualityMedium

// resample converts interleaved stereo to the output rate. The result is
// trimmed or padded to the exact frame count so durations stay stable.
func resample(samples []float32, from, to int) ([]float32, error) {
	if from == to || from <= 0 {
		return samples, nil
	}
	inFrames := len(samples) / Channels
	if inFrames < 2 {
		return samples, nil
	}

	left, right := resampler.DeinterleaveFromStereoFloat32(samples)
	left, right, err := resampler.ResampleStereoFloat32(left, right, float64(from), float64(to), ResampleQuality)
	if err != nil {
		return nil, fmt.Errorf("failed to resample %d Hz to %d Hz: %w", from, to, err)
	}
	out := resampler.InterleaveToStereoFloat32(left, right)

	want := int(math.Round(float64(inFrames)*float64(to)/float64(from))) * Channels
	if len(out) > want {
		out = out[:want]
	} else if len(out) < want {
		out = append(out, make([]float32, want-len(out))...)
	}
	for i, v := range out {
		if v > 1 {
			out[i] = 1
		} else if v < -1 {
			out[i] = -1
		}
	}
	return out, nil
}
