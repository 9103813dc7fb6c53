// Package audiotest provides an in-memory audio backend and fixture
// encoders for tests.
package audiotest

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ytget/soundboard/internal/audio"
)

// Backend records every voice it creates
type Backend struct {
	mu     sync.Mutex
	voices []*Voice
	Err    error
}

// NewBackend creates an empty fake backend
func NewBackend() *Backend {
	return &Backend{}
}

// NewVoice implements audio.Backend
func (b *Backend) NewVoice(pcm *audio.PCM, onEnd func()) (audio.Voice, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	v := &Voice{frames: pcm.Frames(), volume: 1, onEnd: onEnd}
	b.voices = append(b.voices, v)
	return v, nil
}

// Voices returns the voices created so far
func (b *Backend) Voices() []*Voice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Voice(nil), b.voices...)
}

// Last returns the most recently created voice
func (b *Backend) Last() *Voice {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.voices) == 0 {
		return nil
	}
	return b.voices[len(b.voices)-1]
}

// Voice is a fake voice whose playhead only moves when told to
type Voice struct {
	mu      sync.Mutex
	frames  int
	pos     int
	volume  float64
	playing bool
	loop    bool
	closed  bool
	plays   int
	onEnd   func()
}

func (v *Voice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pos >= v.frames {
		v.pos = 0
	}
	v.playing = true
	v.plays++
}

func (v *Voice) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = false
}

func (v *Voice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

func (v *Voice) SetVolume(volume float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = volume
}

func (v *Voice) Volume() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

func (v *Voice) Seek(frame int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos = frame
	return nil
}

func (v *Voice) Position() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pos
}

func (v *Voice) SetLoop(loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loop = loop
}

func (v *Voice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.playing = false
	return nil
}

// Loop reports the loop flag last set
func (v *Voice) Loop() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loop
}

// Closed reports whether Close was called
func (v *Voice) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Plays counts Play calls
func (v *Voice) Plays() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.plays
}

// Advance moves the playhead forward by seconds
func (v *Voice) Advance(seconds float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos += int(seconds * audio.SampleRate)
	if v.pos > v.frames {
		v.pos = v.frames
	}
}

// Finish runs the voice to its end the way a real device would: looping
// voices wrap around, others stop and report the end.
func (v *Voice) Finish() {
	v.mu.Lock()
	if v.loop {
		v.pos = 0
		v.mu.Unlock()
		return
	}
	v.pos = v.frames
	v.playing = false
	onEnd := v.onEnd
	v.mu.Unlock()

	if onEnd != nil {
		onEnd()
	}
}

// WAV encodes a 16-bit sine tone of the given length
func WAV(t testing.TB, seconds float64, sampleRate, channels int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create wav fixture: %v", err)
	}

	frames := int(seconds * float64(sampleRate))
	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		v := int(math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)) * 16000)
		for c := 0; c < channels; c++ {
			data[i*channels+c] = v
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Failed to encode wav fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to finish wav fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close wav fixture: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read wav fixture: %v", err)
	}
	return raw
}
