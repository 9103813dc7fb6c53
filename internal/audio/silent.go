package audio

import (
	"sync"
	"time"
)

// SilentBackend keeps time like a real device without producing sound. It
// stands in when no audio output can be opened.
type SilentBackend struct{}

// NewSilentBackend creates a silent backend
func NewSilentBackend() *SilentBackend {
	return &SilentBackend{}
}

// NewVoice implements Backend
func (b *SilentBackend) NewVoice(pcm *PCM, onEnd func()) (Voice, error) {
	return &silentVoice{frames: pcm.Frames(), volume: 1, onEnd: onEnd, now: time.Now}, nil
}

// silentVoice derives its playhead from the wall clock
type silentVoice struct {
	mu      sync.Mutex
	frames  int
	pos     int
	started time.Time
	playing bool
	loop    bool
	closed  bool
	volume  float64
	timer   *time.Timer
	gen     int
	onEnd   func()
	now     func() time.Time
}

func (v *silentVoice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.playing {
		return
	}
	if v.pos >= v.frames {
		v.pos = 0
	}
	v.playing = true
	v.started = v.now()
	v.scheduleLocked()
}

func (v *silentVoice) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.playing {
		return
	}
	v.pos = v.positionLocked()
	v.playing = false
	v.cancelLocked()
}

func (v *silentVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing
}

func (v *silentVoice) SetVolume(volume float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = volume
}

func (v *silentVoice) Volume() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

func (v *silentVoice) Seek(frame int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos = max(0, min(frame, v.frames))
	if v.playing {
		v.started = v.now()
		v.scheduleLocked()
	}
	return nil
}

func (v *silentVoice) Position() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.positionLocked()
}

func (v *silentVoice) SetLoop(loop bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.playing {
		v.pos = v.positionLocked()
		v.started = v.now()
	}
	v.loop = loop
	if v.playing {
		v.scheduleLocked()
	}
}

func (v *silentVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.playing = false
	v.cancelLocked()
	return nil
}

func (v *silentVoice) positionLocked() int {
	if !v.playing || v.frames == 0 {
		return v.pos
	}
	pos := v.pos + int(v.now().Sub(v.started).Seconds()*SampleRate)
	if v.loop {
		return pos % v.frames
	}
	return min(pos, v.frames)
}

// scheduleLocked arms the end notification of a non-looping voice
func (v *silentVoice) scheduleLocked() {
	v.cancelLocked()
	if v.loop {
		return
	}
	gen := v.gen
	left := time.Duration(float64(v.frames-v.pos) / SampleRate * float64(time.Second))
	v.timer = time.AfterFunc(left, func() { v.finish(gen) })
}

func (v *silentVoice) cancelLocked() {
	v.gen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

func (v *silentVoice) finish(gen int) {
	v.mu.Lock()
	if gen != v.gen || !v.playing || v.loop {
		v.mu.Unlock()
		return
	}
	v.pos = v.frames
	v.playing = false
	v.timer = nil
	onEnd := v.onEnd
	v.mu.Unlock()

	if onEnd != nil {
		onEnd()
	}
}
