package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// drainPoll is how often a finished voice is checked for silence
const drainPoll = 10 * time.Millisecond

// OtoBackend plays voices through a shared oto context
type OtoBackend struct {
	ctx *oto.Context
}

// NewOtoBackend opens the audio device and waits until it is ready
func NewOtoBackend() (*OtoBackend, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: Channels,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoBackend{ctx: ctx}, nil
}

// NewVoice implements Backend
func (b *OtoBackend) NewVoice(pcm *PCM, onEnd func()) (Voice, error) {
	v := &otoVoice{ctx: b.ctx, onEnd: onEnd, volume: 1}
	v.stream = newPCMStream(pcm, v.streamEnded)
	v.player = b.ctx.NewPlayer(v.stream)
	return v, nil
}

// otoVoice wraps an oto player. A player whose source hit EOF is replaced
// before it plays again.
type otoVoice struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	stream *pcmStream
	volume float64
	onEnd  func()
	paused bool
	closed bool
}

func (v *otoVoice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if v.stream.isEnded() {
		_, _ = v.stream.Seek(0, io.SeekStart)
		v.renewPlayerLocked()
	}
	v.paused = false
	v.player.Play()
}

func (v *otoVoice) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = true
	if !v.closed {
		v.player.Pause()
	}
}

func (v *otoVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.closed && v.player.IsPlaying()
}

func (v *otoVoice) SetVolume(volume float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = volume
	if !v.closed {
		v.player.SetVolume(volume)
	}
}

func (v *otoVoice) Volume() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

func (v *otoVoice) Seek(frame int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	if v.stream.isEnded() {
		if _, err := v.stream.Seek(int64(frame*BytesPerFrame), io.SeekStart); err != nil {
			return err
		}
		v.renewPlayerLocked()
		return nil
	}
	// Player.Seek also drops what oto has already buffered
	if _, err := v.player.Seek(int64(frame*BytesPerFrame), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	return nil
}

func (v *otoVoice) Position() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	total := v.stream.frames()
	if total == 0 {
		return 0
	}
	pos := v.stream.framePosition()
	if !v.closed {
		pos -= v.player.BufferedSize() / BytesPerFrame
	}
	// a looping stream may already be reading the next pass
	for pos < 0 {
		pos += total
	}
	if pos > total {
		pos = total
	}
	return pos
}

func (v *otoVoice) SetLoop(loop bool) {
	v.stream.setLoop(loop)
}

func (v *otoVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	v.player.Pause()
	return v.player.Close()
}

// renewPlayerLocked swaps in a fresh player over the same stream
func (v *otoVoice) renewPlayerLocked() {
	old := v.player
	old.Pause()
	_ = old.Close()
	v.player = v.ctx.NewPlayer(v.stream)
	v.player.SetVolume(v.volume)
}

// streamEnded runs on the oto goroutine when the source is exhausted. The end
// is reported once oto has played what it buffered.
func (v *otoVoice) streamEnded() {
	go func() {
		for {
			v.mu.Lock()
			if v.closed || v.paused {
				v.mu.Unlock()
				return
			}
			playing := v.player.IsPlaying()
			buffered := v.player.BufferedSize()
			v.mu.Unlock()
			if !playing || buffered == 0 {
				break
			}
			time.Sleep(drainPoll)
		}
		if v.onEnd != nil && v.stream.isEnded() {
			v.onEnd()
		}
	}()
}
