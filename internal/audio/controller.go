package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ytget/soundboard/internal/model"
)

// FadeFrame is the interval between volume steps of a fade
const FadeFrame = 16 * time.Millisecond

var (
	// ErrNotPrepared is returned when a pad has no loaded audio
	ErrNotPrepared = errors.New("audio not prepared")
	// ErrFadeSuperseded is returned by a fade replaced by a newer one on the same pad
	ErrFadeSuperseded = errors.New("fade superseded")
)

// PlayOptions control how a pad starts
type PlayOptions struct {
	Restart      bool
	Loop         bool
	FadeIn       bool
	FadeDuration time.Duration
}

// StopOptions control how a pad stops
type StopOptions struct {
	Restart      bool
	FadeOut      bool
	FadeDuration time.Duration
}

// Status is a snapshot of a pad's playback, in seconds
type Status struct {
	Duration float64
	Elapsed  float64
	Playing  bool
}

// handle is the loaded audio of one pad
type handle struct {
	voice      Voice
	duration   float64
	cancelFade context.CancelCauseFunc
	fadeSeq    uint64
}

// Controller owns one voice per pad
type Controller struct {
	backend Backend
	frame   time.Duration

	mu      sync.Mutex
	handles map[string]*handle
	onEnd   func(padID string)
}

// NewController creates a controller playing through backend
func NewController(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		frame:   FadeFrame,
		handles: make(map[string]*handle),
	}
}

// SetEndCallback sets the function called when a non-looping pad finishes
func (c *Controller) SetEndCallback(fn func(padID string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEnd = fn
}

// Prepare decodes the audio and binds it to the pad, replacing any previous
// audio. It returns the duration in seconds.
func (c *Controller) Prepare(padID string, data []byte, mime string) (float64, error) {
	pcm, err := Decode(data, mime)
	if err != nil {
		return 0, fmt.Errorf("failed to load audio for pad %s: %w", padID, err)
	}

	h := &handle{duration: pcm.Seconds()}
	voice, err := c.backend.NewVoice(pcm, func() { c.ended(padID, h) })
	if err != nil {
		return 0, fmt.Errorf("failed to create voice for pad %s: %w", padID, err)
	}
	h.voice = voice

	c.Dismount(padID)
	c.mu.Lock()
	c.handles[padID] = h
	c.mu.Unlock()
	return h.duration, nil
}

// Prepared reports whether the pad has loaded audio
func (c *Controller) Prepared(padID string) bool {
	return c.get(padID) != nil
}

// Dismount stops the pad and releases its voice
func (c *Controller) Dismount(padID string) {
	c.mu.Lock()
	h, ok := c.handles[padID]
	if ok {
		delete(c.handles, padID)
		c.cancelFadeLocked(h)
	}
	c.mu.Unlock()
	if !ok {
		return
	}

	h.voice.Pause()
	if err := h.voice.Close(); err != nil {
		log.Printf("Failed to close voice for pad %s: %v", padID, err)
	}
}

// Play starts the pad and returns the remaining seconds once playback is
// under way. With FadeIn it returns after the fade completes.
func (c *Controller) Play(ctx context.Context, padID string, opts PlayOptions) (float64, error) {
	h := c.get(padID)
	if h == nil {
		return 0, ErrNotPrepared
	}
	c.cancelFade(h)

	h.voice.SetLoop(opts.Loop)
	if opts.Restart {
		if err := h.voice.Seek(0); err != nil {
			return 0, fmt.Errorf("failed to rewind pad %s: %w", padID, err)
		}
	}

	if opts.FadeIn {
		h.voice.SetVolume(0)
		h.voice.Play()
		if err := c.fade(ctx, h, 1, opts.FadeDuration); err != nil {
			return 0, err
		}
	} else {
		h.voice.SetVolume(1)
		h.voice.Play()
	}

	elapsed := float64(h.voice.Position()) / SampleRate
	return math.Max(0, h.duration-elapsed), nil
}

// Stop pauses the pad. With FadeOut it pauses once the volume reaches zero;
// a fade-out replaced by a newer fade leaves the pad playing.
func (c *Controller) Stop(ctx context.Context, padID string, opts StopOptions) error {
	h := c.get(padID)
	if h == nil {
		return nil
	}

	if opts.FadeOut {
		if err := c.fade(ctx, h, 0, opts.FadeDuration); err != nil {
			return err
		}
	} else {
		c.cancelFade(h)
	}

	h.voice.Pause()
	if opts.Restart {
		if err := h.voice.Seek(0); err != nil {
			return fmt.Errorf("failed to rewind pad %s: %w", padID, err)
		}
	}
	return nil
}

// Status returns the playback snapshot of a pad
func (c *Controller) Status(padID string) (Status, bool) {
	h := c.get(padID)
	if h == nil {
		return Status{}, false
	}
	return Status{
		Duration: h.duration,
		Elapsed:  float64(h.voice.Position()) / SampleRate,
		Playing:  h.voice.IsPlaying(),
	}, true
}

// SetVolume sets the pad volume, clamped to [0, 1]
func (c *Controller) SetVolume(padID string, volume float64) {
	h := c.get(padID)
	if h == nil {
		return
	}
	h.voice.SetVolume(clampVolume(volume))
}

// Volume returns the current volume of a pad
func (c *Controller) Volume(padID string) (float64, bool) {
	h := c.get(padID)
	if h == nil {
		return 0, false
	}
	return h.voice.Volume(), true
}

// Fade moves the pad volume linearly to target over duration. A zero or
// negative duration uses the default fade length.
func (c *Controller) Fade(ctx context.Context, padID string, target float64, duration time.Duration) error {
	h := c.get(padID)
	if h == nil {
		return ErrNotPrepared
	}
	return c.fade(ctx, h, clampVolume(target), duration)
}

// Close releases every voice
func (c *Controller) Close() {
	c.DismountAll()
}

// DismountAll stops and releases every pad; the controller stays usable
func (c *Controller) DismountAll() {
	c.mu.Lock()
	ids := make([]string, 0, len(c.handles))
	for id := range c.handles {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	for _, id := range ids {
		c.Dismount(id)
	}
}

func (c *Controller) fade(ctx context.Context, h *handle, target float64, duration time.Duration) error {
	if duration <= 0 {
		duration = model.DefaultFadeDuration
	}

	fctx, cancel := context.WithCancelCause(ctx)
	c.mu.Lock()
	c.cancelFadeLocked(h)
	h.fadeSeq++
	seq := h.fadeSeq
	h.cancelFade = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if h.fadeSeq == seq {
			h.cancelFade = nil
		}
		c.mu.Unlock()
		cancel(nil)
	}()

	start := h.voice.Volume()
	delta := target - start
	if delta == 0 {
		return nil
	}

	began := time.Now()
	ticker := time.NewTicker(c.frame)
	defer ticker.Stop()

	for {
		progress := math.Min(float64(time.Since(began))/float64(duration), 1)

		// volume changes are serialized with cancellation so a replaced fade
		// never writes after its successor started
		c.mu.Lock()
		if fctx.Err() == nil {
			h.voice.SetVolume(clampVolume(start + delta*progress))
		}
		c.mu.Unlock()

		if progress >= 1 {
			return nil
		}
		select {
		case <-fctx.Done():
			cause := context.Cause(fctx)
			if errors.Is(cause, ErrFadeSuperseded) {
				return ErrFadeSuperseded
			}
			return cause
		case <-ticker.C:
		}
	}
}

func (c *Controller) cancelFade(h *handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelFadeLocked(h)
}

func (c *Controller) cancelFadeLocked(h *handle) {
	if h.cancelFade != nil {
		h.cancelFade(ErrFadeSuperseded)
		h.cancelFade = nil
	}
}

func (c *Controller) get(padID string) *handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handles[padID]
}

// ended forwards the end of a voice unless the pad was reloaded meanwhile
func (c *Controller) ended(padID string, h *handle) {
	c.mu.Lock()
	current := c.handles[padID] == h
	fn := c.onEnd
	c.mu.Unlock()

	if current && fn != nil {
		fn(padID)
	}
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
