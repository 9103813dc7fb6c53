package soundboard

import (
	"context"
	"math"
	"time"

	"github.com/ytget/soundboard/internal/model"
)

// startTimer starts (or restarts) the countdown of a pad
func (b *Board) startTimer(padID string) {
	ctx, cancel := context.WithCancel(context.Background())
	timer := &padTimer{cancel: cancel}

	b.mu.Lock()
	if old, ok := b.timers[padID]; ok {
		old.cancel()
	}
	b.timers[padID] = timer
	interval := b.tick
	b.mu.Unlock()

	go b.runTimer(ctx, padID, timer, interval)
}

// stopTimer cancels the countdown of a pad
func (b *Board) stopTimer(padID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if timer, ok := b.timers[padID]; ok {
		timer.cancel()
		delete(b.timers, padID)
	}
}

func (b *Board) stopAllTimers() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, timer := range b.timers {
		timer.cancel()
		delete(b.timers, id)
	}
}

// HasTimer reports whether a countdown is running for the pad
func (b *Board) HasTimer(padID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.timers[padID]
	return ok
}

func (b *Board) runTimer(ctx context.Context, padID string, timer *padTimer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !b.tickPad(ctx, padID) {
			b.mu.Lock()
			if b.timers[padID] == timer {
				delete(b.timers, padID)
			}
			b.mu.Unlock()
			timer.cancel()
			return
		}
	}
}

// tickPad refreshes the remaining time of a pad. It returns false once the
// countdown should end.
func (b *Board) tickPad(ctx context.Context, padID string) bool {
	st, ok := b.player.Status(padID)
	if !ok {
		return false
	}

	b.mu.Lock()
	if ctx.Err() != nil {
		b.mu.Unlock()
		return false
	}
	tabID, found := b.project.TabOfPad(padID)
	if !found {
		b.mu.Unlock()
		return false
	}
	pad, _ := b.project.FindPad(padID)
	duration := st.Duration
	if duration == 0 {
		duration = pad.Playback.Duration
	}
	remaining := math.Max(0, duration-st.Elapsed)
	b.project = b.project.UpdatePlayback(tabID, padID, model.PlaybackPatch{Remaining: model.Ptr(remaining)})
	callback := b.onTick
	b.mu.Unlock()

	if callback != nil {
		callback(padID, remaining, duration)
	}

	// looping pads wrap around instead of ending
	return remaining > EndThreshold || pad.Options.Loop
}
