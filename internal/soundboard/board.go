package soundboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ytget/soundboard/internal/audio"
	"github.com/ytget/soundboard/internal/model"
	"github.com/ytget/soundboard/internal/platform"
	"github.com/ytget/soundboard/internal/project"
	"github.com/ytget/soundboard/internal/storage"
)

// Playback tuning
const (
	TickInterval         = 250 * time.Millisecond
	EndThreshold         = 0.12
	DefaultDuckingVolume = 0.35
	FullVolume           = 1.0
)

var (
	// ErrNotAudio is returned when a file without an audio type is assigned
	ErrNotAudio = errors.New("file is not audio")
	// ErrPadNotFound is returned for unknown pad IDs
	ErrPadNotFound = errors.New("pad not found")
	// ErrInvalidColor is returned for colors that are not #rrggbb
	ErrInvalidColor = errors.New("invalid color")
)

// ClickResult tells the caller what a pad click did
type ClickResult int

const (
	// ClickNeedsFile means the pad has no usable audio and a file should be picked
	ClickNeedsFile ClickResult = iota
	// ClickStarted means playback started
	ClickStarted
	// ClickStopped means playback stopped
	ClickStopped
)

// Options configures a Board
type Options struct {
	FadeDuration  time.Duration
	DuckingVolume float64
	TickInterval  time.Duration
}

// padTimer refreshes the countdown of one playing pad
type padTimer struct {
	cancel context.CancelFunc
}

// Board is the soundboard controller
type Board struct {
	state  StateRepository
	audios storage.AudioRepository
	player AudioPlayer

	mu      sync.RWMutex
	project model.Project
	timers  map[string]*padTimer
	fade    time.Duration
	ducking float64
	tick    time.Duration

	onUpdate func(model.Project)                              // callback for UI updates
	onTick   func(padID string, remaining, duration float64) // countdown refresh
}

// NewBoard creates a board. Call Start before use.
func NewBoard(state StateRepository, audios storage.AudioRepository, player AudioPlayer, opts Options) *Board {
	if opts.FadeDuration <= 0 {
		opts.FadeDuration = model.DefaultFadeDuration
	}
	if opts.DuckingVolume <= 0 || opts.DuckingVolume > 1 {
		opts.DuckingVolume = DefaultDuckingVolume
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = TickInterval
	}

	b := &Board{
		state:   state,
		audios:  audios,
		player:  player,
		project: model.NewProject(),
		timers:  make(map[string]*padTimer),
		fade:    opts.FadeDuration,
		ducking: opts.DuckingVolume,
		tick:    opts.TickInterval,
	}
	player.SetEndCallback(b.handleEnd)
	return b
}

// SetUpdateCallback sets the callback function for state updates
func (b *Board) SetUpdateCallback(callback func(model.Project)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onUpdate = callback
}

// SetTickCallback sets the callback for countdown refreshes of playing pads
func (b *Board) SetTickCallback(callback func(padID string, remaining, duration float64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onTick = callback
}

// SetFadeDuration configures fade in/out length
func (b *Board) SetFadeDuration(d time.Duration) {
	if d <= 0 {
		d = model.DefaultFadeDuration
	}
	b.mu.Lock()
	b.fade = d
	b.mu.Unlock()
}

// SetDuckingVolume configures the volume of ducked pads
func (b *Board) SetDuckingVolume(volume float64) {
	b.mu.Lock()
	b.ducking = math.Max(0, math.Min(1, volume))
	b.mu.Unlock()
	b.recalcDucking()
}

// Project returns a copy of the current state
func (b *Board) Project() model.Project {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.project.Clone()
}

// Start loads the stored state, repairs it and restores every stored audio.
// An empty active tab gets one pad so the grid is never blank.
func (b *Board) Start(ctx context.Context) error {
	p := model.Normalize(b.state.Load()).StripExtensions().ResetTransient()
	if tab, ok := p.ActiveTab(); ok && len(tab.Pads) == 0 {
		p = p.AddPad(tab.ID)
	}
	b.replace(p)
	log.Printf("Soundboard loaded: %d tabs, %d pads", len(p.Tabs), len(p.AllPads()))
	return b.restoreAudios(ctx)
}

// ClickPad plays or stops a pad. Pads without usable audio report
// ClickNeedsFile so the caller can ask for a file.
func (b *Board) ClickPad(ctx context.Context, padID string) (ClickResult, error) {
	pad, ok := b.findPad(padID)
	if !ok {
		return ClickNeedsFile, fmt.Errorf("%w: %s", ErrPadNotFound, padID)
	}
	if pad.File == nil || pad.NeedsReload {
		return ClickNeedsFile, nil
	}

	if st, ok := b.player.Status(padID); ok && st.Playing {
		return ClickStopped, b.stopPad(ctx, pad)
	}

	err := b.startPad(ctx, pad)
	if errors.Is(err, audio.ErrNotPrepared) {
		log.Printf("Pad %s has no loaded audio, asking for a file", padID)
		b.markNeedsReload(padID)
		return ClickNeedsFile, nil
	}
	return ClickStarted, err
}

// AssignFile loads an audio file into a pad and stores it
func (b *Board) AssignFile(ctx context.Context, padID, name, mime string, data []byte) error {
	if mime == "" {
		mime = platform.DetectAudioMIME(name, data)
	}
	if !platform.IsAudioMIME(mime) {
		return fmt.Errorf("%w: %s", ErrNotAudio, name)
	}
	if _, ok := b.findPad(padID); !ok {
		return fmt.Errorf("%w: %s", ErrPadNotFound, padID)
	}

	b.stopTimer(padID)
	duration, err := b.player.Prepare(padID, data, mime)
	if err != nil {
		return err
	}
	err = b.audios.Put(ctx, storage.Audio{PadID: padID, Buffer: data, MIME: mime, Name: name})
	if err != nil {
		return err
	}

	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(padID)
		if !ok {
			return p
		}
		return p.UpdatePad(tabID, padID, model.PadPatch{
			Name:        model.Ptr(model.StripExtension(name)),
			File:        &model.FileRef{Name: name, MIME: mime},
			Playback:    &model.Playback{Duration: duration, Remaining: duration},
			NeedsReload: model.Ptr(false),
		})
	}, true)
	log.Printf("Audio %s assigned to pad %s (%.1fs)", name, padID, duration)
	b.recalcDucking()
	return nil
}

// DropOnPlaceholder adds a pad to the tab and assigns the file to it. The new
// pad is kept even when the file is rejected.
func (b *Board) DropOnPlaceholder(ctx context.Context, tabID, name, mime string, data []byte) (string, error) {
	padID := b.AddPad(tabID)
	if padID == "" {
		return "", fmt.Errorf("tab not found: %s", tabID)
	}
	return padID, b.AssignFile(ctx, padID, name, mime, data)
}

// AddPad appends an empty pad to the tab (the active tab when tabID is
// empty) and returns its ID, or "" for an unknown tab.
func (b *Board) AddPad(tabID string) string {
	var padID string
	b.update(func(p model.Project) model.Project {
		if tabID == "" {
			tabID = p.ActiveTabID
		}
		next := p.AddPad(tabID)
		if tab, ok := next.FindTab(tabID); ok && next.ColorIndex != p.ColorIndex {
			padID = tab.Pads[len(tab.Pads)-1].ID
		}
		return next
	}, true)
	return padID
}

// AddTab creates a tab, makes it active and returns its ID
func (b *Board) AddTab(name string) string {
	var tabID string
	b.update(func(p model.Project) model.Project {
		next := p.AddTab(strings.TrimSpace(name))
		tabID = next.ActiveTabID
		return next
	}, true)
	return tabID
}

// RenameTab renames a tab. Blank names are ignored.
func (b *Board) RenameTab(tabID, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	b.update(func(p model.Project) model.Project {
		return p.RenameTab(tabID, name)
	}, true)
}

// DeleteTab removes a tab with its pads and their audio. The last tab is kept.
func (b *Board) DeleteTab(ctx context.Context, tabID string) error {
	p := b.Project()
	tab, ok := p.FindTab(tabID)
	if !ok || len(p.Tabs) <= 1 {
		return nil
	}

	for _, pad := range tab.Pads {
		if err := b.releasePad(ctx, pad.ID); err != nil {
			return err
		}
	}
	b.update(func(p model.Project) model.Project {
		return p.DeleteTab(tabID)
	}, true)
	b.recalcDucking()
	return nil
}

// DeletePad stops a pad, deletes its audio and removes it
func (b *Board) DeletePad(ctx context.Context, padID string) error {
	if _, ok := b.findPad(padID); !ok {
		return nil
	}
	if err := b.releasePad(ctx, padID); err != nil {
		return err
	}
	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(padID)
		if !ok {
			return p
		}
		return p.DeletePad(tabID, padID)
	}, true)
	b.recalcDucking()
	return nil
}

// SetActiveTab switches tabs
func (b *Board) SetActiveTab(tabID string) {
	b.update(func(p model.Project) model.Project {
		return p.SetActiveTab(tabID)
	}, true)
}

// ToggleOption flips one option of a pad
func (b *Board) ToggleOption(padID string, key model.OptionKey) {
	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(padID)
		if !ok {
			return p
		}
		pad, _ := p.FindPad(padID)
		return p.UpdatePad(tabID, padID, model.PadPatch{Options: model.Ptr(pad.Options.Toggle(key))})
	}, true)
	if key == model.OptionDucking {
		b.recalcDucking()
	}
}

// SetPadColor changes the base color of a pad and derives its border
func (b *Board) SetPadColor(padID, color string) error {
	if _, _, _, ok := model.ParseHexColor(color); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidColor, color)
	}
	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(padID)
		if !ok {
			return p
		}
		return p.UpdatePad(tabID, padID, model.PadPatch{
			Color:  model.Ptr(color),
			Border: model.Ptr(model.BorderColor(color)),
		})
	}, true)
	return nil
}

// SetColumns sets the number of grid columns
func (b *Board) SetColumns(columns int) {
	b.update(func(p model.Project) model.Project {
		return p.SetColumns(columns)
	}, true)
}

// Export writes the project with every stored audio to w
func (b *Board) Export(ctx context.Context, w io.Writer) error {
	file, err := project.Export(ctx, b.Project(), b.audios, time.Now())
	if err != nil {
		return err
	}
	if err := project.Encode(w, file); err != nil {
		return err
	}
	log.Printf("Project exported with %d audios", len(file.Audios))
	return nil
}

// Import replaces the whole project with the one read from r. A file that
// cannot be parsed or carries an invalid payload leaves the current project
// and its audio untouched.
func (b *Board) Import(ctx context.Context, r io.Reader) error {
	file, err := project.Decode(r)
	if err != nil {
		return err
	}
	entries, err := project.Audios(file)
	if err != nil {
		return err
	}

	b.stopAll(ctx)
	b.player.DismountAll()
	if err := b.audios.Clear(ctx); err != nil {
		return err
	}
	if err := project.Store(ctx, entries, b.audios); err != nil {
		return err
	}

	state := file.State.Clone()
	b.replace(model.Normalize(&state).StripExtensions().ResetTransient())
	log.Printf("Project imported (version %d, %d audios)", file.Version, len(file.Audios))
	return b.restoreAudios(ctx)
}

// Reset stops everything, deletes every audio and starts a fresh project
func (b *Board) Reset(ctx context.Context) error {
	b.stopAll(ctx)
	b.player.DismountAll()
	if err := b.audios.Clear(ctx); err != nil {
		return err
	}
	b.replace(model.NewProject())
	log.Printf("Soundboard reset")
	return nil
}

// Close stops every timer and releases all audio
func (b *Board) Close() {
	b.stopAllTimers()
	b.player.DismountAll()
}

// startPad plays a pad and starts its countdown
func (b *Board) startPad(ctx context.Context, pad model.Pad) error {
	remaining, err := b.player.Play(ctx, pad.ID, audio.PlayOptions{
		Restart:      pad.Options.Restart,
		Loop:         pad.Options.Loop,
		FadeIn:       pad.Options.FadeIn,
		FadeDuration: b.fadeDuration(),
	})
	if errors.Is(err, audio.ErrFadeSuperseded) {
		// a later stop owns the pad now
		return nil
	}
	if err != nil {
		log.Printf("Failed to play pad %s: %v", pad.ID, err)
		return err
	}

	duration := pad.Playback.Duration
	if st, ok := b.player.Status(pad.ID); ok && st.Duration > 0 {
		duration = st.Duration
	}
	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(pad.ID)
		if !ok {
			return p
		}
		return p.UpdatePlayback(tabID, pad.ID, model.PlaybackPatch{
			Playing:   model.Ptr(true),
			Duration:  model.Ptr(duration),
			Remaining: model.Ptr(remaining),
		})
	}, true)
	b.startTimer(pad.ID)
	b.recalcDucking()
	return nil
}

// stopPad stops a pad keeping the remaining time it had
func (b *Board) stopPad(ctx context.Context, pad model.Pad) error {
	remaining := pad.Playback.Duration
	if st, ok := b.player.Status(pad.ID); ok {
		duration := st.Duration
		if duration == 0 {
			duration = pad.Playback.Duration
		}
		remaining = math.Max(0, duration-st.Elapsed)
	}

	err := b.player.Stop(ctx, pad.ID, audio.StopOptions{
		Restart:      pad.Options.Restart,
		FadeOut:      pad.Options.FadeOut,
		FadeDuration: b.fadeDuration(),
	})
	if errors.Is(err, audio.ErrFadeSuperseded) {
		// the pad was started again during the fade-out
		return nil
	}
	if err != nil {
		return err
	}

	b.stopTimer(pad.ID)
	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(pad.ID)
		if !ok {
			return p
		}
		return p.UpdatePlayback(tabID, pad.ID, model.PlaybackPatch{
			Playing:   model.Ptr(false),
			Remaining: model.Ptr(remaining),
		})
	}, true)
	b.recalcDucking()
	return nil
}

// handleEnd runs when a non-looping pad plays to its end
func (b *Board) handleEnd(padID string) {
	pad, ok := b.findPad(padID)
	if !ok {
		return
	}

	if pad.Options.Loop {
		_, err := b.player.Play(context.Background(), padID, audio.PlayOptions{
			Restart:      true,
			Loop:         true,
			FadeIn:       pad.Options.FadeIn,
			FadeDuration: b.fadeDuration(),
		})
		if err != nil && !errors.Is(err, audio.ErrFadeSuperseded) {
			log.Printf("Failed to loop pad %s: %v", padID, err)
		}
		b.startTimer(padID)
		return
	}

	b.stopTimer(padID)
	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(padID)
		if !ok {
			return p
		}
		return p.UpdatePlayback(tabID, padID, model.PlaybackPatch{
			Playing:   model.Ptr(false),
			Remaining: model.Ptr(0.0),
		})
	}, true)
	b.recalcDucking()
}

// releasePad stops a pad and deletes its audio
func (b *Board) releasePad(ctx context.Context, padID string) error {
	b.stopTimer(padID)
	if err := b.player.Stop(ctx, padID, audio.StopOptions{Restart: true}); err != nil {
		log.Printf("Failed to stop pad %s: %v", padID, err)
	}
	b.player.Dismount(padID)
	return b.audios.Delete(ctx, padID)
}

// stopAll stops every pad honoring its fade-out option
func (b *Board) stopAll(ctx context.Context) {
	b.stopAllTimers()

	var wg sync.WaitGroup
	for _, pad := range b.Project().AllPads() {
		wg.Add(1)
		go func(pad model.Pad) {
			defer wg.Done()
			err := b.player.Stop(ctx, pad.ID, audio.StopOptions{
				Restart:      true,
				FadeOut:      pad.Options.FadeOut,
				FadeDuration: b.fadeDuration(),
			})
			if err != nil {
				log.Printf("Failed to stop pad %s: %v", pad.ID, err)
			}
		}(pad)
	}
	wg.Wait()
}

// restoreAudios loads the stored audio of every pad that references a file.
// Pads whose audio is missing or cannot be decoded are flagged for reload.
func (b *Board) restoreAudios(ctx context.Context) error {
	patches := make(map[string]model.PadPatch)
	for _, pad := range b.Project().AllPads() {
		if pad.File == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		stored, err := b.audios.Get(ctx, pad.ID)
		if err != nil {
			log.Printf("Failed to read audio of pad %s: %v", pad.ID, err)
			patches[pad.ID] = model.PadPatch{NeedsReload: model.Ptr(true)}
			continue
		}
		if stored == nil {
			patches[pad.ID] = model.PadPatch{NeedsReload: model.Ptr(true)}
			continue
		}

		duration, err := b.player.Prepare(pad.ID, stored.Buffer, stored.MIME)
		if err != nil {
			log.Printf("Failed to restore audio of pad %s: %v", pad.ID, err)
			patches[pad.ID] = model.PadPatch{NeedsReload: model.Ptr(true)}
			continue
		}
		patches[pad.ID] = model.PadPatch{
			Playback:    &model.Playback{Duration: duration, Remaining: duration},
			NeedsReload: model.Ptr(false),
		}
	}

	b.update(func(p model.Project) model.Project {
		for padID, patch := range patches {
			if tabID, ok := p.TabOfPad(padID); ok {
				p = p.UpdatePad(tabID, padID, patch)
			}
		}
		return p
	}, true)
	return nil
}

// recalcDucking lowers every ducking pad while another pad plays
func (b *Board) recalcDucking() {
	b.mu.RLock()
	pads := b.project.AllPads()
	ducked := b.ducking
	b.mu.RUnlock()

	var playing []string
	for _, pad := range pads {
		if pad.Playback.Playing {
			playing = append(playing, pad.ID)
		}
	}
	for _, pad := range pads {
		volume := FullVolume
		if pad.Options.Ducking && othersPlaying(playing, pad.ID) {
			volume = ducked
		}
		b.player.SetVolume(pad.ID, volume)
	}
}

func othersPlaying(playing []string, padID string) bool {
	for _, id := range playing {
		if id != padID {
			return true
		}
	}
	return false
}

func (b *Board) markNeedsReload(padID string) {
	b.update(func(p model.Project) model.Project {
		tabID, ok := p.TabOfPad(padID)
		if !ok {
			return p
		}
		return p.UpdatePad(tabID, padID, model.PadPatch{NeedsReload: model.Ptr(true)})
	}, true)
}

// update applies fn to the state, optionally persists it and notifies the UI
func (b *Board) update(fn func(model.Project) model.Project, persist bool) model.Project {
	b.mu.Lock()
	b.project = fn(b.project)
	snapshot := b.project.Clone()
	callback := b.onUpdate
	b.mu.Unlock()

	if persist {
		b.save(snapshot)
	}
	if callback != nil {
		callback(snapshot)
	}
	return snapshot
}

// replace swaps the whole state
func (b *Board) replace(p model.Project) {
	b.update(func(model.Project) model.Project { return p }, true)
}

func (b *Board) save(p model.Project) {
	if err := b.state.Save(p); err != nil {
		log.Printf("Failed to save state: %v", err)
	}
}

func (b *Board) findPad(padID string) (model.Pad, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.project.FindPad(padID)
}

func (b *Board) fadeDuration() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.fade
}
