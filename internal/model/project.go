package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Layout and naming defaults
const (
	DefaultTabCount   = 3
	DefaultColumns    = 5
	MinColumns        = 1
	MaxColumns        = 12
	EmptyPadName      = "Vacío"
	DefaultNewTabName = "Nueva pestaña"
	TabNameFormat     = "Pestaña %d"
	IDFallbackPrefix  = "pad-"
)

// DefaultFadeDuration is used by fades when the caller does not supply one.
const DefaultFadeDuration = 2000 * time.Millisecond

// Palette is the fixed sequence of base colors handed out to new pads.
var Palette = []string{
	"#fef3c7", "#fde047", "#facc15", "#fcd34d", "#fb923c",
	"#f97316", "#ea580c", "#d97706", "#f59e0b", "#a3e635",
	"#84cc16", "#22c55e", "#16a34a", "#15803d", "#34d399",
	"#10b981", "#bbf7d0", "#2dd4bf", "#14b8a6", "#22d3ee",
	"#67e8f9", "#e0f2fe", "#0ea5e9", "#38bdf8", "#3b82f6",
	"#2563eb", "#1d4ed8", "#5b21b6", "#4c1d95", "#4338ca",
	"#8b5cf6", "#a855f7", "#c084fc", "#f5d0fe", "#7c3aed",
	"#d946ef", "#ec4899", "#f472b6", "#fb7185", "#f87171",
	"#ef4444", "#dc2626", "#9ca3af", "#94a3b8", "#cbd5e1",
	"#4b5563", "#475569", "#334155", "#1f2937", "#0f172a",
	"#18181b",
}

// Options holds the per-pad playback toggles
type Options struct {
	Ducking bool `json:"duckingActivo"`
	Loop    bool `json:"bucleActivo"`
	Restart bool `json:"reinicioActivo"`
	FadeIn  bool `json:"fadeInActivo"`
	FadeOut bool `json:"fadeOutActivo"`
}

// OptionKey names a single toggle in Options
type OptionKey string

const (
	OptionDucking OptionKey = "ducking"
	OptionLoop    OptionKey = "loop"
	OptionRestart OptionKey = "restart"
	OptionFadeIn  OptionKey = "fadeIn"
	OptionFadeOut OptionKey = "fadeOut"
)

// Toggle returns a copy of the options with the given toggle flipped.
// Unknown keys leave the options unchanged.
func (o Options) Toggle(key OptionKey) Options {
	switch key {
	case OptionDucking:
		o.Ducking = !o.Ducking
	case OptionLoop:
		o.Loop = !o.Loop
	case OptionRestart:
		o.Restart = !o.Restart
	case OptionFadeIn:
		o.FadeIn = !o.FadeIn
	case OptionFadeOut:
		o.FadeOut = !o.FadeOut
	}
	return o
}

// Enabled reports the value of a single toggle
func (o Options) Enabled(key OptionKey) bool {
	switch key {
	case OptionDucking:
		return o.Ducking
	case OptionLoop:
		return o.Loop
	case OptionRestart:
		return o.Restart
	case OptionFadeIn:
		return o.FadeIn
	case OptionFadeOut:
		return o.FadeOut
	default:
		return false
	}
}

// Playback is transient; only Duration is meaningful across reloads.
type Playback struct {
	Playing   bool    `json:"reproduciendo"`
	Duration  float64 `json:"duracionTotal"`
	Remaining float64 `json:"tiempoRestante"`
}

// FileRef is the metadata of the audio assigned to a pad. The binary payload
// lives in the audio store keyed by pad ID.
type FileRef struct {
	Name string `json:"nombre"`
	MIME string `json:"tipo"`
}

// Pad is a single audio trigger cell
type Pad struct {
	ID          string   `json:"idPad"`
	Name        string   `json:"nombreArchivo"`
	Color       string   `json:"colorBase"`
	Border      string   `json:"colorBorde"`
	Options     Options  `json:"opciones"`
	Playback    Playback `json:"reproduccion"`
	File        *FileRef `json:"archivo"`
	NeedsReload bool     `json:"necesitaRecarga"`
}

// HasAudio reports whether the pad has a file that can be played right now
func (p Pad) HasAudio() bool {
	return p.File != nil && !p.NeedsReload
}

// Tab is a named, ordered collection of pads
type Tab struct {
	ID   string `json:"idPestana"`
	Name string `json:"nombre"`
	Pads []Pad  `json:"pads"`
}

// Project is the whole persisted soundboard state
type Project struct {
	Tabs        []Tab  `json:"pestañas"`
	ActiveTabID string `json:"pestanaActivaId"`
	Columns     int    `json:"columnas"`
	ColorIndex  int    `json:"indiceColor"`
}

// NewID generates a unique identifier for tabs and pads using UUID v7
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(IDFallbackPrefix+"%d", time.Now().UnixNano())
	}
	return id.String()
}

// NewPad creates an empty pad colored with the palette entry at colorIndex
func NewPad(colorIndex int) Pad {
	if colorIndex < 0 {
		colorIndex = 0
	}
	color := Palette[colorIndex%len(Palette)]
	return Pad{
		ID:     NewID(),
		Name:   EmptyPadName,
		Color:  color,
		Border: BorderColor(color),
		Options: Options{
			Restart: true,
		},
	}
}

// NewProject creates the default project: three tabs with one empty pad each
func NewProject() Project {
	return NewProjectWith(DefaultTabCount, DefaultColumns)
}

// NewProjectWith creates a project with the given number of tabs (at least one)
func NewProjectWith(tabCount, columns int) Project {
	if tabCount < 1 {
		tabCount = 1
	}
	colorIndex := 0
	tabs := make([]Tab, 0, tabCount)
	for i := 0; i < tabCount; i++ {
		pad := NewPad(colorIndex)
		colorIndex++
		tabs = append(tabs, Tab{
			ID:   NewID(),
			Name: fmt.Sprintf(TabNameFormat, i+1),
			Pads: []Pad{pad},
		})
	}
	return Project{
		Tabs:        tabs,
		ActiveTabID: tabs[0].ID,
		Columns:     clampColumns(columns),
		ColorIndex:  colorIndex,
	}
}

// Clone returns a deep copy of the project
func (p Project) Clone() Project {
	out := p
	if p.Tabs == nil {
		return out
	}
	out.Tabs = make([]Tab, len(p.Tabs))
	for i, t := range p.Tabs {
		out.Tabs[i] = t.clone()
	}
	return out
}

func (t Tab) clone() Tab {
	out := t
	if t.Pads == nil {
		return out
	}
	out.Pads = make([]Pad, len(t.Pads))
	for i, pad := range t.Pads {
		out.Pads[i] = pad.clone()
	}
	return out
}

func (p Pad) clone() Pad {
	if p.File != nil {
		file := *p.File
		p.File = &file
	}
	return p
}

// FindTab returns the tab with the given ID
func (p Project) FindTab(tabID string) (Tab, bool) {
	for _, t := range p.Tabs {
		if t.ID == tabID {
			return t, true
		}
	}
	return Tab{}, false
}

// ActiveTab returns the currently active tab
func (p Project) ActiveTab() (Tab, bool) {
	return p.FindTab(p.ActiveTabID)
}

// FindPad looks a pad up across all tabs
func (p Project) FindPad(padID string) (Pad, bool) {
	for _, t := range p.Tabs {
		for _, pad := range t.Pads {
			if pad.ID == padID {
				return pad, true
			}
		}
	}
	return Pad{}, false
}

// TabOfPad returns the ID of the tab holding the pad
func (p Project) TabOfPad(padID string) (string, bool) {
	for _, t := range p.Tabs {
		for _, pad := range t.Pads {
			if pad.ID == padID {
				return t.ID, true
			}
		}
	}
	return "", false
}

// AllPads returns every pad in tab order
func (p Project) AllPads() []Pad {
	var pads []Pad
	for _, t := range p.Tabs {
		pads = append(pads, t.Pads...)
	}
	return pads
}

// PadIDs returns the de-duplicated pad IDs in tab order
func (p Project) PadIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range p.Tabs {
		for _, pad := range t.Pads {
			if seen[pad.ID] {
				continue
			}
			seen[pad.ID] = true
			ids = append(ids, pad.ID)
		}
	}
	return ids
}
