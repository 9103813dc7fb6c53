package model

import "strings"

// PadPatch lists the pad fields to overwrite; nil fields are kept
type PadPatch struct {
	Name        *string
	Color       *string
	Border      *string
	Options     *Options
	Playback    *Playback
	File        *FileRef
	NeedsReload *bool
}

// PlaybackPatch lists the playback fields to overwrite; nil fields are kept
type PlaybackPatch struct {
	Playing   *bool
	Duration  *float64
	Remaining *float64
}

// Ptr returns a pointer to v, handy for building patches
func Ptr[T any](v T) *T {
	return &v
}

// withTab returns a copy of the project where fn has been applied to the tab
// with the given ID. The tab passed to fn is already a deep copy.
func (p Project) withTab(tabID string, fn func(Tab) Tab) Project {
	out := p.Clone()
	for i, t := range out.Tabs {
		if t.ID == tabID {
			out.Tabs[i] = fn(t)
		}
	}
	return out
}

// withPad applies fn to a single pad of a single tab
func (p Project) withPad(tabID, padID string, fn func(Pad) Pad) Project {
	return p.withTab(tabID, func(t Tab) Tab {
		for i, pad := range t.Pads {
			if pad.ID == padID {
				t.Pads[i] = fn(pad)
			}
		}
		return t
	})
}

// AddPad appends an empty pad to the tab, using the next palette color.
// Unknown tabs leave the project unchanged.
func (p Project) AddPad(tabID string) Project {
	if _, ok := p.FindTab(tabID); !ok {
		return p
	}
	pad := NewPad(p.ColorIndex)
	out := p.withTab(tabID, func(t Tab) Tab {
		if t.Pads == nil {
			t.Pads = []Pad{}
		}
		t.Pads = append(t.Pads, pad)
		return t
	})
	out.ColorIndex = p.ColorIndex + 1
	return out
}

// AddTab appends a new tab holding one empty pad and makes it active
func (p Project) AddTab(name string) Project {
	if strings.TrimSpace(name) == "" {
		name = DefaultNewTabName
	}
	tab := Tab{
		ID:   NewID(),
		Name: name,
		Pads: []Pad{NewPad(p.ColorIndex)},
	}
	out := p.Clone()
	out.Tabs = append(out.Tabs, tab)
	out.ActiveTabID = tab.ID
	out.ColorIndex = p.ColorIndex + 1
	return out
}

// RenameTab changes the display name of a tab
func (p Project) RenameTab(tabID, name string) Project {
	return p.withTab(tabID, func(t Tab) Tab {
		t.Name = name
		return t
	})
}

// DeleteTab removes a tab. The last remaining tab is never deleted; if the
// active tab goes away the first remaining tab becomes active.
func (p Project) DeleteTab(tabID string) Project {
	if len(p.Tabs) <= 1 {
		return p
	}
	if _, ok := p.FindTab(tabID); !ok {
		return p
	}
	out := p.Clone()
	remaining := make([]Tab, 0, len(out.Tabs)-1)
	for _, t := range out.Tabs {
		if t.ID != tabID {
			remaining = append(remaining, t)
		}
	}
	out.Tabs = remaining
	if out.ActiveTabID == tabID {
		out.ActiveTabID = remaining[0].ID
	}
	return out
}

// DeletePad removes a pad from a tab
func (p Project) DeletePad(tabID, padID string) Project {
	return p.withTab(tabID, func(t Tab) Tab {
		pads := make([]Pad, 0, len(t.Pads))
		for _, pad := range t.Pads {
			if pad.ID != padID {
				pads = append(pads, pad)
			}
		}
		t.Pads = pads
		return t
	})
}

// SetActiveTab switches the active tab; unknown IDs are ignored
func (p Project) SetActiveTab(tabID string) Project {
	if _, ok := p.FindTab(tabID); !ok {
		return p
	}
	out := p.Clone()
	out.ActiveTabID = tabID
	return out
}

// UpdatePad shallow-merges the patch into the pad
func (p Project) UpdatePad(tabID, padID string, patch PadPatch) Project {
	return p.withPad(tabID, padID, func(pad Pad) Pad {
		if patch.Name != nil {
			pad.Name = *patch.Name
		}
		if patch.Color != nil {
			pad.Color = *patch.Color
		}
		if patch.Border != nil {
			pad.Border = *patch.Border
		}
		if patch.Options != nil {
			pad.Options = *patch.Options
		}
		if patch.Playback != nil {
			pad.Playback = *patch.Playback
		}
		if patch.File != nil {
			file := *patch.File
			pad.File = &file
		}
		if patch.NeedsReload != nil {
			pad.NeedsReload = *patch.NeedsReload
		}
		return pad
	})
}

// UpdatePlayback shallow-merges the patch into the pad's playback
func (p Project) UpdatePlayback(tabID, padID string, patch PlaybackPatch) Project {
	return p.withPad(tabID, padID, func(pad Pad) Pad {
		if patch.Playing != nil {
			pad.Playback.Playing = *patch.Playing
		}
		if patch.Duration != nil {
			pad.Playback.Duration = *patch.Duration
		}
		if patch.Remaining != nil {
			pad.Playback.Remaining = *patch.Remaining
		}
		return pad
	})
}

// SetColumns sets the grid column count, clamped to [MinColumns, MaxColumns]
func (p Project) SetColumns(columns int) Project {
	out := p.Clone()
	out.Columns = clampColumns(columns)
	return out
}

// ResetTransient clears playback flags that make no sense after a reload
func (p Project) ResetTransient() Project {
	out := p.Clone()
	for i := range out.Tabs {
		for j := range out.Tabs[i].Pads {
			pb := &out.Tabs[i].Pads[j].Playback
			pb.Playing = false
			pb.Remaining = pb.Duration
		}
	}
	return out
}

// StripExtensions removes file extensions from every pad display name
func (p Project) StripExtensions() Project {
	out := p.Clone()
	for i := range out.Tabs {
		for j := range out.Tabs[i].Pads {
			pad := &out.Tabs[i].Pads[j]
			pad.Name = StripExtension(pad.Name)
		}
	}
	return out
}

// Normalize turns a possibly malformed or freshly loaded project into a
// well-formed one. A nil project or one without tabs becomes NewProject().
func Normalize(in *Project) Project {
	if in == nil || len(in.Tabs) == 0 {
		return NewProject()
	}
	out := in.Clone()
	seenTabs := make(map[string]bool)
	seenPads := make(map[string]bool)
	for i := range out.Tabs {
		t := &out.Tabs[i]
		if t.ID == "" || seenTabs[t.ID] {
			t.ID = NewID()
		}
		seenTabs[t.ID] = true
		if t.Pads == nil {
			t.Pads = []Pad{}
		}
		for j := range t.Pads {
			pad := &t.Pads[j]
			if pad.ID == "" || seenPads[pad.ID] {
				pad.ID = NewID()
			}
			seenPads[pad.ID] = true
			if _, _, _, ok := ParseHexColor(pad.Color); !ok {
				pad.Color = Palette[j%len(Palette)]
				pad.Border = ""
			}
			if pad.Border == "" {
				pad.Border = BorderColor(pad.Color)
			}
			if pad.Name == "" {
				pad.Name = EmptyPadName
			}
		}
	}
	if _, ok := out.FindTab(out.ActiveTabID); !ok {
		out.ActiveTabID = out.Tabs[0].ID
	}
	if out.Columns < MinColumns || out.Columns > MaxColumns {
		out.Columns = DefaultColumns
	}
	if out.ColorIndex < 0 {
		out.ColorIndex = 0
	}
	return out
}

func clampColumns(columns int) int {
	if columns < MinColumns {
		return MinColumns
	}
	if columns > MaxColumns {
		return MaxColumns
	}
	return columns
}
