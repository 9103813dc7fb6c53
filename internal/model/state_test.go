package model

import (
	"encoding/json"
	"testing"
)

func TestNewProject(t *testing.T) {
	p := NewProject()

	if len(p.Tabs) != DefaultTabCount {
		t.Fatalf("Expected %d tabs, got %d", DefaultTabCount, len(p.Tabs))
	}
	if p.Columns != DefaultColumns {
		t.Errorf("Expected %d columns, got %d", DefaultColumns, p.Columns)
	}
	if p.ActiveTabID != p.Tabs[0].ID {
		t.Errorf("Expected first tab to be active, got %s", p.ActiveTabID)
	}
	if p.ColorIndex != DefaultTabCount {
		t.Errorf("Expected color index %d, got %d", DefaultTabCount, p.ColorIndex)
	}
	for i, tab := range p.Tabs {
		if len(tab.Pads) != 1 {
			t.Errorf("Tab %d: expected 1 pad, got %d", i, len(tab.Pads))
		}
		if tab.Pads[0].Color != Palette[i] {
			t.Errorf("Tab %d: expected color %s, got %s", i, Palette[i], tab.Pads[0].Color)
		}
	}
	if p.Tabs[0].Name != "Pestaña 1" {
		t.Errorf("Expected tab name 'Pestaña 1', got '%s'", p.Tabs[0].Name)
	}
}

func TestNewPad_Defaults(t *testing.T) {
	pad := NewPad(len(Palette) + 2)

	if pad.Name != EmptyPadName {
		t.Errorf("Expected name %s, got %s", EmptyPadName, pad.Name)
	}
	if pad.Color != Palette[2] {
		t.Errorf("Expected palette to wrap to %s, got %s", Palette[2], pad.Color)
	}
	if pad.File != nil {
		t.Error("New pad should not have a file")
	}
	if !pad.Options.Restart {
		t.Error("Restart should be enabled by default")
	}
	if pad.Options.Loop || pad.Options.Ducking || pad.Options.FadeIn || pad.Options.FadeOut {
		t.Errorf("Unexpected options enabled: %+v", pad.Options)
	}
}

func TestAddPad_Consecutive(t *testing.T) {
	for _, n := range []int{0, 1, 5, 60} {
		p := NewProjectWith(1, DefaultColumns)
		tabID := p.ActiveTabID
		for i := 0; i < n; i++ {
			p = p.AddPad(tabID)
		}

		tab, _ := p.FindTab(tabID)
		if len(tab.Pads) != n+1 {
			t.Fatalf("n=%d: expected %d pads, got %d", n, n+1, len(tab.Pads))
		}
		ids := make(map[string]bool)
		for _, pad := range tab.Pads {
			if ids[pad.ID] {
				t.Fatalf("n=%d: duplicated pad id %s", n, pad.ID)
			}
			ids[pad.ID] = true
			if pad.Name != EmptyPadName {
				t.Errorf("n=%d: expected name %s, got %s", n, EmptyPadName, pad.Name)
			}
			if pad.File != nil {
				t.Errorf("n=%d: expected no file reference", n)
			}
		}
		if p.ColorIndex != n+1 {
			t.Errorf("n=%d: expected color index %d, got %d", n, n+1, p.ColorIndex)
		}
	}
}

func TestAddPad_DoesNotMutateInput(t *testing.T) {
	before := NewProjectWith(1, DefaultColumns)
	tabID := before.ActiveTabID

	after := before.AddPad(tabID)

	if len(before.Tabs[0].Pads) != 1 {
		t.Errorf("Input project was mutated: %d pads", len(before.Tabs[0].Pads))
	}
	if len(after.Tabs[0].Pads) != 2 {
		t.Errorf("Expected 2 pads after AddPad, got %d", len(after.Tabs[0].Pads))
	}
}

func TestAddPad_UnknownTab(t *testing.T) {
	p := NewProject()
	out := p.AddPad("missing")

	if out.ColorIndex != p.ColorIndex {
		t.Error("Unknown tab should leave the color index unchanged")
	}
	if len(out.AllPads()) != len(p.AllPads()) {
		t.Error("Unknown tab should not add pads")
	}
}

func TestNormalize_RepairsNilPads(t *testing.T) {
	damaged := &Project{
		Tabs:        []Tab{{ID: "p1", Name: "P1", Pads: nil}},
		ActiveTabID: "p1",
		Columns:     5,
		ColorIndex:  0,
	}

	p := Normalize(damaged)
	if p.Tabs[0].Pads == nil {
		t.Fatal("Normalize should replace nil pads with an empty slice")
	}

	p = p.AddPad("p1")
	if len(p.Tabs[0].Pads) != 1 {
		t.Fatalf("Expected exactly 1 pad, got %d", len(p.Tabs[0].Pads))
	}
	if p.Tabs[0].Pads[0].Name != EmptyPadName {
		t.Errorf("Expected name %s, got %s", EmptyPadName, p.Tabs[0].Pads[0].Name)
	}
}

func TestNormalize_FromJSONWithNullPads(t *testing.T) {
	raw := `{"pestañas":[{"idPestana":"p1","nombre":"P1","pads":null}],"pestanaActivaId":"zz","columnas":99}`
	var loaded Project
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	p := Normalize(&loaded)
	if p.ActiveTabID != "p1" {
		t.Errorf("Expected active tab to be repaired to p1, got %s", p.ActiveTabID)
	}
	if p.Columns != DefaultColumns {
		t.Errorf("Expected columns to be repaired to %d, got %d", DefaultColumns, p.Columns)
	}
	if len(p.Tabs[0].Pads) != 0 {
		t.Errorf("Expected empty pads, got %d", len(p.Tabs[0].Pads))
	}
}

func TestNormalize_Empty(t *testing.T) {
	tests := []*Project{nil, {}, {Tabs: []Tab{}}}
	for i, in := range tests {
		p := Normalize(in)
		if len(p.Tabs) != DefaultTabCount {
			t.Errorf("Case %d: expected fresh project with %d tabs, got %d", i, DefaultTabCount, len(p.Tabs))
		}
	}
}

func TestNormalize_DuplicateIDs(t *testing.T) {
	in := &Project{
		Tabs: []Tab{
			{ID: "t", Pads: []Pad{{ID: "a", Color: "#ffffff"}, {ID: "a", Color: "nope"}}},
			{ID: "t", Pads: []Pad{{ID: ""}}},
		},
		ActiveTabID: "t",
		Columns:     3,
		ColorIndex:  -4,
	}

	p := Normalize(in)
	if p.Tabs[0].ID == p.Tabs[1].ID {
		t.Error("Duplicated tab ids should be repaired")
	}
	ids := p.PadIDs()
	if len(ids) != 3 {
		t.Fatalf("Expected 3 unique pad ids, got %d (%v)", len(ids), ids)
	}
	if p.Tabs[0].Pads[0].ID != "a" {
		t.Errorf("First occurrence should keep its id, got %s", p.Tabs[0].Pads[0].ID)
	}
	if p.Tabs[0].Pads[1].Color != Palette[1] {
		t.Errorf("Invalid color should be replaced by palette entry, got %s", p.Tabs[0].Pads[1].Color)
	}
	if p.Tabs[1].Pads[0].Name != EmptyPadName {
		t.Errorf("Missing name should default to %s", EmptyPadName)
	}
	if p.ColorIndex != 0 {
		t.Errorf("Negative color index should be reset, got %d", p.ColorIndex)
	}
	if p.Columns != 3 {
		t.Errorf("Valid column count should be kept, got %d", p.Columns)
	}
}

func TestDeleteTab(t *testing.T) {
	p := NewProject()
	first, second := p.Tabs[0].ID, p.Tabs[1].ID

	p = p.DeleteTab(first)
	if len(p.Tabs) != 2 {
		t.Fatalf("Expected 2 tabs, got %d", len(p.Tabs))
	}
	if p.ActiveTabID != second {
		t.Errorf("Expected active tab to move to %s, got %s", second, p.ActiveTabID)
	}

	p = p.DeleteTab("missing")
	if len(p.Tabs) != 2 {
		t.Errorf("Unknown tab should not be deleted")
	}
}

func TestDeleteTab_LastTabRefused(t *testing.T) {
	p := NewProjectWith(1, DefaultColumns)
	out := p.DeleteTab(p.ActiveTabID)

	if len(out.Tabs) != 1 {
		t.Fatalf("Expected last tab to remain, got %d tabs", len(out.Tabs))
	}
	if out.ActiveTabID != p.ActiveTabID {
		t.Error("Active tab should be unchanged")
	}
}

func TestAddRenameSetActiveTab(t *testing.T) {
	p := NewProject()
	p = p.AddTab("  ")
	if len(p.Tabs) != 4 {
		t.Fatalf("Expected 4 tabs, got %d", len(p.Tabs))
	}
	added := p.Tabs[3]
	if added.Name != DefaultNewTabName {
		t.Errorf("Expected default name, got %s", added.Name)
	}
	if p.ActiveTabID != added.ID {
		t.Error("New tab should become active")
	}
	if len(added.Pads) != 1 || added.Pads[0].Color != Palette[3] {
		t.Errorf("New tab should start with one pad using the next color, got %+v", added.Pads)
	}

	p = p.RenameTab(added.ID, "Efectos")
	if tab, _ := p.FindTab(added.ID); tab.Name != "Efectos" {
		t.Errorf("Expected renamed tab, got %s", tab.Name)
	}

	p = p.SetActiveTab(p.Tabs[0].ID)
	if p.ActiveTabID != p.Tabs[0].ID {
		t.Error("SetActiveTab should switch the active tab")
	}
	p = p.SetActiveTab("missing")
	if p.ActiveTabID != p.Tabs[0].ID {
		t.Error("SetActiveTab with unknown id should be a no-op")
	}
}

func TestUpdatePad(t *testing.T) {
	p := NewProjectWith(1, DefaultColumns)
	tabID := p.ActiveTabID
	p = p.AddPad(tabID)
	padID := p.Tabs[0].Pads[0].ID
	otherID := p.Tabs[0].Pads[1].ID

	p = p.UpdatePad(tabID, padID, PadPatch{
		Name: Ptr("Audio prueba"),
		File: &FileRef{Name: "Audio prueba.mp3", MIME: "audio/mpeg"},
	})

	pad, _ := p.FindPad(padID)
	if pad.Name != "Audio prueba" {
		t.Errorf("Expected name to be updated, got %s", pad.Name)
	}
	if pad.File == nil || pad.File.MIME != "audio/mpeg" {
		t.Errorf("Expected file reference, got %+v", pad.File)
	}
	if !pad.Options.Restart || pad.Color != Palette[0] {
		t.Error("Fields outside the patch should be kept")
	}
	other, _ := p.FindPad(otherID)
	if other.Name != EmptyPadName {
		t.Error("Other pads should be untouched")
	}
}

func TestUpdatePlayback(t *testing.T) {
	p := NewProjectWith(1, DefaultColumns)
	tabID := p.ActiveTabID
	padID := p.Tabs[0].Pads[0].ID

	p = p.UpdatePlayback(tabID, padID, PlaybackPatch{Duration: Ptr(10.0), Remaining: Ptr(10.0)})
	p = p.UpdatePlayback(tabID, padID, PlaybackPatch{Playing: Ptr(true)})

	pad, _ := p.FindPad(padID)
	if !pad.Playback.Playing || pad.Playback.Duration != 10 || pad.Playback.Remaining != 10 {
		t.Errorf("Unexpected playback %+v", pad.Playback)
	}

	p = p.ResetTransient()
	pad, _ = p.FindPad(padID)
	if pad.Playback.Playing {
		t.Error("ResetTransient should clear the playing flag")
	}
}

func TestDeletePad(t *testing.T) {
	p := NewProjectWith(1, DefaultColumns)
	tabID := p.ActiveTabID
	p = p.AddPad(tabID)
	padID := p.Tabs[0].Pads[0].ID

	p = p.DeletePad(tabID, padID)
	if _, ok := p.FindPad(padID); ok {
		t.Error("Pad should be removed")
	}
	if len(p.Tabs[0].Pads) != 1 {
		t.Errorf("Expected 1 pad left, got %d", len(p.Tabs[0].Pads))
	}
}

func TestSetColumns(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, MinColumns},
		{4, 4},
		{MaxColumns + 5, MaxColumns},
	}

	for _, test := range tests {
		p := NewProject().SetColumns(test.input)
		if p.Columns != test.expected {
			t.Errorf("SetColumns(%d) = %d, expected %d", test.input, p.Columns, test.expected)
		}
	}
}

func TestPadIDs_Deduplicated(t *testing.T) {
	p := Project{Tabs: []Tab{
		{ID: "a", Pads: []Pad{{ID: "1"}, {ID: "2"}}},
		{ID: "b", Pads: []Pad{{ID: "2"}, {ID: "3"}}},
	}}

	ids := p.PadIDs()
	expected := []string{"1", "2", "3"}
	if len(ids) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, ids)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("Index %d: expected %s, got %s", i, expected[i], ids[i])
		}
	}
}

func TestOptionsToggle(t *testing.T) {
	keys := []OptionKey{OptionDucking, OptionLoop, OptionRestart, OptionFadeIn, OptionFadeOut}
	for _, key := range keys {
		var o Options
		toggled := o.Toggle(key)
		if !toggled.Enabled(key) {
			t.Errorf("Toggle(%s) should enable the option", key)
		}
		if toggled.Toggle(key).Enabled(key) {
			t.Errorf("Toggling %s twice should disable it", key)
		}
	}
}
