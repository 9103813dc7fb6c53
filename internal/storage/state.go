package storage

import (
	"encoding/json"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"github.com/ytget/soundboard/internal/model"
)

// StateKey is the preferences key holding the serialized project
const StateKey = "soundboard-estado"

// StateStore saves the project tree in the application preferences
type StateStore struct {
	prefs fyne.Preferences
}

// NewStateStore creates a state store on top of the given preferences
func NewStateStore(prefs fyne.Preferences) *StateStore {
	return &StateStore{prefs: prefs}
}

// Load returns the stored project, or nil when nothing usable is stored.
// A corrupt value is logged and treated as absent.
func (s *StateStore) Load() *model.Project {
	raw := s.prefs.String(StateKey)
	if raw == "" {
		return nil
	}

	var project model.Project
	if err := json.Unmarshal([]byte(raw), &project); err != nil {
		log.Printf("Stored state is corrupt, starting fresh: %v", err)
		return nil
	}
	return &project
}

// Save serializes the project. Audio payloads are never part of it.
func (s *StateStore) Save(project model.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	s.prefs.SetString(StateKey, string(data))
	return nil
}

// Clear removes the stored project
func (s *StateStore) Clear() {
	s.prefs.RemoveValue(StateKey)
}
