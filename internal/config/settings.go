package config

import (
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/ytget/soundboard/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyFadeDuration  = "fade_duration_ms"
	KeyDuckingVolume = "ducking_volume"
	KeyLanguage      = "app_language"
	KeyAudioDBPath   = "audio_database_path"
	KeyLastExportDir = "last_export_directory"
)

// Default values
const (
	DefaultFadeDurationMs = 2000
	DefaultDuckingVolume  = 0.35
	DefaultLanguage       = "system"
	AudioDBFileName       = "soundboard-audios.db"
)

// Bounds for user-editable values
const (
	MinFadeDurationMs = 100
	MaxFadeDurationMs = 10000
	MinDuckingVolume  = 0.0
	MaxDuckingVolume  = 1.0
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetFadeDurationMs returns the fade in/out length in milliseconds
func (s *Settings) GetFadeDurationMs() int {
	value := s.app.Preferences().Int(KeyFadeDuration)
	if value <= 0 {
		s.SetFadeDurationMs(DefaultFadeDurationMs)
		return DefaultFadeDurationMs
	}
	return value
}

// SetFadeDurationMs sets the fade length, clamped to the allowed range
func (s *Settings) SetFadeDurationMs(ms int) {
	if ms < MinFadeDurationMs {
		ms = MinFadeDurationMs
	}
	if ms > MaxFadeDurationMs {
		ms = MaxFadeDurationMs
	}
	s.app.Preferences().SetInt(KeyFadeDuration, ms)
}

// GetFadeDuration returns the fade length as a duration
func (s *Settings) GetFadeDuration() time.Duration {
	return time.Duration(s.GetFadeDurationMs()) * time.Millisecond
}

// GetDuckingVolume returns the volume applied to ducking pads while others play
func (s *Settings) GetDuckingVolume() float64 {
	return s.app.Preferences().FloatWithFallback(KeyDuckingVolume, DefaultDuckingVolume)
}

// SetDuckingVolume sets the ducking volume, clamped to [0, 1]
func (s *Settings) SetDuckingVolume(volume float64) {
	if volume < MinDuckingVolume {
		volume = MinDuckingVolume
	}
	if volume > MaxDuckingVolume {
		volume = MaxDuckingVolume
	}
	s.app.Preferences().SetFloat(KeyDuckingVolume, volume)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"es":     "Español",
		"en":     "English",
	}
}

// GetAudioDBPath returns the path of the audio database file
func (s *Settings) GetAudioDBPath() string {
	path := s.app.Preferences().String(KeyAudioDBPath)
	if path == "" {
		dir, err := platform.GetDataDir()
		if err != nil {
			dir = filepath.Join(".", platform.AppDirName)
		}
		path = filepath.Join(dir, AudioDBFileName)
		s.SetAudioDBPath(path)
	}
	return path
}

// SetAudioDBPath sets the path of the audio database file
func (s *Settings) SetAudioDBPath(path string) {
	s.app.Preferences().SetString(KeyAudioDBPath, path)
}

// GetLastExportDirectory returns the directory last used for export or import
func (s *Settings) GetLastExportDirectory() string {
	dir := s.app.Preferences().String(KeyLastExportDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDocumentsDir()
		if err != nil {
			return ""
		}
		return defaultDir
	}
	return dir
}

// SetLastExportDirectory remembers the directory last used for export or import
func (s *Settings) SetLastExportDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastExportDir, dir)
}
