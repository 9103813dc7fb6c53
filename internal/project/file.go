package project

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ytget/soundboard/internal/model"
	"github.com/ytget/soundboard/internal/storage"
)

// Project file format versions
const (
	VersionStateOnly  = 1
	VersionWithAudios = 2
	CurrentVersion    = VersionWithAudios
)

// File naming and import defaults
const (
	DefaultFileName = "soundboard-configuracion.json"
	DefaultMIME     = "audio/wav"
	DefaultName     = "audio"
	indent          = "  "
)

var (
	// ErrUnsupportedVersion is returned for files written by a newer format
	ErrUnsupportedVersion = errors.New("unsupported project file version")
	// ErrMissingState is returned when a file carries no state tree
	ErrMissingState = errors.New("project file has no state")
)

// AudioEntry is one embedded audio payload
type AudioEntry struct {
	PadID  string `json:"idPad"`
	MIME   string `json:"tipo"`
	Name   string `json:"nombre"`
	Base64 string `json:"base64"`
}

// File is the portable project document
type File struct {
	Version   int            `json:"version"`
	CreatedAt string         `json:"creadoEn"`
	State     *model.Project `json:"estado"`
	Audios    []AudioEntry   `json:"audios"`
}

// Export builds a version 2 file with every stored audio referenced by the
// project. Pads whose audio is not stored are skipped.
func Export(ctx context.Context, project model.Project, audios storage.AudioReader, now time.Time) (*File, error) {
	state := project.Clone()
	file := &File{
		Version:   CurrentVersion,
		CreatedAt: now.UTC().Format(time.RFC3339),
		State:     &state,
		Audios:    []AudioEntry{},
	}

	for _, padID := range project.PadIDs() {
		audio, err := audios.Get(ctx, padID)
		if err != nil {
			return nil, fmt.Errorf("failed to export pad %s: %w", padID, err)
		}
		if audio == nil {
			continue
		}
		file.Audios = append(file.Audios, AudioEntry{
			PadID:  padID,
			MIME:   audio.MIME,
			Name:   audio.Name,
			Base64: base64.StdEncoding.EncodeToString(audio.Buffer),
		})
	}
	return file, nil
}

// Encode writes the file as indented JSON
func Encode(w io.Writer, file *File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to encode project file: %w", err)
	}
	return nil
}

// Decode reads a project file. Version 0 is read as version 1.
func Decode(r io.Reader) (*File, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if file.Version == 0 {
		file.Version = VersionStateOnly
	}
	if file.Version < VersionStateOnly || file.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, file.Version)
	}
	if file.State == nil {
		return nil, ErrMissingState
	}
	return &file, nil
}

// Import writes every embedded audio with an id and payload to the store
// and returns the state tree. Nothing is written unless every payload is valid.
func Import(ctx context.Context, file *File, audios storage.AudioWriter) (model.Project, error) {
	if file == nil || file.State == nil {
		return model.Project{}, ErrMissingState
	}
	entries, err := Audios(file)
	if err != nil {
		return model.Project{}, err
	}
	if err := Store(ctx, entries, audios); err != nil {
		return model.Project{}, err
	}
	return file.State.Clone(), nil
}

// Audios decodes the embedded payloads whatever the file version. Entries
// without an id or payload are skipped; missing MIME type and name get
// defaults.
func Audios(file *File) ([]storage.Audio, error) {
	out := make([]storage.Audio, 0, len(file.Audios))
	for _, entry := range file.Audios {
		if entry.PadID == "" || entry.Base64 == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(entry.Base64)
		if err != nil {
			return nil, fmt.Errorf("invalid audio payload for pad %s: %w", entry.PadID, err)
		}
		audio := storage.Audio{
			PadID:  entry.PadID,
			Buffer: data,
			MIME:   entry.MIME,
			Name:   entry.Name,
		}
		if audio.MIME == "" {
			audio.MIME = DefaultMIME
		}
		if audio.Name == "" {
			audio.Name = DefaultName
		}
		out = append(out, audio)
	}
	return out, nil
}

// Store puts decoded audio into the store
func Store(ctx context.Context, entries []storage.Audio, audios storage.AudioWriter) error {
	for _, audio := range entries {
		if err := audios.Put(ctx, audio); err != nil {
			return fmt.Errorf("failed to store audio for pad %s: %w", audio.PadID, err)
		}
	}
	return nil
}

// Summary describes a file for listings
type Summary struct {
	Version   int
	CreatedAt string
	Tabs      int
	Pads      int
	Audios    int
	Bytes     int
}

// Summarize counts the contents of a file without decoding payloads
func Summarize(file *File) Summary {
	s := Summary{Version: file.Version, CreatedAt: file.CreatedAt, Audios: len(file.Audios)}
	if file.State != nil {
		s.Tabs = len(file.State.Tabs)
		s.Pads = len(file.State.AllPads())
	}
	for _, entry := range file.Audios {
		s.Bytes += base64.StdEncoding.DecodedLen(len(entry.Base64))
	}
	return s
}
