package soundboard

import (
	"context"
	"io"
	"time"

	"github.com/ytget/soundboard/internal/audio"
	"github.com/ytget/soundboard/internal/model"
)

// StateRepository persists the project tree
type StateRepository interface {
	Load() *model.Project
	Save(project model.Project) error
	Clear()
}

// AudioPlayer is the playback engine driven by the board
type AudioPlayer interface {
	SetEndCallback(func(padID string))
	Prepare(padID string, data []byte, mime string) (float64, error)
	Dismount(padID string)
	DismountAll()
	Play(ctx context.Context, padID string, opts audio.PlayOptions) (float64, error)
	Stop(ctx context.Context, padID string, opts audio.StopOptions) error
	Status(padID string) (audio.Status, bool)
	SetVolume(padID string, volume float64)
}

// Soundboard defines the actions the UI can trigger.
type Soundboard interface {
	SetUpdateCallback(func(model.Project))
	SetTickCallback(func(padID string, remaining, duration float64))
	Project() model.Project

	ClickPad(ctx context.Context, padID string) (ClickResult, error)
	AssignFile(ctx context.Context, padID, name, mime string, data []byte) error
	DropOnPlaceholder(ctx context.Context, tabID, name, mime string, data []byte) (string, error)

	AddPad(tabID string) string
	AddTab(name string) string
	RenameTab(tabID, name string)
	DeleteTab(ctx context.Context, tabID string) error
	DeletePad(ctx context.Context, padID string) error
	SetActiveTab(tabID string)
	ToggleOption(padID string, key model.OptionKey)
	SetPadColor(padID, color string) error
	SetColumns(columns int)

	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) error
	Reset(ctx context.Context) error

	// SetFadeDuration configures fade in/out length
	SetFadeDuration(d time.Duration)

	// SetDuckingVolume configures the volume of ducked pads
	SetDuckingVolume(volume float64)
}
