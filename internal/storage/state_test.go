package storage

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytget/soundboard/internal/model"
)

func TestStateStore_LoadEmpty(t *testing.T) {
	app := test.NewApp()
	store := NewStateStore(app.Preferences())

	assert.Nil(t, store.Load())
}

func TestStateStore_SaveLoad(t *testing.T) {
	app := test.NewApp()
	store := NewStateStore(app.Preferences())

	project := model.NewProject()
	tabID := project.ActiveTabID
	padID := project.Tabs[0].Pads[0].ID
	project = project.UpdatePad(tabID, padID, model.PadPatch{
		Name: model.Ptr("bell"),
		File: &model.FileRef{Name: "bell.wav", MIME: "audio/wav"},
	})

	require.NoError(t, store.Save(project))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, project, *loaded)
}

func TestStateStore_Corrupt(t *testing.T) {
	app := test.NewApp()
	app.Preferences().SetString(StateKey, "{not json")
	store := NewStateStore(app.Preferences())

	assert.Nil(t, store.Load())
}

func TestStateStore_Clear(t *testing.T) {
	app := test.NewApp()
	store := NewStateStore(app.Preferences())

	require.NoError(t, store.Save(model.NewProject()))
	store.Clear()

	assert.Nil(t, store.Load())
}
