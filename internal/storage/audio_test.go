package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *AudioStore {
	t.Helper()
	store, err := OpenAudioStore(filepath.Join(t.TempDir(), DatabaseName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAudioStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	audio := Audio{PadID: "p1", Buffer: []byte{1, 2, 3}, MIME: "audio/wav", Name: "a.wav"}
	require.NoError(t, store.Put(ctx, audio))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, audio, *got)
}

func TestAudioStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAudioStore_PutReplaces(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Put(ctx, Audio{PadID: "p1", Buffer: []byte{1}, MIME: "audio/wav", Name: "old.wav"}))
	require.NoError(t, store.Put(ctx, Audio{PadID: "p1", Buffer: []byte{9, 9}, MIME: "audio/mpeg", Name: "new.mp3"}))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []byte{9, 9}, got.Buffer)
	assert.Equal(t, "audio/mpeg", got.MIME)
	assert.Equal(t, "new.mp3", got.Name)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestAudioStore_PutWithoutID(t *testing.T) {
	store := openTestStore(t)

	assert.Error(t, store.Put(context.Background(), Audio{Buffer: []byte{1}}))
}

func TestAudioStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Put(ctx, Audio{PadID: id, Buffer: []byte(id)}))
	}

	require.NoError(t, store.Delete(ctx, "b"))
	require.NoError(t, store.Delete(ctx, "missing"))
	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, store.Clear(ctx))
	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAudioStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", DatabaseName)

	store, err := OpenAudioStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, Audio{PadID: "keep", Buffer: []byte("data")}))
	require.NoError(t, store.Close())

	store, err = OpenAudioStore(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "keep")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []byte("data"), got.Buffer)
}
