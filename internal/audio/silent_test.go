package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSilentVoice(t *testing.T, seconds float64, onEnd func()) *silentVoice {
	t.Helper()
	pcm := &PCM{Samples: make([]float32, int(seconds*SampleRate)*Channels)}
	v, err := NewSilentBackend().NewVoice(pcm, onEnd)
	require.NoError(t, err)
	return v.(*silentVoice)
}

func TestSilentVoice_Clock(t *testing.T) {
	now := time.Unix(0, 0)
	v := newSilentVoice(t, 10, nil)
	v.now = func() time.Time { return now }

	v.Play()
	now = now.Add(1500 * time.Millisecond)
	assert.Equal(t, int(1.5*SampleRate), v.Position())

	v.Pause()
	now = now.Add(time.Second)
	assert.Equal(t, int(1.5*SampleRate), v.Position(), "paused voices do not advance")

	require.NoError(t, v.Seek(SampleRate))
	assert.Equal(t, SampleRate, v.Position())
	require.NoError(t, v.Seek(-5))
	assert.Zero(t, v.Position())
	require.NoError(t, v.Close())
}

func TestSilentVoice_Loop(t *testing.T) {
	now := time.Unix(0, 0)
	v := newSilentVoice(t, 2, nil)
	v.now = func() time.Time { return now }

	v.SetLoop(true)
	v.Play()
	now = now.Add(2500 * time.Millisecond)
	assert.Equal(t, SampleRate/2, v.Position())
	assert.True(t, v.IsPlaying())
	require.NoError(t, v.Close())
}

func TestSilentVoice_End(t *testing.T) {
	ended := make(chan struct{}, 1)
	v := newSilentVoice(t, 0.02, func() { ended <- struct{}{} })

	v.Play()
	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("end callback not called")
	}
	assert.False(t, v.IsPlaying())
	assert.Equal(t, v.frames, v.Position())
}

func TestSilentVoice_PauseCancelsEnd(t *testing.T) {
	ended := make(chan struct{}, 1)
	v := newSilentVoice(t, 0.05, func() { ended <- struct{}{} })

	v.Play()
	v.Pause()
	select {
	case <-ended:
		t.Fatal("paused voice reported its end")
	case <-time.After(100 * time.Millisecond):
	}
}
