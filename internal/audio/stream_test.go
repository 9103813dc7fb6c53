package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCMStream_ReadToEOF(t *testing.T) {
	pcm := &PCM{Samples: []float32{0.5, -0.5, 0.25, -0.25}}
	ends := 0
	s := newPCMStream(pcm, func() { ends++ })

	buf := make([]byte, 64)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(-0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, 1, ends)

	n, err = s.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 1, ends, "end is reported once per pass")
}

func TestPCMStream_Loop(t *testing.T) {
	pcm := &PCM{Samples: []float32{1, 1, 0, 0}}
	ends := 0
	s := newPCMStream(pcm, func() { ends++ })
	s.setLoop(true)

	buf := make([]byte, 40)
	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 40, n)
	assert.Zero(t, ends)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:])))
}

func TestPCMStream_Seek(t *testing.T) {
	pcm := &PCM{Samples: make([]float32, 20)}
	s := newPCMStream(pcm, nil)

	pos, err := s.Seek(21, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(16), pos, "seek aligns to frames")
	assert.Equal(t, 2, s.framePosition())

	pos, err = s.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(80), pos)
	assert.True(t, s.isEnded())

	_, err = s.Seek(0, io.SeekStart)
	require.NoError(t, err)
	assert.False(t, s.isEnded())

	_, err = s.Seek(-1, io.SeekStart)
	assert.Error(t, err)
}
