package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
)

// pcmStream exposes PCM as a float32 little-endian byte stream. It can loop
// and reports the end of the data once per pass.
type pcmStream struct {
	mu      sync.Mutex
	samples []float32
	pos     int // byte offset
	loop    bool
	ended   bool
	onEOF   func()
}

func newPCMStream(pcm *PCM, onEOF func()) *pcmStream {
	return &pcmStream{samples: pcm.Samples, onEOF: onEOF}
}

func (s *pcmStream) size() int {
	return len(s.samples) * 4
}

// Read implements io.Reader
func (s *pcmStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	n := 0
	for n+4 <= len(p) {
		if s.pos >= s.size() {
			if s.loop && s.size() > 0 {
				s.pos = 0
				continue
			}
			break
		}
		v := math.Float32bits(s.samples[s.pos/4])
		binary.LittleEndian.PutUint32(p[n:], v)
		n += 4
		s.pos += 4
	}
	atEnd := s.pos >= s.size() && !s.loop
	notify := atEnd && !s.ended
	if atEnd {
		s.ended = true
	}
	onEOF := s.onEOF
	s.mu.Unlock()

	if notify && onEOF != nil {
		onEOF()
	}
	if n == 0 && atEnd {
		return 0, io.EOF
	}
	return n, nil
}

// Seek implements io.Seeker over the byte stream
func (s *pcmStream) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(s.pos) + offset
	case io.SeekEnd:
		next = int64(s.size()) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if next < 0 {
		return 0, errors.New("negative position")
	}
	if next > int64(s.size()) {
		next = int64(s.size())
	}
	next -= next % BytesPerFrame
	s.pos = int(next)
	s.ended = s.pos >= s.size()
	return next, nil
}

func (s *pcmStream) setLoop(loop bool) {
	s.mu.Lock()
	s.loop = loop
	if loop {
		s.ended = false
	}
	s.mu.Unlock()
}

func (s *pcmStream) isEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// framePosition returns the read position in frames
func (s *pcmStream) framePosition() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos / BytesPerFrame
}

func (s *pcmStream) frames() int {
	return len(s.samples) / Channels
}
