package audio

// Voice is a single playing instance of a decoded PCM buffer
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	Volume() float64
	// Seek moves the playhead to the given frame
	Seek(frame int) error
	// Position returns the frame being heard right now
	Position() int
	SetLoop(loop bool)
	Close() error
}

// Backend creates voices. onEnd is called once each time a non-looping voice
// runs out of samples.
type Backend interface {
	NewVoice(pcm *PCM, onEnd func()) (Voice, error)
}
