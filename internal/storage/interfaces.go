package storage

import "context"

// AudioReader fetches stored audio by pad ID
type AudioReader interface {
	Get(ctx context.Context, padID string) (*Audio, error)
}

// AudioWriter stores audio keyed by pad ID
type AudioWriter interface {
	Put(ctx context.Context, audio Audio) error
}

// AudioRepository is the full audio object store
type AudioRepository interface {
	AudioReader
	AudioWriter
	Delete(ctx context.Context, padID string) error
	Clear(ctx context.Context) error
	Close() error
}
