package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/ytget/soundboard/internal/platform"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DatabaseName is the file name of the audio database
const DatabaseName = "soundboard-audios.db"

// Audio is a stored audio payload. One row per pad.
type Audio struct {
	PadID  string `gorm:"column:id_pad;primaryKey"`
	Buffer []byte `gorm:"column:buffer"`
	MIME   string `gorm:"column:tipo"`
	Name   string `gorm:"column:nombre"`
}

// TableName pins the table name
func (Audio) TableName() string {
	return "audios"
}

// AudioStore is the SQLite backed audio object store
type AudioStore struct {
	db *gorm.DB
}

// OpenAudioStore opens or creates the database at path and migrates the schema
func OpenAudioStore(path string) (*AudioStore, error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio database: %w", err)
	}

	if err := db.AutoMigrate(&Audio{}); err != nil {
		return nil, fmt.Errorf("failed to migrate audio database: %w", err)
	}

	log.Printf("Audio store opened at %s", path)
	return &AudioStore{db: db}, nil
}

// Put inserts or replaces the audio of a pad
func (s *AudioStore) Put(ctx context.Context, audio Audio) error {
	if audio.PadID == "" {
		return fmt.Errorf("audio has no pad id")
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&audio).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store audio for pad %s: %w", audio.PadID, err)
	}
	return nil
}

// Get returns the audio of a pad, or nil when none is stored
func (s *AudioStore) Get(ctx context.Context, padID string) (*Audio, error) {
	var audio Audio
	err := s.db.WithContext(ctx).Where("id_pad = ?", padID).Take(&audio).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audio for pad %s: %w", padID, err)
	}
	return &audio, nil
}

// Delete removes the audio of a pad. Missing rows are not an error.
func (s *AudioStore) Delete(ctx context.Context, padID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id_pad = ?", padID).Delete(&Audio{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete audio for pad %s: %w", padID, err)
	}
	return nil
}

// Clear removes every stored audio
func (s *AudioStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Audio{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to clear audio store: %w", err)
	}
	return nil
}

// Count returns the number of stored audios
func (s *AudioStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Audio{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count audios: %w", err)
	}
	return n, nil
}

// Close releases the database
func (s *AudioStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
