package storage

// Package storage persists the soundboard: the state tree goes to the
// application key-value preferences as JSON, audio payloads go to a SQLite
// database keyed by pad ID.
