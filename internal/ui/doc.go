package ui

// Package ui contains the Fyne-based desktop user interface for the soundboard.
// It renders tabs and pad grids, forwards taps, drops and menu actions to the
// soundboard service, and refreshes tiles from its update and tick callbacks.
// All UI strings are localized via Localization.
