package soundboard

// Package soundboard implements the application core: it owns the project
// state, binds pads to loaded audio, runs the per-pad countdown timers and
// applies ducking. Every user action is a method on Board; the UI only
// renders what Board reports through its callbacks.
