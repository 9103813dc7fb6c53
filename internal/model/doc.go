package model

// Package model defines the soundboard state tree (project, tabs, pads) and the
// pure operations over it. Every operation takes a Project value and returns a
// new one; slices reachable from the input are never mutated, so snapshots can
// be handed to the UI and persistence layers without copying.
