package platform

// Package platform contains OS/platform integration: the application data
// directory, filesystem helpers, audio type detection of dropped files and
// OS open/reveal of exported projects.
