package main

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/soundboard/internal/audio"
	"github.com/ytget/soundboard/internal/config"
	"github.com/ytget/soundboard/internal/soundboard"
	"github.com/ytget/soundboard/internal/storage"
	"github.com/ytget/soundboard/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.soundboard"
	AppName = "Soundboard"

	WindowWidth  = 1024
	WindowHeight = 720
)

func main() {
	// Log version information
	fmt.Printf("Soundboard v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewSoundboardTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)

	audios, err := storage.OpenAudioStore(settings.GetAudioDBPath())
	if err != nil {
		log.Fatalf("failed to open audio store: %v", err)
	}
	defer audios.Close()

	var backend audio.Backend
	device, err := audio.NewOtoBackend()
	if err != nil {
		log.Printf("Audio output unavailable, pads will play silently: %v", err)
		backend = audio.NewSilentBackend()
	} else {
		backend = device
	}
	player := audio.NewController(backend)

	board := soundboard.NewBoard(storage.NewStateStore(myApp.Preferences()), audios, player, soundboard.Options{
		FadeDuration: settings.GetFadeDuration(),
	})
	board.SetDuckingVolume(settings.GetDuckingVolume())
	if err := board.Start(context.Background()); err != nil {
		log.Printf("Failed to restore soundboard: %v", err)
	}
	defer board.Close()

	// Create and setup UI
	ui.NewRootUI(myWindow, settings, board)

	// Show and run
	myWindow.ShowAndRun()
}
