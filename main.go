package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ytget/media-converter/internal/config"
	"github.com/ytget/media-converter/internal/convert"
	"github.com/ytget/media-converter/internal/fetch"
	"github.com/ytget/media-converter/internal/platform"
	"github.com/ytget/media-converter/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.media-converter"
	AppName = "Media Converter"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	setupLogging()
	log.Info().Str("version", version).Msg("starting media converter")

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// URL imports are staged in the configured save directory
	settings := config.NewSettings(myApp)
	fetchDir := settings.GetSaveDirectory()
	if err := platform.CreateDirectoryIfNotExists(fetchDir); err != nil {
		log.Warn().Err(err).Str("dir", fetchDir).Msg("failed to ensure fetch directory")
	}

	// Initialize services
	convertSvc := convert.NewService()
	fetchSvc := fetch.NewService(fetchDir)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, convertSvc, fetchSvc)

	// Show and run
	myWindow.ShowAndRun()
}

// setupLogging configures the global zerolog logger. LOG_LEVEL overrides the
// default info level.
func setupLogging() {
	level := zerolog.InfoLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
