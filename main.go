package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/platform"
	"github.com/ytget/ytgrab/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytgrab"
	AppName = "YouTube Downloader"

	WindowWidth  = 700
	WindowHeight = 650
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	settings := config.NewSettings(myApp)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme(settings.GetAppearance()))

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	myWindow.SetMaster()

	if icon, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(icon)
	}

	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		log.Printf("failed to ensure output dir: %v", err)
	}

	// Initialize services
	downloadSvc := download.NewService(nil)

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, downloadSvc, version)
	root.Startup()

	// Show and run
	myWindow.ShowAndRun()
}
