package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "ytgrab.png"
)

// LoadLogoResource loads the window icon from the working directory.
// Missing icons are not fatal; Fyne falls back to its default.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
