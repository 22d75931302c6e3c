package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It collects the URL, output path and quality preset, wires them to the download
// service and renders progress, the activity log, FFmpeg status and settings.
// All UI strings are localized via Localization.
