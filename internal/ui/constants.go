package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconWarning = "⚠️"
	IconFolder  = "📁"
)

// Text fragments
const (
	NotAvailable = "N/A"
	UnknownValue = "Unknown"
)

// Log view
const (
	MaxLogLines = 1000
)

// Layout sizing
const (
	FFmpegHelpWidth  float32 = 550
	FFmpegHelpHeight float32 = 450
	SettingsWidth    float32 = 500
	SettingsHeight   float32 = 420
)

// External links
const (
	FFmpegDownloadURL = "https://ffmpeg.org/download.html"
)

// Background tool operations
const (
	InstallTimeout = 5 * time.Minute
)
