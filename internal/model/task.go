package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DownloadTask represents a single download request and its runtime telemetry
type DownloadTask struct {
	ID              string
	URL             string
	VideoID         string  // YouTube video ID, empty for other sites
	Quality         Quality // preset selector passed to yt-dlp
	OutputDir       string
	Status          TaskStatus
	Progress        float64 // 0.0 to 1.0
	Percent         float64 // 0 to 100, one decimal shown in UI
	DownloadedBytes int64
	TotalBytes      int64   // 0 if unknown
	Speed           float64 // bytes per second, 0 if unknown
	ETASec          int     // ETA in seconds, -1 if unknown
	Title           string
	Uploader        string
	CurrentFile     string // file yt-dlp reported as finished most recently
	OutputPath      string // final path to downloaded file
	FileSize        int64
	LastError       string
	StartedAt       time.Time
	FinishedAt      time.Time
	Seq             uint64 // publish order across all snapshots, 0 if unsequenced
}

// IsStaleAfter reports whether this snapshot was published before prev and
// must not overwrite it. Unsequenced snapshots are never stale.
func (dt *DownloadTask) IsStaleAfter(prev DownloadTask) bool {
	return dt.Seq != 0 && dt.Seq < prev.Seq
}

// HasKnownTotal reports whether yt-dlp announced the size of the current stream
func (dt *DownloadTask) HasKnownTotal() bool {
	return dt.TotalBytes > 0
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	if dt.OutputPath != "" {
		// support both / and \ separators
		parts := strings.FieldsFunc(dt.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return dt.URL
}

// CurrentFileName returns the base name of the last finished file
func (dt *DownloadTask) CurrentFileName() string {
	if dt.CurrentFile == "" {
		return ""
	}
	return filepath.Base(dt.CurrentFile)
}
