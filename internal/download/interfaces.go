package download

import (
	"github.com/ytget/ytgrab/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	// SetUpdateCallback registers a receiver for task snapshots. It is called
	// from the worker goroutine.
	SetUpdateCallback(func(model.DownloadTask))

	// Start launches one download. Only one task may be active at a time.
	Start(url string, quality model.Quality, outputDir string) (model.DownloadTask, error)

	// Stop cancels the active download
	Stop() error

	IsRunning() bool
	Current() (model.DownloadTask, bool)

	// Wait blocks until the active download (if any) has finished
	Wait()

	SetRetries(n int)
	SetFilenameTemplate(template string)
	SetFFmpegLocation(location string)
}
