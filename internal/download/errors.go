package download

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyURL is returned when Start is called without a URL
	ErrEmptyURL = errors.New("url is empty")

	// ErrAlreadyRunning is returned when a download is already active
	ErrAlreadyRunning = errors.New("a download is already running")

	// ErrNotRunning is returned by Stop when nothing is active
	ErrNotRunning = errors.New("no download is running")
)

const (
	ffmpegKeyword    = "ffmpeg"
	engineErrorLabel = "ERROR:"
)

// EngineError carries the message yt-dlp printed for a failed run
type EngineError struct {
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "yt-dlp failed"
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// newEngineError picks the last "ERROR:" line of yt-dlp's stderr, falling back
// to the last non-empty line
func newEngineError(stderr string, err error) error {
	var lastError, lastLine string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lastLine = line
		if strings.HasPrefix(line, engineErrorLabel) {
			lastError = strings.TrimSpace(strings.TrimPrefix(line, engineErrorLabel))
		}
	}

	msg := lastError
	if msg == "" {
		msg = lastLine
	}
	if msg == "" && err == nil {
		return nil
	}
	return &EngineError{Message: msg, Err: err}
}

// IsFFmpegError reports whether a failure is about the ffmpeg toolchain
func IsFFmpegError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), ffmpegKeyword)
}

// IsFFmpegMessage is IsFFmpegError for an already rendered task error
func IsFFmpegMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), ffmpegKeyword)
}
