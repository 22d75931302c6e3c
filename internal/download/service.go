package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/ytgrab/internal/media"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

// Retry settings
const (
	DefaultRetries    = 1
	MaxRetries        = 5
	DefaultRetryDelay = 2 * time.Second
)

// TaskIDPrefix prefixes generated task IDs
const TaskIDPrefix = "dl-"

// Service runs at most one download at a time
type Service struct {
	runner Runner

	mu               sync.RWMutex
	current          *model.DownloadTask
	cancel           context.CancelFunc
	done             chan struct{}
	retries          int
	retryDelay       time.Duration
	filenameTemplate string
	ffmpegLocation   string
	formatFallback   bool
	onUpdate         func(model.DownloadTask) // callback for UI updates
	seq              uint64

	// publishMu orders callback delivery; published is the last Seq delivered
	publishMu sync.Mutex
	published uint64

	tagAudio func(path, title, artist string) error
}

// NewService creates a new download service
func NewService(runner Runner) *Service {
	if runner == nil {
		runner = NewYTDLPRunner(DefaultProgressInterval)
	}
	return &Service{
		runner:           runner,
		retries:          DefaultRetries,
		retryDelay:       DefaultRetryDelay,
		filenameTemplate: DefaultFilenameTemplate,
		tagAudio:         media.TagMP3,
	}
}

// SetUpdateCallback sets the callback function for task updates. Snapshots
// arrive in publish order and stale ones are dropped, so the callback must not
// call back into the service.
func (s *Service) SetUpdateCallback(callback func(model.DownloadTask)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// SetRetries sets how many times a failed download is retried
func (s *Service) SetRetries(n int) {
	if n < 0 {
		n = 0
	}
	if n > MaxRetries {
		n = MaxRetries
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retries = n
}

// SetFilenameTemplate sets the yt-dlp output template used below the output dir
func (s *Service) SetFilenameTemplate(template string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(template) == "" {
		template = DefaultFilenameTemplate
	}
	s.filenameTemplate = template
}

// SetFFmpegLocation points yt-dlp at a specific ffmpeg binary or directory
func (s *Service) SetFFmpegLocation(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ffmpegLocation = location
}

// SetFormatFallback makes every preset fall back to the best single file
// when its streams are unavailable
func (s *Service) SetFormatFallback(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formatFallback = enabled
}

// Start launches a download in a background goroutine
func (s *Service) Start(url string, quality model.Quality, outputDir string) (model.DownloadTask, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return model.DownloadTask{}, ErrEmptyURL
	}

	s.mu.Lock()
	if s.current != nil && s.current.Status.IsActive() {
		s.mu.Unlock()
		return model.DownloadTask{}, ErrAlreadyRunning
	}

	opts, err := BuildOptions(quality, outputDir, s.filenameTemplate, s.ffmpegLocation)
	if err != nil {
		s.mu.Unlock()
		return model.DownloadTask{}, err
	}
	if s.formatFallback {
		opts.AllowFallback()
	}

	videoID, err := platform.VideoID(url)
	if err != nil {
		log.Printf("Could not extract video id from %s: %v", url, err)
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		URL:       url,
		VideoID:   videoID,
		Quality:   quality,
		OutputDir: opts.OutputDir,
		Status:    model.TaskStatusStarting,
		ETASec:    -1,
		StartedAt: time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.current = task
	s.cancel = cancel
	s.done = done
	retries := s.retries
	snapshot := s.snapshotLocked(task)
	s.mu.Unlock()

	log.Printf("Starting download %s: url=%s quality=%s dir=%s", task.ID, url, quality, opts.OutputDir)
	s.notifyUpdate(snapshot)

	go s.run(ctx, cancel, done, task, opts, retries)

	return snapshot, nil
}

// Stop cancels the active download
func (s *Service) Stop() error {
	s.mu.Lock()
	task := s.current
	if task == nil || !task.Status.IsActive() {
		s.mu.Unlock()
		return ErrNotRunning
	}
	if task.Status == model.TaskStatusStopping {
		s.mu.Unlock()
		return nil
	}

	task.Status = model.TaskStatusStopping
	cancel := s.cancel
	snapshot := s.snapshotLocked(task)
	s.mu.Unlock()

	log.Printf("Stop requested for download %s", task.ID)
	s.notifyUpdate(snapshot)
	if cancel != nil {
		cancel()
	}
	return nil
}

// IsRunning reports whether a download is active
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.Status.IsActive()
}

// Current returns a snapshot of the most recent task
func (s *Service) Current() (model.DownloadTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.DownloadTask{}, false
	}
	return *s.current, true
}

// Wait blocks until the active download goroutine exits
func (s *Service) Wait() {
	s.mu.RLock()
	done := s.done
	s.mu.RUnlock()
	if done != nil {
		<-done
	}
}

// run performs the download and records the outcome
func (s *Service) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}, task *model.DownloadTask, opts Options, retries int) {
	defer close(done)
	defer cancel()

	if err := platform.CreateDirectoryIfNotExists(opts.OutputDir); err != nil {
		s.finish(ctx, task, nil, fmt.Errorf("create output directory %s: %w", opts.OutputDir, err))
		return
	}

	result, err := s.downloadWithRetry(ctx, task, opts, retries)
	s.finish(ctx, task, result, err)
}

// downloadWithRetry attempts download with retry logic
func (s *Service) downloadWithRetry(ctx context.Context, task *model.DownloadTask, opts Options, retries int) (*Result, error) {
	var lastErr error

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			log.Printf("Retrying download for task %s, attempt %d", task.ID, attempt+1)
		}

		res, err := s.runner.Run(ctx, task.URL, opts, func(p Progress) {
			s.updateTaskProgress(task, p)
		})
		if err == nil {
			return res, nil
		}

		lastErr = err
		log.Printf("Download attempt %d failed for task %s: %v", attempt+1, task.ID, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// a missing toolchain will not fix itself between attempts
		if IsFFmpegError(err) {
			break
		}
	}

	return nil, lastErr
}

// updateTaskProgress applies an engine progress report to the task
func (s *Service) updateTaskProgress(task *model.DownloadTask, p Progress) {
	s.mu.Lock()

	if task.Status.IsFinished() {
		s.mu.Unlock()
		return
	}
	stopping := task.Status == model.TaskStatusStopping

	switch p.Status {
	case ProgressDownloading:
		if !stopping {
			task.Status = model.TaskStatusDownloading
		}
		task.DownloadedBytes = p.DownloadedBytes
		task.TotalBytes = p.TotalBytes
		if p.TotalBytes > 0 {
			progress := float64(p.DownloadedBytes) / float64(p.TotalBytes)
			if progress > 1 {
				progress = 1
			}
			task.Progress = progress
			task.Percent = progress * 100
		}

		if !p.Started.IsZero() {
			elapsed := time.Since(p.Started)
			if elapsed.Seconds() > 0 {
				task.Speed = float64(p.DownloadedBytes) / elapsed.Seconds()
			}
		}

		if p.ETA > 0 {
			task.ETASec = int(p.ETA.Seconds())
		} else {
			task.ETASec = -1
		}
	case ProgressFinished:
		task.Progress = 1
		task.Percent = 100
		task.ETASec = -1
		if p.Filename != "" {
			task.CurrentFile = p.Filename
		}
	case ProgressPostProcessing:
		if !stopping {
			task.Status = model.TaskStatusPostProcessing
		}
	}

	if task.Title == "" && p.Title != "" {
		task.Title = p.Title
	}
	if task.Uploader == "" && p.Uploader != "" {
		task.Uploader = p.Uploader
	}

	snapshot := s.snapshotLocked(task)
	s.mu.Unlock()

	s.notifyUpdate(snapshot)
}

// finish sets the final status and notifies listeners
func (s *Service) finish(ctx context.Context, task *model.DownloadTask, result *Result, err error) {
	s.mu.Lock()
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil):
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Progress = 1
		task.Percent = 100
		task.ETASec = -1
		if result != nil {
			if result.Title != "" {
				task.Title = result.Title
			}
			if result.Uploader != "" {
				task.Uploader = result.Uploader
			}
			task.OutputPath = result.Filename
		}
		if task.OutputPath == "" {
			task.OutputPath = task.CurrentFile
		}
		if task.Quality.IsAudioOnly() && task.OutputPath != "" {
			task.OutputPath = replaceExtension(task.OutputPath, ".mp3")
		}
		if task.OutputPath != "" {
			if info, statErr := os.Stat(task.OutputPath); statErr == nil {
				task.FileSize = info.Size()
			}
		}
	}
	task.FinishedAt = time.Now()
	snapshot := s.snapshotLocked(task)
	tag := s.tagAudio
	s.mu.Unlock()

	log.Printf("Download %s finished: status=%s output=%s err=%v", task.ID, snapshot.Status, snapshot.OutputPath, err)

	if snapshot.Status == model.TaskStatusCompleted && snapshot.Quality.IsAudioOnly() && tag != nil {
		if tagErr := tag(snapshot.OutputPath, snapshot.Title, snapshot.Uploader); tagErr != nil {
			log.Printf("Failed to tag %s: %v", snapshot.OutputPath, tagErr)
		}
	}

	s.notifyUpdate(snapshot)
}

// snapshotLocked stamps the task with the next sequence number and copies it.
// s.mu must be held.
func (s *Service) snapshotLocked(task *model.DownloadTask) model.DownloadTask {
	s.seq++
	task.Seq = s.seq
	return *task
}

// notifyUpdate calls the update callback if set, skipping snapshots that lost
// the race against a newer one
func (s *Service) notifyUpdate(task model.DownloadTask) {
	s.mu.RLock()
	callback := s.onUpdate
	s.mu.RUnlock()

	s.publishMu.Lock()
	defer s.publishMu.Unlock()
	if task.Seq <= s.published {
		log.Printf("Dropping stale %s snapshot for %s", task.Status, task.ID)
		return
	}
	s.published = task.Seq
	if callback != nil {
		callback(task)
	}
}

func replaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
