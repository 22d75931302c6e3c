package download

import (
	"context"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Progress statuses reported by yt-dlp that change the task
const (
	ProgressDownloading    = "downloading"
	ProgressPostProcessing = "post_processing"
	ProgressFinished       = "finished"
)

// DefaultProgressInterval throttles progress callbacks
const DefaultProgressInterval = 500 * time.Millisecond

// Progress is one progress report from the engine
type Progress struct {
	Status          string
	DownloadedBytes int64
	TotalBytes      int64
	Filename        string
	Title           string
	Uploader        string
	Started         time.Time
	ETA             time.Duration
}

// Result describes a finished run
type Result struct {
	Title    string
	Uploader string
	Filename string
}

// Runner executes a single yt-dlp run
type Runner interface {
	Run(ctx context.Context, url string, opts Options, onProgress func(Progress)) (*Result, error)
}

// YTDLPRunner runs the yt-dlp binary through go-ytdlp
type YTDLPRunner struct {
	interval time.Duration
}

// NewYTDLPRunner creates a runner reporting progress every interval
func NewYTDLPRunner(interval time.Duration) *YTDLPRunner {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &YTDLPRunner{interval: interval}
}

// Run configures yt-dlp from opts and downloads url
func (r *YTDLPRunner) Run(ctx context.Context, url string, opts Options, onProgress func(Progress)) (*Result, error) {
	dl := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		PrintJSON()

	if opts.NoWarnings {
		dl = dl.NoWarnings()
	}
	if opts.ExtractAudio {
		dl = dl.ExtractAudio().
			AudioFormat(opts.AudioFormat).
			AudioQuality(opts.AudioQuality)
	}
	if opts.MergeOutputFormat != "" {
		dl = dl.MergeOutputFormat(opts.MergeOutputFormat)
	}
	if opts.FFmpegLocation != "" {
		dl = dl.FFmpegLocation(opts.FFmpegLocation)
	}

	if onProgress != nil {
		dl.ProgressFunc(r.interval, func(update ytdlp.ProgressUpdate) {
			onProgress(convertProgress(update))
		})
	}

	res, err := dl.Run(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		stderr := ""
		if res != nil {
			stderr = res.Stderr
		}
		return nil, newEngineError(stderr, err)
	}

	return convertResult(res), nil
}

func convertProgress(update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		Status:          string(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Filename:        update.Filename,
		Started:         update.Started,
		ETA:             update.ETA(),
	}
	if update.Info != nil {
		if update.Info.Title != nil {
			p.Title = *update.Info.Title
		}
		if update.Info.Uploader != nil {
			p.Uploader = *update.Info.Uploader
		}
	}
	return p
}

func convertResult(res *ytdlp.Result) *Result {
	out := &Result{}
	if res == nil {
		return out
	}

	info, err := res.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return out
	}

	// the last entry is the one yt-dlp finished with
	last := info[len(info)-1]
	if last.Title != nil {
		out.Title = *last.Title
	}
	if last.Uploader != nil {
		out.Uploader = *last.Uploader
	}
	if last.Filename != nil {
		out.Filename = *last.Filename
	}
	return out
}
