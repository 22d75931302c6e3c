package download

// Package download implements the download pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It owns the single in-flight task,
// translates the five quality presets into yt-dlp options, propagates
// progress snapshots to the UI, and turns a stop request into context
// cancellation of the running yt-dlp process.
