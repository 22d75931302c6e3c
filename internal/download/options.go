package download

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

// DefaultFilenameTemplate names files "<uploader> - <title>.<ext>"
const DefaultFilenameTemplate = "%(uploader)s - %(title)s.%(ext)s"

// FallbackFormat is tried when a preset's streams are not offered
const FallbackFormat = "best"

// Options is the yt-dlp configuration for one run
type Options struct {
	Format            string
	OutputDir         string
	OutputTemplate    string
	NoWarnings        bool
	ExtractAudio      bool
	AudioFormat       string
	AudioQuality      string
	MergeOutputFormat string
	FFmpegLocation    string
}

// BuildOptions translates a preset into yt-dlp options
func BuildOptions(quality model.Quality, outputDir, filenameTemplate, ffmpegLocation string) (Options, error) {
	if !quality.IsValid() {
		return Options{}, fmt.Errorf("unsupported quality preset: %q", quality)
	}
	if filenameTemplate == "" {
		filenameTemplate = DefaultFilenameTemplate
	}
	outputDir = platform.ResolveOutputDir(outputDir)

	opts := Options{
		Format:         quality.String(),
		OutputDir:      outputDir,
		OutputTemplate: filepath.Join(outputDir, filenameTemplate),
		NoWarnings:     true,
		FFmpegLocation: ffmpegLocation,
	}

	switch quality {
	case model.QualityAudioMP3:
		opts.ExtractAudio = true
		opts.AudioFormat = model.AudioFormat
		opts.AudioQuality = model.AudioQuality
	case model.QualityBestMerged:
		opts.MergeOutputFormat = model.MergeOutputFormat
	}

	return opts, nil
}

// AllowFallback lets yt-dlp take the best single file when the preset selector
// matches nothing, e.g. "bestvideo+bestaudio/best"
func (o *Options) AllowFallback() {
	if o.Format == FallbackFormat || strings.Contains(o.Format, "/") {
		return
	}
	o.Format += "/" + FallbackFormat
}
