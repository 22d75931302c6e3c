package download

import (
	"path/filepath"
	"testing"

	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

func TestBuildOptions(t *testing.T) {
	dir := "/tmp/yt"
	tests := []struct {
		quality      model.Quality
		extractAudio bool
		merge        string
	}{
		{model.QualityBest, false, ""},
		{model.QualityBestMerged, false, "mp4"},
		{model.Quality720p, false, ""},
		{model.Quality480p, false, ""},
		{model.QualityAudioMP3, true, ""},
	}

	for _, test := range tests {
		opts, err := BuildOptions(test.quality, dir, "", "")
		if err != nil {
			t.Fatalf("BuildOptions(%s) unexpected error: %v", test.quality, err)
		}
		if opts.Format != string(test.quality) {
			t.Errorf("Format = %s, expected %s", opts.Format, test.quality)
		}
		if opts.OutputTemplate != filepath.Join(dir, DefaultFilenameTemplate) {
			t.Errorf("OutputTemplate = %s", opts.OutputTemplate)
		}
		if !opts.NoWarnings {
			t.Error("Expected warnings to be suppressed")
		}
		if opts.ExtractAudio != test.extractAudio {
			t.Errorf("%s: ExtractAudio = %v, expected %v", test.quality, opts.ExtractAudio, test.extractAudio)
		}
		if opts.MergeOutputFormat != test.merge {
			t.Errorf("%s: MergeOutputFormat = %q, expected %q", test.quality, opts.MergeOutputFormat, test.merge)
		}
		if test.extractAudio && (opts.AudioFormat != "mp3" || opts.AudioQuality != "192") {
			t.Errorf("Unexpected audio settings %s/%s", opts.AudioFormat, opts.AudioQuality)
		}
	}
}

func TestBuildOptions_Defaults(t *testing.T) {
	opts, err := BuildOptions(model.QualityBest, "", "%(title)s.%(ext)s", "/opt/ffmpeg/bin")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.OutputDir != platform.DefaultOutputDir() {
		t.Errorf("Expected default output dir, got %s", opts.OutputDir)
	}
	if filepath.Base(opts.OutputTemplate) != "%(title)s.%(ext)s" {
		t.Errorf("Custom template not applied: %s", opts.OutputTemplate)
	}
	if opts.FFmpegLocation != "/opt/ffmpeg/bin" {
		t.Errorf("Expected ffmpeg location to be passed through, got %s", opts.FFmpegLocation)
	}
}

func TestBuildOptions_InvalidQuality(t *testing.T) {
	if _, err := BuildOptions(model.Quality("worst"), "/tmp", "", ""); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestOptions_AllowFallback(t *testing.T) {
	tests := []struct {
		quality  model.Quality
		expected string
	}{
		{model.QualityBestMerged, "bestvideo+bestaudio/best"},
		{model.Quality720p, "best[height<=720]/best"},
		{model.QualityBest, "best"},
		{model.QualityAudioMP3, "bestaudio/best"},
	}

	for _, test := range tests {
		opts, err := BuildOptions(test.quality, "/tmp/yt", "", "")
		if err != nil {
			t.Fatalf("BuildOptions(%s) unexpected error: %v", test.quality, err)
		}
		opts.AllowFallback()
		opts.AllowFallback()
		if opts.Format != test.expected {
			t.Errorf("AllowFallback(%s) = %q, expected %q", test.quality, opts.Format, test.expected)
		}
	}
}
