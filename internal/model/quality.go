package model

import (
	"fmt"
	"strings"
)

// Quality is a yt-dlp format selector restricted to the presets below.
type Quality string

const (
	// QualityBest picks the best single progressive file. Works without ffmpeg.
	QualityBest Quality = "best"

	// QualityBestMerged picks separate best video and audio streams and merges them into mp4.
	QualityBestMerged Quality = "bestvideo+bestaudio"

	// Quality720p picks the best single file up to 720 lines.
	Quality720p Quality = "best[height<=720]"

	// Quality480p picks the best single file up to 480 lines.
	Quality480p Quality = "best[height<=480]"

	// QualityAudioMP3 downloads the best audio and converts it to mp3.
	QualityAudioMP3 Quality = "bestaudio/best"
)

// DefaultQuality is preselected in the UI.
const DefaultQuality = QualityBest

// Post-processing parameters handed to yt-dlp
const (
	MergeOutputFormat = "mp4"
	AudioFormat       = "mp3"
	AudioQuality      = "192"
)

var qualityAliases = map[string]Quality{
	"best":   QualityBest,
	"merged": QualityBestMerged,
	"720p":   Quality720p,
	"480p":   Quality480p,
	"mp3":    QualityAudioMP3,
	"audio":  QualityAudioMP3,
}

// AllQualities returns the presets in display order.
func AllQualities() []Quality {
	return []Quality{QualityBest, QualityBestMerged, Quality720p, Quality480p, QualityAudioMP3}
}

// ParseQuality accepts either a preset selector or one of its short aliases.
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	for _, q := range AllQualities() {
		if string(q) == s {
			return q, nil
		}
	}
	if q, ok := qualityAliases[strings.ToLower(s)]; ok {
		return q, nil
	}
	return "", fmt.Errorf("unknown quality preset: %q", s)
}

// IsValid reports whether q is one of the presets.
func (q Quality) IsValid() bool {
	for _, p := range AllQualities() {
		if p == q {
			return true
		}
	}
	return false
}

// NeedsFFmpeg reports whether yt-dlp has to call ffmpeg for this preset.
func (q Quality) NeedsFFmpeg() bool {
	return q == QualityBestMerged || q == QualityAudioMP3
}

// IsAudioOnly reports whether the preset produces an mp3.
func (q Quality) IsAudioOnly() bool {
	return q == QualityAudioMP3
}

// Alias returns the short name used by the CLI and preferences.
func (q Quality) Alias() string {
	switch q {
	case QualityBest:
		return "best"
	case QualityBestMerged:
		return "merged"
	case Quality720p:
		return "720p"
	case Quality480p:
		return "480p"
	case QualityAudioMP3:
		return "mp3"
	}
	return string(q)
}

// String returns the selector
func (q Quality) String() string {
	return string(q)
}
