package media

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Stream types reported by ffprobe
const (
	codecTypeVideo = "video"
	codecTypeAudio = "audio"
)

// Info is a short summary of a finished file
type Info struct {
	Duration   time.Duration
	Container  string
	VideoCodec string
	AudioCodec string
}

type probeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

func defaultProbe(path string) (string, error) {
	return ffmpeg.Probe(path)
}

// probeFunc is swapped in tests
var probeFunc = defaultProbe

// Probe runs ffprobe on path
func Probe(path string) (*Info, error) {
	out, err := probeFunc(path)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return ParseProbe(out)
}

// ParseProbe decodes ffprobe's JSON output
func ParseProbe(out string) (*Info, error) {
	var p probeOutput
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		return nil, fmt.Errorf("decode ffprobe output: %w", err)
	}

	info := &Info{Container: p.Format.FormatName}
	if p.Format.Duration != "" {
		secs, err := strconv.ParseFloat(p.Format.Duration, 64)
		if err == nil {
			info.Duration = time.Duration(secs * float64(time.Second)).Round(time.Second)
		}
	}
	for _, s := range p.Streams {
		switch s.CodecType {
		case codecTypeVideo:
			if info.VideoCodec == "" {
				info.VideoCodec = s.CodecName
			}
		case codecTypeAudio:
			if info.AudioCodec == "" {
				info.AudioCodec = s.CodecName
			}
		}
	}
	return info, nil
}

// Summary renders "03:21 · h264/aac"
func (i *Info) Summary() string {
	var parts []string
	if i.Duration > 0 {
		parts = append(parts, formatDuration(i.Duration))
	}

	var codecs []string
	if i.VideoCodec != "" {
		codecs = append(codecs, i.VideoCodec)
	}
	if i.AudioCodec != "" {
		codecs = append(codecs, i.AudioCodec)
	}
	if len(codecs) > 0 {
		parts = append(parts, strings.Join(codecs, "/"))
	}
	return strings.Join(parts, " · ")
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
