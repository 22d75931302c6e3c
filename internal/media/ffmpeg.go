package media

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// FFmpeg executable and probe settings
const (
	FFmpegCommand       = "ffmpeg"
	FFmpegVersionFlag   = "-version"
	FFmpegVersionWord   = "version"
	DefaultCheckTimeout = 10 * time.Second
	windowsExeSuffix    = ".exe"
)

// FFmpegStatus describes the result of an ffmpeg availability check
type FFmpegStatus struct {
	Installed bool
	Path      string
	Version   string
	Err       error
}

var defaultLookPath = exec.LookPath

// swapped in tests
var (
	lookPath       = defaultLookPath
	commandContext = exec.CommandContext
)

// CheckFFmpeg runs `ffmpeg -version`. A configured location (binary or the
// directory holding it) is tried before PATH.
func CheckFFmpeg(ctx context.Context, location string) FFmpegStatus {
	path, err := resolveFFmpeg(location)
	if err != nil {
		return FFmpegStatus{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultCheckTimeout)
	defer cancel()

	cmd := commandContext(ctx, path, FFmpegVersionFlag)
	hideConsole(cmd)
	out, err := cmd.Output()
	if err != nil {
		return FFmpegStatus{Path: path, Err: fmt.Errorf("run %s %s: %w", path, FFmpegVersionFlag, err)}
	}

	return FFmpegStatus{
		Installed: true,
		Path:      path,
		Version:   parseVersion(out),
	}
}

// resolveFFmpeg returns the executable to run
func resolveFFmpeg(location string) (string, error) {
	if location != "" {
		candidate := location
		if info, err := os.Stat(location); err == nil && info.IsDir() {
			candidate = filepath.Join(location, executableName(FFmpegCommand))
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	path, err := lookPath(FFmpegCommand)
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found: %w", err)
	}
	return path, nil
}

// parseVersion picks the version token from "ffmpeg version 6.1.1 Copyright ..."
func parseVersion(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if !scanner.Scan() {
		return ""
	}
	fields := strings.Fields(scanner.Text())
	for i, f := range fields {
		if f == FFmpegVersionWord && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return strings.TrimSpace(scanner.Text())
}

func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + windowsExeSuffix
	}
	return name
}
