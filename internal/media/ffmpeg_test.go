package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeFakeFFmpeg(t *testing.T, dir, firstLine string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub requires a unix shell")
	}
	path := filepath.Join(dir, FFmpegCommand)
	script := "#!/bin/sh\necho '" + firstLine + "'\necho 'built with gcc'\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write stub: %v", err)
	}
	return path
}

func TestCheckFFmpeg_ConfiguredDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFakeFFmpeg(t, dir, "ffmpeg version 6.1.1-static Copyright (c) 2000-2023")

	status := CheckFFmpeg(context.Background(), dir)
	if !status.Installed {
		t.Fatalf("Expected ffmpeg to be detected, err=%v", status.Err)
	}
	if status.Path != path {
		t.Errorf("Expected path %s, got %s", path, status.Path)
	}
	if status.Version != "6.1.1-static" {
		t.Errorf("Expected version 6.1.1-static, got %q", status.Version)
	}
}

func TestCheckFFmpeg_ConfiguredBinary(t *testing.T) {
	path := writeFakeFFmpeg(t, t.TempDir(), "ffmpeg version n7.0 Copyright")

	status := CheckFFmpeg(context.Background(), path)
	if !status.Installed || status.Version != "n7.0" {
		t.Errorf("Unexpected status: %+v", status)
	}
}

func TestCheckFFmpeg_NotFound(t *testing.T) {
	lookPath = func(string) (string, error) { return "", errors.New("executable file not found in $PATH") }
	defer func() { lookPath = defaultLookPath }()

	status := CheckFFmpeg(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if status.Installed {
		t.Error("Expected ffmpeg to be reported missing")
	}
	if status.Err == nil {
		t.Error("Expected an error describing the missing binary")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output   string
		expected string
	}{
		{"ffmpeg version 4.4.2-0ubuntu0.22.04.1 Copyright (c) 2000-2021\nbuilt with gcc", "4.4.2-0ubuntu0.22.04.1"},
		{"ffmpeg version N-112345-gabcdef\n", "N-112345-gabcdef"},
		{"something odd", "something odd"},
		{"", ""},
	}

	for _, test := range tests {
		if got := parseVersion([]byte(test.output)); got != test.expected {
			t.Errorf("parseVersion(%q) = %q, expected %q", test.output, got, test.expected)
		}
	}
}
