package model

import (
	"testing"
	"time"
)

func TestDownloadTask_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		task := &DownloadTask{ETASec: test.etaSec}
		result := task.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title      string
		outputPath string
		url        string
		expected   string
	}{
		{"Video Title", "", "https://youtube.com/watch?v=123", "Video Title"},
		{"", "", "https://youtube.com/watch?v=123", "https://youtube.com/watch?v=123"},
		{"", "/home/u/Downloads/YouTube/Chan - Song.mp4", "https://youtube.com/watch?v=1", "Chan - Song"},
		{"", `C:\Users\u\Downloads\Chan - Clip.mp3`, "https://youtube.com/watch?v=2", "Chan - Clip"},
		{"https://youtube.com/watch?v=456", "", "https://youtube.com/watch?v=456", "https://youtube.com/watch?v=456"},
	}

	for _, test := range tests {
		task := &DownloadTask{
			Title:      test.title,
			OutputPath: test.outputPath,
			URL:        test.url,
		}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with title='%s', path='%s' = '%s', expected '%s'",
				test.title, test.outputPath, result, test.expected)
		}
	}
}

func TestDownloadTask_Creation(t *testing.T) {
	now := time.Now()
	task := &DownloadTask{
		ID:        "dl-123",
		URL:       "https://youtube.com/watch?v=test",
		Quality:   DefaultQuality,
		Status:    TaskStatusStarting,
		ETASec:    -1,
		StartedAt: now,
	}

	if task.HasKnownTotal() {
		t.Error("Expected unknown total for a fresh task")
	}
	if task.CurrentFileName() != "" {
		t.Errorf("Expected empty current file, got %q", task.CurrentFileName())
	}

	task.TotalBytes = 1024
	task.CurrentFile = "/tmp/out/Chan - Song.f137.mp4"
	if !task.HasKnownTotal() {
		t.Error("Expected known total after setting TotalBytes")
	}
	if task.CurrentFileName() != "Chan - Song.f137.mp4" {
		t.Errorf("Unexpected current file name %q", task.CurrentFileName())
	}
	if !task.StartedAt.Equal(now) {
		t.Errorf("Expected StartedAt to be %v, got %v", now, task.StartedAt)
	}
}

func TestDownloadTask_IsStaleAfter(t *testing.T) {
	tests := []struct {
		name     string
		seq      uint64
		prevSeq  uint64
		expected bool
	}{
		{"older", 3, 5, true},
		{"newer", 6, 5, false},
		{"same", 5, 5, false},
		{"unsequenced", 0, 5, false},
		{"first", 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := DownloadTask{Seq: tt.seq}
			if got := task.IsStaleAfter(DownloadTask{Seq: tt.prevSeq}); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
