package media

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	id3v2 "github.com/bogem/id3v2/v2"
)

func TestTagMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Uploader - Song.mp3")
	payload := bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 256)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatal(err)
	}

	if err := TagMP3(path, "Song", "Uploader"); err != nil {
		t.Fatalf("TagMP3 failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to reopen tag: %v", err)
	}
	defer tag.Close()

	if tag.Title() != "Song" {
		t.Errorf("Expected title Song, got %q", tag.Title())
	}
	if tag.Artist() != "Uploader" {
		t.Errorf("Expected artist Uploader, got %q", tag.Artist())
	}
}

func TestTagMP3_SkipsOtherFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	original := []byte("not an mp3")
	if err := os.WriteFile(path, original, 0644); err != nil {
		t.Fatal(err)
	}

	if err := TagMP3(path, "Title", "Artist"); err != nil {
		t.Fatalf("Expected no error for mp4, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, original) {
		t.Error("Non-mp3 file should be untouched")
	}
}
