package media

import (
	"fmt"
	"path/filepath"
	"strings"

	id3v2 "github.com/bogem/id3v2/v2"
)

const mp3Extension = ".mp3"

// TagMP3 writes title and artist ID3v2 frames. Non-mp3 files are left alone.
func TagMP3(path, title, artist string) error {
	if !strings.EqualFold(filepath.Ext(path), mp3Extension) {
		return nil
	}
	if title == "" && artist == "" {
		return nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open id3 tag: %w", err)
	}
	defer tag.Close()

	if title != "" {
		tag.SetTitle(title)
	}
	if artist != "" {
		tag.SetArtist(artist)
	}
	if err := tag.Save(); err != nil {
		return fmt.Errorf("save id3 tag: %w", err)
	}
	return nil
}
