package download

import (
	"context"
	"fmt"
	"log"

	"github.com/lrstanley/go-ytdlp"
)

// InstallYTDLP makes sure a yt-dlp binary is available, downloading it into
// the go-ytdlp cache when it is missing from PATH. It returns the executable.
func InstallYTDLP(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("install yt-dlp: %w", err)
	}
	log.Printf("yt-dlp available at %s", resolved.Executable)
	return resolved.Executable, nil
}

// InstallFFmpeg downloads an ffmpeg build for platforms go-ytdlp supports.
// The returned path can be stored as the ffmpeg location.
func InstallFFmpeg(ctx context.Context) (string, error) {
	resolved, err := ytdlp.InstallFFmpeg(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("install ffmpeg: %w", err)
	}
	log.Printf("ffmpeg available at %s", resolved.Executable)
	return resolved.Executable, nil
}
