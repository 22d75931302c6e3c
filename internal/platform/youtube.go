package platform

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// youTubeHosts lists hosts yt-dlp's YouTube extractor handles
var youTubeHosts = []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}

// videoIDPattern matches a bare YouTube video ID
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// withScheme adds https:// to schemeless input such as "youtu.be/ID",
// which yt-dlp accepts as is
func withScheme(input string) string {
	input = strings.TrimSpace(input)
	if strings.Contains(input, "://") {
		return input
	}
	return "https://" + input
}

// IsYouTubeURL reports whether the URL points at a YouTube host. The scheme is optional.
func IsYouTubeURL(input string) bool {
	parsed, err := url.Parse(withScheme(input))
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range youTubeHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// VideoID extracts the YouTube video ID. Other sites yield an empty ID and
// no error since yt-dlp supports them as well.
func VideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if videoIDPattern.MatchString(input) {
		return input, nil
	}
	if !IsYouTubeURL(input) {
		return "", nil
	}
	id, err := youtube.ExtractVideoID(withScheme(input))
	if err != nil {
		return "", fmt.Errorf("extract video id: %w", err)
	}
	return id, nil
}
