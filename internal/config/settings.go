package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir        = "output_directory"
	KeyQuality          = "quality_preset"
	KeyFilenameTemplate = "filename_template"
	KeyLanguage         = "app_language"
	KeyAppearance       = "appearance"
	KeyRetries          = "download_retries"
	KeyFFmpegLocation   = "ffmpeg_location"
	KeyAutoInstallYTDLP = "auto_install_ytdlp"
)

// Language options
const (
	LanguageSystem  = "system"
	LanguageEnglish = "en"
	LanguageKorean  = "ko"
)

// Appearance options
const (
	AppearanceSystem = "system"
	AppearanceLight  = "light"
	AppearanceDark   = "dark"
)

// Default values
const (
	DefaultQuality          = model.DefaultQuality
	DefaultFilenameTemplate = download.DefaultFilenameTemplate
	DefaultLanguage         = LanguageSystem
	DefaultAppearance       = AppearanceSystem
	DefaultRetries          = download.DefaultRetries
	DefaultAutoInstallYTDLP = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir := platform.DefaultOutputDir()
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetQuality returns the configured quality preset
func (s *Settings) GetQuality() model.Quality {
	value := s.app.Preferences().String(KeyQuality)
	quality, err := model.ParseQuality(value)
	if err != nil {
		s.SetQuality(DefaultQuality)
		return DefaultQuality
	}
	return quality
}

// SetQuality stores the quality preset; unknown presets are ignored
func (s *Settings) SetQuality(quality model.Quality) {
	if !quality.IsValid() {
		return
	}
	s.app.Preferences().SetString(KeyQuality, string(quality))
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		LanguageSystem:  "System Default",
		LanguageEnglish: "English",
		LanguageKorean:  "한국어",
	}
}

// GetAppearance returns system, light or dark
func (s *Settings) GetAppearance() string {
	value := s.app.Preferences().String(KeyAppearance)
	switch value {
	case AppearanceSystem, AppearanceLight, AppearanceDark:
		return value
	}
	s.SetAppearance(DefaultAppearance)
	return DefaultAppearance
}

// SetAppearance sets the theme appearance
func (s *Settings) SetAppearance(appearance string) {
	switch appearance {
	case AppearanceSystem, AppearanceLight, AppearanceDark:
	default:
		appearance = DefaultAppearance
	}
	s.app.Preferences().SetString(KeyAppearance, appearance)
}

// GetAppearanceOptions returns appearance options in menu order
func (s *Settings) GetAppearanceOptions() []string {
	return []string{AppearanceSystem, AppearanceLight, AppearanceDark}
}

// GetRetries returns how many times a failed download is retried
func (s *Settings) GetRetries() int {
	return s.app.Preferences().IntWithFallback(KeyRetries, DefaultRetries)
}

// SetRetries sets the retry count
func (s *Settings) SetRetries(retries int) {
	if retries < 0 {
		retries = 0
	}
	if retries > download.MaxRetries {
		retries = download.MaxRetries
	}
	s.app.Preferences().SetInt(KeyRetries, retries)
}

// GetFFmpegLocation returns the configured ffmpeg binary or directory, empty for PATH
func (s *Settings) GetFFmpegLocation() string {
	return s.app.Preferences().String(KeyFFmpegLocation)
}

// SetFFmpegLocation sets the ffmpeg binary or directory
func (s *Settings) SetFFmpegLocation(location string) {
	s.app.Preferences().SetString(KeyFFmpegLocation, location)
}

// GetAutoInstallYTDLP returns whether yt-dlp is fetched on startup
func (s *Settings) GetAutoInstallYTDLP() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoInstallYTDLP, DefaultAutoInstallYTDLP)
}

// SetAutoInstallYTDLP sets whether yt-dlp is fetched on startup
func (s *Settings) SetAutoInstallYTDLP(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoInstallYTDLP, enabled)
}
