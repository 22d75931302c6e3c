package ui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	mu              sync.RWMutex
	currentLanguage string
	texts           map[string]map[string]string
	systemLanguage  func() string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyLanguageSystem    = "language_system"
	KeyAppearance        = "appearance"
	KeyAppearanceSystem  = "appearance_system"
	KeyAppearanceLight   = "appearance_light"
	KeyAppearanceDark    = "appearance_dark"
	KeyInstallYTDLP      = "install_ytdlp"
	KeyFFmpegChecking    = "ffmpeg_checking"
	KeyFFmpegInstalled   = "ffmpeg_installed"
	KeyFFmpegMissing     = "ffmpeg_missing"
	KeyFFmpegHelp        = "ffmpeg_help"
	KeyURL               = "url"
	KeyURLPlaceholder    = "url_placeholder"
	KeyOutputPath        = "output_path"
	KeyBrowse            = "browse"
	KeyQuality           = "quality"
	KeyQualityBest       = "quality_best"
	KeyQualityMerged     = "quality_merged"
	KeyQuality720p       = "quality_720p"
	KeyQuality480p       = "quality_480p"
	KeyQualityAudio      = "quality_audio"
	KeyDownload          = "download"
	KeyStop              = "stop"
	KeyClearLog          = "clear_log"
	KeyOpenFolder        = "open_folder"
	KeyLog               = "log"
	KeyWaiting           = "waiting"
	KeyPreparing         = "preparing"
	KeyDownloadingSpeed  = "downloading_speed"
	KeyDownloadingPct    = "downloading_percent"
	KeyDownloadingNoSize = "downloading_no_size"
	KeyPostProcessing    = "post_processing"
	KeyDownloadComplete  = "download_complete"
	KeyStopping          = "stopping"

	KeyLogReady           = "log_ready"
	KeyLogHint            = "log_hint"
	KeyLogFFmpegFound     = "log_ffmpeg_found"
	KeyLogFFmpegMissing   = "log_ffmpeg_missing"
	KeyLogFFmpegHint      = "log_ffmpeg_hint"
	KeyLogCleared         = "log_cleared"
	KeyLogStart           = "log_start"
	KeyLogNotYouTube      = "log_not_youtube"
	KeyLogDone            = "log_done"
	KeyLogPostProcessing  = "log_post_processing"
	KeyLogSuccess         = "log_success"
	KeyLogSavedTo         = "log_saved_to"
	KeyLogFileSize        = "log_file_size"
	KeyLogMedia           = "log_media"
	KeyLogStopRequested   = "log_stop_requested"
	KeyLogStopped         = "log_stopped"
	KeyLogError           = "log_error"
	KeyLogQualitySwitched = "log_quality_switched"
	KeyLogInstalling      = "log_installing"
	KeyLogInstalled       = "log_installed"
	KeyLogInstallFailed   = "log_install_failed"

	KeyErrorTitle          = "error_title"
	KeyPleaseEnterURL      = "please_enter_url"
	KeyFFmpegRequiredTitle = "ffmpeg_required_title"
	KeyFFmpegRequiredMsg   = "ffmpeg_required_msg"
	KeyDownloadErrorTitle  = "download_error_title"
	KeyDownloadErrorMsg    = "download_error_msg"
	KeyFFmpegErrorTitle    = "ffmpeg_error_title"
	KeyFFmpegErrorMsg      = "ffmpeg_error_msg"
	KeyQuitTitle           = "quit_title"
	KeyQuitMsg             = "quit_msg"
	KeyErrorOpeningFolder  = "error_opening_folder"

	KeyFFmpegHelpTitle   = "ffmpeg_help_title"
	KeyFFmpegHelpText    = "ffmpeg_help_text"
	KeyFFmpegWebsite     = "ffmpeg_website"
	KeyFFmpegAutoInstall = "ffmpeg_auto_install"
	KeyFFmpegRefresh     = "ffmpeg_refresh"
	KeyClose             = "close"

	KeyOutputDirectory  = "output_directory"
	KeyDefaultQuality   = "default_quality"
	KeyFilenameTemplate = "filename_template"
	KeyRetries          = "retries"
	KeyFFmpegLocation   = "ffmpeg_location"
	KeyAutoInstallYTDLP = "auto_install_ytdlp"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeySettingsSaved    = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
		systemLanguage: func() string {
			return lang.SystemLocale().LanguageString()
		},
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language; "system" follows the OS locale
func (l *Localization) SetLanguage(language string) {
	if language == "system" {
		language = "en"
		if sys := strings.ToLower(l.systemLanguage()); strings.HasPrefix(sys, "ko") {
			language = "ko"
		}
	}

	if _, exists := l.texts[language]; exists {
		l.mu.Lock()
		l.currentLanguage = language
		l.mu.Unlock()
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.GetCurrentLanguage()]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns localized text for key with fmt verbs applied
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ko": "한국어",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YouTube Downloader",
		KeyFile:              "File",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyLanguageSystem:    "System Default",
		KeyAppearance:        "Appearance",
		KeyAppearanceSystem:  "System",
		KeyAppearanceLight:   "Light",
		KeyAppearanceDark:    "Dark",
		KeyInstallYTDLP:      "Install / update yt-dlp",
		KeyFFmpegChecking:    "Checking...",
		KeyFFmpegInstalled:   "✅ FFmpeg installed",
		KeyFFmpegMissing:     "❌ FFmpeg missing",
		KeyFFmpegHelp:        "FFmpeg help",
		KeyURL:               "YouTube URL:",
		KeyURLPlaceholder:    "https://www.youtube.com/watch?v=...",
		KeyOutputPath:        "Download path:",
		KeyBrowse:            "Browse",
		KeyQuality:           "Quality",
		KeyQualityBest:       "Best quality (single file) - recommended",
		KeyQualityMerged:     "Best quality (merged) - requires FFmpeg",
		KeyQuality720p:       "720p HD",
		KeyQuality480p:       "480p",
		KeyQualityAudio:      "Audio only (mp3) - requires FFmpeg",
		KeyDownload:          "Start download",
		KeyStop:              "Stop",
		KeyClearLog:          "Clear log",
		KeyOpenFolder:        "Open folder",
		KeyLog:               "Log:",
		KeyWaiting:           "Waiting...",
		KeyPreparing:         "Preparing download...",
		KeyDownloadingSpeed:  "Downloading... %.1f%% (%s/s)",
		KeyDownloadingPct:    "Downloading... %.1f%%",
		KeyDownloadingNoSize: "Downloading... (%s)",
		KeyPostProcessing:    "Processing with FFmpeg...",
		KeyDownloadComplete:  "Download complete!",
		KeyStopping:          "Stopping download...",

		KeyLogReady:           "🚀 YouTube Downloader ready!",
		KeyLogHint:            "📝 Enter a URL and click the download button.",
		KeyLogFFmpegFound:     "🎬 FFmpeg %s found: %s",
		KeyLogFFmpegMissing:   "⚠️ FFmpeg is not installed. Some features are limited.",
		KeyLogFFmpegHint:      "📋 Click the 'FFmpeg help' button to see how to install it.",
		KeyLogCleared:         "🧹 Log cleared.",
		KeyLogStart:           "📥 Download started: %s",
		KeyLogNotYouTube:      "ℹ️ Not a YouTube link, passing it to yt-dlp anyway.",
		KeyLogDone:            "✅ Done: %s",
		KeyLogPostProcessing:  "⚙️ Post-processing with FFmpeg...",
		KeyLogSuccess:         "🎉 Success: %s (by %s)",
		KeyLogSavedTo:         "📁 Saved to: %s",
		KeyLogFileSize:        "💾 Size: %s",
		KeyLogMedia:           "🎞️ Media: %s",
		KeyLogStopRequested:   "⚠️ Download stop requested...",
		KeyLogStopped:         "🛑 Download stopped.",
		KeyLogError:           "❌ Download error: %s",
		KeyLogQualitySwitched: "🔄 Quality switched to 'Best quality (single file)'.",
		KeyLogInstalling:      "⬇️ Installing %s...",
		KeyLogInstalled:       "✅ %s installed: %s",
		KeyLogInstallFailed:   "❌ %s installation failed: %s",

		KeyErrorTitle:          "Error",
		KeyPleaseEnterURL:      "Please enter a YouTube URL.",
		KeyFFmpegRequiredTitle: "FFmpeg required",
		KeyFFmpegRequiredMsg:   "The selected quality option requires FFmpeg.\nSwitch to 'Best quality (single file)' which works without FFmpeg?",
		KeyDownloadErrorTitle:  "Download error",
		KeyDownloadErrorMsg:    "An error occurred during download:\n%s",
		KeyFFmpegErrorTitle:    "FFmpeg error",
		KeyFFmpegErrorMsg:      "This feature requires FFmpeg.\n\nHow to fix:\n1. Install FFmpeg, or\n2. Use the 'Best quality (single file)' option.\n\nClick the 'FFmpeg help' button for installation instructions.",
		KeyQuitTitle:           "Quit",
		KeyQuitMsg:             "A download is in progress. Do you really want to quit?",
		KeyErrorOpeningFolder:  "Error opening folder",

		KeyFFmpegHelpTitle: "FFmpeg installation help",
		KeyFFmpegHelpText: `FFmpeg installation guide

FFmpeg is a powerful open source program for processing video and audio.
It is required to merge high quality video/audio and to extract audio (mp3 conversion).

Windows:

Option 1: winget (built into Windows 10/11)
1. Run PowerShell or Command Prompt as administrator
2. Run:
   winget install FFmpeg

Option 2: Chocolatey (package manager)
1. If Chocolatey is installed, run:
   choco install ffmpeg

Option 3: Manual installation
1. Visit https://ffmpeg.org/download.html
2. Click the Windows icon and download a gyan.dev build
3. Extract it and add the bin folder to the 'Path' environment variable

macOS: brew install ffmpeg
Linux: sudo apt install ffmpeg (or your distribution's package manager)

Or click 'Install automatically' to download a private copy for this app.

Check the installation:
'ffmpeg -version' in a terminal prints version information.

Works without FFmpeg:
- Best quality (single file) ✅
- 720p, 480p ✅

Requires FFmpeg:
- Best quality (merged) ⚠️
- Audio only (mp3) ⚠️

Click 'Refresh status' after installing.`,
		KeyFFmpegWebsite:     "FFmpeg website",
		KeyFFmpegAutoInstall: "Install automatically",
		KeyFFmpegRefresh:     "Refresh status",
		KeyClose:             "Close",

		KeyOutputDirectory:  "Download Directory",
		KeyDefaultQuality:   "Default Quality",
		KeyFilenameTemplate: "Filename Template",
		KeyRetries:          "Retries",
		KeyFFmpegLocation:   "FFmpeg Location (empty = PATH)",
		KeyAutoInstallYTDLP: "Install yt-dlp on startup",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeySettingsSaved:    "Settings saved successfully!",
	}

	// Korean texts
	l.texts["ko"] = map[string]string{
		KeyAppTitle:          "YouTube 다운로더",
		KeyFile:              "파일",
		KeySettings:          "설정",
		KeyLanguage:          "언어",
		KeyLanguageSystem:    "시스템 기본값",
		KeyAppearance:        "화면 모드",
		KeyAppearanceSystem:  "시스템",
		KeyAppearanceLight:   "라이트",
		KeyAppearanceDark:    "다크",
		KeyInstallYTDLP:      "yt-dlp 설치 / 업데이트",
		KeyFFmpegChecking:    "확인 중...",
		KeyFFmpegInstalled:   "✅ FFmpeg 설치됨",
		KeyFFmpegMissing:     "❌ FFmpeg 미설치",
		KeyFFmpegHelp:        "FFmpeg 도움말",
		KeyURL:               "YouTube URL:",
		KeyURLPlaceholder:    "https://www.youtube.com/watch?v=...",
		KeyOutputPath:        "다운로드 경로:",
		KeyBrowse:            "찾아보기",
		KeyQuality:           "품질 설정",
		KeyQualityBest:       "최고 품질 (단일 파일) - 권장",
		KeyQualityMerged:     "최고 품질 (병합) - FFmpeg 필요",
		KeyQuality720p:       "720p HD",
		KeyQuality480p:       "480p",
		KeyQualityAudio:      "음성만 (mp3) - FFmpeg 필요",
		KeyDownload:          "다운로드 시작",
		KeyStop:              "정지",
		KeyClearLog:          "로그 지우기",
		KeyOpenFolder:        "폴더 열기",
		KeyLog:               "로그:",
		KeyWaiting:           "대기 중...",
		KeyPreparing:         "다운로드 준비 중...",
		KeyDownloadingSpeed:  "다운로드 중... %.1f%% (%s/s)",
		KeyDownloadingPct:    "다운로드 중... %.1f%%",
		KeyDownloadingNoSize: "다운로드 중... (%s)",
		KeyPostProcessing:    "FFmpeg 처리 중...",
		KeyDownloadComplete:  "다운로드 완료!",
		KeyStopping:          "다운로드 정지 중...",

		KeyLogReady:           "🚀 YouTube Downloader 준비 완료!",
		KeyLogHint:            "📝 URL을 입력하고 다운로드 버튼을 클릭하세요.",
		KeyLogFFmpegFound:     "🎬 FFmpeg %s 확인됨: %s",
		KeyLogFFmpegMissing:   "⚠️ FFmpeg가 설치되지 않았습니다. 일부 기능이 제한됩니다.",
		KeyLogFFmpegHint:      "📋 FFmpeg 설치 방법은 '도움말' 버튼을 클릭하세요.",
		KeyLogCleared:         "🧹 로그가 지워졌습니다.",
		KeyLogStart:           "📥 다운로드 시작: %s",
		KeyLogNotYouTube:      "ℹ️ YouTube 링크가 아니지만 yt-dlp로 시도합니다.",
		KeyLogDone:            "✅ 완료: %s",
		KeyLogPostProcessing:  "⚙️ FFmpeg 후처리 중...",
		KeyLogSuccess:         "🎉 성공: %s (by %s)",
		KeyLogSavedTo:         "📁 저장 위치: %s",
		KeyLogFileSize:        "💾 크기: %s",
		KeyLogMedia:           "🎞️ 미디어: %s",
		KeyLogStopRequested:   "⚠️ 다운로드 정지를 요청했습니다...",
		KeyLogStopped:         "🛑 다운로드가 정지되었습니다.",
		KeyLogError:           "❌ 다운로드 오류: %s",
		KeyLogQualitySwitched: "🔄 품질 옵션이 '최고 품질 (단일 파일)'로 변경되었습니다.",
		KeyLogInstalling:      "⬇️ %s 설치 중...",
		KeyLogInstalled:       "✅ %s 설치됨: %s",
		KeyLogInstallFailed:   "❌ %s 설치 실패: %s",

		KeyErrorTitle:          "오류",
		KeyPleaseEnterURL:      "YouTube URL을 입력해주세요.",
		KeyFFmpegRequiredTitle: "FFmpeg 필요",
		KeyFFmpegRequiredMsg:   "선택한 품질 옵션은 FFmpeg가 필요합니다.\nFFmpeg 없이 '최고 품질 (단일 파일)' 옵션으로 변경하시겠습니까?",
		KeyDownloadErrorTitle:  "다운로드 오류",
		KeyDownloadErrorMsg:    "다운로드 중 오류가 발생했습니다:\n%s",
		KeyFFmpegErrorTitle:    "FFmpeg 오류",
		KeyFFmpegErrorMsg:      "FFmpeg가 필요한 기능입니다.\n\n해결 방법:\n1. FFmpeg를 설치하거나\n2. '최고 품질 (단일 파일)' 옵션을 사용하세요.\n\n'FFmpeg 도움말' 버튼을 클릭하여 설치 방법을 확인하세요.",
		KeyQuitTitle:           "종료",
		KeyQuitMsg:             "다운로드가 진행 중입니다. 정말 종료하시겠습니까?",
		KeyErrorOpeningFolder:  "폴더를 열 수 없습니다",

		KeyFFmpegHelpTitle: "FFmpeg 설치 도움말",
		KeyFFmpegHelpText: `FFmpeg 설치 안내

FFmpeg는 비디오와 오디오를 처리하는 강력한 오픈소스 프로그램입니다.
고품질 영상/음성 병합이나 음성 추출(mp3 변환)을 위해 필요합니다.

Windows 설치 방법:

방법 1: winget (Windows 10/11 내장)
1. Windows PowerShell 또는 명령 프롬프트를 관리자 권한으로 실행
2. 다음 명령어 입력 후 실행:
   winget install FFmpeg

방법 2: Chocolatey (패키지 관리자)
1. Chocolatey가 설치되어 있다면 다음 명령어 실행:
   choco install ffmpeg

방법 3: 수동 설치
1. https://ffmpeg.org/download.html 방문
2. Windows 아이콘 클릭 후, gyan.dev 빌드 다운로드
3. 압축 해제 후 bin 폴더를 시스템 환경 변수 'Path'에 추가

macOS: brew install ffmpeg
Linux: sudo apt install ffmpeg (또는 배포판의 패키지 관리자)

또는 '자동 설치' 버튼으로 이 앱 전용 사본을 내려받을 수 있습니다.

설치 확인:
터미널에서 'ffmpeg -version' 입력 시 버전 정보가 표시되면 성공입니다.

FFmpeg 없이 사용 가능한 기능:
- 최고 품질 (단일 파일) ✅
- 720p, 480p 다운로드 ✅

FFmpeg 필요한 기능:
- 최고 품질 (병합) ⚠️
- 음성만 추출 (mp3) ⚠️

설치 후 '설치 상태 새로고침'을 클릭하세요.`,
		KeyFFmpegWebsite:     "FFmpeg 웹사이트",
		KeyFFmpegAutoInstall: "자동 설치",
		KeyFFmpegRefresh:     "설치 상태 새로고침",
		KeyClose:             "닫기",

		KeyOutputDirectory:  "다운로드 폴더",
		KeyDefaultQuality:   "기본 품질",
		KeyFilenameTemplate: "파일 이름 형식",
		KeyRetries:          "재시도 횟수",
		KeyFFmpegLocation:   "FFmpeg 위치 (비우면 PATH)",
		KeyAutoInstallYTDLP: "시작 시 yt-dlp 설치",
		KeySave:             "저장",
		KeyCancel:           "취소",
		KeySettingsSaved:    "설정이 저장되었습니다!",
	}
}
