package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/media"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

type startCall struct {
	url       string
	quality   model.Quality
	outputDir string
}

// fakeDownloader records calls instead of running yt-dlp
type fakeDownloader struct {
	mu       sync.Mutex
	running  bool
	starts   []startCall
	stops    int
	retries  int
	template string
	ffmpeg   string
	callback func(model.DownloadTask)
}

func (f *fakeDownloader) SetUpdateCallback(cb func(model.DownloadTask)) { f.callback = cb }

func (f *fakeDownloader) Start(url string, quality model.Quality, outputDir string) (model.DownloadTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return model.DownloadTask{}, download.ErrAlreadyRunning
	}
	f.starts = append(f.starts, startCall{url, quality, outputDir})
	f.running = true
	return model.DownloadTask{ID: "dl-test", URL: url, Quality: quality, OutputDir: outputDir, Status: model.TaskStatusStarting}, nil
}

func (f *fakeDownloader) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return download.ErrNotRunning
	}
	f.stops++
	return nil
}

func (f *fakeDownloader) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeDownloader) Current() (model.DownloadTask, bool) { return model.DownloadTask{}, false }
func (f *fakeDownloader) Wait()                               {}
func (f *fakeDownloader) SetRetries(n int)                    { f.retries = n }
func (f *fakeDownloader) SetFilenameTemplate(t string)        { f.template = t }
func (f *fakeDownloader) SetFFmpegLocation(l string)          { f.ffmpeg = l }

func newTestRootUI(t *testing.T) (*RootUI, *fakeDownloader) {
	t.Helper()

	probeMedia = func(string) (*media.Info, error) { return nil, errors.New("no ffprobe in tests") }
	t.Cleanup(func() { probeMedia = media.Probe })

	app := test.NewApp()
	app.Preferences().SetString(config.KeyLanguage, config.LanguageEnglish)
	app.Preferences().SetString(config.KeyOutputDir, t.TempDir())

	window := test.NewWindow(nil)
	t.Cleanup(window.Close)

	svc := &fakeDownloader{}
	return NewRootUI(window, app, svc, "1.2.3"), svc
}

// overlayContains reports whether the top overlay shows a label or button with fragment
func overlayContains(ui *RootUI, fragment string) bool {
	top := ui.window.Canvas().Overlays().Top()
	return top != nil && objectContains(top, fragment)
}

func objectContains(obj fyne.CanvasObject, fragment string) bool {
	switch o := obj.(type) {
	case *widget.Label:
		return strings.Contains(o.Text, fragment)
	case *widget.Button:
		return strings.Contains(o.Text, fragment)
	case *fyne.Container:
		for _, child := range o.Objects {
			if objectContains(child, fragment) {
				return true
			}
		}
	case fyne.Widget:
		for _, child := range test.WidgetRenderer(o).Objects() {
			if objectContains(child, fragment) {
				return true
			}
		}
	}
	return false
}

func logContains(ui *RootUI, fragment string) bool {
	for _, line := range ui.logView.Lines() {
		if strings.Contains(line, fragment) {
			return true
		}
	}
	return false
}

func TestNewRootUI(t *testing.T) {
	ui, svc := newTestRootUI(t)

	if ui.window.Title() != "YouTube Downloader v1.2.3" {
		t.Errorf("Unexpected window title %q", ui.window.Title())
	}
	if ui.downloadBtn.Disabled() {
		t.Error("Download button should be enabled when idle")
	}
	if !ui.stopBtn.Disabled() {
		t.Error("Stop button should be disabled when idle")
	}
	if ui.selectedQuality() != model.QualityBest {
		t.Errorf("Expected default quality best, got %s", ui.selectedQuality())
	}
	if ui.progress.Text() != "Waiting..." {
		t.Errorf("Unexpected progress text %q", ui.progress.Text())
	}
	if ui.ffmpegLabel.Text != "Checking..." {
		t.Errorf("Unexpected FFmpeg label %q", ui.ffmpegLabel.Text)
	}
	if svc.callback == nil {
		t.Error("Expected update callback to be registered")
	}
	if svc.retries != config.DefaultRetries || svc.template != config.DefaultFilenameTemplate {
		t.Errorf("Settings not applied to service: retries=%d template=%s", svc.retries, svc.template)
	}
}

func TestDownloadClick_EmptyURL(t *testing.T) {
	ui, svc := newTestRootUI(t)

	test.Tap(ui.downloadBtn)

	if len(svc.starts) != 0 {
		t.Error("Download should not start without a URL")
	}
}

func TestDownloadClick_SchemelessURL(t *testing.T) {
	tests := []string{
		"www.youtube.com/watch?v=7rgsRE3JNWo",
		"youtu.be/7rgsRE3JNWo",
		"7rgsRE3JNWo",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			ui, svc := newTestRootUI(t)

			ui.urlEntry.SetText(input)
			test.Tap(ui.downloadBtn)

			if len(svc.starts) != 1 || svc.starts[0].url != input {
				t.Errorf("Expected %q to be handed to yt-dlp unchanged, got %+v", input, svc.starts)
			}
		})
	}
}

func TestDownloadClick_Starts(t *testing.T) {
	ui, svc := newTestRootUI(t)
	dir := t.TempDir()

	ui.urlEntry.SetText("  https://www.youtube.com/watch?v=7rgsRE3JNWo ")
	ui.pathEntry.SetText(dir)
	ui.setSelectedQuality(model.Quality720p)
	test.Tap(ui.downloadBtn)

	if len(svc.starts) != 1 {
		t.Fatalf("Expected one start, got %d", len(svc.starts))
	}
	call := svc.starts[0]
	if call.url != "https://www.youtube.com/watch?v=7rgsRE3JNWo" || call.quality != model.Quality720p || call.outputDir != dir {
		t.Errorf("Unexpected start call: %+v", call)
	}
	if !ui.downloadBtn.Disabled() || ui.stopBtn.Disabled() {
		t.Error("Expected downloading state after start")
	}
	if !logContains(ui, "📥 Download started: https://www.youtube.com/watch?v=7rgsRE3JNWo") {
		t.Errorf("Missing start log line: %v", ui.logView.Lines())
	}
	if ui.settings.GetQuality() != model.Quality720p {
		t.Error("Selected quality should be remembered")
	}

	// A second click while running is ignored
	test.Tap(ui.downloadBtn)
	if len(svc.starts) != 1 {
		t.Errorf("Expected click to be ignored while running, got %d starts", len(svc.starts))
	}
}

func TestDownloadClick_FFmpegMissingAsksFirst(t *testing.T) {
	ui, svc := newTestRootUI(t)
	ui.ffmpegChecked = true
	ui.ffmpeg = media.FFmpegStatus{Installed: false}

	ui.urlEntry.SetText("https://youtu.be/7rgsRE3JNWo")
	ui.setSelectedQuality(model.QualityAudioMP3)
	test.Tap(ui.downloadBtn)

	if len(svc.starts) != 0 {
		t.Error("Download should wait for the FFmpeg confirmation")
	}
	if !overlayContains(ui, "Switch to 'Best quality (single file)'") {
		t.Error("Expected the FFmpeg confirmation dialog")
	}
}

func TestSwitchToBestAndStart(t *testing.T) {
	ui, svc := newTestRootUI(t)
	ui.ffmpegChecked = true
	ui.setSelectedQuality(model.QualityAudioMP3)

	ui.switchToBestAndStart("https://youtu.be/7rgsRE3JNWo")

	if len(svc.starts) != 1 || svc.starts[0].quality != model.QualityBest {
		t.Fatalf("Expected a start with the best preset, got %+v", svc.starts)
	}
	if ui.selectedQuality() != model.QualityBest {
		t.Errorf("Expected radio switched to best, got %s", ui.selectedQuality())
	}
	if !logContains(ui, "🔄 Quality switched to 'Best quality (single file)'.") {
		t.Errorf("Missing switch log line: %v", ui.logView.Lines())
	}
}

func TestDownloadClick_FFmpegUnknownStarts(t *testing.T) {
	ui, svc := newTestRootUI(t)

	ui.urlEntry.SetText("https://youtu.be/7rgsRE3JNWo")
	ui.setSelectedQuality(model.QualityBestMerged)
	test.Tap(ui.downloadBtn)

	if len(svc.starts) != 1 {
		t.Errorf("Expected start before the FFmpeg check finished, got %d", len(svc.starts))
	}
}

func TestApplyTask_Success(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.ffmpegChecked = true

	base := model.DownloadTask{ID: "dl-1", URL: "https://youtu.be/x", OutputDir: "/tmp/out"}

	task := base
	task.Status = model.TaskStatusStarting
	ui.applyTask(task)
	if ui.progress.Text() != "Preparing download..." {
		t.Errorf("Unexpected progress text %q", ui.progress.Text())
	}
	if ui.stopBtn.Disabled() {
		t.Error("Stop should be enabled while downloading")
	}

	task.Status = model.TaskStatusDownloading
	task.TotalBytes, task.DownloadedBytes, task.Percent, task.Progress = 100, 50, 50, 0.5
	ui.applyTask(task)
	if ui.progress.Text() != "Downloading... 50.0%" {
		t.Errorf("Unexpected progress text %q", ui.progress.Text())
	}

	task.CurrentFile = "/tmp/out/Uploader - Title.mp4"
	ui.applyTask(task)
	ui.applyTask(task)

	task.Status = model.TaskStatusCompleted
	task.Title, task.Uploader = "Title", "Uploader"
	task.OutputPath = task.CurrentFile
	task.FileSize = 2000000
	ui.applyTask(task)

	lines := ui.logView.Lines()
	done := 0
	for _, line := range lines {
		if line == "✅ Done: Uploader - Title.mp4" {
			done++
		}
	}
	if done != 1 {
		t.Errorf("Expected exactly one done line, got %d in %v", done, lines)
	}
	for _, expected := range []string{
		"🎉 Success: Title (by Uploader)",
		"📁 Saved to: /tmp/out/Uploader - Title.mp4",
		"💾 Size: 2.0 MB",
	} {
		if !logContains(ui, expected) {
			t.Errorf("Missing log line %q in %v", expected, lines)
		}
	}

	if ui.progress.Text() != "Download complete!" {
		t.Errorf("Unexpected progress text %q", ui.progress.Text())
	}
	if ui.downloadBtn.Disabled() || !ui.stopBtn.Disabled() {
		t.Error("Expected idle controls after completion")
	}
}

func TestApplyTask_StopAndError(t *testing.T) {
	ui, _ := newTestRootUI(t)

	task := model.DownloadTask{ID: "dl-2", Status: model.TaskStatusDownloading}
	ui.applyTask(task)

	task.Status = model.TaskStatusStopping
	ui.applyTask(task)
	if ui.progress.Text() != "Stopping download..." {
		t.Errorf("Unexpected progress text %q", ui.progress.Text())
	}

	task.Status = model.TaskStatusStopped
	ui.applyTask(task)
	if !logContains(ui, "🛑 Download stopped.") {
		t.Errorf("Missing stopped line: %v", ui.logView.Lines())
	}
	if ui.progress.Text() != "Waiting..." {
		t.Errorf("Expected idle progress after stop, got %q", ui.progress.Text())
	}

	failed := model.DownloadTask{ID: "dl-3", Status: model.TaskStatusError, LastError: "Video unavailable"}
	ui.applyTask(failed)
	if !logContains(ui, "❌ Download error: Video unavailable") {
		t.Errorf("Missing error line: %v", ui.logView.Lines())
	}
	if ui.downloadBtn.Disabled() {
		t.Error("Download should be enabled after an error")
	}
}

func TestApplyTask_IgnoresStaleSnapshot(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.ffmpegChecked = true

	ui.applyTask(model.DownloadTask{ID: "dl-5", Status: model.TaskStatusDownloading, Seq: 3})
	ui.applyTask(model.DownloadTask{ID: "dl-5", Status: model.TaskStatusCompleted, OutputPath: "/tmp/a.mp4", Seq: 5})
	ui.applyTask(model.DownloadTask{ID: "dl-5", Status: model.TaskStatusStopping, Seq: 4})

	if ui.downloadBtn.Disabled() || !ui.stopBtn.Disabled() {
		t.Error("A stale snapshot must not switch back to the downloading state")
	}
	if ui.lastTask.Status != model.TaskStatusCompleted {
		t.Errorf("Expected last task to stay completed, got %s", ui.lastTask.Status)
	}
	if ui.progress.Text() != "Download complete!" {
		t.Errorf("Unexpected progress text %q", ui.progress.Text())
	}
}

func TestOnFailed_Dialogs(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.onFailed(model.DownloadTask{ID: "dl-6", Status: model.TaskStatusError, LastError: "ERROR: Video unavailable"})
	if !overlayContains(ui, "Video unavailable") {
		t.Error("Expected the engine text in the error dialog")
	}

	ui, _ = newTestRootUI(t)
	ui.onFailed(model.DownloadTask{ID: "dl-7", Status: model.TaskStatusError, LastError: "ERROR: ffmpeg not found. Please install or provide the path using --ffmpeg-location"})
	if !overlayContains(ui, "This feature requires FFmpeg.") {
		t.Error("Expected the FFmpeg remediation dialog")
	}
	if !overlayContains(ui, "FFmpeg help") {
		t.Error("Expected the FFmpeg help button in the dialog")
	}
	if !logContains(ui, "❌ Download error: ERROR: ffmpeg not found") {
		t.Errorf("Missing error line: %v", ui.logView.Lines())
	}
}

func TestCloseRequest(t *testing.T) {
	ui, svc := newTestRootUI(t)
	closed := 0
	ui.window.SetOnClosed(func() { closed++ })

	svc.running = true
	ui.onCloseRequest()
	if closed != 0 {
		t.Fatal("Window must stay open until the quit is confirmed")
	}
	if !overlayContains(ui, "A download is in progress") {
		t.Error("Expected the quit confirmation dialog")
	}

	ui.stopAndClose()
	if svc.stops != 1 {
		t.Errorf("Expected the download to be stopped, got %d stops", svc.stops)
	}
	if closed != 1 {
		t.Errorf("Expected the window to close, got %d", closed)
	}
}

func TestCloseRequest_Idle(t *testing.T) {
	ui, svc := newTestRootUI(t)
	closed := 0
	ui.window.SetOnClosed(func() { closed++ })

	ui.onCloseRequest()

	if closed != 1 || svc.stops != 0 {
		t.Errorf("Idle close should not prompt or stop: closed=%d stops=%d", closed, svc.stops)
	}
}

func TestInstallFFmpegTool(t *testing.T) {
	ui, svc := newTestRootUI(t)

	installFFmpeg = func(context.Context) (string, error) { return "/opt/tools/ffmpeg", nil }
	var checked string
	checkFFmpegStatus = func(_ context.Context, location string) media.FFmpegStatus {
		checked = location
		return media.FFmpegStatus{Installed: true, Path: location, Version: "7.0"}
	}
	t.Cleanup(func() {
		installFFmpeg = download.InstallFFmpeg
		checkFFmpegStatus = media.CheckFFmpeg
	})

	done := false
	ui.installFFmpegTool(func() { done = true })

	if !done {
		t.Error("Expected the done callback")
	}
	if got := ui.settings.GetFFmpegLocation(); got != "/opt/tools/ffmpeg" {
		t.Errorf("Expected location saved to settings, got %q", got)
	}
	if svc.ffmpeg != "/opt/tools/ffmpeg" {
		t.Errorf("Expected location passed to the service, got %q", svc.ffmpeg)
	}
	if checked != "/opt/tools/ffmpeg" {
		t.Errorf("Expected a re-check against the new location, got %q", checked)
	}
	if ui.ffmpegMissing() {
		t.Error("FFmpeg should be reported installed after the install")
	}
}

func TestInstallFFmpegTool_Failure(t *testing.T) {
	ui, svc := newTestRootUI(t)
	ui.settings.SetFFmpegLocation("/usr/bin/ffmpeg")

	installFFmpeg = func(context.Context) (string, error) { return "", errors.New("no build for this platform") }
	t.Cleanup(func() { installFFmpeg = download.InstallFFmpeg })

	done := false
	ui.installFFmpegTool(func() { done = true })

	if !done {
		t.Error("Expected the done callback")
	}
	if got := ui.settings.GetFFmpegLocation(); got != "/usr/bin/ffmpeg" {
		t.Errorf("Failed install must keep the old location, got %q", got)
	}
	if svc.ffmpeg != "" {
		t.Errorf("Failed install must not touch the service, got %q", svc.ffmpeg)
	}
}

func TestStopClick(t *testing.T) {
	ui, svc := newTestRootUI(t)

	// Not running: no error surfaces
	test.Tap(ui.stopBtn)

	svc.running = true
	ui.setDownloading(true)
	test.Tap(ui.stopBtn)
	if svc.stops != 1 {
		t.Errorf("Expected one stop, got %d", svc.stops)
	}
}

func TestClearLog(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.logView.Append("one")
	ui.logView.Append("two")
	test.Tap(ui.clearBtn)

	lines := ui.logView.Lines()
	if len(lines) != 1 || lines[0] != "🧹 Log cleared." {
		t.Errorf("Expected only the cleared line, got %v", lines)
	}
}

func TestOpenFolder(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.ffmpegChecked = true

	var opened string
	openFolder = func(dir string) error {
		opened = dir
		return nil
	}
	t.Cleanup(func() { openFolder = platform.OpenFolder })

	ui.pathEntry.SetText("/videos")
	test.Tap(ui.openFolderBtn)
	if opened != "/videos" {
		t.Errorf("Expected /videos, got %s", opened)
	}

	ui.applyTask(model.DownloadTask{ID: "dl-4", Status: model.TaskStatusCompleted, OutputPath: "/music/song.mp3"})
	test.Tap(ui.openFolderBtn)
	if opened != "/music" {
		t.Errorf("Expected folder of the last file, got %s", opened)
	}
}

func TestLanguageChange(t *testing.T) {
	ui, _ := newTestRootUI(t)
	ui.setSelectedQuality(model.Quality480p)

	ui.onLanguageChange(config.LanguageKorean)

	if ui.downloadBtn.Text != "다운로드 시작" {
		t.Errorf("Expected Korean button text, got %s", ui.downloadBtn.Text)
	}
	if ui.selectedQuality() != model.Quality480p {
		t.Errorf("Quality selection lost on language change: %s", ui.selectedQuality())
	}
	if ui.settings.GetLanguage() != config.LanguageKorean {
		t.Error("Language should be persisted")
	}
	if !strings.HasPrefix(ui.window.Title(), "YouTube 다운로더") {
		t.Errorf("Unexpected title %q", ui.window.Title())
	}
}

func TestRefreshFFmpegLabel(t *testing.T) {
	ui, _ := newTestRootUI(t)

	ui.ffmpegChecked = true
	ui.ffmpeg = media.FFmpegStatus{Installed: true}
	ui.refreshFFmpegLabel()
	if ui.ffmpegLabel.Text != "✅ FFmpeg installed" {
		t.Errorf("Unexpected label %q", ui.ffmpegLabel.Text)
	}

	ui.ffmpeg = media.FFmpegStatus{}
	ui.refreshFFmpegLabel()
	if ui.ffmpegLabel.Text != "❌ FFmpeg missing" {
		t.Errorf("Unexpected label %q", ui.ffmpegLabel.Text)
	}
	if !ui.ffmpegMissing() {
		t.Error("Expected FFmpeg to be reported missing")
	}
}
