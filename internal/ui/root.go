package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/media"
	"github.com/ytget/ytgrab/internal/model"
	"github.com/ytget/ytgrab/internal/platform"
)

// Tool hooks, swapped in tests
var (
	checkFFmpegStatus = media.CheckFFmpeg
	installYTDLP      = download.InstallYTDLP
	probeMedia        = media.Probe
	openFolder        = platform.OpenFolder
)

// RootUI represents the main UI structure
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	version      string
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	// Header
	titleLabel    *widget.Label
	ffmpegLabel   *widget.Label
	ffmpegHelpBtn *widget.Button

	// Form
	urlLabel     *widget.Label
	urlEntry     *widget.Entry
	pathLabel    *widget.Label
	pathEntry    *widget.Entry
	browseBtn    *widget.Button
	qualityLabel *widget.Label
	qualityRadio *widget.RadioGroup

	// Controls
	downloadBtn   *widget.Button
	stopBtn       *widget.Button
	clearBtn      *widget.Button
	openFolderBtn *widget.Button

	progress *ProgressView
	logLabel *widget.Label
	logView  *LogView

	mu            sync.Mutex
	ffmpeg        media.FFmpegStatus
	ffmpegChecked bool
	lastTask      model.DownloadTask
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader, version string) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		version:      version,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
	}

	ui.applySettingsToService()

	// Set up callback for download updates
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	ui.window.SetCloseIntercept(ui.onCloseRequest)

	log.Printf("RootUI initialized with download service: %v", ui.downloadSvc != nil)
	return ui
}

// Startup logs the greeting, checks FFmpeg and optionally installs yt-dlp in the background
func (ui *RootUI) Startup() {
	ui.logView.Append(ui.localization.GetText(KeyLogReady))
	ui.logView.Append(ui.localization.GetText(KeyLogHint))

	go ui.checkFFmpeg()

	if ui.settings.GetAutoInstallYTDLP() {
		go ui.installYTDLPTool()
	}
}

// applySettingsToService pushes persisted preferences into the download service
func (ui *RootUI) applySettingsToService() {
	ui.downloadSvc.SetRetries(ui.settings.GetRetries())
	ui.downloadSvc.SetFilenameTemplate(ui.settings.GetFilenameTemplate())
	ui.downloadSvc.SetFFmpegLocation(ui.settings.GetFFmpegLocation())
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.createMenu()

	// Header with FFmpeg status
	ui.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.titleLabel.SizeName = theme.SizeNameSubHeadingText
	ui.ffmpegLabel = widget.NewLabel(l.GetText(KeyFFmpegChecking))
	ui.ffmpegHelpBtn = widget.NewButton("", ui.showFFmpegHelp)
	header := container.NewBorder(nil, nil, ui.titleLabel, container.NewHBox(ui.ffmpegLabel, ui.ffmpegHelpBtn))

	// URL row
	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	// Output path row
	ui.pathLabel = widget.NewLabel("")
	ui.pathEntry = widget.NewEntry()
	ui.pathEntry.SetText(ui.settings.GetOutputDirectory())
	ui.browseBtn = widget.NewButton("", ui.onBrowseFolder)
	pathRow := container.NewBorder(nil, nil, nil, ui.browseBtn, ui.pathEntry)

	// Quality presets
	ui.qualityLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.qualityRadio = widget.NewRadioGroup(qualityLabels(l), nil)
	ui.qualityRadio.Required = true
	ui.qualityRadio.SetSelected(qualityLabel(l, ui.settings.GetQuality()))

	// Controls
	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton("", ui.onStopClick)
	ui.stopBtn.Importance = widget.DangerImportance
	ui.stopBtn.Disable()
	ui.clearBtn = widget.NewButton("", ui.onClearLog)
	ui.openFolderBtn = widget.NewButton("", ui.onOpenFolder)
	controls := container.NewHBox(ui.downloadBtn, ui.stopBtn, ui.clearBtn, ui.openFolderBtn)

	ui.progress = NewProgressView(l.GetText(KeyWaiting))

	// Log
	ui.logLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.logView = NewLogView(MaxLogLines)

	form := container.NewVBox(
		header,
		widget.NewSeparator(),
		ui.urlLabel,
		ui.urlEntry,
		ui.pathLabel,
		pathRow,
		ui.qualityLabel,
		ui.qualityRadio,
		controls,
		ui.progress.Container(),
	)

	logPanel := container.NewBorder(ui.logLabel, nil, nil, nil, ui.logView.Widget())
	content := container.NewBorder(form, nil, nil, nil, logPanel)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewPadded(content))

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	l := ui.localization

	settingsItem := fyne.NewMenuItem(l.GetText(KeySettings), ui.onShowSettings)
	installItem := fyne.NewMenuItem(l.GetText(KeyInstallYTDLP), func() {
		go ui.installYTDLPTool()
	})

	// Language submenu
	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	currentLang := ui.settings.GetLanguage()

	systemItem := fyne.NewMenuItem(l.GetText(KeyLanguageSystem), func() {
		ui.onLanguageChange(config.LanguageSystem)
	})
	systemItem.Checked = currentLang == config.LanguageSystem
	languageMenu.Items = append(languageMenu.Items, systemItem)

	availableLanguages := l.GetAvailableLanguages()
	for _, code := range []string{config.LanguageEnglish, config.LanguageKorean} {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		langItem.Checked = currentLang == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Appearance submenu
	appearanceMenu := fyne.NewMenu(l.GetText(KeyAppearance))
	appearanceKeys := map[string]string{
		config.AppearanceSystem: KeyAppearanceSystem,
		config.AppearanceLight:  KeyAppearanceLight,
		config.AppearanceDark:   KeyAppearanceDark,
	}
	currentAppearance := ui.settings.GetAppearance()
	for _, appearance := range ui.settings.GetAppearanceOptions() {
		value := appearance
		item := fyne.NewMenuItem(l.GetText(appearanceKeys[value]), func() {
			ui.onAppearanceChange(value)
		})
		item.Checked = currentAppearance == value
		appearanceMenu.Items = append(appearanceMenu.Items, item)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(l.GetText(KeyFile), settingsItem, installItem),
		languageMenu,
		appearanceMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// onAppearanceChange applies and stores the theme appearance
func (ui *RootUI) onAppearanceChange(appearance string) {
	ui.settings.SetAppearance(appearance)
	ui.app.Settings().SetTheme(NewCompactTheme(ui.settings.GetAppearance()))
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	title := l.GetText(KeyAppTitle)
	ui.window.SetTitle(fmt.Sprintf("%s v%s", title, ui.version))
	ui.titleLabel.SetText(title)
	ui.ffmpegHelpBtn.SetText(l.GetText(KeyFFmpegHelp))

	ui.urlLabel.SetText(l.GetText(KeyURL))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyURLPlaceholder))
	ui.pathLabel.SetText(l.GetText(KeyOutputPath))
	ui.browseBtn.SetText(l.GetText(KeyBrowse))
	ui.qualityLabel.SetText(l.GetText(KeyQuality))

	// Radio labels are localized, keep the selected preset
	selected := ui.selectedQuality()
	ui.qualityRadio.Options = qualityLabels(l)
	ui.qualityRadio.Selected = qualityLabel(l, selected)
	ui.qualityRadio.Refresh()

	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.stopBtn.SetText(l.GetText(KeyStop))
	ui.clearBtn.SetText(l.GetText(KeyClearLog))
	ui.openFolderBtn.SetText(IconFolder + " " + l.GetText(KeyOpenFolder))
	ui.logLabel.SetText(l.GetText(KeyLog))

	ui.refreshFFmpegLabel()

	ui.mu.Lock()
	task := ui.lastTask
	ui.mu.Unlock()
	ui.progress.Update(l, task)
}

// selectedQuality maps the radio selection to a preset
func (ui *RootUI) selectedQuality() model.Quality {
	if q, ok := qualityIndex(ui.qualityRadio); ok {
		return q
	}
	return model.DefaultQuality
}

// qualityIndex finds the preset behind the selected radio option by position
func qualityIndex(radio *widget.RadioGroup) (model.Quality, bool) {
	presets := model.AllQualities()
	for i, option := range radio.Options {
		if option == radio.Selected && i < len(presets) {
			return presets[i], true
		}
	}
	return "", false
}

// setSelectedQuality selects the radio option for a preset
func (ui *RootUI) setSelectedQuality(q model.Quality) {
	ui.qualityRadio.SetSelected(qualityLabel(ui.localization, q))
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.applySettingsToService()
		if !ui.downloadSvc.IsRunning() {
			ui.pathEntry.SetText(ui.settings.GetOutputDirectory())
			ui.setSelectedQuality(ui.settings.GetQuality())
		}
		go ui.checkFFmpeg()
	})
}

// onBrowseFolder picks the output directory
func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.pathEntry.SetText(uri.Path())
	}, ui.window)
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	if ui.downloadSvc.IsRunning() {
		log.Printf("Download already running, ignoring click")
		return
	}

	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.showError(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}

	quality := ui.selectedQuality()
	if quality.NeedsFFmpeg() && ui.ffmpegMissing() {
		l := ui.localization
		dialog.ShowConfirm(l.GetText(KeyFFmpegRequiredTitle), l.GetText(KeyFFmpegRequiredMsg), func(ok bool) {
			if ok {
				ui.switchToBestAndStart(urlText)
			}
		}, ui.window)
		return
	}

	ui.startDownload(urlText, quality)
}

// switchToBestAndStart falls back to the single-file preset that needs no FFmpeg
func (ui *RootUI) switchToBestAndStart(urlText string) {
	ui.setSelectedQuality(model.QualityBest)
	ui.logView.Append(ui.localization.GetText(KeyLogQualitySwitched))
	ui.startDownload(urlText, model.QualityBest)
}

// startDownload hands the request to the download service
func (ui *RootUI) startDownload(urlText string, quality model.Quality) {
	outputDir := strings.TrimSpace(ui.pathEntry.Text)
	if outputDir == "" {
		outputDir = platform.DefaultOutputDir()
		ui.pathEntry.SetText(outputDir)
	}

	ui.settings.SetOutputDirectory(outputDir)
	ui.settings.SetQuality(quality)

	log.Printf("Starting download: url=%s quality=%s dir=%s", urlText, quality, outputDir)

	task, err := ui.downloadSvc.Start(urlText, quality, outputDir)
	if err != nil {
		if errors.Is(err, download.ErrAlreadyRunning) {
			return
		}
		log.Printf("Failed to start download: %v", err)
		ui.showError(err.Error())
		return
	}

	ui.setDownloading(true)
	ui.logView.Append(ui.localization.Format(KeyLogStart, task.URL))
	if task.VideoID == "" {
		ui.logView.Append(ui.localization.GetText(KeyLogNotYouTube))
	}
}

// onStopClick requests cancellation of the running download
func (ui *RootUI) onStopClick() {
	if err := ui.downloadSvc.Stop(); err != nil && !errors.Is(err, download.ErrNotRunning) {
		log.Printf("Error stopping download: %v", err)
	}
}

// onClearLog empties the log
func (ui *RootUI) onClearLog() {
	ui.logView.Clear()
	ui.logView.Append(ui.localization.GetText(KeyLogCleared))
}

// onOpenFolder reveals the last output directory
func (ui *RootUI) onOpenFolder() {
	dir := strings.TrimSpace(ui.pathEntry.Text)

	ui.mu.Lock()
	if ui.lastTask.Status == model.TaskStatusCompleted && ui.lastTask.OutputPath != "" {
		dir = filepath.Dir(ui.lastTask.OutputPath)
	}
	ui.mu.Unlock()

	if dir == "" {
		dir = platform.DefaultOutputDir()
	}

	if err := openFolder(dir); err != nil {
		log.Printf("Failed to open folder %s: %v", dir, err)
		ui.showError(ui.localization.GetText(KeyErrorOpeningFolder) + ": " + err.Error())
	}
}

// onCloseRequest asks for confirmation while a download is running
func (ui *RootUI) onCloseRequest() {
	if !ui.downloadSvc.IsRunning() {
		ui.window.Close()
		return
	}

	l := ui.localization
	dialog.ShowConfirm(l.GetText(KeyQuitTitle), l.GetText(KeyQuitMsg), func(ok bool) {
		if ok {
			ui.stopAndClose()
		}
	}, ui.window)
}

// stopAndClose cancels the running download and closes the window
func (ui *RootUI) stopAndClose() {
	if err := ui.downloadSvc.Stop(); err != nil {
		log.Printf("Stop on close: %v", err)
	}
	ui.window.Close()
}

// onTaskUpdate receives snapshots from the download worker
func (ui *RootUI) onTaskUpdate(task model.DownloadTask) {
	fyne.Do(func() {
		ui.applyTask(task)
	})
}

// applyTask renders a snapshot and logs status transitions. Runs on the main goroutine.
func (ui *RootUI) applyTask(task model.DownloadTask) {
	ui.mu.Lock()
	prev := ui.lastTask
	if task.IsStaleAfter(prev) {
		ui.mu.Unlock()
		log.Printf("Ignoring stale %s snapshot for %s", task.Status, task.ID)
		return
	}
	ui.lastTask = task
	ui.mu.Unlock()

	sameTask := prev.ID == task.ID
	statusChanged := !sameTask || prev.Status != task.Status
	l := ui.localization

	ui.progress.Update(l, task)
	ui.setDownloading(task.Status.IsActive())

	if task.CurrentFile != "" && (!sameTask || prev.CurrentFile != task.CurrentFile) {
		ui.logView.Append(l.Format(KeyLogDone, task.CurrentFileName()))
	}

	if !statusChanged {
		return
	}

	switch task.Status {
	case model.TaskStatusPostProcessing:
		ui.logView.Append(l.GetText(KeyLogPostProcessing))
	case model.TaskStatusStopping:
		ui.logView.Append(l.GetText(KeyLogStopRequested))
	case model.TaskStatusStopped:
		ui.progress.Reset(l.GetText(KeyWaiting))
		ui.logView.Append(l.GetText(KeyLogStopped))
	case model.TaskStatusCompleted:
		ui.onCompleted(task)
	case model.TaskStatusError:
		ui.progress.Reset(l.GetText(KeyWaiting))
		ui.onFailed(task)
	}
}

// onCompleted logs the outcome of a successful download
func (ui *RootUI) onCompleted(task model.DownloadTask) {
	l := ui.localization

	title := task.Title
	if title == "" {
		title = task.GetDisplayTitle()
	}
	uploader := task.Uploader
	if uploader == "" {
		uploader = UnknownValue
	}
	ui.logView.Append(l.Format(KeyLogSuccess, title, uploader))

	location := task.OutputDir
	if task.OutputPath != "" {
		location = task.OutputPath
	}
	ui.logView.Append(l.Format(KeyLogSavedTo, location))

	if task.FileSize > 0 {
		ui.logView.Append(l.Format(KeyLogFileSize, humanize.Bytes(uint64(task.FileSize))))
	}

	if task.OutputPath != "" && !ui.ffmpegMissing() {
		go ui.logMediaSummary(task.OutputPath)
	}
}

// logMediaSummary probes the finished file and logs duration and codecs
func (ui *RootUI) logMediaSummary(path string) {
	info, err := probeMedia(path)
	if err != nil {
		log.Printf("Probe failed for %s: %v", path, err)
		return
	}
	if summary := info.Summary(); summary != "" {
		ui.appendLog(ui.localization.Format(KeyLogMedia, summary))
	}
}

// onFailed logs the engine error and shows the matching dialog
func (ui *RootUI) onFailed(task model.DownloadTask) {
	l := ui.localization
	ui.logView.Append(l.Format(KeyLogError, task.LastError))

	if download.IsFFmpegMessage(task.LastError) {
		ui.showFFmpegErrorDialog()
		return
	}

	dialog.ShowInformation(l.GetText(KeyDownloadErrorTitle), l.Format(KeyDownloadErrorMsg, task.LastError), ui.window)
}

// showFFmpegErrorDialog explains an FFmpeg failure and offers the help dialog
func (ui *RootUI) showFFmpegErrorDialog() {
	l := ui.localization
	message := widget.NewLabel(l.GetText(KeyFFmpegErrorMsg))
	message.Wrapping = fyne.TextWrapWord
	dialog.ShowCustomConfirm(l.GetText(KeyFFmpegErrorTitle), l.GetText(KeyFFmpegHelp), l.GetText(KeyClose), message, func(help bool) {
		if help {
			ui.showFFmpegHelp()
		}
	}, ui.window)
}

// setDownloading toggles widgets between idle and downloading
func (ui *RootUI) setDownloading(active bool) {
	if active {
		ui.downloadBtn.Disable()
		ui.stopBtn.Enable()
		ui.urlEntry.Disable()
		ui.pathEntry.Disable()
		ui.browseBtn.Disable()
		ui.qualityRadio.Disable()
		return
	}

	ui.downloadBtn.Enable()
	ui.stopBtn.Disable()
	ui.urlEntry.Enable()
	ui.pathEntry.Enable()
	ui.browseBtn.Enable()
	ui.qualityRadio.Enable()
}

// checkFFmpeg refreshes the FFmpeg status; safe to call from any goroutine
func (ui *RootUI) checkFFmpeg() {
	status := checkFFmpegStatus(context.Background(), ui.settings.GetFFmpegLocation())
	if status.Err != nil {
		log.Printf("FFmpeg check: %v", status.Err)
	}

	ui.mu.Lock()
	ui.ffmpeg = status
	ui.ffmpegChecked = true
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.refreshFFmpegLabel()

		l := ui.localization
		if status.Installed {
			ui.logView.Append(l.Format(KeyLogFFmpegFound, status.Version, status.Path))
			return
		}
		ui.logView.Append(l.GetText(KeyLogFFmpegMissing))
		ui.logView.Append(l.GetText(KeyLogFFmpegHint))
	})
}

// ffmpegMissing reports a completed check that found no FFmpeg
func (ui *RootUI) ffmpegMissing() bool {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.ffmpegChecked && !ui.ffmpeg.Installed
}

// refreshFFmpegLabel renders the FFmpeg status in the header
func (ui *RootUI) refreshFFmpegLabel() {
	ui.mu.Lock()
	checked, installed := ui.ffmpegChecked, ui.ffmpeg.Installed
	ui.mu.Unlock()

	l := ui.localization
	switch {
	case !checked:
		ui.ffmpegLabel.Importance = widget.MediumImportance
		ui.ffmpegLabel.SetText(l.GetText(KeyFFmpegChecking))
	case installed:
		ui.ffmpegLabel.Importance = widget.SuccessImportance
		ui.ffmpegLabel.SetText(l.GetText(KeyFFmpegInstalled))
	default:
		ui.ffmpegLabel.Importance = widget.DangerImportance
		ui.ffmpegLabel.SetText(l.GetText(KeyFFmpegMissing))
	}
}

// installYTDLPTool downloads yt-dlp when it is missing; safe to call from any goroutine
func (ui *RootUI) installYTDLPTool() {
	ui.appendLog(ui.localization.Format(KeyLogInstalling, "yt-dlp"))

	ctx, cancel := context.WithTimeout(context.Background(), InstallTimeout)
	defer cancel()

	path, err := installYTDLP(ctx)
	if err != nil {
		log.Printf("yt-dlp install failed: %v", err)
		ui.appendLog(ui.localization.Format(KeyLogInstallFailed, "yt-dlp", err.Error()))
		return
	}
	ui.appendLog(ui.localization.Format(KeyLogInstalled, "yt-dlp", path))
}

// appendLog adds a log line from any goroutine
func (ui *RootUI) appendLog(message string) {
	fyne.Do(func() {
		ui.logView.Append(message)
	})
}

// showError displays an error dialog
func (ui *RootUI) showError(message string) {
	dialog.ShowError(errors.New(message), ui.window)
}
