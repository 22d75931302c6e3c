package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytgrab/internal/config"
	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	outputDirEntry   *widget.Entry
	qualitySelect    *widget.Select
	filenameEntry    *widget.Entry
	retriesSelect    *widget.Select
	ffmpegEntry      *widget.Entry
	autoInstallCheck *widget.Check
}

// ShowSettingsDialog builds and shows the settings dialog; onSaved runs after a save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	// Output directory selection
	sd.outputDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// Default quality preset
	sd.qualitySelect = widget.NewSelect(qualityLabels(l), nil)

	// Filename template
	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder(download.DefaultFilenameTemplate)

	// Retries 0..MaxRetries
	var retryOptions []string
	for i := 0; i <= download.MaxRetries; i++ {
		retryOptions = append(retryOptions, strconv.Itoa(i))
	}
	sd.retriesSelect = widget.NewSelect(retryOptions, nil)

	// FFmpeg location
	sd.ffmpegEntry = widget.NewEntry()
	sd.ffmpegEntry.SetPlaceHolder("ffmpeg")

	sd.autoInstallCheck = widget.NewCheck(l.GetText(KeyAutoInstallYTDLP), nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyOutputDirectory)),
		outputDirRow,

		widget.NewLabel(l.GetText(KeyDefaultQuality)),
		sd.qualitySelect,

		widget.NewLabel(l.GetText(KeyFilenameTemplate)),
		sd.filenameEntry,

		widget.NewLabel(l.GetText(KeyRetries)),
		sd.retriesSelect,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyFFmpegLocation)),
		sd.ffmpegEntry,
		sd.autoInstallCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.qualitySelect.SetSelected(qualityLabel(sd.localization, sd.settings.GetQuality()))
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.retriesSelect.SetSelected(strconv.Itoa(sd.settings.GetRetries()))
	sd.ffmpegEntry.SetText(sd.settings.GetFFmpegLocation())
	sd.autoInstallCheck.SetChecked(sd.settings.GetAutoInstallYTDLP())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.outputDirEntry.Text != "" {
		sd.settings.SetOutputDirectory(sd.outputDirEntry.Text)
	}

	if q, ok := qualityForLabel(sd.localization, sd.qualitySelect.Selected); ok {
		sd.settings.SetQuality(q)
	}

	sd.settings.SetFilenameTemplate(sd.filenameEntry.Text)

	if retries, err := strconv.Atoi(sd.retriesSelect.Selected); err == nil {
		sd.settings.SetRetries(retries)
	}

	sd.settings.SetFFmpegLocation(sd.ffmpegEntry.Text)
	sd.settings.SetAutoInstallYTDLP(sd.autoInstallCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// qualityLabelKeys maps presets to their localization keys
var qualityLabelKeys = map[model.Quality]string{
	model.QualityBest:       KeyQualityBest,
	model.QualityBestMerged: KeyQualityMerged,
	model.Quality720p:       KeyQuality720p,
	model.Quality480p:       KeyQuality480p,
	model.QualityAudioMP3:   KeyQualityAudio,
}

// qualityLabel returns the radio label for a preset; presets that need FFmpeg get a warning suffix
func qualityLabel(l *Localization, q model.Quality) string {
	text := l.GetText(qualityLabelKeys[q])
	if q.NeedsFFmpeg() {
		text += " " + IconWarning
	}
	return text
}

// qualityLabels returns labels in preset order
func qualityLabels(l *Localization) []string {
	var labels []string
	for _, q := range model.AllQualities() {
		labels = append(labels, qualityLabel(l, q))
	}
	return labels
}

// qualityForLabel maps a radio label back to its preset
func qualityForLabel(l *Localization, label string) (model.Quality, bool) {
	for _, q := range model.AllQualities() {
		if qualityLabel(l, q) == label {
			return q, true
		}
	}
	return "", false
}
