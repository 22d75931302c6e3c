package ui

import (
	"context"
	"log"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytgrab/internal/download"
)

// installFFmpeg is swapped in tests
var installFFmpeg = download.InstallFFmpeg

// showFFmpegHelp opens the installation guide with website, auto-install and refresh actions
func (ui *RootUI) showFFmpegHelp() {
	l := ui.localization

	helpText := widget.NewLabel(l.GetText(KeyFFmpegHelpText))
	helpText.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(helpText)

	websiteBtn := widget.NewButton(l.GetText(KeyFFmpegWebsite), ui.openFFmpegWebsite)
	installBtn := widget.NewButton(l.GetText(KeyFFmpegAutoInstall), nil)
	refreshBtn := widget.NewButton(l.GetText(KeyFFmpegRefresh), func() {
		go ui.checkFFmpeg()
	})

	buttons := container.NewGridWithColumns(3, websiteBtn, installBtn, refreshBtn)
	content := container.NewBorder(nil, buttons, nil, nil, scroll)

	d := dialog.NewCustom(l.GetText(KeyFFmpegHelpTitle), l.GetText(KeyClose), content, ui.window)
	installBtn.OnTapped = func() {
		installBtn.Disable()
		go ui.installFFmpegTool(func() {
			fyne.Do(installBtn.Enable)
		})
	}

	d.Resize(fyne.NewSize(FFmpegHelpWidth, FFmpegHelpHeight))
	d.Show()
}

// openFFmpegWebsite opens the ffmpeg download page in the browser
func (ui *RootUI) openFFmpegWebsite() {
	u, err := url.Parse(FFmpegDownloadURL)
	if err != nil {
		log.Printf("Invalid ffmpeg URL: %v", err)
		return
	}
	if err := ui.app.OpenURL(u); err != nil {
		log.Printf("Failed to open %s: %v", FFmpegDownloadURL, err)
		dialog.ShowError(err, ui.window)
	}
}

// installFFmpegTool downloads ffmpeg, points settings and the service at it and re-checks
func (ui *RootUI) installFFmpegTool(done func()) {
	defer done()

	ui.appendLog(ui.localization.Format(KeyLogInstalling, "FFmpeg"))

	ctx, cancel := context.WithTimeout(context.Background(), InstallTimeout)
	defer cancel()

	path, err := installFFmpeg(ctx)
	if err != nil {
		log.Printf("FFmpeg install failed: %v", err)
		ui.appendLog(ui.localization.Format(KeyLogInstallFailed, "FFmpeg", err.Error()))
		return
	}

	ui.settings.SetFFmpegLocation(path)
	ui.downloadSvc.SetFFmpegLocation(path)
	ui.appendLog(ui.localization.Format(KeyLogInstalled, "FFmpeg", path))
	ui.checkFFmpeg()
}
