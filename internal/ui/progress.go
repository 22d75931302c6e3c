package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/ytgrab/internal/model"
)

// ProgressView shows the progress label above a bar that switches to an
// infinite bar while the total size is unknown.
type ProgressView struct {
	label    *widget.Label
	bar      *widget.ProgressBar
	infinite *widget.ProgressBarInfinite
	box      *fyne.Container
}

// NewProgressView creates an idle progress view
func NewProgressView(idleText string) *ProgressView {
	p := &ProgressView{
		label:    widget.NewLabel(idleText),
		bar:      widget.NewProgressBar(),
		infinite: widget.NewProgressBarInfinite(),
	}
	p.infinite.Stop()
	p.infinite.Hide()
	p.box = container.NewVBox(p.label, container.NewStack(p.bar, p.infinite))
	return p
}

// Container returns the layout to embed
func (p *ProgressView) Container() fyne.CanvasObject {
	return p.box
}

// Update renders the task state
func (p *ProgressView) Update(l *Localization, task model.DownloadTask) {
	p.label.SetText(progressText(l, task))

	if progressIndeterminate(task) {
		p.bar.Hide()
		p.infinite.Show()
		if !p.infinite.Running() {
			p.infinite.Start()
		}
		return
	}

	if p.infinite.Running() {
		p.infinite.Stop()
	}
	p.infinite.Hide()
	p.bar.Show()

	switch task.Status {
	case model.TaskStatusIdle, model.TaskStatusStarting:
		p.bar.SetValue(0)
	case model.TaskStatusCompleted:
		p.bar.SetValue(1)
	default:
		p.bar.SetValue(task.Progress)
	}
}

// Reset returns to the idle text with an empty bar
func (p *ProgressView) Reset(text string) {
	if p.infinite.Running() {
		p.infinite.Stop()
	}
	p.infinite.Hide()
	p.bar.Show()
	p.bar.SetValue(0)
	p.label.SetText(text)
}

// Text returns the label text
func (p *ProgressView) Text() string {
	return p.label.Text
}

// progressText formats the status line for a task
func progressText(l *Localization, task model.DownloadTask) string {
	switch task.Status {
	case model.TaskStatusStarting:
		return l.GetText(KeyPreparing)
	case model.TaskStatusDownloading:
		// yt-dlp reported the file finished; merging or extraction may follow
		if task.CurrentFile != "" && task.Progress >= 1 {
			return l.GetText(KeyDownloadComplete)
		}
		if !task.HasKnownTotal() {
			amount := NotAvailable
			if task.DownloadedBytes > 0 {
				amount = humanize.Bytes(uint64(task.DownloadedBytes))
			}
			return l.Format(KeyDownloadingNoSize, amount)
		}
		if task.Speed > 0 {
			return l.Format(KeyDownloadingSpeed, task.Percent, humanize.Bytes(uint64(task.Speed)))
		}
		return l.Format(KeyDownloadingPct, task.Percent)
	case model.TaskStatusPostProcessing:
		return l.GetText(KeyPostProcessing)
	case model.TaskStatusStopping:
		return l.GetText(KeyStopping)
	case model.TaskStatusCompleted:
		return l.GetText(KeyDownloadComplete)
	default:
		return l.GetText(KeyWaiting)
	}
}

// progressIndeterminate reports whether the bar should animate instead of fill
func progressIndeterminate(task model.DownloadTask) bool {
	switch task.Status {
	case model.TaskStatusDownloading:
		return !task.HasKnownTotal()
	case model.TaskStatusPostProcessing:
		return true
	}
	return false
}
