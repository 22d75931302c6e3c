package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

// LogView is an append-only activity log that keeps itself scrolled to the newest line.
// Methods must be called on the Fyne main goroutine.
type LogView struct {
	lines    binding.StringList
	list     *widget.List
	maxLines int
}

// NewLogView creates a log view holding at most maxLines lines (0 = unlimited)
func NewLogView(maxLines int) *LogView {
	v := &LogView{
		lines:    binding.NewStringList(),
		maxLines: maxLines,
	}

	v.list = widget.NewListWithData(
		v.lines,
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			obj.(*widget.Label).Bind(item.(binding.String))
		},
	)

	return v
}

// Append adds a line and scrolls to it
func (v *LogView) Append(message string) {
	if err := v.lines.Append(message); err != nil {
		log.Printf("Failed to append log line: %v", err)
		return
	}

	if v.maxLines > 0 && v.lines.Length() > v.maxLines {
		items, err := v.lines.Get()
		if err == nil {
			if err := v.lines.Set(items[len(items)-v.maxLines:]); err != nil {
				log.Printf("Failed to trim log: %v", err)
			}
		}
	}

	v.list.ScrollToBottom()
}

// Clear removes every line
func (v *LogView) Clear() {
	if err := v.lines.Set([]string{}); err != nil {
		log.Printf("Failed to clear log: %v", err)
	}
}

// Lines returns a copy of the current lines
func (v *LogView) Lines() []string {
	items, err := v.lines.Get()
	if err != nil {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Widget returns the list to place in a layout
func (v *LogView) Widget() fyne.CanvasObject {
	return v.list
}
