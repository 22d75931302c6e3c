package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/ytgrab/internal/download"
	"github.com/ytget/ytgrab/internal/model"
)

const (
	defaultQuality   = "merged"
	defaultOutputDir = "downloads"
	defaultTemplate  = "%(uploader)s/%(title)s.%(ext)s"
)

// errInterrupted is returned when the user stops the run with Ctrl-C
var errInterrupted = errors.New("download interrupted")

var downloadCmd = &cobra.Command{
	Use:   "download [urls...]",
	Short: "Download one or more videos",
	Long: `Download fetches each URL in turn with yt-dlp. Quality is one of the
presets best, merged, 720p, 480p or mp3 (a raw preset selector is accepted too).
Unless --fallback=false is given, a preset whose streams are missing falls back
to the best single file, so the default is "bestvideo+bestaudio/best".
Ctrl-C stops the running download and skips the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringP("quality", "q", defaultQuality, "quality preset: best, merged, 720p, 480p, mp3")
	downloadCmd.Flags().StringP("output", "o", defaultOutputDir, "output directory")
	downloadCmd.Flags().String("template", defaultTemplate, "yt-dlp output template below the output directory")
	downloadCmd.Flags().Int("retries", download.DefaultRetries, "retries per URL after a failure (0-5)")
	downloadCmd.Flags().Bool("fallback", true, "fall back to the best single file when the preset's streams are missing")

	for _, name := range []string{"quality", "output", "template", "retries", "fallback"} {
		_ = viper.BindPFlag(name, downloadCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	quality, err := model.ParseQuality(viper.GetString("quality"))
	if err != nil {
		return err
	}

	svc := download.NewService(nil)
	svc.SetRetries(viper.GetInt("retries"))
	svc.SetFilenameTemplate(viper.GetString("template"))
	svc.SetFFmpegLocation(viper.GetString("ffmpeg-location"))
	svc.SetFormatFallback(viper.GetBool("fallback"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return downloadAll(ctx, svc, args, quality, viper.GetString("output"), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// downloadAll runs the URLs one after another, printing saved paths to out and
// progress to errOut. Cancelling ctx stops the active download.
func downloadAll(ctx context.Context, svc download.Downloader, urls []string, quality model.Quality, outputDir string, out, errOut io.Writer) error {
	printer := newProgressPrinter(errOut)
	svc.SetUpdateCallback(printer.update)

	failed := 0
	for _, url := range urls {
		if ctx.Err() != nil {
			return errInterrupted
		}

		if _, err := svc.Start(url, quality, outputDir); err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", url, err)
			failed++
			continue
		}
		waitOrStop(ctx, svc, errOut)

		task, _ := svc.Current()
		switch task.Status {
		case model.TaskStatusCompleted:
			fmt.Fprintln(out, task.OutputPath)
		case model.TaskStatusStopped:
			return errInterrupted
		default:
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d download(s) failed", failed, len(urls))
	}
	return nil
}

// waitOrStop waits for the started download, stopping it once ctx is cancelled.
// The watcher starts after Start so a cancellation just before it is not lost.
func waitOrStop(ctx context.Context, svc download.Downloader, errOut io.Writer) {
	finished := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
			if err := svc.Stop(); err != nil && !errors.Is(err, download.ErrNotRunning) {
				fmt.Fprintf(errOut, "stop: %v\n", err)
			}
		case <-finished:
		}
	}()

	svc.Wait()
	close(finished)
	<-stopped
}

// progressPrinter renders task snapshots as terminal lines
type progressPrinter struct {
	w          io.Writer
	lastStatus model.TaskStatus
	lastFile   string
	inline     bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

// update is called from the download worker; snapshots arrive in order
func (p *progressPrinter) update(task model.DownloadTask) {
	if task.Status == model.TaskStatusDownloading {
		fmt.Fprintf(p.w, "\r%s", formatProgressLine(task))
		p.inline = true
	}

	if task.CurrentFile != "" && task.CurrentFile != p.lastFile {
		p.lastFile = task.CurrentFile
		p.println("done: " + task.CurrentFileName())
	}

	if task.Status == p.lastStatus {
		return
	}
	p.lastStatus = task.Status

	switch task.Status {
	case model.TaskStatusStarting:
		p.println("downloading " + task.URL)
	case model.TaskStatusPostProcessing:
		p.println("post-processing with ffmpeg")
	case model.TaskStatusStopping:
		p.println("stopping")
	case model.TaskStatusStopped:
		p.println("stopped")
	case model.TaskStatusCompleted:
		line := fmt.Sprintf("completed: %s (by %s)", task.GetDisplayTitle(), task.Uploader)
		if task.FileSize > 0 {
			line += ", " + humanize.Bytes(uint64(task.FileSize))
		}
		p.println(line)
	case model.TaskStatusError:
		p.println("error: " + task.LastError)
	}
}

// println ends an inline progress line before writing msg
func (p *progressPrinter) println(msg string) {
	if p.inline {
		fmt.Fprintln(p.w)
		p.inline = false
	}
	fmt.Fprintln(p.w, msg)
}

// formatProgressLine renders percent, size, speed and ETA for a downloading task
func formatProgressLine(task model.DownloadTask) string {
	var parts []string
	if task.HasKnownTotal() {
		parts = append(parts, fmt.Sprintf("%5.1f%%", task.Percent))
		parts = append(parts, fmt.Sprintf("%s / %s", humanize.Bytes(uint64(task.DownloadedBytes)), humanize.Bytes(uint64(task.TotalBytes))))
	} else {
		parts = append(parts, humanize.Bytes(uint64(task.DownloadedBytes)))
	}
	if task.Speed > 0 {
		parts = append(parts, humanize.Bytes(uint64(task.Speed))+"/s")
	}
	if task.ETASec > 0 {
		parts = append(parts, "ETA "+task.GetETAString())
	}
	return strings.Join(parts, "  ")
}
