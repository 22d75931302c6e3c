package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytget/ytgrab/internal/media"
)

var ffmpegCmd = &cobra.Command{
	Use:   "ffmpeg",
	Short: "Check whether FFmpeg is available",
	Long: `ffmpeg runs "ffmpeg -version" from the configured location or PATH.
The merged and mp3 presets need it; best, 720p and 480p do not.`,
	RunE: runFFmpeg,
}

func init() {
	rootCmd.AddCommand(ffmpegCmd)
}

func runFFmpeg(cmd *cobra.Command, args []string) error {
	status := media.CheckFFmpeg(cmd.Context(), viper.GetString("ffmpeg-location"))
	out := cmd.OutOrStdout()

	if !status.Installed {
		fmt.Fprintln(out, "FFmpeg missing")
		if status.Err != nil {
			fmt.Fprintf(out, "  %v\n", status.Err)
		}
		fmt.Fprintln(out, "  install: winget install FFmpeg | choco install ffmpeg | brew install ffmpeg | apt install ffmpeg")
		fmt.Fprintln(out, "  or run: ytgrab install --ffmpeg")
		return errors.New("ffmpeg not found")
	}

	fmt.Fprintf(out, "FFmpeg installed: %s (version %s)\n", status.Path, status.Version)
	return nil
}
