package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/ytgrab/internal/download"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install yt-dlp (and optionally FFmpeg) for ytgrab",
	Long: `install downloads yt-dlp into the local cache when it is not on PATH.
With --ffmpeg it also fetches an FFmpeg build where one is available.`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().Bool("ffmpeg", false, "also install ffmpeg")

	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	path, err := download.InstallYTDLP(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "yt-dlp: %s\n", path)

	withFFmpeg, _ := cmd.Flags().GetBool("ffmpeg")
	if !withFFmpeg {
		return nil
	}

	path, err = download.InstallFFmpeg(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ffmpeg: %s\n", path)
	fmt.Fprintf(out, "pass --ffmpeg-location %s to use it\n", path)
	return nil
}
