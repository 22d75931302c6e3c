// Package main is the entry point for the ytgrab command line downloader.
// It drives the same download service as the desktop app without a window.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the ytgrab CLI.
var rootCmd = &cobra.Command{
	Use:   "ytgrab",
	Short: "Download YouTube video or audio through yt-dlp",
	Long: `ytgrab downloads YouTube video or audio by delegating extraction,
format selection and muxing to the yt-dlp binary and FFmpeg.

Each operation is a subcommand: download, ffmpeg, install and version.
Defaults can be set in ytgrab.yaml or through YTGRAB_* environment variables.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ytgrab.yaml or ~/.config/ytgrab/config.yaml)")
	rootCmd.PersistentFlags().String("ffmpeg-location", "", "ffmpeg binary or directory (default: PATH)")
	_ = viper.BindPFlag("ffmpeg-location", rootCmd.PersistentFlags().Lookup("ffmpeg-location"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ytgrab")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ytgrab"))
		}
	}

	viper.SetEnvPrefix("YTGRAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
