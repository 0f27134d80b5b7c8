package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/anuvad/internal/convert"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [youtube_url]",
	Short: "Export subtitle files for a YouTube video without the video",
	Long: `Produce the subtitle documents for a YouTube video without downloading
the video stream.

Published captions are preferred; when none are usable only the audio
track is fetched and transcribed. The output directory receives a
bilingual ASS file, a translation-only SRT, an original-only SRT, and a
bilingual SRT.

Examples:
  anuvad export https://youtube.com/watch?v=abc123
  anuvad export https://youtube.com/watch?v=abc123 --target-language ja
  anuvad export https://youtube.com/watch?v=abc123 --keep-temp`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		Bool("keep-temp", false, "Keep the per-run temp directory after the run")
	addProviderFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx := context.Background()

	keepTemp, _ := cmd.Flags().GetBool("keep-temp")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyProviderFlags(cmd, cfg); err != nil {
		return err
	}

	converter, err := convert.New(cfg, logger, convert.Deps{})
	if err != nil {
		return err
	}

	result, err := converter.ExportSubtitles(ctx, url, convert.Options{KeepTemp: keepTemp})
	if err != nil {
		if errors.Is(err, convert.ErrDurationExceeded) {
			return fmt.Errorf("%w: raise max_duration in the config to allow longer videos", err)
		}
		return err
	}

	fmt.Printf("Subtitles exported successfully: %s\n", result.Title)
	for _, path := range result.SubtitlePaths {
		absPath, _ := filepath.Abs(path)
		fmt.Printf("  %s\n", absPath)
	}

	return nil
}
