package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/anuvad/internal/convert"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Translate a local subtitle file",
	Long: `Translate an existing SRT or VTT subtitle file without touching YouTube.

The file is parsed, every entry is translated in batches, and the full
document set is written to the output directory: a bilingual ASS file, a
translation-only SRT, an original-only SRT, and a bilingual SRT.

Examples:
  anuvad translate lecture.srt
  anuvad translate lecture.vtt --target-language ja
  anuvad translate lecture.srt --provider anthropic --model claude-haiku-4-5`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	addProviderFlags(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}
	ext := strings.ToLower(filepath.Ext(subtitlePath))
	if ext != ".srt" && ext != ".vtt" {
		return fmt.Errorf("unsupported subtitle format %q: use .srt or .vtt", ext)
	}

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

	result, err := converter.TranslateFile(ctx, subtitlePath, convert.Options{})
	if err != nil {
		return err
	}

	fmt.Printf("Subtitles translated successfully: %s\n", result.Title)
	for _, path := range result.SubtitlePaths {
		absPath, _ := filepath.Abs(path)
		fmt.Printf("  %s\n", absPath)
	}
	fmt.Printf("  Entries: %d\n", len(result.Transcript.Entries))
	fmt.Printf("  Target language: %s\n", cfg.TargetLanguage)

	return nil
}
