package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/anuvad/internal/convert"
	"github.com/mgpai22/anuvad/internal/video"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [youtube_url]",
	Short: "Convert a YouTube video into a subtitled video",
	Long: `Download a YouTube video, obtain a transcript, translate it, and embed
the subtitles into the video.

Published captions are used when YouTube has them; otherwise the audio is
transcribed with AI. The translated transcript is written as bilingual ASS
plus per-language SRT files, and the selected track is embedded into
<title>_subtitled.mp4 in the output directory.

Soft mode adds a subtitle track the player can toggle; hard mode burns the
subtitles into the frames (slower, re-encodes).

Examples:
  anuvad convert https://youtube.com/watch?v=abc123
  anuvad convert https://youtube.com/watch?v=abc123 --quality 1080p --mode hard
  anuvad convert https://youtube.com/watch?v=abc123 --track translation
  anuvad convert https://youtube.com/watch?v=abc123 --provider openai --model gpt-5-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("quality", "q", "", "Video quality (e.g., 480p, 720p, 1080p, best; default from config)")
	convertCmd.Flags().
		StringP("mode", "m", "soft", "Subtitle embedding mode (soft, hard)")
	convertCmd.Flags().
		StringP("track", "t", "bilingual", "Subtitle track to embed (bilingual, translation, original)")
	convertCmd.Flags().
		Bool("keep-temp", false, "Keep the per-run temp directory after the run")
	addProviderFlags(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx := context.Background()

	quality, _ := cmd.Flags().GetString("quality")
	mode, _ := cmd.Flags().GetString("mode")
	track, _ := cmd.Flags().GetString("track")
	keepTemp, _ := cmd.Flags().GetBool("keep-temp")

	if quality != "" && !isValidQuality(quality) {
		return fmt.Errorf("invalid quality %q: use best or a height like 720p", quality)
	}
	if !isValidMode(mode) {
		return fmt.Errorf("invalid mode %q: use soft or hard", mode)
	}
	if !isValidTrack(track) {
		return fmt.Errorf("invalid track %q: use bilingual, translation, or original", track)
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

	result, err := converter.Convert(ctx, url, convert.Options{
		Mode:     video.EmbedMode(mode),
		Track:    convert.Track(track),
		Quality:  quality,
		KeepTemp: keepTemp,
	})
	if err != nil {
		if errors.Is(err, convert.ErrDurationExceeded) {
			return fmt.Errorf("%w: raise max_duration in the config to allow longer videos", err)
		}
		return err
	}

	absOutput, _ := filepath.Abs(result.VideoPath)
	fmt.Printf("Video converted successfully: %s\n", absOutput)
	for _, path := range result.SubtitlePaths {
		fmt.Printf("  Subtitles: %s\n", path)
	}

	return nil
}
