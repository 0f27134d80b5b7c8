package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mgpai22/anuvad/internal/convert"
	"github.com/spf13/cobra"
)

var audioCmd = &cobra.Command{
	Use:   "audio [youtube_url]",
	Short: "Extract the audio of a YouTube video as MP3",
	Long: `Download only the audio track of a YouTube video and save it as
<title>.mp3 in the output directory. No transcription or translation
happens; no API key is needed.

Examples:
  anuvad audio https://youtube.com/watch?v=abc123
  anuvad audio https://youtube.com/watch?v=abc123 --config podcast.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAudio,
}

func init() {
	rootCmd.AddCommand(audioCmd)
}

func runAudio(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	converter, err := convert.New(cfg, logger, convert.Deps{})
	if err != nil {
		return err
	}

	result, err := converter.ExtractAudio(ctx, url, convert.Options{})
	if err != nil {
		if errors.Is(err, convert.ErrDurationExceeded) {
			return fmt.Errorf("%w: raise max_duration in the config to allow longer videos", err)
		}
		return err
	}

	absOutput, _ := filepath.Abs(result.AudioPath)
	fmt.Printf("Audio extracted successfully: %s\n", absOutput)

	return nil
}
