package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgpai22/anuvad/internal/convert"
	"github.com/mgpai22/anuvad/internal/video"
	"github.com/mgpai22/anuvad/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Convert every YouTube URL dropped into a directory",
	Long: `Watch a directory and convert each .txt or .url file dropped into it.

A drop file holds a YouTube URL on its own line (Windows .url internet
shortcuts work too). Each file triggers a full conversion; processed
files are renamed *.done or *.failed. Conversions run concurrently up
to the configured limit.

Examples:
  anuvad watch downloads/
  anuvad watch downloads/ --mode hard --concurrency 1
  anuvad watch downloads/ --track translation`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().
		StringP("quality", "q", "", "Video quality (e.g., 480p, 720p, 1080p, best; default from config)")
	watchCmd.Flags().
		StringP("mode", "m", "soft", "Subtitle embedding mode (soft, hard)")
	watchCmd.Flags().
		StringP("track", "t", "bilingual", "Subtitle track to embed (bilingual, translation, original)")
	watchCmd.Flags().
		IntP("concurrency", "c", 0, "Concurrent conversions (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	quality, _ := cmd.Flags().GetString("quality")
	mode, _ := cmd.Flags().GetString("mode")
	track, _ := cmd.Flags().GetString("track")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

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
	if concurrency <= 0 {
		concurrency = cfg.WatchConcurrency
	}

	converter, err := convert.New(cfg, logger, convert.Deps{})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}

	handler := func(ctx context.Context, url string) error {
		_, err := converter.Convert(ctx, url, convert.Options{
			Mode:    video.EmbedMode(mode),
			Track:   convert.Track(track),
			Quality: quality,
		})
		return err
	}

	watcher, err := watch.New(dir, handler, logger, concurrency)
	if err != nil {
		return err
	}
	defer watcher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Start(ctx)
	}()

	fmt.Printf("Watching %s for URL drop files (Ctrl+C to stop)\n", dir)

	select {
	case <-sigChan:
		logger.Infow("Shutdown signal received")
		cancel()
		<-errChan
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	return nil
}
