package download

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mgpai22/anuvad/internal/executor"
	ffmpegbin "github.com/mgpai22/anuvad/internal/ffmpeg"
	"github.com/mgpai22/anuvad/internal/logging"
)

const (
	// mp4 container preferred so the soft mux can stream copy
	bestVideoFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	bestAudioFormat = "bestaudio[ext=m4a]/bestaudio"
)

// metadata for a single video
type VideoInfo struct {
	ID            string
	Title         string
	Duration      float64 // seconds
	Uploader      string
	Description   string
	Subtitles     []string // language codes of creator captions
	AutoSubtitles []string // language codes of auto-generated captions
}

// subset of yt-dlp --dump-json output
type rawVideoInfo struct {
	ID                string                     `json:"id"`
	Title             string                     `json:"title"`
	Duration          float64                    `json:"duration"`
	Uploader          string                     `json:"uploader"`
	Description       string                     `json:"description"`
	Subtitles         map[string]json.RawMessage `json:"subtitles"`
	AutomaticCaptions map[string]json.RawMessage `json:"automatic_captions"`
}

// Downloader shells out to yt-dlp for metadata, video, captions and
// audio
type Downloader struct {
	exec   executor.Executor
	binary string
	logger *logging.Logger
}

// New resolves the yt-dlp binary and wires it to the given executor
func New(exec executor.Executor, logger *logging.Logger) (*Downloader, error) {
	binary, err := ffmpegbin.YtDlpPath()
	if err != nil {
		return nil, err
	}
	return NewWithBinary(exec, binary, logger), nil
}

// NewWithBinary skips resolution, for callers that manage the binary
// themselves
func NewWithBinary(exec executor.Executor, binary string, logger *logging.Logger) *Downloader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Downloader{
		exec:   exec,
		binary: binary,
		logger: logger,
	}
}

// FetchInfo returns video metadata without downloading anything
func (d *Downloader) FetchInfo(ctx context.Context, url string) (*VideoInfo, error) {
	out, err := d.exec.Execute(ctx, d.binary,
		"--dump-json",
		"--no-download",
		"--no-playlist",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video info: %w", err)
	}

	return parseVideoInfo(out)
}

func parseVideoInfo(out string) (*VideoInfo, error) {
	var raw rawVideoInfo
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse video info: %w", err)
	}

	return &VideoInfo{
		ID:            raw.ID,
		Title:         raw.Title,
		Duration:      raw.Duration,
		Uploader:      raw.Uploader,
		Description:   raw.Description,
		Subtitles:     sortedKeys(raw.Subtitles),
		AutoSubtitles: sortedKeys(raw.AutomaticCaptions),
	}, nil
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// format ladder capped at the requested height, falling through to the
// overall best
func videoFormat(quality string) string {
	if quality == "" || quality == "best" {
		return bestVideoFormat
	}
	height := strings.TrimSuffix(quality, "p")
	return fmt.Sprintf(
		"bestvideo[height<=%s][ext=mp4]+bestaudio[ext=m4a]/best[height<=%s][ext=mp4]/best",
		height, height,
	)
}

// DownloadVideo fetches the video into destPath as mp4. When the
// height-capped format has no match it retries once without the cap.
func (d *Downloader) DownloadVideo(ctx context.Context, url, destPath, quality string) error {
	args := []string{
		"-f", videoFormat(quality),
		"-o", destPath,
		"--merge-output-format", "mp4",
		"--no-playlist",
		url,
	}

	if _, err := d.exec.Execute(ctx, d.binary, args...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.logger.Warnw("Requested quality unavailable, retrying with best",
			"quality", quality,
			"error", err,
		)

		retryArgs := []string{
			"-f", bestVideoFormat,
			"-o", destPath,
			"--merge-output-format", "mp4",
			"--no-playlist",
			url,
		}
		if _, err := d.exec.Execute(ctx, d.binary, retryArgs...); err != nil {
			return fmt.Errorf("failed to download video: %w", err)
		}
	}

	if !fileExists(destPath) {
		return fmt.Errorf("download finished but video file missing: %s", destPath)
	}
	return nil
}

// DownloadSubtitles fetches creator or auto-generated captions for the
// first language that yields a file. Returns an empty path when the
// video has no usable captions.
func (d *Downloader) DownloadSubtitles(ctx context.Context, url, basePath string, languages []string) (string, error) {
	if len(languages) == 0 {
		languages = []string{"en", "en-US", "en-GB"}
	}

	for _, lang := range languages {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		args := []string{
			"--write-subs",
			"--write-auto-subs",
			"--sub-langs", lang,
			"--sub-format", "srt/best",
			"--skip-download",
			"--no-playlist",
			"-o", basePath,
			url,
		}
		if _, err := d.exec.Execute(ctx, d.binary, args...); err != nil {
			d.logger.Debugw("Subtitle download attempt failed",
				"language", lang,
				"error", err,
			)
			continue
		}

		if path := findSubtitleFile(basePath, lang); path != "" {
			return path, nil
		}
	}

	return "", nil
}

// looks for the subtitle file yt-dlp wrote next to basePath, srt
// preferred over vtt
func findSubtitleFile(basePath, lang string) string {
	candidates := []string{
		basePath + "." + lang + ".srt",
		basePath + ".srt",
		basePath + "." + lang + ".vtt",
		basePath + ".vtt",
	}
	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}

	// language variants like en-orig land under names the exact
	// candidates miss
	dir := filepath.Dir(basePath)
	prefix := filepath.Base(basePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix+".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".srt" || ext == ".vtt" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}

	sort.Slice(names, func(i, j int) bool {
		ei := strings.ToLower(filepath.Ext(names[i]))
		ej := strings.ToLower(filepath.Ext(names[j]))
		if ei != ej {
			return ei == ".srt"
		}
		return names[i] < names[j]
	})

	return filepath.Join(dir, names[0])
}

// DownloadAudio grabs the best audio stream. With mp3 true the audio
// is extracted and re-encoded, otherwise the native m4a stream is
// kept as-is.
func (d *Downloader) DownloadAudio(ctx context.Context, url, destPath string, mp3 bool) (string, error) {
	var args []string
	if mp3 {
		args = []string{
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "0",
			"--no-playlist",
			"-o", destPath,
			url,
		}
	} else {
		args = []string{
			"-f", bestAudioFormat,
			"--no-playlist",
			"-o", destPath,
			url,
		}
	}

	if _, err := d.exec.Execute(ctx, d.binary, args...); err != nil {
		return "", fmt.Errorf("failed to download audio: %w", err)
	}

	if fileExists(destPath) {
		return destPath, nil
	}

	// yt-dlp swaps the extension when extracting
	if mp3 {
		alt := strings.TrimSuffix(destPath, filepath.Ext(destPath)) + ".mp3"
		if fileExists(alt) {
			return alt, nil
		}
	}

	return "", fmt.Errorf("audio download finished but file missing: %s", destPath)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
