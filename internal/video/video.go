package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/anuvad/internal/ffmpeg"
	"github.com/mgpai22/anuvad/internal/subtitle"
)

// how the subtitle ends up in the output video
type EmbedMode string

const (
	EmbedModeSoft EmbedMode = "soft" // separate track the player can toggle
	EmbedModeHard EmbedMode = "hard" // burned into the frames
)

// options for a single embed run
type EmbedOptions struct {
	VideoPath    string
	SubtitlePath string
	OutputPath   string
	Mode         EmbedMode
	Language     string         // ISO 639-2 tag for the soft subtitle track
	Style        subtitle.Style // burn-in styling for srt subtitles
}

// Embedder attaches a subtitle file to a video
type Embedder interface {
	Embed(ctx context.Context, opts EmbedOptions) error
}

// Embedder backed by ffmpeg
type FFmpegEmbedder struct{}

func NewEmbedder() *FFmpegEmbedder {
	return &FFmpegEmbedder{}
}

func (e *FFmpegEmbedder) Embed(ctx context.Context, opts EmbedOptions) error {
	if _, err := os.Stat(opts.VideoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", opts.VideoPath)
	}
	if _, err := os.Stat(opts.SubtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", opts.SubtitlePath)
	}

	if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	if opts.Mode == EmbedModeHard {
		return burnIn(ffmpegPath, opts)
	}
	return softMux(ffmpegPath, opts)
}

// remuxes the video with the subtitle attached as a mov_text track,
// existing streams copied untouched
func softMux(ffmpegPath string, opts EmbedOptions) error {
	kwargs := ffmpeg.KwArgs{
		"c":   "copy",
		"c:s": "mov_text",
		"y":   "",
	}
	if opts.Language != "" {
		kwargs["metadata:s:s:0"] = "language=" + opts.Language
	}

	streams := []*ffmpeg.Stream{
		ffmpeg.Input(opts.VideoPath),
		ffmpeg.Input(opts.SubtitlePath),
	}

	err := ffmpeg.Output(streams, opts.OutputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("subtitle mux failed: %w", err)
	}
	return nil
}

// re-encodes the video with the subtitle drawn into every frame
func burnIn(ffmpegPath string, opts EmbedOptions) error {
	kwargs := ffmpeg.KwArgs{
		"vf":     subtitleFilter(opts.SubtitlePath, opts.Style),
		"c:v":    "libx264",
		"preset": "medium",
		"crf":    "23",
		"c:a":    "aac",
		"b:a":    "128k",
		"y":      "",
	}

	err := ffmpeg.Input(opts.VideoPath).
		Output(opts.OutputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("subtitle burn-in failed: %w", err)
	}
	return nil
}

// ass files carry their own styling, srt files take an inline
// force_style override
func subtitleFilter(subtitlePath string, style subtitle.Style) string {
	if strings.EqualFold(filepath.Ext(subtitlePath), ".ass") {
		return fmt.Sprintf("ass='%s'", escapeFilterPath(subtitlePath))
	}
	return fmt.Sprintf(
		"subtitles='%s':force_style='%s'",
		escapeFilterPath(subtitlePath),
		forceStyle(style),
	)
}

func forceStyle(style subtitle.Style) string {
	if style.FontName == "" {
		style = subtitle.DefaultStyle()
	}
	return fmt.Sprintf(
		"FontName=%s,FontSize=%d,PrimaryColour=%s,OutlineColour=%s,Outline=%d,Shadow=1,Alignment=2",
		style.FontName,
		style.FontSize,
		style.PrimaryColor,
		style.OutlineColor,
		style.OutlineWidth,
	)
}

// escapes a path for use inside an ffmpeg filter expression
func escapeFilterPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = strings.ReplaceAll(abs, "\\", "/")
	abs = strings.ReplaceAll(abs, ":", "\\:")
	abs = strings.ReplaceAll(abs, "'", "\\'")
	return abs
}
