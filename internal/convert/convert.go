package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/anuvad/internal/audio"
	"github.com/mgpai22/anuvad/internal/config"
	"github.com/mgpai22/anuvad/internal/download"
	"github.com/mgpai22/anuvad/internal/executor"
	"github.com/mgpai22/anuvad/internal/logging"
	"github.com/mgpai22/anuvad/internal/subtitle"
	"github.com/mgpai22/anuvad/internal/transcribe"
	"github.com/mgpai22/anuvad/internal/translate"
	"github.com/mgpai22/anuvad/internal/video"
)

// ErrDurationExceeded marks a video longer than the configured
// max_duration. Callers can match it with errors.Is.
var ErrDurationExceeded = errors.New("video exceeds maximum duration")

// Downloader covers the yt-dlp operations a conversion needs.
type Downloader interface {
	FetchInfo(ctx context.Context, url string) (*download.VideoInfo, error)
	DownloadVideo(ctx context.Context, url, destPath, quality string) error
	DownloadSubtitles(ctx context.Context, url, basePath string, languages []string) (string, error)
	DownloadAudio(ctx context.Context, url, destPath string, mp3 bool) (string, error)
}

// AudioProcessor covers the ffmpeg work between download and
// transcription.
type AudioProcessor interface {
	Extract(ctx context.Context, videoPath, outputPath string) error
	Duration(path string) (float64, error)
	Chunk(ctx context.Context, audioPath string, chunkSeconds float64, outputDir string) ([]audio.ChunkInfo, error)
}

type ffmpegAudio struct{}

func (ffmpegAudio) Extract(ctx context.Context, videoPath, outputPath string) error {
	return audio.ExtractAudio(ctx, videoPath, outputPath)
}

func (ffmpegAudio) Duration(path string) (float64, error) {
	return audio.GetDuration(path)
}

func (ffmpegAudio) Chunk(ctx context.Context, audioPath string, chunkSeconds float64, outputDir string) ([]audio.ChunkInfo, error) {
	return audio.ChunkAudio(ctx, audioPath, chunkSeconds, outputDir)
}

// Track selects which subtitle document gets embedded into the video.
type Track string

const (
	TrackBilingual   Track = "bilingual"   // stacked original and translation, ass
	TrackTranslation Track = "translation" // translation only, srt
	TrackOriginal    Track = "original"    // original only, srt
)

// Options tune a single run. The zero value means soft mux of the
// bilingual track at the configured quality, with the temp directory
// removed afterwards.
type Options struct {
	Mode     video.EmbedMode
	Track    Track
	Quality  string // overrides the configured video quality
	KeepTemp bool
	Progress func(stage string, percent int)
}

// Result lists what a run produced.
type Result struct {
	Title         string
	VideoPath     string // empty for subtitle-only runs
	AudioPath     string // set by ExtractAudio
	SubtitlePaths []string
	Transcript    *subtitle.Transcript
}

// Deps are the collaborators a Converter drives. Nil fields are filled
// with the real implementations, so tests only set what they fake.
type Deps struct {
	Downloader  Downloader
	Embedder    video.Embedder
	Audio       AudioProcessor
	Transcriber func(ctx context.Context) (transcribe.Transcriber, error)
	Translator  func(ctx context.Context) (translate.Translator, error)
}

// Converter runs the download, transcribe, translate, and embed
// pipeline for one URL at a time. It is safe for concurrent use as
// long as runs write distinct titles.
type Converter struct {
	cfg    *config.Config
	logger *logging.Logger
	deps   Deps
}

func New(cfg *config.Config, logger *logging.Logger, deps Deps) (*Converter, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if deps.Downloader == nil {
		d, err := download.New(executor.New(), logger)
		if err != nil {
			return nil, err
		}
		deps.Downloader = d
	}
	if deps.Embedder == nil {
		deps.Embedder = video.NewEmbedder()
	}
	if deps.Audio == nil {
		deps.Audio = ffmpegAudio{}
	}
	if deps.Transcriber == nil {
		deps.Transcriber = func(ctx context.Context) (transcribe.Transcriber, error) {
			// the transcribe model only carries over when both stages
			// use the same provider
			model := ""
			if cfg.TranscribeProvider == cfg.Provider {
				model = cfg.Model
			}
			return transcribe.Factory(
				ctx,
				transcribe.Provider(cfg.TranscribeProvider),
				cfg.ResolveAPIKey(cfg.TranscribeProvider),
				transcribe.Options{
					SourceLanguage: cfg.SourceLanguage,
					TargetLanguage: cfg.TargetLanguage,
					Model:          model,
				},
			)
		}
	}
	if deps.Translator == nil {
		deps.Translator = func(ctx context.Context) (translate.Translator, error) {
			return translate.Factory(
				ctx,
				translate.Provider(cfg.Provider),
				cfg.ResolveAPIKey(cfg.Provider),
				translate.Options{
					SourceLanguage: cfg.SourceLanguage,
					TargetLanguage: cfg.TargetLanguage,
					Model:          cfg.Model,
				},
			)
		}
	}
	return &Converter{cfg: cfg, logger: logger, deps: deps}, nil
}

// Convert runs the full pipeline for one video URL: download, obtain
// subtitles, translate if needed, write the subtitle documents, and
// embed the requested track into the video.
func (c *Converter) Convert(ctx context.Context, url string, opts Options) (*Result, error) {
	if opts.Mode == "" {
		opts.Mode = video.EmbedModeSoft
	}
	if opts.Track == "" {
		opts.Track = TrackBilingual
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(string, int) {}
	}

	progress("fetching video info", 0)
	info, err := c.deps.Downloader.FetchInfo(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.checkDuration(info); err != nil {
		return nil, err
	}

	title := sanitizeTitle(info.Title)
	c.logger.Infow("Starting conversion", "title", title, "duration", info.Duration)

	tempDir, cleanup, err := c.tempDir(opts.KeepTemp)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	quality := c.cfg.VideoQuality
	if opts.Quality != "" {
		quality = opts.Quality
	}

	progress("downloading video", 5)
	videoPath := filepath.Join(tempDir, title+".mp4")
	if err := c.deps.Downloader.DownloadVideo(ctx, url, videoPath, quality); err != nil {
		return nil, err
	}

	progress("downloading captions", 30)
	transcript, err := c.obtainTranscript(ctx, url, videoPath, tempDir, title, progress)
	if err != nil {
		return nil, err
	}

	if !transcript.Translated() {
		progress("translating", 60)
		if err := c.translateTranscript(ctx, transcript); err != nil {
			return nil, err
		}
	}

	progress("writing subtitle files", 80)
	paths, embedPath, err := c.renderSubtitles(transcript, title, opts.Track)
	if err != nil {
		return nil, err
	}

	progress("embedding subtitles", 85)
	trackLang := c.cfg.TargetLanguage
	if opts.Track == TrackOriginal {
		trackLang = c.cfg.SourceLanguage
	}
	outputPath := filepath.Join(c.cfg.OutputDir, title+"_subtitled.mp4")
	embed := video.EmbedOptions{
		VideoPath:    videoPath,
		SubtitlePath: embedPath,
		OutputPath:   outputPath,
		Mode:         opts.Mode,
		Language:     langTag(trackLang),
		Style:        subtitleStyle(c.cfg.Style),
	}
	if err := c.deps.Embedder.Embed(ctx, embed); err != nil {
		return nil, err
	}

	progress("done", 100)
	c.logger.Infow("Conversion finished", "video", outputPath)

	return &Result{
		Title:         title,
		VideoPath:     outputPath,
		SubtitlePaths: paths,
		Transcript:    transcript,
	}, nil
}

// ExportSubtitles produces the subtitle documents for a URL without
// downloading the video stream. When no usable captions exist the
// audio track alone is fetched for transcription.
func (c *Converter) ExportSubtitles(ctx context.Context, url string, opts Options) (*Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string, int) {}
	}

	progress("fetching video info", 0)
	info, err := c.deps.Downloader.FetchInfo(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.checkDuration(info); err != nil {
		return nil, err
	}

	title := sanitizeTitle(info.Title)

	tempDir, cleanup, err := c.tempDir(opts.KeepTemp)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	progress("downloading captions", 10)
	base := filepath.Join(tempDir, title)
	captionPath, err := c.deps.Downloader.DownloadSubtitles(ctx, url, base, c.cfg.SubtitleLanguages)
	if err != nil {
		return nil, err
	}

	transcript := c.parseCaptions(captionPath)
	if transcript == nil {
		progress("transcribing audio", 30)
		audioPath, err := c.deps.Downloader.DownloadAudio(ctx, url, filepath.Join(tempDir, title+".m4a"), false)
		if err != nil {
			return nil, err
		}
		transcript, err = c.transcribeAudio(ctx, audioPath, tempDir)
		if err != nil {
			return nil, err
		}
	}

	if !transcript.Translated() {
		progress("translating", 60)
		if err := c.translateTranscript(ctx, transcript); err != nil {
			return nil, err
		}
	}

	progress("writing subtitle files", 90)
	paths, err := c.renderAllSubtitles(transcript, title)
	if err != nil {
		return nil, err
	}

	progress("done", 100)
	return &Result{Title: title, SubtitlePaths: paths, Transcript: transcript}, nil
}

// ExtractAudio downloads only the audio track as an mp3 in the output
// directory.
func (c *Converter) ExtractAudio(ctx context.Context, url string, opts Options) (*Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string, int) {}
	}

	progress("fetching video info", 0)
	info, err := c.deps.Downloader.FetchInfo(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.checkDuration(info); err != nil {
		return nil, err
	}

	title := sanitizeTitle(info.Title)
	if err := os.MkdirAll(c.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	progress("downloading audio", 10)
	dest := filepath.Join(c.cfg.OutputDir, title+".mp3")
	audioPath, err := c.deps.Downloader.DownloadAudio(ctx, url, dest, true)
	if err != nil {
		return nil, err
	}

	progress("done", 100)
	c.logger.Infow("Audio saved", "path", audioPath)
	return &Result{Title: title, AudioPath: audioPath}, nil
}

// TranslateFile translates a local subtitle file and writes the
// bilingual documents to the output directory.
func (c *Converter) TranslateFile(ctx context.Context, path string, opts Options) (*Result, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string, int) {}
	}

	transcript, err := subtitle.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if len(transcript.Entries) == 0 {
		return nil, fmt.Errorf("no subtitle entries in %s", path)
	}
	transcript.SourceLanguage = c.cfg.SourceLanguage
	transcript.TargetLanguage = c.cfg.TargetLanguage

	progress("translating", 20)
	if err := c.translateTranscript(ctx, transcript); err != nil {
		return nil, err
	}

	title := sanitizeTitle(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	progress("writing subtitle files", 90)
	paths, err := c.renderAllSubtitles(transcript, title)
	if err != nil {
		return nil, err
	}

	progress("done", 100)
	return &Result{Title: title, SubtitlePaths: paths, Transcript: transcript}, nil
}

func (c *Converter) checkDuration(info *download.VideoInfo) error {
	max := c.cfg.MaxDuration
	if max > 0 && info.Duration > float64(max) {
		return fmt.Errorf("%w: %.0fs is over the %ds limit", ErrDurationExceeded, info.Duration, max)
	}
	return nil
}

// tempDir creates a fresh per-run directory under the configured temp
// root. The returned cleanup removes it unless keep is set; removal
// failures only warn.
func (c *Converter) tempDir(keep bool) (string, func(), error) {
	if err := os.MkdirAll(c.cfg.TempDir, 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	dir, err := os.MkdirTemp(c.cfg.TempDir, "run-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() {
		if keep {
			c.logger.Infow("Keeping temp directory", "path", dir)
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			c.logger.Warnw("Failed to remove temp directory", "path", dir, "error", err)
		}
	}
	return dir, cleanup, nil
}

// obtainTranscript prefers captions published with the video and falls
// back to speech recognition when none parse.
func (c *Converter) obtainTranscript(
	ctx context.Context,
	url, videoPath, tempDir, title string,
	progress func(string, int),
) (*subtitle.Transcript, error) {
	base := filepath.Join(tempDir, title)
	captionPath, err := c.deps.Downloader.DownloadSubtitles(ctx, url, base, c.cfg.SubtitleLanguages)
	if err != nil {
		return nil, err
	}
	if transcript := c.parseCaptions(captionPath); transcript != nil {
		return transcript, nil
	}

	progress("transcribing audio", 40)
	audioPath := filepath.Join(tempDir, title+".mp3")
	if err := c.deps.Audio.Extract(ctx, videoPath, audioPath); err != nil {
		return nil, fmt.Errorf("failed to extract audio: %w", err)
	}
	return c.transcribeAudio(ctx, audioPath, tempDir)
}

// parseCaptions loads a downloaded caption file, returning nil when
// the path is empty or the file holds nothing usable.
func (c *Converter) parseCaptions(captionPath string) *subtitle.Transcript {
	if captionPath == "" {
		return nil
	}
	transcript, err := subtitle.ParseFile(captionPath)
	switch {
	case err != nil:
		c.logger.Warnw("Failed to parse downloaded captions", "path", captionPath, "error", err)
		return nil
	case len(transcript.Entries) == 0:
		c.logger.Warnw("Downloaded captions have no usable entries", "path", captionPath)
		return nil
	}
	c.logger.Infow("Using published captions", "path", captionPath, "entries", len(transcript.Entries))
	transcript.SourceLanguage = c.cfg.SourceLanguage
	transcript.TargetLanguage = c.cfg.TargetLanguage
	return transcript
}

// transcribeAudio runs speech recognition over one audio file,
// splitting it first when it is longer than the configured chunk
// length. Chunk files are removed as soon as transcription finishes.
func (c *Converter) transcribeAudio(ctx context.Context, audioPath, tempDir string) (*subtitle.Transcript, error) {
	transcriber, err := c.deps.Transcriber(ctx)
	if err != nil {
		return nil, err
	}
	defer transcriber.Close()

	duration, err := c.deps.Audio.Duration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to probe audio duration: %w", err)
	}

	chunkSeconds := float64(c.cfg.AudioChunkSeconds)
	if chunkSeconds > 0 && duration > chunkSeconds {
		c.logger.Infow("Splitting audio for transcription",
			"duration", duration,
			"chunkSeconds", chunkSeconds,
		)
		chunks, err := c.deps.Audio.Chunk(ctx, audioPath, chunkSeconds, tempDir)
		if err != nil {
			return nil, fmt.Errorf("failed to chunk audio: %w", err)
		}
		defer func() {
			if err := audio.CleanupChunks(chunks); err != nil {
				c.logger.Warnw("Failed to remove audio chunks", "error", err)
			}
		}()
		return transcribe.TranscribeChunks(ctx, transcriber, chunks)
	}

	return transcriber.Transcribe(ctx, audioPath)
}

// translateTranscript fills Translation on every entry through the
// configured provider. Entries that already carry a translation are
// left alone.
func (c *Converter) translateTranscript(ctx context.Context, transcript *subtitle.Transcript) error {
	if len(transcript.Entries) == 0 || transcript.Translated() {
		return nil
	}

	translator, err := c.deps.Translator(ctx)
	if err != nil {
		return err
	}

	batcher := translate.NewBatcher(translator, c.cfg.BatchSize, c.cfg.BatchDelay(), c.logger)
	if err := batcher.TranslateEntries(ctx, transcript.Entries); err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	if transcript.TargetLanguage == "" {
		transcript.TargetLanguage = c.cfg.TargetLanguage
	}
	return nil
}

// renderSubtitles writes the bilingual ass document plus one srt per
// language and reports which file the requested track embeds.
func (c *Converter) renderSubtitles(transcript *subtitle.Transcript, title string, track Track) ([]string, string, error) {
	if err := os.MkdirAll(c.cfg.OutputDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory: %w", err)
	}

	assPath := filepath.Join(c.cfg.OutputDir, title+"_bilingual.ass")
	if err := subtitle.WriteASS(transcript, assPath, subtitleStyle(c.cfg.Style)); err != nil {
		return nil, "", err
	}

	translationPath := filepath.Join(c.cfg.OutputDir, fmt.Sprintf("%s_%s.srt", title, c.cfg.TargetLanguage))
	if err := subtitle.WriteSRT(transcript, translationPath, false, true); err != nil {
		return nil, "", err
	}

	originalPath := filepath.Join(c.cfg.OutputDir, fmt.Sprintf("%s_%s.srt", title, c.cfg.SourceLanguage))
	if err := subtitle.WriteSRT(transcript, originalPath, true, false); err != nil {
		return nil, "", err
	}

	paths := []string{assPath, translationPath, originalPath}

	embedPath := assPath
	switch track {
	case TrackTranslation:
		embedPath = translationPath
	case TrackOriginal:
		embedPath = originalPath
	}

	return paths, embedPath, nil
}

// renderAllSubtitles adds the combined srt on top of the usual three
// documents for the subtitle-only flows.
func (c *Converter) renderAllSubtitles(transcript *subtitle.Transcript, title string) ([]string, error) {
	paths, _, err := c.renderSubtitles(transcript, title, TrackBilingual)
	if err != nil {
		return nil, err
	}
	bilingualSRT := filepath.Join(c.cfg.OutputDir, title+"_bilingual.srt")
	if err := subtitle.WriteSRT(transcript, bilingualSRT, true, true); err != nil {
		return nil, err
	}
	return append(paths, bilingualSRT), nil
}

func subtitleStyle(s config.Style) subtitle.Style {
	return subtitle.Style{
		FontName:     s.FontName,
		FontSize:     s.FontSize,
		PrimaryColor: s.PrimaryColor,
		OutlineColor: s.OutlineColor,
		OutlineWidth: s.OutlineWidth,
	}
}

const maxTitleRunes = 80

// sanitizeTitle strips characters that break filenames and keeps the
// result to a sane length. Empty titles become "video".
func sanitizeTitle(title string) string {
	replacer := strings.NewReplacer(
		"<", "_", ">", "_", ":", "_", "\"", "_",
		"/", "_", "\\", "_", "|", "_", "?", "_", "*", "_",
	)
	title = strings.TrimSpace(replacer.Replace(title))

	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = string(runes[:maxTitleRunes])
	}
	title = strings.TrimRight(title, " .")
	if title == "" {
		return "video"
	}
	return title
}

// langTag maps a BCP 47 style code to the ISO 639-2 tag mp4 players
// expect on subtitle tracks.
func langTag(code string) string {
	base := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexByte(base, '-'); i > 0 {
		base = base[:i]
	}
	switch base {
	case "zh":
		return "chi"
	case "en":
		return "eng"
	case "ja":
		return "jpn"
	case "ko":
		return "kor"
	case "fr":
		return "fra"
	case "de":
		return "deu"
	case "es":
		return "spa"
	default:
		return "und"
	}
}
