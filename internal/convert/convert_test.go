package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mgpai22/anuvad/internal/audio"
	"github.com/mgpai22/anuvad/internal/config"
	"github.com/mgpai22/anuvad/internal/download"
	"github.com/mgpai22/anuvad/internal/logging"
	"github.com/mgpai22/anuvad/internal/subtitle"
	"github.com/mgpai22/anuvad/internal/transcribe"
	"github.com/mgpai22/anuvad/internal/translate"
	"github.com/mgpai22/anuvad/internal/video"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hello world

2
00:00:04,000 --> 00:00:06,000
Second line
`

type fakeDownloader struct {
	info       *download.VideoInfo
	captionSRT string
	videoCalls int
	qualities  []string
	subCalls   int
	audioDests []string
	audioMp3   []bool
}

func (f *fakeDownloader) FetchInfo(ctx context.Context, url string) (*download.VideoInfo, error) {
	if f.info != nil {
		return f.info, nil
	}
	return &download.VideoInfo{ID: "abc123", Title: "Test Video", Duration: 120}, nil
}

func (f *fakeDownloader) DownloadVideo(ctx context.Context, url, destPath, quality string) error {
	f.videoCalls++
	f.qualities = append(f.qualities, quality)
	return os.WriteFile(destPath, []byte("video"), 0644)
}

func (f *fakeDownloader) DownloadSubtitles(ctx context.Context, url, basePath string, languages []string) (string, error) {
	f.subCalls++
	if f.captionSRT == "" {
		return "", nil
	}
	path := basePath + ".en.srt"
	if err := os.WriteFile(path, []byte(f.captionSRT), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (f *fakeDownloader) DownloadAudio(ctx context.Context, url, destPath string, mp3 bool) (string, error) {
	f.audioDests = append(f.audioDests, destPath)
	f.audioMp3 = append(f.audioMp3, mp3)
	if err := os.WriteFile(destPath, []byte("audio"), 0644); err != nil {
		return "", err
	}
	return destPath, nil
}

type fakeEmbedder struct {
	opts []video.EmbedOptions
}

func (f *fakeEmbedder) Embed(ctx context.Context, opts video.EmbedOptions) error {
	f.opts = append(f.opts, opts)
	return os.WriteFile(opts.OutputPath, []byte("subtitled"), 0644)
}

type fakeAudio struct {
	duration    float64
	extractions int
	chunked     bool
	chunks      []audio.ChunkInfo
}

func (f *fakeAudio) Extract(ctx context.Context, videoPath, outputPath string) error {
	f.extractions++
	return os.WriteFile(outputPath, []byte("mp3"), 0644)
}

func (f *fakeAudio) Duration(path string) (float64, error) {
	return f.duration, nil
}

func (f *fakeAudio) Chunk(ctx context.Context, audioPath string, chunkSeconds float64, outputDir string) ([]audio.ChunkInfo, error) {
	f.chunked = true
	return f.chunks, nil
}

type fakeTranscriber struct {
	transcript *subtitle.Transcript
	calls      int
	closed     bool
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (*subtitle.Transcript, error) {
	f.calls++
	entries := append([]subtitle.Entry(nil), f.transcript.Entries...)
	return &subtitle.Transcript{
		Entries:        entries,
		SourceLanguage: f.transcript.SourceLanguage,
		TargetLanguage: f.transcript.TargetLanguage,
	}, nil
}

func (f *fakeTranscriber) Close() error {
	f.closed = true
	return nil
}

type fakeTranslator struct {
	calls int
}

func (f *fakeTranslator) TranslateTexts(ctx context.Context, texts []string) ([]string, error) {
	f.calls++
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = "T:" + text
	}
	return out, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	root := t.TempDir()
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.TempDir = filepath.Join(root, "temp")
	return cfg
}

func noTranscriber(t *testing.T) func(ctx context.Context) (transcribe.Transcriber, error) {
	return func(ctx context.Context) (transcribe.Transcriber, error) {
		t.Fatal("transcriber should not be constructed")
		return nil, nil
	}
}

func noTranslator(t *testing.T) func(ctx context.Context) (translate.Translator, error) {
	return func(ctx context.Context) (translate.Translator, error) {
		t.Fatal("translator should not be constructed")
		return nil, nil
	}
}

func TestConvertWithPublishedCaptions(t *testing.T) {
	cfg := testConfig(t)
	dl := &fakeDownloader{captionSRT: sampleSRT}
	emb := &fakeEmbedder{}
	tr := &fakeTranslator{}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  dl,
		Embedder:    emb,
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator: func(ctx context.Context) (translate.Translator, error) {
			return tr, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	wantVideo := filepath.Join(cfg.OutputDir, "Test Video_subtitled.mp4")
	if result.VideoPath != wantVideo {
		t.Errorf("video path = %q, want %q", result.VideoPath, wantVideo)
	}
	if _, err := os.Stat(wantVideo); err != nil {
		t.Errorf("output video missing: %v", err)
	}

	wantSubs := []string{
		filepath.Join(cfg.OutputDir, "Test Video_bilingual.ass"),
		filepath.Join(cfg.OutputDir, "Test Video_zh-TW.srt"),
		filepath.Join(cfg.OutputDir, "Test Video_en.srt"),
	}
	if !reflect.DeepEqual(result.SubtitlePaths, wantSubs) {
		t.Errorf("subtitle paths = %v, want %v", result.SubtitlePaths, wantSubs)
	}
	for _, path := range wantSubs {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("subtitle file missing: %v", err)
		}
	}

	if tr.calls != 1 {
		t.Errorf("translator calls = %d, want 1", tr.calls)
	}
	for _, entry := range result.Transcript.Entries {
		if !strings.HasPrefix(entry.Translation, "T:") {
			t.Errorf("entry %d not translated: %q", entry.Index, entry.Translation)
		}
	}

	if len(emb.opts) != 1 {
		t.Fatalf("embed calls = %d, want 1", len(emb.opts))
	}
	got := emb.opts[0]
	if got.Mode != video.EmbedModeSoft {
		t.Errorf("embed mode = %q, want %q", got.Mode, video.EmbedModeSoft)
	}
	if got.SubtitlePath != wantSubs[0] {
		t.Errorf("embedded %q, want the bilingual ass", got.SubtitlePath)
	}
	if got.Language != "chi" {
		t.Errorf("track language = %q, want chi", got.Language)
	}
}

func TestConvertFallsBackToTranscription(t *testing.T) {
	cfg := testConfig(t)
	dl := &fakeDownloader{}
	fa := &fakeAudio{duration: 90}
	ft := &fakeTranscriber{
		transcript: &subtitle.Transcript{
			Entries: []subtitle.Entry{
				{Index: 1, StartTime: 0, EndTime: 2, Text: "hello", Translation: "你好"},
			},
			SourceLanguage: "en",
			TargetLanguage: "zh-TW",
		},
	}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader: dl,
		Embedder:   &fakeEmbedder{},
		Audio:      fa,
		Transcriber: func(ctx context.Context) (transcribe.Transcriber, error) {
			return ft, nil
		},
		Translator: noTranslator(t),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if fa.extractions != 1 {
		t.Errorf("audio extractions = %d, want 1", fa.extractions)
	}
	if fa.chunked {
		t.Error("short audio should not be chunked")
	}
	if ft.calls != 1 {
		t.Errorf("transcribe calls = %d, want 1", ft.calls)
	}
	if !ft.closed {
		t.Error("transcriber not closed")
	}

	assPath := filepath.Join(cfg.OutputDir, "Test Video_bilingual.ass")
	data, err := os.ReadFile(assPath)
	if err != nil {
		t.Fatalf("reading ass: %v", err)
	}
	if !strings.Contains(string(data), "你好") {
		t.Error("ass output missing the translation")
	}
	if !result.Transcript.Translated() {
		t.Error("transcript should already be translated")
	}
}

func TestConvertChunksLongAudio(t *testing.T) {
	cfg := testConfig(t)
	chunkDir := t.TempDir()
	fa := &fakeAudio{
		duration: 650,
		chunks: []audio.ChunkInfo{
			{Path: filepath.Join(chunkDir, "chunk0.mp3"), Index: 0, StartTime: 0, EndTime: 300},
			{Path: filepath.Join(chunkDir, "chunk1.mp3"), Index: 1, StartTime: 300, EndTime: 650},
		},
	}
	ft := &fakeTranscriber{
		transcript: &subtitle.Transcript{
			Entries: []subtitle.Entry{
				{Index: 1, StartTime: 1, EndTime: 3, Text: "hi", Translation: "嗨"},
			},
			SourceLanguage: "en",
			TargetLanguage: "zh-TW",
		},
	}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader: &fakeDownloader{},
		Embedder:   &fakeEmbedder{},
		Audio:      fa,
		Transcriber: func(ctx context.Context) (transcribe.Transcriber, error) {
			return ft, nil
		},
		Translator: noTranslator(t),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if !fa.chunked {
		t.Fatal("long audio should be chunked")
	}
	if ft.calls != 2 {
		t.Errorf("transcribe calls = %d, want 2", ft.calls)
	}

	entries := result.Transcript.Entries
	if len(entries) != 2 {
		t.Fatalf("merged entries = %d, want 2", len(entries))
	}
	if entries[0].StartTime != 1 || entries[0].EndTime != 3 {
		t.Errorf("first entry times = %v-%v, want 1-3", entries[0].StartTime, entries[0].EndTime)
	}
	if entries[1].StartTime != 301 || entries[1].EndTime != 303 {
		t.Errorf("second entry times = %v-%v, want 301-303", entries[1].StartTime, entries[1].EndTime)
	}
}

func TestConvertDurationExceeded(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxDuration = 3600
	dl := &fakeDownloader{
		info: &download.VideoInfo{ID: "long", Title: "Marathon", Duration: 7200},
	}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  dl,
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator:  noTranslator(t),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = conv.Convert(context.Background(), "https://example.com/watch?v=long", Options{})
	if !errors.Is(err, ErrDurationExceeded) {
		t.Fatalf("error = %v, want ErrDurationExceeded", err)
	}
	if dl.videoCalls != 0 {
		t.Errorf("video downloads = %d, want 0", dl.videoCalls)
	}
}

func TestConvertTrackSelection(t *testing.T) {
	tests := []struct {
		name       string
		track      Track
		wantSuffix string
		wantLang   string
	}{
		{"default bilingual", "", "_bilingual.ass", "chi"},
		{"translation", TrackTranslation, "_zh-TW.srt", "chi"},
		{"original", TrackOriginal, "_en.srt", "eng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			emb := &fakeEmbedder{}

			conv, err := New(cfg, logging.NewNop(), Deps{
				Downloader:  &fakeDownloader{captionSRT: sampleSRT},
				Embedder:    emb,
				Audio:       &fakeAudio{},
				Transcriber: noTranscriber(t),
				Translator: func(ctx context.Context) (translate.Translator, error) {
					return &fakeTranslator{}, nil
				},
			})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			if _, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{Track: tt.track}); err != nil {
				t.Fatalf("Convert: %v", err)
			}

			if len(emb.opts) != 1 {
				t.Fatalf("embed calls = %d, want 1", len(emb.opts))
			}
			got := emb.opts[0]
			if !strings.HasSuffix(got.SubtitlePath, tt.wantSuffix) {
				t.Errorf("embedded %q, want suffix %q", got.SubtitlePath, tt.wantSuffix)
			}
			if got.Language != tt.wantLang {
				t.Errorf("track language = %q, want %q", got.Language, tt.wantLang)
			}
		})
	}
}

func TestConvertQualityOverride(t *testing.T) {
	cfg := testConfig(t)
	dl := &fakeDownloader{captionSRT: sampleSRT}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  dl,
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator: func(ctx context.Context) (translate.Translator, error) {
			return &fakeTranslator{}, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{Quality: "1080p"}); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if _, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{}); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := []string{"1080p", cfg.VideoQuality}
	if !reflect.DeepEqual(dl.qualities, want) {
		t.Errorf("qualities = %v, want %v", dl.qualities, want)
	}
}

func TestConvertCleansTempDir(t *testing.T) {
	cfg := testConfig(t)
	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  &fakeDownloader{captionSRT: sampleSRT},
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator: func(ctx context.Context) (translate.Translator, error) {
			return &fakeTranslator{}, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{}); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	entries, err := os.ReadDir(cfg.TempDir)
	if err != nil {
		t.Fatalf("reading temp root: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp root not cleaned, %d entries remain", len(entries))
	}
}

func TestConvertKeepTemp(t *testing.T) {
	cfg := testConfig(t)
	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  &fakeDownloader{captionSRT: sampleSRT},
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator: func(ctx context.Context) (translate.Translator, error) {
			return &fakeTranslator{}, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := conv.Convert(context.Background(), "https://example.com/watch?v=abc123", Options{KeepTemp: true}); err != nil {
		t.Fatalf("Convert: %v", err)
	}

	entries, err := os.ReadDir(cfg.TempDir)
	if err != nil {
		t.Fatalf("reading temp root: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "run-") {
		t.Errorf("expected one kept run directory, got %v", entries)
	}
}

func TestExportSubtitlesWritesFourDocuments(t *testing.T) {
	cfg := testConfig(t)
	dl := &fakeDownloader{captionSRT: sampleSRT}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  dl,
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator: func(ctx context.Context) (translate.Translator, error) {
			return &fakeTranslator{}, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := conv.ExportSubtitles(context.Background(), "https://example.com/watch?v=abc123", Options{})
	if err != nil {
		t.Fatalf("ExportSubtitles: %v", err)
	}

	if dl.videoCalls != 0 {
		t.Errorf("video downloads = %d, want 0", dl.videoCalls)
	}
	if result.VideoPath != "" {
		t.Errorf("video path = %q, want empty", result.VideoPath)
	}
	if len(result.SubtitlePaths) != 4 {
		t.Fatalf("subtitle paths = %d, want 4", len(result.SubtitlePaths))
	}

	bilingualSRT := filepath.Join(cfg.OutputDir, "Test Video_bilingual.srt")
	if result.SubtitlePaths[3] != bilingualSRT {
		t.Errorf("fourth document = %q, want %q", result.SubtitlePaths[3], bilingualSRT)
	}
	data, err := os.ReadFile(bilingualSRT)
	if err != nil {
		t.Fatalf("reading bilingual srt: %v", err)
	}
	if !strings.Contains(string(data), "Hello world") || !strings.Contains(string(data), "T:Hello world") {
		t.Error("bilingual srt should carry both original and translation")
	}
}

func TestExportSubtitlesTranscribesWithoutCaptions(t *testing.T) {
	cfg := testConfig(t)
	dl := &fakeDownloader{}
	fa := &fakeAudio{duration: 60}
	ft := &fakeTranscriber{
		transcript: &subtitle.Transcript{
			Entries: []subtitle.Entry{
				{Index: 1, StartTime: 0, EndTime: 2, Text: "hello", Translation: "你好"},
			},
			SourceLanguage: "en",
			TargetLanguage: "zh-TW",
		},
	}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader: dl,
		Embedder:   &fakeEmbedder{},
		Audio:      fa,
		Transcriber: func(ctx context.Context) (transcribe.Transcriber, error) {
			return ft, nil
		},
		Translator: noTranslator(t),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := conv.ExportSubtitles(context.Background(), "https://example.com/watch?v=abc123", Options{}); err != nil {
		t.Fatalf("ExportSubtitles: %v", err)
	}

	if len(dl.audioDests) != 1 {
		t.Fatalf("audio downloads = %d, want 1", len(dl.audioDests))
	}
	if dl.audioMp3[0] {
		t.Error("subtitle export should stream audio, not convert to mp3")
	}
	if !strings.HasSuffix(dl.audioDests[0], ".m4a") {
		t.Errorf("audio dest = %q, want .m4a", dl.audioDests[0])
	}
	if ft.calls != 1 {
		t.Errorf("transcribe calls = %d, want 1", ft.calls)
	}
	if fa.extractions != 0 {
		t.Errorf("extractions = %d, want 0 for audio-only download", fa.extractions)
	}
}

func TestExtractAudio(t *testing.T) {
	cfg := testConfig(t)
	dl := &fakeDownloader{}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  dl,
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator:  noTranslator(t),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := conv.ExtractAudio(context.Background(), "https://example.com/watch?v=abc123", Options{})
	if err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}

	wantPath := filepath.Join(cfg.OutputDir, "Test Video.mp3")
	if result.AudioPath != wantPath {
		t.Errorf("audio path = %q, want %q", result.AudioPath, wantPath)
	}
	if len(dl.audioMp3) != 1 || !dl.audioMp3[0] {
		t.Errorf("mp3 flags = %v, want [true]", dl.audioMp3)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Errorf("audio file missing: %v", err)
	}
}

func TestTranslateFile(t *testing.T) {
	cfg := testConfig(t)
	srtPath := filepath.Join(t.TempDir(), "lecture.srt")
	if err := os.WriteFile(srtPath, []byte(sampleSRT), 0644); err != nil {
		t.Fatalf("writing srt: %v", err)
	}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  &fakeDownloader{},
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator: func(ctx context.Context) (translate.Translator, error) {
			return &fakeTranslator{}, nil
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := conv.TranslateFile(context.Background(), srtPath, Options{})
	if err != nil {
		t.Fatalf("TranslateFile: %v", err)
	}

	if result.Title != "lecture" {
		t.Errorf("title = %q, want lecture", result.Title)
	}
	if len(result.SubtitlePaths) != 4 {
		t.Fatalf("subtitle paths = %d, want 4", len(result.SubtitlePaths))
	}
	for _, entry := range result.Transcript.Entries {
		if !strings.HasPrefix(entry.Translation, "T:") {
			t.Errorf("entry %d not translated: %q", entry.Index, entry.Translation)
		}
	}
}

func TestTranslateFileEmpty(t *testing.T) {
	cfg := testConfig(t)
	srtPath := filepath.Join(t.TempDir(), "empty.srt")
	if err := os.WriteFile(srtPath, []byte("\n"), 0644); err != nil {
		t.Fatalf("writing srt: %v", err)
	}

	conv, err := New(cfg, logging.NewNop(), Deps{
		Downloader:  &fakeDownloader{},
		Embedder:    &fakeEmbedder{},
		Audio:       &fakeAudio{},
		Transcriber: noTranscriber(t),
		Translator:  noTranslator(t),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := conv.TranslateFile(context.Background(), srtPath, Options{}); err == nil {
		t.Fatal("expected an error for a subtitle file without entries")
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "Hello World"},
		{"a/b\\c:d", "a_b_c_d"},
		{`<>:"|?*`, "_______"},
		{"", "video"},
		{"...", "video"},
		{"name.", "name"},
		{"  padded  ", "padded"},
		{strings.Repeat("x", 100), strings.Repeat("x", 80)},
	}

	for _, tt := range tests {
		if got := sanitizeTitle(tt.in); got != tt.want {
			t.Errorf("sanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeTitleKeepsRunesWhole(t *testing.T) {
	got := sanitizeTitle(strings.Repeat("字", 100))
	if !utf8.ValidString(got) {
		t.Fatal("truncation produced invalid utf-8")
	}
	if n := utf8.RuneCountInString(got); n != 80 {
		t.Errorf("rune count = %d, want 80", n)
	}
}

func TestLangTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"zh-TW", "chi"},
		{"zh", "chi"},
		{"en", "eng"},
		{"EN-us", "eng"},
		{"ja", "jpn"},
		{"ko", "kor"},
		{"fr", "fra"},
		{"de", "deu"},
		{"es", "spa"},
		{"pt", "und"},
		{"", "und"},
	}

	for _, tt := range tests {
		if got := langTag(tt.in); got != tt.want {
			t.Errorf("langTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
