package transcribe

import (
	"strings"
	"testing"
)

func TestExtractTranscriptSegments(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"start": 0.0, "end": 2.5, "original": "Hello world", "translated": "你好世界"},
				{"start": 2.5, "end": 5.0, "original": "How are you", "translated": "你好嗎"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble with valid array",
			input: `Here is the JSON transcript:
			[
				{"start": 0.0, "end": 2.5, "original": "Hello world", "translated": "你好世界"},
				{"start": 2.5, "end": 5.0, "original": "How are you", "translated": "你好嗎"}
			]`,
			wantCount: 2,
		},
		{
			name: "valid array with trailing text",
			input: `[
				{"start": 0.0, "end": 2.5, "original": "Hello world", "translated": "你好世界"}
			]
			I hope this helps! Let me know if you need anything else.`,
			wantCount: 1,
		},
		{
			name: "preamble and trailing text",
			input: `Here is your transcript:
			[{"start": 1.0, "end": 3.0, "original": "Test segment", "translated": "測試片段"}]
			That's all!`,
			wantCount: 1,
		},
		{
			name:      "code fenced JSON (after cleanJSONResponse)",
			input:     `[{"start": 0.0, "end": 1.5, "original": "Fenced content", "translated": ""}]`,
			wantCount: 1,
		},
		{
			name: "wrapper object with segments key",
			input: `{"segments": [
				{"start": 0.0, "end": 2.0, "original": "Wrapped segment", "translated": "包起來的片段"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with transcript key",
			input: `{"transcript": [
				{"start": 0.0, "end": 2.0, "original": "From transcript key", "translated": ""}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with data key",
			input: `{"data": [
				{"start": 0.0, "end": 2.0, "original": "From data key", "translated": ""}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with unknown key",
			input: `{"myCustomKey": [
				{"start": 0.0, "end": 2.0, "original": "From unknown key", "translated": ""}
			]}`,
			wantCount: 1,
		},
		{
			name: "unrelated object first then transcript array",
			input: `{"status": "ok", "count": 5}
			[{"start": 0.0, "end": 2.0, "original": "Real transcript", "translated": ""}]`,
			wantCount: 1,
		},
		{
			name: "multiple arrays picks first valid",
			input: `[1, 2, 3]
			[{"start": 0.0, "end": 2.0, "original": "Actual transcript", "translated": ""}]`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   `This is just plain text with no JSON content.`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"start": 0.0, "end": 2.0, "original": "incomplete"`,
			wantErr: true,
		},
		{
			name:    "array with all-zero segments",
			input:   `[{"start": 0, "end": 0, "original": "", "translated": ""}]`,
			wantErr: true,
		},
		{
			name:      "array with valid timestamps but empty text",
			input:     `[{"start": 1.0, "end": 2.0, "original": "", "translated": ""}]`,
			wantCount: 1,
		},
		{
			name:      "translation only segment",
			input:     `[{"start": 0, "end": 0, "original": "", "translated": "只有翻譯"}]`,
			wantCount: 1,
		},
		{
			name: "complex preamble with explanation",
			input: `I've analyzed the audio and created a transcript for you. The audio appears to be in English. Here is the formatted JSON output:

			[
				{"start": 0.0, "end": 3.5, "original": "Welcome to the show", "translated": "歡迎收看節目"},
				{"start": 3.5, "end": 7.2, "original": "Today we'll be discussing AI", "translated": "今天我們要討論人工智慧"}
			]

			Note: Timestamps are in seconds. Let me know if you need any adjustments!`,
			wantCount: 2,
		},
		{
			name: "nested wrapper object",
			input: `{
				"response": {
					"segments": [{"start": 0.0, "end": 1.0, "original": "Nested", "translated": ""}]
				}
			}`,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := extractTranscriptSegments(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(segments) != tt.wantCount {
				t.Errorf(
					"got %d segments, want %d",
					len(segments),
					tt.wantCount,
				)
			}
		})
	}
}

func TestExtractTranscriptSegmentsFields(t *testing.T) {
	input := `[
		{"start": 1.5, "end": 4.0, "original": "Hello world", "translated": "你好世界"},
		{"start": 4.0, "end": 6.5, "original": "Goodbye", "translated": "再見"}
	]`

	segments, err := extractTranscriptSegments(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	if segments[0].Start != 1.5 || segments[0].End != 4.0 {
		t.Errorf("segment 0 timestamps: got %v-%v, want 1.5-4.0", segments[0].Start, segments[0].End)
	}
	if segments[0].Original != "Hello world" {
		t.Errorf("segment 0 original: got %q", segments[0].Original)
	}
	if segments[0].Translated != "你好世界" {
		t.Errorf("segment 0 translated: got %q", segments[0].Translated)
	}
	if segments[1].Original != "Goodbye" || segments[1].Translated != "再見" {
		t.Errorf("segment 1: got %q / %q", segments[1].Original, segments[1].Translated)
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON",
			input: `[{"start": 0, "end": 1, "original": "hello"}]`,
			want:  `[{"start": 0, "end": 1, "original": "hello"}]`,
		},
		{
			name:  "json code fence",
			input: "```json\n[{\"start\": 0, \"end\": 1, \"original\": \"hello\"}]\n```",
			want:  `[{"start": 0, "end": 1, "original": "hello"}]`,
		},
		{
			name:  "plain code fence",
			input: "```\n[{\"start\": 0, \"end\": 1, \"original\": \"hello\"}]\n```",
			want:  `[{"start": 0, "end": 1, "original": "hello"}]`,
		},
		{
			name:  "with leading/trailing whitespace",
			input: "  \n\n```json\n[{\"start\": 0}]\n```\n\n  ",
			want:  `[{"start": 0}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSegments(t *testing.T) {
	tests := []struct {
		name     string
		segments []transcriptSegment
		want     bool
	}{
		{"empty slice", []transcriptSegment{}, false},
		{"nil slice", nil, false},
		{"segment with original", []transcriptSegment{{Original: "hello"}}, true},
		{"segment with translation", []transcriptSegment{{Translated: "你好"}}, true},
		{"segment with start time", []transcriptSegment{{Start: 1.0}}, true},
		{"segment with end time", []transcriptSegment{{End: 2.0}}, true},
		{
			"all zero segment",
			[]transcriptSegment{{Start: 0, End: 0, Original: "", Translated: ""}},
			false,
		},
		{
			"multiple segments one valid",
			[]transcriptSegment{{}, {Start: 1.0, End: 2.0, Original: "valid"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateSegments(tt.segments); got != tt.want {
				t.Errorf("validateSegments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildTranscriptionPrompt(t *testing.T) {
	transcriber := &GeminiTranscriber{
		options: Options{
			SourceLanguage: "en",
			TargetLanguage: "zh-TW",
		},
	}

	prompt := transcriber.buildTranscriptionPrompt()

	for _, want := range []string{
		"The audio is in en.",
		"translate each segment into zh-TW",
		"'start', 'end', 'original', and 'translated'",
		"under 10 seconds",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildTranscriptionPromptWithoutTarget(t *testing.T) {
	transcriber := &GeminiTranscriber{
		options: Options{SourceLanguage: "en"},
	}

	prompt := transcriber.buildTranscriptionPrompt()

	if !strings.Contains(prompt, "Leave the 'translated' field empty.") {
		t.Errorf("prompt should ask for an empty translated field:\n%s", prompt)
	}
	if strings.Contains(prompt, "translate each segment into") {
		t.Errorf("prompt should not request translation:\n%s", prompt)
	}
}
