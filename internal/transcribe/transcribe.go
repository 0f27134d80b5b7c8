package transcribe

import (
	"context"
	"fmt"
	"sort"

	"github.com/mgpai22/anuvad/internal/audio"
	"github.com/mgpai22/anuvad/internal/subtitle"
)

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*subtitle.Transcript, error)
	Close() error
}

// transcription service provider
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// transcription options
type Options struct {
	SourceLanguage string // Spoken language of the audio
	TargetLanguage string // Translation language, filled inline when the provider supports it
	Model          string
	Prompt         string
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// TranscribeChunks transcribes each chunk in order and merges the results,
// shifting every timestamp by the chunk's offset in the source audio.
func TranscribeChunks(
	ctx context.Context,
	t Transcriber,
	chunks []audio.ChunkInfo,
) (*subtitle.Transcript, error) {
	merged := &subtitle.Transcript{}

	for _, chunk := range chunks {
		result, err := t.Transcribe(ctx, chunk.Path)
		if err != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", chunk.Index, err)
		}

		for _, entry := range result.Entries {
			entry.StartTime += chunk.StartTime
			entry.EndTime += chunk.StartTime
			merged.Entries = append(merged.Entries, entry)
		}

		merged.SourceLanguage = result.SourceLanguage
		merged.TargetLanguage = result.TargetLanguage
	}

	Normalize(merged.Entries)

	return merged, nil
}

// Normalize sorts entries by start time, clamps end times that precede
// their start, and renumbers indexes from 1. Model timestamps are not
// guaranteed to be ordered or well formed.
func Normalize(entries []subtitle.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime < entries[j].StartTime
	})

	for i := range entries {
		if entries[i].EndTime < entries[i].StartTime {
			entries[i].EndTime = entries[i].StartTime
		}
		entries[i].Index = i + 1
	}
}
