package translate

import (
	"context"
	"time"

	"github.com/mgpai22/anuvad/internal/logging"
	"github.com/mgpai22/anuvad/internal/subtitle"
)

const DefaultBatchSize = 30

// Batcher feeds subtitle entries through a Translator in contiguous
// groups, one API request per group, writing translations back in
// place. Groups run strictly one after another with a fixed pause
// between them.
type Batcher struct {
	translator Translator
	batchSize  int
	delay      time.Duration
	logger     *logging.Logger
}

func NewBatcher(
	translator Translator,
	batchSize int,
	delay time.Duration,
	logger *logging.Logger,
) *Batcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Batcher{
		translator: translator,
		batchSize:  batchSize,
		delay:      delay,
		logger:     logger,
	}
}

// TranslateEntries fills Translation for every entry, in document
// order. A group whose request fails, parses wrong, or comes back with
// the wrong element count keeps its original text, entry for entry; no
// retry is attempted and the remaining groups still run. Group
// boundaries are invisible in the result.
func (b *Batcher) TranslateEntries(
	ctx context.Context,
	entries []subtitle.Entry,
) error {
	for start := 0; start < len(entries); start += b.batchSize {
		if start > 0 && b.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.delay):
			}
		}

		end := start + b.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		group := entries[start:end]

		texts := make([]string, len(group))
		for i := range group {
			texts[i] = group[i].Text
		}

		translated, err := b.translator.TranslateTexts(ctx, texts)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Warnw("Translation batch failed, keeping original text",
				"batch", start/b.batchSize,
				"entries", len(group),
				"error", err)
			fallbackToOriginal(group)
			continue
		}
		if len(translated) != len(group) {
			b.logger.Warnw("Translation batch size mismatch, keeping original text",
				"batch", start/b.batchSize,
				"want", len(group),
				"got", len(translated))
			fallbackToOriginal(group)
			continue
		}

		for i := range group {
			group[i].Translation = translated[i]
		}
	}

	return nil
}

func fallbackToOriginal(group []subtitle.Entry) {
	for i := range group {
		group[i].Translation = group[i].Text
	}
}
