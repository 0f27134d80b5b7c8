package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mgpai22/anuvad/internal/logging"
)

const defaultSettleDelay = 500 * time.Millisecond

// Handler runs one conversion for a URL pulled from a drop file.
type Handler func(ctx context.Context, url string) error

// Watcher monitors a drop directory. A new .txt or .url file holding a
// video URL starts a conversion, bounded by a fixed number of
// concurrent runs. Handled files are renamed .done or .failed so they
// never trigger twice.
type Watcher struct {
	dir         string
	handler     Handler
	logger      *logging.Logger
	watcher     *fsnotify.Watcher
	settleDelay time.Duration
	semaphore   chan struct{}
	wg          sync.WaitGroup
}

func New(dir string, handler Handler, logger *logging.Logger, maxConcurrent int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Watcher{
		dir:         dir,
		handler:     handler,
		logger:      logger,
		watcher:     fsw,
		settleDelay: defaultSettleDelay,
		semaphore:   make(chan struct{}, maxConcurrent),
	}, nil
}

// Start blocks, handling create events until the context is cancelled.
// Conversions still running at cancellation are waited for.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Infow("Watching for URL drop files",
		"dir", w.dir,
		"maxConcurrent", cap(w.semaphore),
	)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) || !isDropFile(event.Name) {
				continue
			}
			w.logger.Infow("New drop file", "path", event.Name)

			select {
			case w.semaphore <- struct{}{}:
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

			w.wg.Add(1)
			go func(path string) {
				defer w.wg.Done()
				defer func() { <-w.semaphore }()
				w.processFile(ctx, path)
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Warnw("Watcher error", "error", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// processFile waits for the file to settle, pulls the URL out of it,
// runs the handler, and renames the file by outcome.
func (w *Watcher) processFile(ctx context.Context, path string) {
	select {
	case <-time.After(w.settleDelay):
	case <-ctx.Done():
		return
	}

	url, err := ReadURLFile(path)
	if err != nil {
		w.logger.Warnw("Ignoring drop file", "path", path, "error", err)
		w.markHandled(path, false)
		return
	}

	w.logger.Infow("Converting", "url", url, "source", path)
	if err := w.handler(ctx, url); err != nil {
		w.logger.Warnw("Conversion failed", "url", url, "error", err)
		w.markHandled(path, false)
		return
	}

	w.logger.Infow("Conversion finished", "url", url)
	w.markHandled(path, true)
}

func (w *Watcher) markHandled(path string, ok bool) {
	suffix := ".failed"
	if ok {
		suffix = ".done"
	}
	if err := os.Rename(path, path+suffix); err != nil {
		w.logger.Warnw("Failed to rename drop file", "path", path, "error", err)
	}
}

// isDropFile reports whether a path looks like a URL drop file.
// Renamed .done and .failed files no longer match.
func isDropFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".url":
		return true
	}
	return false
}

// ReadURLFile extracts the first URL from a drop file. Blank lines,
// comments, and section headers are skipped, and Windows internet
// shortcut files (URL=... lines) are understood.
func ReadURLFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read drop file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") {
			continue
		}
		line = strings.TrimPrefix(line, "URL=")
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			return line, nil
		}
	}

	return "", fmt.Errorf("no URL found in %s", path)
}
