package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseFile reads a subtitle file and parses it by extension. Malformed
// content never errors, only unreadable files and unknown extensions do.
func ParseFile(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	var entries []Entry
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".srt":
		entries = ParseSRT(string(data))
	case ".vtt":
		entries = ParseVTT(string(data))
	default:
		return nil, fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(path))
	}

	return &Transcript{Entries: entries}, nil
}
