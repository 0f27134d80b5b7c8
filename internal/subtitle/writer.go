package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderSRT produces SRT content from the transcript. At least one text
// field must be included; when both are, the translation line comes
// before the original in each block.
func RenderSRT(t *Transcript, includeOriginal, includeTranslation bool) (string, error) {
	if !includeOriginal && !includeTranslation {
		return "", fmt.Errorf("nothing to render: original and translation both excluded")
	}

	var sb strings.Builder
	for _, entry := range t.Entries {
		sb.WriteString(fmt.Sprintf("%d\n", entry.Index))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(entry.StartTime),
			formatSRTTime(entry.EndTime)))
		if includeTranslation {
			sb.WriteString(entry.Translation)
			sb.WriteString("\n")
		}
		if includeOriginal {
			sb.WriteString(entry.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// WriteSRT renders the transcript to an SRT file, creating parent
// directories as needed.
func WriteSRT(t *Transcript, path string, includeOriginal, includeTranslation bool) error {
	content, err := RenderSRT(t, includeOriginal, includeTranslation)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write SRT file: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
