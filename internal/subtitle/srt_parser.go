package subtitle

import (
	"strconv"
	"strings"
)

// ParseSRT extracts entries from SRT content. Blocks that do not follow
// the index/timing/text shape are skipped silently; a document with no
// usable block yields an empty slice, never an error. Callers treat
// zero entries as the no-usable-subtitle condition.
func ParseSRT(data string) []Entry {
	var entries []Entry
	for _, block := range splitBlocks(data) {
		entry, ok := parseSRTBlock(block)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func splitBlocks(data string) []string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.TrimPrefix(data, "\uFEFF")
	return strings.Split(data, "\n\n")
}

// blockLines returns the trimmed non-blank lines of a block.
func blockLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func parseSRTBlock(block string) (Entry, bool) {
	lines := blockLines(block)
	if len(lines) < 3 {
		return Entry{}, false
	}

	index, err := strconv.Atoi(lines[0])
	if err != nil {
		return Entry{}, false
	}
	start, end, ok := parseTimeRange(lines[1])
	if !ok {
		return Entry{}, false
	}

	return Entry{
		Index:     index,
		StartTime: start,
		EndTime:   end,
		Text:      strings.Join(lines[2:], " "),
	}, true
}

func parseTimeRange(line string) (float64, float64, bool) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := parseSRTTime(parts[0])
	if err != nil {
		return 0, 0, false
	}
	end, err := parseSRTTime(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
