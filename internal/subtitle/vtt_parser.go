package subtitle

import (
	"regexp"
	"strings"
)

// inline cue markup like <c> spans and <00:00:01.319> karaoke timings
// found in auto-generated captions
var vttTagPattern = regexp.MustCompile(`<[^>]*>`)

// ParseVTT extracts entries from WebVTT content with the same
// skip-malformed behavior as ParseSRT. The header, NOTE, STYLE and
// REGION blocks are ignored, cue identifiers are optional, and inline
// markup is stripped from the text.
func ParseVTT(data string) []Entry {
	var entries []Entry
	for _, block := range splitBlocks(data) {
		entry, ok := parseVTTBlock(block)
		if !ok {
			continue
		}
		entry.Index = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries
}

func parseVTTBlock(block string) (Entry, bool) {
	lines := blockLines(block)
	if len(lines) == 0 {
		return Entry{}, false
	}
	switch {
	case strings.HasPrefix(lines[0], "WEBVTT"),
		strings.HasPrefix(lines[0], "NOTE"),
		strings.HasPrefix(lines[0], "STYLE"),
		strings.HasPrefix(lines[0], "REGION"):
		return Entry{}, false
	}

	// the timing line is either first or preceded by a cue identifier
	timing := -1
	for i := 0; i < len(lines) && i < 2; i++ {
		if strings.Contains(lines[i], "-->") {
			timing = i
			break
		}
	}
	if timing == -1 || timing+1 >= len(lines) {
		return Entry{}, false
	}

	start, end, ok := parseVTTRange(lines[timing])
	if !ok {
		return Entry{}, false
	}

	var textLines []string
	for _, line := range lines[timing+1:] {
		if cleaned := strings.TrimSpace(vttTagPattern.ReplaceAllString(line, "")); cleaned != "" {
			textLines = append(textLines, cleaned)
		}
	}
	if len(textLines) == 0 {
		return Entry{}, false
	}

	return Entry{
		StartTime: start,
		EndTime:   end,
		Text:      strings.Join(textLines, " "),
	}, true
}

func parseVTTRange(line string) (float64, float64, bool) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	start, err := parseVTTTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}

	// cue settings like align:start may follow the end timestamp
	endFields := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endFields) == 0 {
		return 0, 0, false
	}
	end, err := parseVTTTime(endFields[0])
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// parseVTTTime handles both HH:MM:SS.mmm and the short MM:SS.mmm form.
func parseVTTTime(value string) (float64, error) {
	if strings.Count(value, ":") == 1 {
		value = "0:" + value
	}
	return parseSRTTime(value)
}
