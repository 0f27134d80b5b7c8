package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// absorbs float64 representation error sitting just below a whole
// millisecond or centisecond, so whole values survive truncation
const timecodeEpsilon = 1e-4

// formatSRTTime renders seconds as HH:MM:SS,mmm. Hours grow without
// bound and milliseconds are truncated, not rounded.
func formatSRTTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(seconds*1000 + timecodeEpsilon)
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

// formatASSTime renders seconds as H:MM:SS.cc with truncated
// centiseconds. Hours are not zero padded.
func formatASSTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	cs := int64(seconds*100 + timecodeEpsilon)
	return fmt.Sprintf("%d:%02d:%02d.%02d",
		cs/360000, cs/6000%60, cs/100%60, cs%100)
}

// parseSRTTime converts an SRT timestamp back to seconds. Either comma
// or dot may separate the milliseconds.
func parseSRTTime(value string) (float64, error) {
	fields := strings.Split(strings.TrimSpace(value), ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("invalid timecode %q: want HH:MM:SS,mmm", value)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid hours in timecode %q: %w", value, err)
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in timecode %q: %w", value, err)
	}
	seconds, err := strconv.ParseFloat(
		strings.ReplaceAll(strings.TrimSpace(fields[2]), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in timecode %q: %w", value, err)
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("negative field in timecode %q", value)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}
