package subtitle

// Entry represents single subtitle cue. Times are real seconds from the
// start of the media.
type Entry struct {
	Index       int
	StartTime   float64
	EndTime     float64
	Text        string
	Translation string
}

// Transcript represents ordered subtitle track with its language pair.
// Entries are ordered by non-decreasing start time and must not be
// mutated once rendering has begun.
type Transcript struct {
	Entries        []Entry
	SourceLanguage string
	TargetLanguage string
}

// Duration returns the end time of the last entry, 0 for an empty track.
func (t *Transcript) Duration() float64 {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[len(t.Entries)-1].EndTime
}

// Translated reports whether every entry with text carries a translation.
func (t *Transcript) Translated() bool {
	if len(t.Entries) == 0 {
		return false
	}
	for _, entry := range t.Entries {
		if entry.Text != "" && entry.Translation == "" {
			return false
		}
	}
	return true
}
