package subtitle

import (
	"fmt"
	"os"
	"strings"
)

// Style controls the appearance of generated ASS subtitles. Colors are
// ASS &HBBGGRR values written through without validation.
type Style struct {
	FontName     string
	FontSize     int
	PrimaryColor string
	OutlineColor string
	OutlineWidth int
}

// DefaultStyle returns the stock bilingual look: a CJK-capable font,
// white translation text, black outline.
func DefaultStyle() Style {
	return Style{
		FontName:     "Noto Sans CJK TC",
		FontSize:     24,
		PrimaryColor: "&HFFFFFF",
		OutlineColor: "&H000000",
		OutlineWidth: 2,
	}
}

// RenderASS produces a bilingual ASS document. Translated text uses the
// bottom-anchored Translation style at full size, original text the
// top-anchored Original style at 80% size in grey. Entries emit one
// Dialogue event per non-empty text field.
func RenderASS(t *Transcript, style Style) string {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString("Title: Generated Subtitles\n")
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("PlayResX: 1920\n")
	sb.WriteString("PlayResY: 1080\n")
	sb.WriteString("ScaledBorderAndShadow: yes\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Translation,%s,%d,%s,&H000000FF,%s,&H80000000,-1,0,0,0,100,100,0,0,1,%d,1,2,10,10,30,1\n",
		style.FontName, style.FontSize, style.PrimaryColor,
		style.OutlineColor, style.OutlineWidth))
	sb.WriteString(fmt.Sprintf("Style: Original,%s,%d,&HCCCCCC,&H000000FF,%s,&H80000000,0,0,0,0,100,100,0,0,1,%d,1,8,10,10,10,1\n\n",
		style.FontName, style.FontSize*8/10,
		style.OutlineColor, style.OutlineWidth))

	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, entry := range t.Entries {
		start := formatASSTime(entry.StartTime)
		end := formatASSTime(entry.EndTime)
		if entry.Translation != "" {
			sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Translation,,0,0,0,,%s\n",
				start, end, escapeASSText(entry.Translation)))
		}
		if entry.Text != "" {
			sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Original,,0,0,0,,%s\n",
				start, end, escapeASSText(entry.Text)))
		}
	}

	return sb.String()
}

// WriteASS renders the transcript to an ASS file, creating parent
// directories as needed.
func WriteASS(t *Transcript, path string, style Style) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(RenderASS(t, style)), 0644); err != nil {
		return fmt.Errorf("failed to write ASS file: %w", err)
	}
	return nil
}

func escapeASSText(text string) string {
	return strings.ReplaceAll(text, "\n", "\\N")
}
