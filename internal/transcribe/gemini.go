package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mgpai22/anuvad/internal/subtitle"
	"google.golang.org/genai"
)

// implements Transcriber interface using Google Gemini. Gemini handles
// both transcription and translation in a single request, so entries
// come back with the translation already filled in.
type GeminiTranscriber struct {
	client  *genai.Client
	model   string
	options Options
}

// segment from Gemini's JSON response, timestamps in seconds
type transcriptSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Original   string  `json:"original"`
	Translated string  `json:"translated"`
}

func NewGeminiTranscriber(ctx context.Context, apiKey string, opts Options) (*GeminiTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	return &GeminiTranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (*subtitle.Transcript, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	uploadedFile, err := t.client.Files.UploadFromPath(ctx, audioPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	defer func() {
		_, _ = t.client.Files.Delete(ctx, uploadedFile.Name, nil)
	}()

	uploadedFile, err = t.waitForProcessing(ctx, uploadedFile)
	if err != nil {
		return nil, err
	}

	prompt := t.buildTranscriptionPrompt()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	entries, err := t.parseTranscriptionResponse(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}

	Normalize(entries)

	return &subtitle.Transcript{
		Entries:        entries,
		SourceLanguage: t.options.SourceLanguage,
		TargetLanguage: t.options.TargetLanguage,
	}, nil
}

// uploaded audio stays in the processing state until the API has
// decoded it, so poll before referencing the file in a request
func (t *GeminiTranscriber) waitForProcessing(ctx context.Context, uploadedFile *genai.File) (*genai.File, error) {
	for uploadedFile.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}

		var err error
		uploadedFile, err = t.client.Files.Get(ctx, uploadedFile.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check uploaded file state: %w", err)
		}
	}

	if uploadedFile.State != genai.FileStateActive {
		return nil, fmt.Errorf("audio processing failed: file state %s", uploadedFile.State)
	}

	return uploadedFile, nil
}

// creates the prompt for combined transcription and translation
func (t *GeminiTranscriber) buildTranscriptionPrompt() string {
	var sb strings.Builder

	sb.WriteString("Listen to this audio and generate a detailed transcript. ")
	sb.WriteString("For each sentence or phrase, provide the start timestamp, end timestamp, and the exact text spoken. ")

	if t.options.SourceLanguage != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", t.options.SourceLanguage))
	}

	if t.options.TargetLanguage != "" {
		sb.WriteString(fmt.Sprintf("Also translate each segment into %s. ", t.options.TargetLanguage))
	}

	sb.WriteString("Format your response as a JSON array with objects containing 'start', 'end', 'original', and 'translated' fields, ")
	sb.WriteString("where 'start' and 'end' are timestamps in seconds (as numbers). ")
	sb.WriteString("Keep each segment under 10 seconds. ")

	if t.options.TargetLanguage == "" {
		sb.WriteString("Leave the 'translated' field empty. ")
	}

	if t.options.Prompt != "" {
		sb.WriteString(t.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY the JSON array, no other text or markdown formatting.")

	return sb.String()
}

// parses Gemini's response into subtitle entries
func (t *GeminiTranscriber) parseTranscriptionResponse(result *genai.GenerateContentResponse) ([]subtitle.Entry, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}

	responseText = cleanJSONResponse(responseText)

	segments, err := extractTranscriptSegments(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w (response: %s)", err, truncateString(responseText, 200))
	}

	entries := make([]subtitle.Entry, 0, len(segments))
	for _, seg := range segments {
		original := strings.TrimSpace(seg.Original)
		translated := strings.TrimSpace(seg.Translated)
		if original == "" && translated == "" {
			continue
		}
		entries = append(entries, subtitle.Entry{
			StartTime:   seg.Start,
			EndTime:     seg.End,
			Text:        original,
			Translation: translated,
		})
	}

	return entries, nil
}

// finds the first decodable segment array in the response. The model
// sometimes wraps the array in prose or in an enclosing object despite
// the prompt.
func extractTranscriptSegments(response string) ([]transcriptSegment, error) {
	for i := 0; i < len(response); i++ {
		if response[i] != '[' && response[i] != '{' {
			continue
		}

		decoder := json.NewDecoder(strings.NewReader(response[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}

		if segments, ok := tryExtractSegments(raw); ok {
			return segments, nil
		}
	}

	return nil, fmt.Errorf("no transcript segments found in response")
}

func tryExtractSegments(raw json.RawMessage) ([]transcriptSegment, bool) {
	var segments []transcriptSegment
	if err := json.Unmarshal(raw, &segments); err == nil && validateSegments(segments) {
		return segments, true
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, key := range []string{"segments", "transcript", "data"} {
		if inner, ok := wrapper[key]; ok {
			if segments, ok := tryExtractSegments(inner); ok {
				return segments, true
			}
		}
	}

	// fall back to any field holding a segment array
	for _, inner := range wrapper {
		if segments, ok := tryExtractSegments(inner); ok {
			return segments, true
		}
	}

	return nil, false
}

// a decoded slice counts as a transcript when at least one segment
// carries text or a non-zero timestamp
func validateSegments(segments []transcriptSegment) bool {
	if len(segments) == 0 {
		return false
	}
	for _, seg := range segments {
		if seg.Original != "" || seg.Translated != "" || seg.Start != 0 || seg.End != 0 {
			return true
		}
	}
	return false
}

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	// remove ```json and ``` markers
	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	s = strings.TrimSpace(s)

	return s
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Close closes the Gemini client
func (t *GeminiTranscriber) Close() error {
	// The genai client doesn't have a Close method in the current SDK
	// but we include this for future compatibility
	return nil
}
