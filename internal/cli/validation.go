package cli

import (
	"fmt"
	"strconv"
	"strings"
)

var geminiModels = map[string]bool{
	"gemini-2.0-flash-exp":   true,
	"gemini-2.0-flash":       true,
	"gemini-2.5-pro":         true,
	"gemini-2.5-flash":       true,
	"gemini-2.5-flash-lite":  true,
	"gemini-3-pro-preview":   true,
	"gemini-3-flash-preview": true,
}

var openAIModels = map[string]bool{
	"o1":         true,
	"o1-pro":     true,
	"o3":         true,
	"o3-mini":    true,
	"gpt-4o":     true,
	"gpt-5":      true,
	"gpt-5-nano": true,
	"gpt-5-mini": true,
	"gpt-5-pro":  true,
	"gpt-5.1":    true,
	"gpt-5.2":    true,
}

var anthropicModels = map[string]bool{
	"claude-haiku-4-5":         true,
	"claude-sonnet-4-5":        true,
	"claude-opus-4-1":          true,
	"claude-3-7-sonnet-latest": true,
	"claude-3-5-haiku-latest":  true,
}

func isValidGeminiModel(model string) bool {
	return geminiModels[strings.TrimSpace(model)]
}

func isValidOpenAIModel(model string) bool {
	return openAIModels[strings.TrimSpace(model)]
}

func isValidAnthropicModel(model string) bool {
	return anthropicModels[strings.TrimSpace(model)]
}

// validateModel rejects model names the provider does not serve. The
// --model-override flag skips this check for newly released models.
func validateModel(provider, model string) error {
	switch provider {
	case "gemini":
		if !isValidGeminiModel(model) {
			return fmt.Errorf(
				"unsupported Gemini model %q: valid models are gemini-2.0-flash-exp, gemini-2.0-flash, gemini-2.5-pro, gemini-2.5-flash, gemini-2.5-flash-lite, gemini-3-pro-preview, gemini-3-flash-preview (use --model-override to bypass)",
				model,
			)
		}
	case "openai":
		if !isValidOpenAIModel(model) {
			return fmt.Errorf(
				"unsupported OpenAI model %q: valid models are o1, o1-pro, o3, o3-mini, gpt-4o, gpt-5, gpt-5-nano, gpt-5-mini, gpt-5-pro, gpt-5.1, gpt-5.2 (use --model-override to bypass)",
				model,
			)
		}
	case "anthropic":
		if !isValidAnthropicModel(model) {
			return fmt.Errorf(
				"unsupported Anthropic model %q: valid models are claude-haiku-4-5, claude-sonnet-4-5, claude-opus-4-1, claude-3-7-sonnet-latest, claude-3-5-haiku-latest (use --model-override to bypass)",
				model,
			)
		}
	}
	return nil
}

func isValidQuality(quality string) bool {
	if quality == "best" {
		return true
	}
	height := strings.TrimSuffix(quality, "p")
	if height == quality {
		return false
	}
	_, err := strconv.Atoi(height)
	return err == nil
}

func isValidTrack(track string) bool {
	switch track {
	case "bilingual", "translation", "original":
		return true
	}
	return false
}

func isValidMode(mode string) bool {
	return mode == "soft" || mode == "hard"
}
