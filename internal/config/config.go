package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all settings for a conversion run. It is loaded once and
// passed into constructors; nothing reads it through package state.
type Config struct {
	Provider           string   `yaml:"provider"`
	TranscribeProvider string   `yaml:"transcribe_provider"`
	Model              string   `yaml:"model"`
	APIKey             string   `yaml:"api_key,omitempty"`
	OutputDir          string   `yaml:"output_dir"`
	TempDir            string   `yaml:"temp_dir"`
	MaxDuration        int      `yaml:"max_duration"`
	VideoQuality       string   `yaml:"video_quality"`
	SourceLanguage     string   `yaml:"source_language"`
	TargetLanguage     string   `yaml:"target_language"`
	SubtitleLanguages  []string `yaml:"subtitle_languages"`
	BatchSize          int      `yaml:"batch_size"`
	BatchDelayMS       int      `yaml:"batch_delay_ms"`
	AudioChunkSeconds  int      `yaml:"audio_chunk_seconds"`
	Style              Style    `yaml:"style"`
	WebAddr            string   `yaml:"web_addr"`
	WatchConcurrency   int      `yaml:"watch_concurrency"`
}

// Style configures subtitle appearance for ASS rendering and burn-in.
// Colors are ASS &HBBGGRR strings and pass through unvalidated.
type Style struct {
	FontName     string `yaml:"font_name"`
	FontSize     int    `yaml:"font_size"`
	PrimaryColor string `yaml:"primary_color"`
	OutlineColor string `yaml:"outline_color"`
	OutlineWidth int    `yaml:"outline_width"`
}

// Default returns a config with every field set to its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.Validate()
	return cfg
}

// Validate fills defaults and rejects values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Provider == "" {
		c.Provider = "gemini"
	}
	if c.TranscribeProvider == "" {
		c.TranscribeProvider = "gemini"
	}
	if c.Model == "" {
		c.Model = "gemini-2.0-flash-exp"
	}
	if c.OutputDir == "" {
		c.OutputDir = "./output"
	}
	if c.TempDir == "" {
		c.TempDir = "./temp"
	}
	if c.MaxDuration == 0 {
		c.MaxDuration = 3600
	}
	if c.VideoQuality == "" {
		c.VideoQuality = "720p"
	}
	if c.SourceLanguage == "" {
		c.SourceLanguage = "en"
	}
	if c.TargetLanguage == "" {
		c.TargetLanguage = "zh-TW"
	}
	if len(c.SubtitleLanguages) == 0 {
		c.SubtitleLanguages = []string{"en", "en-US", "en-GB"}
	}
	if c.BatchSize == 0 {
		c.BatchSize = 30
	}
	if c.BatchDelayMS == 0 {
		c.BatchDelayMS = 500
	}
	if c.AudioChunkSeconds == 0 {
		c.AudioChunkSeconds = 300
	}
	if c.Style.FontName == "" {
		c.Style.FontName = "Noto Sans CJK TC"
	}
	if c.Style.FontSize == 0 {
		c.Style.FontSize = 24
	}
	if c.Style.PrimaryColor == "" {
		c.Style.PrimaryColor = "&HFFFFFF"
	}
	if c.Style.OutlineColor == "" {
		c.Style.OutlineColor = "&H000000"
	}
	if c.Style.OutlineWidth == 0 {
		c.Style.OutlineWidth = 2
	}
	if c.WebAddr == "" {
		c.WebAddr = ":8080"
	}
	if c.WatchConcurrency == 0 {
		c.WatchConcurrency = 2
	}

	switch c.Provider {
	case "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown provider %q: use gemini, openai, or anthropic", c.Provider)
	}
	switch c.TranscribeProvider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown transcribe_provider %q: use gemini or openai", c.TranscribeProvider)
	}
	if c.VideoQuality != "best" {
		height := strings.TrimSuffix(c.VideoQuality, "p")
		if _, err := strconv.Atoi(height); err != nil || height == c.VideoQuality {
			return fmt.Errorf("invalid video_quality %q: use best or a height like 720p", c.VideoQuality)
		}
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxDuration < 0 {
		return fmt.Errorf("max_duration must be non-negative, got %d", c.MaxDuration)
	}

	return nil
}

// BatchDelay returns the pause between translation batches.
func (c *Config) BatchDelay() time.Duration {
	return time.Duration(c.BatchDelayMS) * time.Millisecond
}

// ResolveAPIKey returns the configured key, falling back to the
// conventional environment variable for the given provider.
func (c *Config) ResolveAPIKey(provider string) string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch provider {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}

// DefaultPath returns the first config file that exists out of the
// conventional locations, or empty when none does.
func DefaultPath() string {
	candidates := []string{"anuvad.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "anuvad", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads a YAML config file and validates it. An empty path searches
// the conventional locations and returns defaults when none exists.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML. Mode 0600 because the file may hold an
// API key.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
