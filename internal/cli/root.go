package cli

import (
	"github.com/mgpai22/anuvad/internal/config"
	"github.com/mgpai22/anuvad/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "anuvad",
	Short: "Convert YouTube videos into bilingual subtitled videos",
	Long: `Anuvad downloads a YouTube video, obtains a transcript (published
captions when available, AI transcription otherwise), translates it, and
produces a subtitled video together with standalone SRT/ASS files.

Settings come from anuvad.yaml (or ~/.config/anuvad/config.yaml), with
flags overriding the file and API keys falling back to GEMINI_API_KEY,
OPENAI_API_KEY, or ANTHROPIC_API_KEY.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path (default: anuvad.yaml, then ~/.config/anuvad/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// addProviderFlags registers the AI flags shared by the commands that
// call a translation provider.
func addProviderFlags(cmd *cobra.Command) {
	cmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic)")
	cmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	cmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	cmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	cmd.Flags().
		String("source-language", "", "Language spoken in the video (e.g., en)")
	cmd.Flags().
		String("target-language", "", "Language to translate into (e.g., zh-TW)")
}

// applyProviderFlags copies any AI flags the user set onto the config.
func applyProviderFlags(cmd *cobra.Command, cfg *config.Config) error {
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.Provider = v
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if v, _ := cmd.Flags().GetString("api-key"); v != "" {
		cfg.APIKey = v
	}
	if v, _ := cmd.Flags().GetString("source-language"); v != "" {
		cfg.SourceLanguage = v
	}
	if v, _ := cmd.Flags().GetString("target-language"); v != "" {
		cfg.TargetLanguage = v
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		return nil
	}
	if override, _ := cmd.Flags().GetBool("model-override"); !override {
		if err := validateModel(cfg.Provider, model); err != nil {
			return err
		}
	}
	cfg.Model = model
	return nil
}
