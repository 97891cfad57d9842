// cmd/cardgen/root.go
package main

import (
	"github.com/spf13/cobra"

	"cardgen/internal/common/config"
	"cardgen/internal/common/genai"
	commonhttp "cardgen/internal/common/http"
	"cardgen/internal/common/logger"
	generateproduct "cardgen/internal/functions/generate-product"
)

var (
	// configPath is the --config flag; empty means search ./configs.
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "cardgen",
	Short: "CardGen - marketplace product card generator",
	Long: `CardGen turns a product name, category and optional features into a
marketplace-ready title and description using an OpenAI chat model.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file (default: configs/config.yaml if present)")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// newHandler wires the generate-product function with its real collaborators.
func newHandler(cfg *config.Config, log logger.Logger) *generateproduct.Handler {
	doer := commonhttp.NewClient(cfg.OpenAITimeout(), log)
	return generateproduct.NewHandler(
		generateproduct.LoadConfig(cfg),
		config.CredentialsFromConfig(cfg),
		genai.NewFactory(cfg.OpenAI.BaseURL, doer),
		log,
	)
}
