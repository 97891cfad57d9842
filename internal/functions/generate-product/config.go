// internal/functions/generate-product/config.go
package generateproduct

import "cardgen/internal/common/config"

type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Locale      string
}

func DefaultConfig() *Config {
	return &Config{
		Model:       config.DefaultModel,
		Temperature: config.DefaultTemperature,
		MaxTokens:   config.DefaultMaxTokens,
		Locale:      config.DefaultLocale,
	}
}

// LoadConfig derives the function config from the application config.
func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
		Locale:      cfg.Generation.Locale,
	}
}
