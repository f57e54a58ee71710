package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/client-pulse/internal/common"
	"github.com/Veraticus/client-pulse/internal/llm"
)

// LoadHubSpotToken resolves the HubSpot private app token from Viper or the
// HUBSPOT_TOKEN environment variable.
func LoadHubSpotToken() (string, error) {
	token := viper.GetString("hubspot.access_token")
	if token == "" {
		token = os.Getenv("HUBSPOT_TOKEN")
	}
	if token == "" {
		return "", fmt.Errorf("hubspot token not set: %w", common.ErrMissingConfig)
	}
	return token, nil
}

// LoadLLMConfig resolves analyzer configuration from Viper and environment
// variables. The API key falls back to GEMINI_API_KEY.
func LoadLLMConfig() (llm.Config, error) {
	cfg := llm.Config{
		Provider:          viper.GetString("llm.provider"),
		APIKey:            viper.GetString("llm.api_key"),
		Model:             viper.GetString("llm.model"),
		Temperature:       viper.GetFloat64("llm.temperature"),
		MaxTokens:         viper.GetInt("llm.max_tokens"),
		RequestsPerMinute: viper.GetInt("llm.requests_per_minute"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return llm.Config{}, fmt.Errorf("llm api key not set: %w", common.ErrMissingConfig)
	}

	return cfg, nil
}
