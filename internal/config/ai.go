package config

import "time"

// DefaultGeminiModel serves summaries and sample passages
const DefaultGeminiModel = "gemini-2.0-flash"

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string `toml:"api_key" json:"-"` // Never serialize
	Model     string `toml:"model" json:"model"`
	TimeoutMS int    `toml:"timeout_ms" json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Model:     DefaultGeminiModel,
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the AI API is configured
func (c AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout returns the per-request deadline for text generation
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
