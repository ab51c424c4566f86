package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Classify is for issue-category classification (needs to be fast)
	Classify string `json:"classify"`

	// Reply is for conversational support replies (quality matters)
	Reply string `json:"reply"`
}

// LLMConfig holds all text-generation configuration
type LLMConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultLLMConfig returns the default generation configuration
func DefaultLLMConfig() *LLMConfig {
	return &LLMConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			Classify: getEnvOrDefault("GEMINI_MODEL_CLASSIFY", "gemini-2.0-flash"),
			Reply:    getEnvOrDefault("GEMINI_MODEL_REPLY", "gemini-2.0-flash"),
		},
		TimeoutMS: 60000, // classification falls back to keywords on timeout
	}
}

// IsEnabled returns true if the generation API is configured
func (c *LLMConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *LLMConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
