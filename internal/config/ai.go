package config

import (
	"os"
	"time"
)

// AIModels defines which models back question generation, in attempt order
type AIModels struct {
	// Primary is tried first (fast and cheap)
	Primary string `yaml:"primary"`

	// Fallback is tried when the primary call fails
	Fallback string `yaml:"fallback"`

	// Gemini is the last resort; only used when GEMINI_API_KEY is set
	Gemini string `yaml:"gemini"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	OpenAIKey     string   `yaml:"-"` // Never serialize
	OpenAIBaseURL string   `yaml:"openaiBaseUrl"`
	GeminiKey     string   `yaml:"-"`
	Models        AIModels `yaml:"models"`

	MaxTokens   int     `yaml:"maxTokens"`
	Temperature float32 `yaml:"temperature"`
	TimeoutMS   int     `yaml:"timeoutMs"`

	// MaxQuestionCount caps question_count on generation requests
	MaxQuestionCount int `yaml:"maxQuestionCount"`

	// RateLimitPerMinute bounds generation requests per host; 0 disables it
	RateLimitPerMinute int `yaml:"rateLimitPerMinute"`

	// StructuredOutput requests a JSON-schema constrained reply
	StructuredOutput bool `yaml:"structuredOutput"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		Models: AIModels{
			Primary:  "gpt-4o-mini",
			Fallback: "gpt-4.1-nano",
			Gemini:   "gemini-2.0-flash",
		},
		MaxTokens:          800,
		Temperature:        0.3,
		TimeoutMS:          30000, // 30 second default timeout
		MaxQuestionCount:   20,
		RateLimitPerMinute: 10,
	}
}

// applyEnv overlays AI environment variables
func (c *AIConfig) applyEnv() {
	c.OpenAIKey = getEnvOrDefault("OPENAI_API_KEY", c.OpenAIKey)
	c.OpenAIBaseURL = getEnvOrDefault("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.GeminiKey = getEnvOrDefault("GEMINI_API_KEY", c.GeminiKey)

	c.Models.Primary = getEnvOrDefault("AI_MODEL_PRIMARY", c.Models.Primary)
	c.Models.Fallback = getEnvOrDefault("AI_MODEL_FALLBACK", c.Models.Fallback)
	c.Models.Gemini = getEnvOrDefault("AI_MODEL_GEMINI", c.Models.Gemini)

	c.TimeoutMS = getIntOrDefault("AI_TIMEOUT_MS", c.TimeoutMS)
	c.MaxQuestionCount = getIntOrDefault("AI_MAX_QUESTION_COUNT", c.MaxQuestionCount)
	c.RateLimitPerMinute = getIntOrDefault("AI_RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.StructuredOutput = getBoolOrDefault("AI_STRUCTURED_OUTPUT", c.StructuredOutput)
}

// IsEnabled returns true if any model backend has credentials
func (c *AIConfig) IsEnabled() bool {
	return c.OpenAIKey != "" || c.GeminiKey != ""
}

// Timeout is the per-attempt deadline
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
