package config

import "time"

type AIConfig struct {
	// Enabled gates the CV scoring call entirely; submissions still work
	// without it (heuristic score only).
	Enabled bool
	APIKey  string
	Model   string

	// Timeout bounds one scoring call. The scorer degrades to a zero
	// score when the deadline is hit.
	Timeout time.Duration
}

func loadAIConfig() AIConfig {
	return AIConfig{
		Enabled: getEnvBool("AI_SCORING_ENABLED", true),
		APIKey:  getEnv("OPENAI_API_KEY", ""),
		Model:   getEnv("AI_SCORING_MODEL", "gpt-4o"),
		Timeout: getEnvDuration("AI_SCORING_TIMEOUT", 20*time.Second),
	}
}
