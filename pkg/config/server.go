package config

type ServerConfig struct {
	Port        int
	Environment string
	LogLevel    string
	BaseURL     string
	CORSOrigins []string
	BodyLimit   int
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:        getEnvInt("SERVER_PORT", 8080),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		CORSOrigins: getEnvStringSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
		// CV uploads arrive base64-encoded inside the JSON body, so the
		// limit sits above the 5MB raw file cap.
		BodyLimit: getEnvInt("BODY_LIMIT_BYTES", 10*1024*1024),
	}
}
