package config

import "time"

type AuthConfig struct {
	JWT     JWTConfig
	Session SessionConfig

	// DemoLoginEnabled switches on the three fixed demo accounts below.
	// This is a demo/simulator mechanism, not a security boundary; the
	// production path uses bcrypt-hashed credentials instead.
	DemoLoginEnabled bool
	DemoUsers        []DemoUser
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
	Audience        []string
}

type SessionConfig struct {
	// StoreType selects "redis" or "memory" for refresh-token sessions.
	StoreType string
	TTL       time.Duration
}

// DemoUser is one fixed username/password/role triple for the portal demo.
type DemoUser struct {
	Username string
	Password string
	Role     string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWT: JWTConfig{
			SecretKey:       getEnv("JWT_SECRET_KEY", "proago-demo-secret-key-change-me-in-prod"),
			AccessTokenTTL:  getEnvDuration("JWT_ACCESS_TOKEN_TTL", 1*time.Hour),
			RefreshTokenTTL: getEnvDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
			Issuer:          getEnv("JWT_ISSUER", "proago-world"),
			Audience:        getEnvStringSlice("JWT_AUDIENCE", []string{"proago-portal"}),
		},
		Session: SessionConfig{
			StoreType: getEnv("SESSION_STORE", "memory"),
			TTL:       getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		},
		DemoLoginEnabled: getEnvBool("DEMO_LOGIN_ENABLED", true),
		DemoUsers: []DemoUser{
			{Username: getEnv("DEMO_RECRUITER_USER", "xxx"), Password: getEnv("DEMO_RECRUITER_PASS", "xxx"), Role: "RECRUITER"},
			{Username: getEnv("DEMO_WORKER_USER", "111"), Password: getEnv("DEMO_WORKER_PASS", "111"), Role: "WORKER"},
			{Username: getEnv("DEMO_MANAGER_USER", "aaa"), Password: getEnv("DEMO_MANAGER_PASS", "aaa"), Role: "MANAGER"},
		},
	}
}
