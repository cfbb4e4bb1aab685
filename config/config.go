package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	ServerPort         int
	CORSAllowedOrigins []string

	// Cloudflare R2 (site images)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// SMTP (newsletter)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present; its absence is not an error. Every required
// value is checked here so a misconfigured deployment fails at startup,
// not at the first upload or mail-out.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var missing []string
	require := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	cfg := &Config{
		DatabaseURL:  require("DATABASE_URL"),
		JWTSecretKey: require("JWT_SECRET_KEY"),

		R2AccountID:       require("R2_ACCOUNT_ID"),
		R2AccessKeyID:     require("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: require("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      require("R2_BUCKET_NAME"),
		R2PublicBaseURL:   require("R2_PUBLIC_BASE_URL"),

		SMTPHost: require("SMTP_HOST"),
		SMTPUser: require("SMTP_USER"),
		SMTPPass: require("SMTP_PASS"),
		SMTPFrom: require("SMTP_FROM"),
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	cfg.SMTPPort = 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		cfg.SMTPPort, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT environment variable: %w", err)
		}
	}

	cfg.CORSAllowedOrigins = []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	return cfg, nil
}
