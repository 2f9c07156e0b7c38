package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
)

// Secrets that shipped as hard-coded fallbacks in earlier builds. A deployment still
// signing tokens with one of these is as good as unauthenticated.
var insecureSecrets = []string{
	"secret123",
	"super_secret_key_for_pos_system_2025",
}

type Config struct {
	HTTPPort               string
	BaseURL                string
	DBDriver               string
	DatabaseDSN            string
	JWTSecret              string
	CORSOrigins            []string
	DefaultTaxRate         float64
	LowStockThreshold      int
	AllowAdminRegistration bool
	KafkaBrokers           []string
	GeminiAPIKey           string
}

// Load reads the configuration from the environment. Call godotenv.Load before it
// when a .env file should be honoured.
func Load() *Config {
	cfg := &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		BaseURL:                getEnv("BASE_URL", ""),
		DBDriver:               strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:            getEnv("DB_DSN", ""),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		CORSOrigins:            splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		DefaultTaxRate:         getFloat("DEFAULT_TAX_RATE", 0.18),
		LowStockThreshold:      getInt("LOW_STOCK_THRESHOLD", 5),
		AllowAdminRegistration: getEnv("ALLOW_ADMIN_REGISTRATION", "false") == "true",
		KafkaBrokers:           splitList(getEnv("KAFKA_BROKERS", "")),
		GeminiAPIKey:           getEnv("GEMINI_API_KEY", ""),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.HTTPPort
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the development default")
	}

	return cfg
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	for _, s := range insecureSecrets {
		if c.JWTSecret == s {
			return errors.New("JWT_SECRET is a known insecure default")
		}
	}

	switch c.DBDriver {
	case "mysql", "postgres":
		if c.DatabaseDSN == "" {
			return errors.New("DB_DSN is required for driver " + c.DBDriver)
		}
	case "sqlite":
	default:
		return errors.New("unsupported DB_DRIVER " + strconv.Quote(c.DBDriver))
	}

	if c.DefaultTaxRate < 0 || c.DefaultTaxRate > 1 {
		return errors.New("DEFAULT_TAX_RATE must be between 0 and 1")
	}
	if c.LowStockThreshold < 0 {
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
