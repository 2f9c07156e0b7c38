package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DEFAULT_TAX_RATE", "")
	t.Setenv("LOW_STOCK_THRESHOLD", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("BASE_URL", "")

	cfg := Load()

	if cfg.HTTPPort != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.DBDriver != "mysql" {
		t.Errorf("Expected mysql driver, got %s", cfg.DBDriver)
	}
	if cfg.DefaultTaxRate != 0.18 {
		t.Errorf("Expected default tax rate 0.18, got %v", cfg.DefaultTaxRate)
	}
	if cfg.LowStockThreshold != 5 {
		t.Errorf("Expected low stock threshold 5, got %d", cfg.LowStockThreshold)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("Expected no kafka brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("Unexpected base URL %s", cfg.BaseURL)
	}
}

func TestLoadLists(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://pos.example.com")

	cfg := Load()

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("Unexpected brokers %v", cfg.KafkaBrokers)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://pos.example.com" {
		t.Errorf("Unexpected origins %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	strong := strings.Repeat("k", 40)

	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid sqlite", Config{JWTSecret: strong, DBDriver: "sqlite"}, false},
		{"valid mysql", Config{JWTSecret: strong, DBDriver: "mysql", DatabaseDSN: "user:pw@/pos"}, false},
		{"missing secret", Config{DBDriver: "sqlite"}, true},
		{"short secret", Config{JWTSecret: "short", DBDriver: "sqlite"}, true},
		{"legacy default secret", Config{JWTSecret: "super_secret_key_for_pos_system_2025", DBDriver: "sqlite"}, true},
		{"mysql without dsn", Config{JWTSecret: strong, DBDriver: "mysql"}, true},
		{"unknown driver", Config{JWTSecret: strong, DBDriver: "mongo"}, true},
		{"tax rate out of range", Config{JWTSecret: strong, DBDriver: "sqlite", DefaultTaxRate: 1.5}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
