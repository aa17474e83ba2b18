package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.KafkaTopic != "tripmap.events" {
		t.Errorf("KafkaTopic = %q, want tripmap.events", config.KafkaTopic)
	}
}

// TestConfig_EnvironmentVariables verifies TRIPMAP_ variables are read.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("TRIPMAP_STORE", "memory://")
	t.Setenv("TRIPMAP_SYNC_URL", "http://localhost:8080/api/v1/relay")
	t.Setenv("TRIPMAP_VERIFY_PUSH", "true")
	t.Setenv("TRIPMAP_OUTPUT", "json")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Store != "memory://" {
		t.Errorf("Store = %q, want memory://", config.Store)
	}
	if config.SyncURL != "http://localhost:8080/api/v1/relay" {
		t.Errorf("SyncURL = %q", config.SyncURL)
	}
	if !config.VerifyPush {
		t.Error("TRIPMAP_VERIFY_PUSH not loaded")
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
}

// TestConfig_DefaultStore verifies the store default.
func TestConfig_DefaultStore(t *testing.T) {
	t.Setenv("TRIPMAP_STORE", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.Store != constants.DefaultStoreDSN {
		t.Errorf("Store = %q, want %q", config.Store, constants.DefaultStoreDSN)
	}
}

// TestConfig_Aliases verifies well-known variables stand in for TRIPMAP_ ones.
func TestConfig_Aliases(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		check func(*Config) string
	}{
		{
			name:  "GEMINI_API_KEY",
			env:   "GEMINI_API_KEY",
			value: "gemini-key",
			check: func(c *Config) string { return c.GeminiAPIKey },
		},
		{
			name:  "GOOGLE_CLOUD_PROJECT",
			env:   "GOOGLE_CLOUD_PROJECT",
			value: "trip-project",
			check: func(c *Config) string { return c.GoogleCloudProject },
		},
		{
			name:  "TELEGRAM_BOT_TOKEN",
			env:   "TELEGRAM_BOT_TOKEN",
			value: "123:abc",
			check: func(c *Config) string { return c.TelegramToken },
		},
		{
			name:  "LOG_LEVEL",
			env:   "LOG_LEVEL",
			value: "debug",
			check: func(c *Config) string { return c.LogLevel },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			config, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}
			if got := tt.check(config); got != tt.value {
				t.Errorf("%s: got %q, want %q", tt.env, got, tt.value)
			}
		})
	}
}

// TestConfig_Lists verifies comma-separated env lists.
func TestConfig_Lists(t *testing.T) {
	t.Setenv("TRIPMAP_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("TRIPMAP_TELEGRAM_CHATS", "-1001, 42")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if len(config.KafkaBrokers) != 2 || config.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("KafkaBrokers = %v", config.KafkaBrokers)
	}
	if len(config.TelegramChats) != 2 || config.TelegramChats[0] != -1001 || config.TelegramChats[1] != 42 {
		t.Errorf("TelegramChats = %v", config.TelegramChats)
	}
}

// TestConfig_InvalidChat verifies a non-numeric chat id is a config error.
func TestConfig_InvalidChat(t *testing.T) {
	t.Setenv("TRIPMAP_TELEGRAM_CHATS", "family")

	_, err := LoadConfig()
	var cfgErr *errors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("LoadConfig() error = %v, want ConfigError", err)
	}
}

// TestLoadConfigFile verifies an explicit config file is read.
func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripmap.yaml")
	content := "store: sqlite:///tmp/trip.db\nverify_push: true\nkafka_brokers:\n  - localhost:9092\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}
	if config.Store != "sqlite:///tmp/trip.db" {
		t.Errorf("Store = %q", config.Store)
	}
	if !config.VerifyPush {
		t.Error("verify_push not loaded")
	}
	if len(config.KafkaBrokers) != 1 || config.KafkaBrokers[0] != "localhost:9092" {
		t.Errorf("KafkaBrokers = %v", config.KafkaBrokers)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

// TestLoadConfigFile_Missing verifies an explicit file must exist.
func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, errors.ErrNotConfigured) {
		t.Fatalf("LoadConfigFile() error = %v, want ErrNotConfigured", err)
	}
}
