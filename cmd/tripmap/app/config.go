package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Trip storage and sync
	Store      string
	SyncURL    string
	VerifyPush bool

	// Tips advisor
	GeminiAPIKey        string
	GoogleCloudProject  string
	GoogleCloudLocation string
	AdvisorModel        string

	// Telegram bot
	TelegramToken string
	TelegramChats []int64

	// Server
	APIKey       string
	KafkaBrokers []string
	KafkaTopic   string

	// Logging configuration
	LogLevel      string
	LogFormat     string
	LogOutput     string
	LogComponents string
	Device        string
}

// aliases lets well-known variables stand in for the TRIPMAP_ ones.
var aliases = map[string][]string{
	"gemini_api_key":        {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"google_cloud_project":  {"GOOGLE_CLOUD_PROJECT"},
	"google_cloud_location": {"GOOGLE_CLOUD_LOCATION"},
	"telegram_token":        {"TELEGRAM_BOT_TOKEN"},
	"log_level":             {"LOG_LEVEL"},
	"log_format":            {"LOG_FORMAT"},
	"log_output":            {"LOG_OUTPUT"},
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (TRIPMAP_STORE, TRIPMAP_SYNC_URL, ...)
// 3. .env files
// 4. Config file (~/.tripmap.yaml or ./.tripmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// LoadConfigFile is LoadConfig with an explicit config file, which must exist.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(path string) (*Config, error) {
	// Load .env files first (before env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, names := range aliases {
		env := append([]string{key, envName(key)}, names...)
		if err := v.BindEnv(env...); err != nil {
			return nil, errors.NewConfigError("config", "bind "+key, err)
		}
	}

	v.SetDefault("store", constants.DefaultStoreDSN)
	v.SetDefault("kafka_topic", "tripmap.events")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if path == "" {
		path = os.Getenv(envName("config"))
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "read "+path, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".tripmap")
		// Missing file is fine.
		_ = v.ReadInConfig()
	}

	chats, err := int64List(stringList(v, "telegram_chats"))
	if err != nil {
		return nil, errors.NewConfigError("config", "telegram_chats", err)
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		Store:      v.GetString("store"),
		SyncURL:    v.GetString("sync_url"),
		VerifyPush: v.GetBool("verify_push"),

		GeminiAPIKey:        v.GetString("gemini_api_key"),
		GoogleCloudProject:  v.GetString("google_cloud_project"),
		GoogleCloudLocation: v.GetString("google_cloud_location"),
		AdvisorModel:        v.GetString("advisor_model"),

		TelegramToken: v.GetString("telegram_token"),
		TelegramChats: chats,

		APIKey:       v.GetString("api_key"),
		KafkaBrokers: stringList(v, "kafka_brokers"),
		KafkaTopic:   v.GetString("kafka_topic"),

		LogLevel:      v.GetString("log_level"),
		LogFormat:     v.GetString("log_format"),
		LogOutput:     v.GetString("log_output"),
		LogComponents: v.GetString("log_components"),
		Device:        v.GetString("device"),
	}, nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so that it wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func envName(key string) string {
	return constants.EnvPrefix + "_" + strings.ToUpper(key)
}

// stringList reads a YAML list or a comma-separated env value.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, s := range v.GetStringSlice(key) {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func int64List(in []string) ([]int64, error) {
	out := make([]int64, 0, len(in))
	for _, s := range in {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
