package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// LLM tiers
	LLM LLMConfig

	// Google Maps web services
	Maps MapsConfig

	// Conversation sessions
	Session SessionConfig

	// Voice webhook
	Voice VoiceConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// LLMConfig holds the two model tiers: a fast model for every turn and an
// advanced model used only on escalation.
type LLMConfig struct {
	Fast     ProviderConfig
	Advanced ProviderConfig

	RetryAttempts   int
	RetryDelay      string
	MaxTotalTimeout string
}

// ProviderConfig holds configuration for a single LLM provider.
type ProviderConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
}

type MapsConfig struct {
	APIKey  string
	BaseURL string
}

type SessionConfig struct {
	TTL              string
	SweepInterval    string
	ClarificationTTL string
}

type VoiceConfig struct {
	Enabled         bool
	Secret          string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine: env vars + defaults apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")

	viper.SetDefault("httpserver.port", 8080)
	viper.SetDefault("httpserver.mode", "debug")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.colorenabled", true)

	viper.SetDefault("llm.fast.name", "gemini")
	viper.SetDefault("llm.fast.model", "gemini-2.5-flash")
	viper.SetDefault("llm.advanced.name", "deepseek")
	viper.SetDefault("llm.advanced.model", "deepseek-chat")
	viper.SetDefault("llm.retryattempts", 2)
	viper.SetDefault("llm.retrydelay", "500ms")
	viper.SetDefault("llm.maxtotaltimeout", "45s")

	viper.SetDefault("maps.baseurl", "")

	viper.SetDefault("session.ttl", "30m")
	viper.SetDefault("session.sweepinterval", "5m")
	viper.SetDefault("session.clarificationttl", "60s")

	viper.SetDefault("voice.enabled", false)
	viper.SetDefault("voice.ratelimitpermin", 60)
}

// ParseDuration parses a duration string, falling back to def on failure.
func ParseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
