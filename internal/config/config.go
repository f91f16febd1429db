package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/screen"
	"github.com/spf13/viper"
)

type Config struct {
	Universe  UniverseConfig            `mapstructure:"universe"`
	Collector CollectorConfig           `mapstructure:"collector"`
	Screen    ScreenConfig              `mapstructure:"screen"`
	Export    ExportConfig              `mapstructure:"export"`
	Notifiers map[string]NotifierConfig `mapstructure:"notifiers"`
	LLM       LLMConfig                 `mapstructure:"llm"`
	Metrics   MetricsConfig             `mapstructure:"metrics"`
}

type UniverseConfig struct {
	Source string `mapstructure:"source"` // "wikipedia"
	Index  string `mapstructure:"index"`  // "sp500"
}

type CollectorConfig struct {
	Source    string        `mapstructure:"source"` // "yahoo"
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type ScreenConfig struct {
	MaxPE        float64 `mapstructure:"max_pe"`
	MaxForwardPE float64 `mapstructure:"max_forward_pe"`
	MaxPEG       float64 `mapstructure:"max_peg"`
	MinROE       float64 `mapstructure:"min_roe"`
	MinUpside    float64 `mapstructure:"min_upside"`
	Concurrency  int     `mapstructure:"concurrency"`
}

// Thresholds converts the config values into screen thresholds.
func (s ScreenConfig) Thresholds() screen.Thresholds {
	return screen.Thresholds{
		MaxPE:        s.MaxPE,
		MaxForwardPE: s.MaxForwardPE,
		MaxPEG:       s.MaxPEG,
		MinROE:       s.MinROE,
		MinUpside:    s.MinUpside,
	}
}

type ExportConfig struct {
	Type string   `mapstructure:"type"` // "dir" or "s3"
	Path string   `mapstructure:"path"` // for dir
	S3   S3Config `mapstructure:"s3"`   // for S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

type NotifierConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Telegram notifier fields
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	// Webhook notifier fields
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
}

type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with the stock screening defaults.
func Defaults() *Config {
	return &Config{
		Universe: UniverseConfig{
			Source: "wikipedia",
			Index:  string(core.IndexSP500),
		},
		Collector: CollectorConfig{
			Source:  "yahoo",
			Timeout: 10 * time.Second,
		},
		Screen: ScreenConfig{
			MaxPE:        18,
			MaxForwardPE: 15,
			MaxPEG:       1.2,
			MinROE:       8,
			MinUpside:    15,
			Concurrency:  1,
		},
		Export: ExportConfig{
			Type: "dir",
			Path: ".",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9090",
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Universe.Index == "" {
		return core.WrapError(core.ErrConfigMissing, fmt.Errorf("universe index is required"))
	}

	if err := c.Screen.Thresholds().Validate(); err != nil {
		return err
	}
	if c.Screen.Concurrency < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("concurrency must be at least 1, got %d", c.Screen.Concurrency))
	}

	switch c.Export.Type {
	case "dir":
		if c.Export.Path == "" {
			return core.WrapError(core.ErrConfigMissing, fmt.Errorf("export path required for dir export"))
		}
	case "s3":
		if c.Export.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing, fmt.Errorf("s3 bucket required for s3 export"))
		}
	case "":
		// export disabled
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown export type: %s", c.Export.Type))
	}

	// LLM validation - if provider set, check config exists
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "claude":
			if c.LLM.Claude.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("claude api_key required when provider is claude"))
			}
		case "openai":
			if c.LLM.OpenAI.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("openai api_key required when provider is openai"))
			}
		case "ollama":
			if c.LLM.Ollama.Endpoint == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("ollama endpoint required when provider is ollama"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown LLM provider: %s", c.LLM.Provider))
		}
	}

	return nil
}
