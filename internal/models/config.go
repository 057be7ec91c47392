package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	GoogleAPIKey  string `mapstructure:"google_api_key"`
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	SummaryModel  string `mapstructure:"summary_model"`

	Budget             float64  `mapstructure:"budget"`
	RadiusMeters       int      `mapstructure:"radius_meters"`
	Preferences        []string `mapstructure:"preferences"`
	ExcludeNoPriceInfo bool     `mapstructure:"exclude_no_price_info"`

	// PageDelay is how long to wait before a freshly issued next-page
	// token becomes valid upstream.
	PageDelay time.Duration `mapstructure:"page_delay"`

	ListenAddr     string   `mapstructure:"listen_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	LogLevel       string   `mapstructure:"log_level"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath(".")
		viper.SetConfigName("tablescout")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	// Credentials usually arrive through the environment rather than flags.
	viper.BindEnv("google_api_key", "GOOGLE_MAPS_API_KEY", "GOOGLE_API_KEY")
	viper.BindEnv("openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai_base_url", "OPENAI_BASE_URL")

	viper.SetDefault("budget", 50)
	viper.SetDefault("radius_meters", 2000)
	viper.SetDefault("exclude_no_price_info", true)
	viper.SetDefault("page_delay", "2s")
	viper.SetDefault("summary_model", "gpt-4o-mini")
	viper.SetDefault("listen_addr", ":3003")
	viper.SetDefault("log_level", "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// Validate reports missing or unusable settings before any client is built.
// The messages carry remediation steps because a bad key otherwise only
// surfaces as an opaque upstream 403.
func (cfg *Config) Validate() error {
	if cfg.GoogleAPIKey == "" {
		return errors.New("missing Google Maps API key: create one at https://console.cloud.google.com/apis/credentials (enable the Places API first), then set GOOGLE_MAPS_API_KEY or pass --google-api-key")
	}
	if cfg.OpenAIAPIKey == "" {
		return errors.New("missing OpenAI API key: create one at https://platform.openai.com/api-keys, then set OPENAI_API_KEY or pass --openai-api-key")
	}
	if cfg.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %v", cfg.Budget)
	}
	if cfg.RadiusMeters < 1 || cfg.RadiusMeters > 50000 {
		return fmt.Errorf("radius_meters must be between 1 and 50000, got %d", cfg.RadiusMeters)
	}
	return nil
}
