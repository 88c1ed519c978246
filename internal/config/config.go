package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

// AppConfig is built once at startup and passed by value; nothing mutates it afterwards.
type AppConfig struct {
	DiscordToken string `validate:"required"`
	IQAirAPIKey  string `validate:"required"`
	IQAirBaseURL string `validate:"required,url"`

	// CommandPrefix marks a chat message as a bot command.
	CommandPrefix string `validate:"required,max=5"`

	// Defaults used when a lookup names only a city.
	DefaultState   string `validate:"required"`
	DefaultCountry string `validate:"required"`

	HTTPTimeout    time.Duration `validate:"gt=0"`
	CommandTimeout time.Duration `validate:"gt=0"`

	// StatusInterval controls how often the bot presence is refreshed (0 = disabled).
	StatusInterval time.Duration `validate:"gte=0"`

	Port      string `validate:"required,numeric"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

// DefaultLocation returns the state/country pair used for single-argument lookups.
func (c AppConfig) DefaultLocation() airquality.Location {
	return airquality.Location{State: c.DefaultState, Country: c.DefaultCountry}
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (AppConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("IQAIR_BASE_URL", "https://api.airvisual.com/v2")
	v.SetDefault("COMMAND_PREFIX", "!")
	v.SetDefault("DEFAULT_STATE", "Baghdad")
	v.SetDefault("DEFAULT_COUNTRY", "Iraq")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("COMMAND_TIMEOUT", "30s")
	v.SetDefault("STATUS_INTERVAL", "30m")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := AppConfig{
		DiscordToken:   strings.TrimSpace(v.GetString("DISCORD_TOKEN")),
		IQAirAPIKey:    strings.TrimSpace(v.GetString("IQAIR_API_KEY")),
		IQAirBaseURL:   v.GetString("IQAIR_BASE_URL"),
		CommandPrefix:  v.GetString("COMMAND_PREFIX"),
		DefaultState:   v.GetString("DEFAULT_STATE"),
		DefaultCountry: v.GetString("DEFAULT_COUNTRY"),
		Port:           v.GetString("PORT"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	var err error
	if cfg.HTTPTimeout, err = parseDuration(v, "HTTP_TIMEOUT"); err != nil {
		return AppConfig{}, err
	}
	if cfg.CommandTimeout, err = parseDuration(v, "COMMAND_TIMEOUT"); err != nil {
		return AppConfig{}, err
	}
	if cfg.StatusInterval, err = parseDuration(v, "STATUS_INTERVAL"); err != nil {
		return AppConfig{}, err
	}

	if err := validate.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if strings.ContainsAny(cfg.CommandPrefix, " \t\n") {
		return AppConfig{}, fmt.Errorf("invalid configuration: COMMAND_PREFIX must not contain whitespace")
	}
	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
