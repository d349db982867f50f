package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Backend struct {
		BaseURL  string        `mapstructure:"base_url"`
		Timeout  time.Duration `mapstructure:"timeout"`
		Contract string        `mapstructure:"contract"` // "auto", "v1" or "v2"
	} `mapstructure:"backend"`

	Server struct {
		Addr    string `mapstructure:"addr"`
		Port    string `mapstructure:"port"`
		GinMode string `mapstructure:"gin_mode"`
	} `mapstructure:"server"`

	PixKey struct {
		Fallback string `mapstructure:"fallback"` // "unknown" or "random"
	} `mapstructure:"pixkey"`

	Detect struct {
		Delay     time.Duration `mapstructure:"delay"`
		MinLength int           `mapstructure:"min_length"`
	} `mapstructure:"detect"`

	Account struct {
		Holder       string `mapstructure:"holder"`
		BalanceCents int64  `mapstructure:"balance_cents"`
	} `mapstructure:"account"`

	History struct {
		MaxRecords int `mapstructure:"max_records"`
	} `mapstructure:"history"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // "text" or "json"
	} `mapstructure:"log"`
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:8080/api")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.contract", "auto")

	v.SetDefault("server.addr", "localhost")
	v.SetDefault("server.port", "8081")
	v.SetDefault("server.gin_mode", "debug")

	v.SetDefault("pixkey.fallback", "unknown")

	v.SetDefault("detect.delay", 1500*time.Millisecond)
	v.SetDefault("detect.min_length", 3)

	v.SetDefault("account.holder", "Cliente Demo")
	v.SetDefault("account.balance_cents", 1234567)

	v.SetDefault("history.max_records", 500)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func LoadConfig() (*Config, error) {
	// Best-effort: a .env in the working directory feeds the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".") // Look for config.yaml in the current directory

	// PIXSHIELD_BACKEND_BASE_URL -> backend.base_url
	v.SetEnvPrefix("PIXSHIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist, defaults and env vars still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Unmarshal(v)
}

// Unmarshal decodes v into a Config.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &config, nil
}
