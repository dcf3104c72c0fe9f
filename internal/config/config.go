package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/insightdelivered/ocr-transaction-parser/internal/parser"
)

// Config holds application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Output OutputConfig `mapstructure:"output"`
	Banks  BanksConfig  `mapstructure:"banks"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	CSV bool `mapstructure:"csv"`
}

// BanksConfig overrides the built-in bank tables. Empty lists keep the
// defaults.
type BanksConfig struct {
	Known    []string `mapstructure:"known"`
	Regional []string `mapstructure:"regional"`
}

// Load reads configuration from file and env. Env var overrides use prefix OCRTX_.
// The file is OCRTX_CONFIG when set, otherwise ./ocrtx.toml if present.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("output.csv", false)
	v.SetDefault("banks.known", []string{})
	v.SetDefault("banks.regional", []string{})

	v.SetConfigType("toml")

	cfgPath := os.Getenv("OCRTX_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("ocrtx")
	}

	v.SetEnvPrefix("OCRTX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine; an explicit or broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Tables returns the parser tables with any configured overrides applied.
func (c Config) Tables() parser.Tables {
	t := parser.DefaultTables()
	if len(c.Banks.Known) > 0 {
		t.KnownBanks = c.Banks.Known
	}
	if len(c.Banks.Regional) > 0 {
		regional := make([]string, len(c.Banks.Regional))
		for i, name := range c.Banks.Regional {
			regional[i] = strings.ToLower(strings.TrimSpace(name))
		}
		t.RegionalBanks = regional
	}
	return t
}
