// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for asset-depreciation.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Report  ReportConfig  `yaml:"report,omitempty"`
	Storage StorageConfig `yaml:"storage,omitempty"`
	Assets  []AssetConfig `yaml:"assets"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv, json, xlsx, pdf
	Locale   string `yaml:"locale,omitempty"`   // BCP 47, e.g. en-US
	Currency string `yaml:"currency,omitempty"` // ISO 4217, e.g. USD
}

// ReportConfig selects the year aggregated by the report command.
type ReportConfig struct {
	Year int `yaml:"year,omitempty"`
}

// StorageConfig selects where asset records are kept.
type StorageConfig struct {
	Driver string `yaml:"driver,omitempty"` // memory, sqlite
	Path   string `yaml:"path,omitempty"`
}

// LoadEnv loads environment variables from a dotenv file. A missing file is
// not an error.
func LoadEnv(envFile string) error {
	if envFile == "" {
		envFile = constants.DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed loading env file %s: %w", envFile, err)
	}
	return nil
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with ASSETDEP_
// override file values, e.g. ASSETDEP_OUTPUT_FORMAT=csv.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r, applying the
// same defaults and environment overrides as LoadConfiguration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.locale", constants.DefaultLocale)
	v.SetDefault("output.currency", constants.DefaultCurrency)
	v.SetDefault("storage.driver", constants.StorageDriverMemory)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}
