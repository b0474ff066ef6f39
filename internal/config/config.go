// Package config provides Viper-based hierarchical configuration for the
// statement ingestion tool: defaults, then an optional YAML config file,
// then INGEST_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Dedup struct {
		// Strict keys intra-batch duplicates on (date, time, amount) only;
		// the default mode also folds in the merchant or memo.
		Strict bool `mapstructure:"strict" yaml:"strict"`
		// FuzzyThreshold is the minimum fuzzy score reported as a likely
		// duplicate of an already-persisted record.
		FuzzyThreshold float64 `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	} `mapstructure:"dedup" yaml:"dedup"`

	Classifier struct {
		// SampleRows caps how many data rows the content-based fallback
		// inspects per column.
		SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`
	} `mapstructure:"classifier" yaml:"classifier"`

	Data struct {
		CategoriesFile   string `mapstructure:"categories_file" yaml:"categories_file"`
		RulesFile        string `mapstructure:"rules_file" yaml:"rules_file"`
		TransactionsFile string `mapstructure:"transactions_file" yaml:"transactions_file"`
	} `mapstructure:"data" yaml:"data"`
}

// Load initializes Viper configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.statement-ingest")
	v.AddConfigPath(".statement-ingest")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INGEST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars; a broken config file
			// should not block an import.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("dedup.strict", false)
	v.SetDefault("dedup.fuzzy_threshold", 0.95)

	v.SetDefault("classifier.sample_rows", 30)

	v.SetDefault("data.categories_file", "categories.yaml")
	v.SetDefault("data.rules_file", "rules.yaml")
	v.SetDefault("data.transactions_file", "transactions.yaml")
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Dedup.FuzzyThreshold < 0.0 || config.Dedup.FuzzyThreshold > 1.0 {
		return fmt.Errorf("dedup.fuzzy_threshold must be between 0.0 and 1.0, got: %f", config.Dedup.FuzzyThreshold)
	}

	if config.Classifier.SampleRows < 1 {
		return fmt.Errorf("classifier.sample_rows must be positive, got: %d", config.Classifier.SampleRows)
	}

	return nil
}
