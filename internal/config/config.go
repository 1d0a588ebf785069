package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dotcommander/gradecast/internal/discovery"
	"github.com/dotcommander/gradecast/internal/grading"
)

// Config represents the gradecast configuration
type Config struct {
	Root           string   `mapstructure:"root"`
	Patterns       []string `mapstructure:"patterns"`
	FollowSymlinks bool     `mapstructure:"followSymlinks"`
	Format         string   `mapstructure:"format"`
	Output         string   `mapstructure:"output"`
	FailOn         string   `mapstructure:"failOn"`
	Quiet          bool     `mapstructure:"quiet"`
	Verbose        bool     `mapstructure:"verbose"`
	Color          bool     `mapstructure:"color"`
	// Hurdle is the default minimum percentage for a predicted assessment.
	Hurdle float64 `mapstructure:"hurdle"`
}

// ConfigFiles are tried in order in the working directory.
var ConfigFiles = []string{".gradecastrc.json", ".gradecastrc.yaml", ".gradecastrc.yml"}

// LoadConfig loads configuration from various sources
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("root", ".")
	viper.SetDefault("patterns", discovery.DefaultPatterns)
	viper.SetDefault("format", "console")
	viper.SetDefault("failOn", "error")
	viper.SetDefault("followSymlinks", false)
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("color", true)
	viper.SetDefault("hurdle", grading.DefaultHurdle)

	for _, path := range ConfigFiles {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	viper.SetEnvPrefix("GRADECAST")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.FailOn != "error" && config.FailOn != "warning" {
		return fmt.Errorf("invalid fail-on level: %s. Must be 'error' or 'warning'", config.FailOn)
	}

	if config.Hurdle < 0 || config.Hurdle > 100 {
		return fmt.Errorf("hurdle must be between 0 and 100, got %g", config.Hurdle)
	}

	return nil
}
