// Package config loads the application configuration from an optional
// srms.yml file and SRMS_* environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	// DataFile is the delimited backing file, the durable source of truth
	// between runs.
	DataFile string `mapstructure:"data_file"`

	// ExportFile is the default path for CSV exports.
	ExportFile string `mapstructure:"export_file"`

	// ReportFile is the default path for document (PDF) exports.
	ReportFile string `mapstructure:"report_file"`

	LogLevel string `mapstructure:"log_level"`

	// StrictLoad aborts startup when the backing file contains malformed
	// lines instead of skipping them with a warning.
	StrictLoad bool `mapstructure:"strict_load"`
}

var defaultConfig = Config{
	DataFile:   "students.csv",
	ExportFile: "students_export.csv",
	ReportFile: "students_report.pdf",
	LogLevel:   "info",
	StrictLoad: false,
}

func init() {
	_ = viper.BindEnv("data_file", "SRMS_DATA_FILE")
	_ = viper.BindEnv("export_file", "SRMS_EXPORT_FILE")
	_ = viper.BindEnv("report_file", "SRMS_REPORT_FILE")
	_ = viper.BindEnv("log_level", "SRMS_LOG_LEVEL")
	_ = viper.BindEnv("strict_load", "SRMS_STRICT_LOAD")
}

// Load reads the configuration. A missing config file is not an error; the
// defaults and environment are used.
func Load() (*Config, error) {
	viper.SetConfigName("srms")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("data_file", defaultConfig.DataFile)
	viper.SetDefault("export_file", defaultConfig.ExportFile)
	viper.SetDefault("report_file", defaultConfig.ReportFile)
	viper.SetDefault("log_level", defaultConfig.LogLevel)
	viper.SetDefault("strict_load", defaultConfig.StrictLoad)

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := new(Config)
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
