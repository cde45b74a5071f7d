package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()

	setupViperConfig(v, configFile)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() {
	if err := gotenv.Load(); err != nil {
		// .env file not found, that's okay - continue with other sources
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}
}

// setupViperConfig configures viper with file paths, defaults and the
// environment variable bindings
func setupViperConfig(v *viper.Viper, configFile string) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if home := os.Getenv("HOME"); len(home) > 0 {
		v.AddConfigPath(home + "/.config/azure-export")
	}

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	setDefaults(v)

	v.SetEnvPrefix("AZEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "./output")
	v.SetDefault("format", FormatMarkdown)
	v.SetDefault("non_interactive", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, everything has a default
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !config.ValidFormat() {
		return nil, fmt.Errorf("unsupported format %q, expected json, yaml or markdown", config.Format)
	}

	return &config, nil
}

func setupLogging(config *Config) error {
	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format": config.Logging.Format,
		}).Warn("Unknown log format")
	}

	return nil
}
