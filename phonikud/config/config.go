package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/inference"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/nikud"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Model      ModelConfig      `mapstructure:"model"`
	Tokenizer  TokenizerConfig  `mapstructure:"tokenizer"`
	Inference  InferenceConfig  `mapstructure:"inference"`
	Diacritics DiacriticsConfig `mapstructure:"diacritics"`
	Log        LogConfig        `mapstructure:"log"`
	CLI        CLIConfig        `mapstructure:"cli"`
}

// ModelConfig locates the model artifacts.
type ModelConfig struct {
	Path          string `mapstructure:"path"`
	TokenizerPath string `mapstructure:"tokenizerPath"`
}

// TokenizerConfig selects the tokenizer implementation.
type TokenizerConfig struct {
	Backend string `mapstructure:"backend"`
}

// InferenceConfig stores ONNX Runtime settings.
type InferenceConfig struct {
	ExecutionProvider string            `mapstructure:"executionProvider"`
	DeviceID          int               `mapstructure:"deviceID"`
	EPOptions         map[string]string `mapstructure:"epOptions"`
	IntraOpThreads    int               `mapstructure:"intraOpThreads"`
	InterOpThreads    int               `mapstructure:"interOpThreads"`
	SharedLibraryPath string            `mapstructure:"sharedLibraryPath"`
}

// DiacriticsConfig stores output rendering settings.
type DiacriticsConfig struct {
	MatresMark string `mapstructure:"matresMark"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CLIConfig stores settings for the command line host.
type CLIConfig struct {
	Jobs int `mapstructure:"jobs"`
}

// ONNXOptions converts the inference section to provider options.
func (c InferenceConfig) ONNXOptions() inference.ONNXOptions {
	return inference.ONNXOptions{
		ExecutionProvider: c.ExecutionProvider,
		DeviceID:          c.DeviceID,
		EPOptions:         c.EPOptions,
		IntraOpThreads:    c.IntraOpThreads,
		InterOpThreads:    c.InterOpThreads,
		SharedLibraryPath: c.SharedLibraryPath,
	}
}

// Options converts the diacritics section to rendering options.
func (c DiacriticsConfig) Options() nikud.Options {
	return nikud.Options{MatresMark: c.MatresMark}
}

// LoadConfig reads configuration from file or environment variables.
// An explicit configPath must exist; without one, a missing config file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		v.AddConfigPath(filepath.Join("etc", phonikud.DefaultAppName))
		v.AddConfigPath(phonikud.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Set default values
	v.SetDefault("model.path", phonikud.DefaultModelPath)
	v.SetDefault("model.tokenizerPath", phonikud.DefaultTokenizerPath)
	v.SetDefault("tokenizer.backend", "sugarme")
	v.SetDefault("inference.executionProvider", "cpu")
	v.SetDefault("inference.deviceID", 0)
	v.SetDefault("inference.intraOpThreads", 4)
	v.SetDefault("inference.interOpThreads", 0)
	v.SetDefault("inference.sharedLibraryPath", "")
	v.SetDefault("diacritics.matresMark", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("cli.jobs", 1)

	v.AutomaticEnv()                                   // Read in environment variables that match
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // model.tokenizerPath becomes MODEL_TOKENIZERPATH

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; defaults will be used.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}
