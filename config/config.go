package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
}

type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type SessionConfig struct {
	TokenFile string `mapstructure:"token_file"`
}

// LoadConfig reads config.yaml from path, falling back to defaults when the
// file is absent. Environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("log.file", defaultStatePath("client.log"))
	viper.SetDefault("session.token_file", defaultStatePath("token"))

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func defaultStatePath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return name
	}
	return filepath.Join(dir, "japanese-game-code", name)
}
