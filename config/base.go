package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigPathEnv names an optional yaml, toml, edn or .env file read before
// the environment.
const ConfigPathEnv = "CONFIG_PATH"

type ServerConfig struct {
	Server `yaml:"server"`
	Pow    `yaml:"pow"`
}

type ClientConfig struct {
	Client `yaml:"client"`
	Pow    `yaml:"pow"`
}

func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPowConfig reads only the puzzle rules.
func LoadPowConfig() (*Pow, error) {
	cfg := &Pow{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(cfg interface{}) error {
	var err error
	if path := os.Getenv(ConfigPathEnv); path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return nil
}

// Usage returns a description of the environment variables cfg reads.
func Usage(cfg interface{}) string {
	header := fmt.Sprintf("Configuration is read from the environment, or from the file named by %s.", ConfigPathEnv)
	usage, err := cleanenv.GetDescription(cfg, &header)
	if err != nil {
		return header
	}
	return usage
}
