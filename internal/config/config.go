package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Environment string `json:"environment"`
	Server      struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"server"`
	MongoDB struct {
		Enabled  bool   `json:"enabled"`
		URI      string `json:"uri"`
		Database string `json:"database"`
	} `json:"mongodb"`
	Frontend struct {
		URL string `json:"url"`
	} `json:"frontend"`
	Session struct {
		Secret     string `json:"secret"`
		TTLMinutes int    `json:"ttlMinutes"`
	} `json:"session"`
	Engine struct {
		DefaultLevel int    `json:"defaultLevel"`
		SearchTimeMs int    `json:"searchTimeMs"` // soft budget per AI move
		BookPath     string `json:"bookPath"`
		BookMaxDepth int    `json:"bookMaxDepth"`
	} `json:"engine"`
}

func Load(env string) (*Config, error) {
	configDir := os.Getenv("CONFIG_DIR")
	if configDir == "" {
		// Default to configs directory relative to working directory
		configDir = "configs"
	}

	filename := fmt.Sprintf("config.%s.json", env)
	configPath := filepath.Join(configDir, filename)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Replace environment variables in the config
	configStr := expandEnvVars(string(data))

	var cfg Config
	if err := json.Unmarshal([]byte(configStr), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Environment = env
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 120
	}
	if c.Engine.DefaultLevel == 0 {
		c.Engine.DefaultLevel = LevelDefault
	}
	if c.Engine.SearchTimeMs == 0 {
		c.Engine.SearchTimeMs = 1500
	}
	if c.Engine.BookMaxDepth == 0 {
		c.Engine.BookMaxDepth = 3
	}
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}

func GetEnv() string {
	env := os.Getenv("CHESS_ENV")
	if env == "" {
		return "dev"
	}
	return env
}
