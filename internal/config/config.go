package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Apper    ApperConfig    `yaml:"apper"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host       string  `yaml:"host"`
	Port       string  `yaml:"port"`
	Mode       string  `yaml:"mode"` // debug, release, test
	WriteRPS   float64 `yaml:"write_rps"`   // per-client write rate
	WriteBurst int     `yaml:"write_burst"` // per-client write burst
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// StoreConfig selects the issue store backing the API.
type StoreConfig struct {
	Driver        string `yaml:"driver"` // memory, database, remote
	Seed          bool   `yaml:"seed"`
	LatencyMS     int    `yaml:"latency_ms"`     // simulated op latency, memory driver only
	RetentionDays int    `yaml:"retention_days"` // activity log retention
}

// ApperConfig holds connection settings for the remote record store.
type ApperConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	ProjectID string `yaml:"project_id"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverDatabase = "database"
	StoreDriverRemote   = "remote"
)

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       "8080",
			Mode:       "debug",
			WriteRPS:   10,
			WriteBurst: 20,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "trackflow.db",
		},
		Store: StoreConfig{
			Driver:        StoreDriverDatabase,
			Seed:          true,
			RetentionDays: 30,
		},
		Apper: ApperConfig{
			BaseURL: "https://api.apper.io/v1",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if driver := os.Getenv("STORE_DRIVER"); driver != "" {
		c.Store.Driver = driver
	}
	if seed := os.Getenv("STORE_SEED"); seed != "" {
		if v, err := strconv.ParseBool(seed); err == nil {
			c.Store.Seed = v
		}
	}
	if latency := os.Getenv("STORE_LATENCY_MS"); latency != "" {
		if v, err := strconv.Atoi(latency); err == nil && v >= 0 {
			c.Store.LatencyMS = v
		}
	}
	if days := os.Getenv("STORE_RETENTION_DAYS"); days != "" {
		if v, err := strconv.Atoi(days); err == nil && v > 0 {
			c.Store.RetentionDays = v
		}
	}
	if baseURL := os.Getenv("APPER_BASE_URL"); baseURL != "" {
		c.Apper.BaseURL = baseURL
	}
	if apiKey := os.Getenv("APPER_API_KEY"); apiKey != "" {
		c.Apper.APIKey = apiKey
	}
	if projectID := os.Getenv("APPER_PROJECT_ID"); projectID != "" {
		c.Apper.ProjectID = projectID
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverDatabase:
	case StoreDriverRemote:
		if c.Apper.BaseURL == "" {
			return fmt.Errorf("apper.base_url is required for the remote store")
		}
	default:
		return fmt.Errorf("unknown store driver: %s", c.Store.Driver)
	}
	if c.Store.RetentionDays <= 0 {
		c.Store.RetentionDays = 30
	}
	if c.Server.WriteRPS <= 0 {
		c.Server.WriteRPS = 10
	}
	if c.Server.WriteBurst <= 0 {
		c.Server.WriteBurst = 20
	}
	return nil
}
