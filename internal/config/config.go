// Package config loads service configuration from an optional YAML file
// followed by environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"logLevel"`
	Port        string `yaml:"port"`

	Store StoreConfig `yaml:"store"`
	Redis RedisConfig `yaml:"redis"`
	Auth  AuthConfig  `yaml:"auth"`
	AI    AIConfig    `yaml:"ai"`
	CORS  []string    `yaml:"corsAllowedOrigins"`
}

type StoreConfig struct {
	Driver     string `yaml:"driver"` // mongo or sqlite
	MongoURI   string `yaml:"mongoUri"`
	MongoDB    string `yaml:"mongoDb"`
	SQLitePath string `yaml:"sqlitePath"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"` // empty disables caching and rate limiting
}

type AuthConfig struct {
	HostUsername string `yaml:"hostUsername"`
	HostPassword string `yaml:"-"`
	JWTSecret    string `yaml:"-"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Port:        "8080",
		Store: StoreConfig{
			Driver:     StoreMongo,
			MongoURI:   "mongodb://localhost:27017",
			MongoDB:    "surveypulse",
			SQLitePath: "surveypulse.db",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Auth: AuthConfig{
			HostUsername: "host",
		},
		AI:   *DefaultAIConfig(),
		CORS: []string{"http://localhost:3000"},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment
// overrides. A missing file is an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Environment = getEnvOrDefault("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.Port = getEnvOrDefault("PORT", c.Port)

	c.Store.Driver = getEnvOrDefault("STORE_DRIVER", c.Store.Driver)
	c.Store.MongoURI = getEnvOrDefault("MONGO_URI", c.Store.MongoURI)
	c.Store.MongoDB = getEnvOrDefault("MONGO_DB", c.Store.MongoDB)
	c.Store.SQLitePath = getEnvOrDefault("SQLITE_PATH", c.Store.SQLitePath)

	// Remove redis:// prefix if present
	c.Redis.Addr = strings.TrimPrefix(getEnvOrDefault("REDIS_URI", c.Redis.Addr), "redis://")

	c.Auth.HostUsername = getEnvOrDefault("HOST_USERNAME", c.Auth.HostUsername)
	c.Auth.HostPassword = getEnvOrDefault("HOST_PASSWORD", c.Auth.HostPassword)
	c.Auth.JWTSecret = getEnvOrDefault("JWT_SECRET", c.Auth.JWTSecret)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORS = append(c.CORS, o)
			}
		}
	}

	c.AI.applyEnv()
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo, StoreSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.AI.MaxQuestionCount < 1 {
		return errors.New("ai.maxQuestionCount must be at least 1")
	}
	if c.AI.TimeoutMS <= 0 {
		return errors.New("ai.timeoutMs must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}
