package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the taskboard server and its dependencies.
type Config struct {
	// Listen is the address the taskboard server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Mongo holds the document database configuration.
	Mongo *MongoConfig `yaml:"mongo" mapstructure:"mongo"`
	// Session holds the session cookie configuration.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
	// Cache holds the task-list cache configuration.
	Cache *CacheConfig `yaml:"cache" mapstructure:"cache"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string `yaml:"uri" mapstructure:"uri"`
	// Database is the name of the database holding the users and tasks collections.
	Database string `yaml:"database" mapstructure:"database"`
}

// SessionConfig holds the session cookie settings.
type SessionConfig struct {
	// Secret is the key used to sign session cookies.
	Secret string `yaml:"secret" mapstructure:"secret"`
	// MaxAge is the maximum age of a session in seconds.
	MaxAge int `yaml:"max_age" mapstructure:"max_age"`
}

// CacheBackend selects the store backing the task-list cache.
type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

// CacheConfig holds the task-list cache configuration.
type CacheConfig struct {
	// Backend is the cache backend, either "memory" or "redis".
	Backend CacheBackend `yaml:"backend" mapstructure:"backend"`
	// RedisURL is the address of the redis server, required for the redis backend.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
	// TTL is the cache entry lifetime in seconds.
	TTL int `yaml:"ttl" mapstructure:"ttl"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		// Search for config in common locations
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.taskboard")
		v.AddConfigPath("/etc/taskboard")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with TASKBOARD_ prefix will override config file values")
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3000")
	v.SetDefault("log_level", "info")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "todos")

	v.SetDefault("session.max_age", 86400) // 24 hours

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 300)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c.Mongo == nil {
		return fmt.Errorf("missing mongo config")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo database name is required")
	}

	if c.Session == nil {
		return fmt.Errorf("missing session config")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("session max_age must be positive")
	}

	if c.Cache != nil {
		switch c.Cache.Backend {
		case CacheBackendMemory, "":
		case CacheBackendRedis:
			if c.Cache.RedisURL == "" {
				return fmt.Errorf("cache redis_url is required when the redis backend is selected")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
		}
	}

	return nil
}
