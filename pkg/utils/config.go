package utils

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// DEFAULTS holds the fallback value of every setting the states service reads
var DEFAULTS = map[string]string{
	"API_PORT":              "8080",
	"CORS_ALLOWED_ORIGINS":  "*",
	"FUNFACTS_STORE":        "auto",
	"LIST_CONCURRENCY":      "8",
	"MYSQL_HOST":            "localhost",
	"MYSQL_PORT":            "3306",
	"STATES_DATA_S3_KEY":    "statesData.json",
	"STATES_DATA_S3_REGION": "us-east-1",
	"STATES_API_URL":        "http://localhost:8080",
}

// Config provides a thread-safe view over environment settings with typed accessors
type Config struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewConfig creates a new Config instance with the provided key-value pairs
func NewConfig(values map[string]string) *Config {
	config := &Config{
		values: make(map[string]string),
	}

	maps.Copy(config.values, values)

	return config
}

// NewConfigFromEnv loads the given .env files and the process environment, filling unset keys from DEFAULTS
func NewConfigFromEnv(files ...string) *Config {
	values := maps.Clone(DEFAULTS)
	for key, value := range LoadEnv(files...) {
		if value != "" {
			values[key] = value
		}
	}
	return NewConfig(values)
}

// Get retrieves a configuration value by key
// Returns empty string if key doesn't exist
func (c *Config) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// GetWithDefault retrieves a configuration value by key with a fallback default
func (c *Config) GetWithDefault(key, defaultValue string) string {
	if value := c.Get(key); value != "" {
		return value
	}
	return defaultValue
}

// GetBool retrieves a configuration value as a boolean
// Returns false if key doesn't exist or cannot be parsed as boolean
func (c *Config) GetBool(key string) bool {
	value := strings.ToLower(c.Get(key))
	if value == "" {
		return false
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		// Handle common boolean representations
		switch value {
		case "yes", "on", "enabled":
			return true
		default:
			return false
		}
	}
	return parsed
}

// GetIntWithDefault retrieves a configuration value as an integer.
// The default is returned when the key is unset or not a valid integer
func (c *Config) GetIntWithDefault(key string, defaultValue int) int {
	value := c.Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetOneOf retrieves a lowercased value that must be one of allowed. Unset keys return the default
func (c *Config) GetOneOf(key, defaultValue string, allowed ...string) (string, error) {
	value := strings.ToLower(c.GetWithDefault(key, defaultValue))
	if !slices.Contains(allowed, value) {
		return "", fmt.Errorf("%s must be one of %s, got '%s'", key, strings.Join(allowed, ", "), value)
	}
	return value, nil
}
