package utils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with nil values", func(t *testing.T) {
		config := NewConfig(nil)
		require.NotNil(t, config)
		assert.Empty(t, config.Get("API_PORT"))
	})

	t.Run("with values", func(t *testing.T) {
		values := map[string]string{
			"API_PORT":       "9090",
			"FUNFACTS_STORE": "redis",
		}
		config := NewConfig(values)

		assert.Equal(t, "9090", config.Get("API_PORT"))
		assert.Equal(t, "redis", config.Get("FUNFACTS_STORE"))

		// Verify it's a copy, not a reference
		values["API_PORT"] = "modified"
		assert.Equal(t, "9090", config.Get("API_PORT"))
	})
}

func TestNewConfigFromEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("STATES_CONFIG_TEST_KEY=from_file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STATES_CONFIG_TEST_KEY") })

	t.Setenv("LIST_CONCURRENCY", "")
	t.Setenv("API_PORT", "9191")

	config := NewConfigFromEnv(envFile)
	require.NotNil(t, config)

	t.Run("reads the env file", func(t *testing.T) {
		assert.Equal(t, "from_file", config.Get("STATES_CONFIG_TEST_KEY"))
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		assert.Equal(t, "9191", config.Get("API_PORT"))
	})

	t.Run("empty environment values keep defaults", func(t *testing.T) {
		assert.Equal(t, DEFAULTS["LIST_CONCURRENCY"], config.Get("LIST_CONCURRENCY"))
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		config := NewConfigFromEnv(filepath.Join(t.TempDir(), "missing.env"))
		assert.Equal(t, "9191", config.Get("API_PORT"))
	})
}

func TestConfigGetWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"STATES_DATA_S3_KEY": "data.json",
		"STATES_DATA_PATH":   "",
	})

	assert.Equal(t, "data.json", config.GetWithDefault("STATES_DATA_S3_KEY", "statesData.json"))
	assert.Equal(t, "fallback", config.GetWithDefault("STATES_DATA_PATH", "fallback"))
	assert.Equal(t, "fallback", config.GetWithDefault("MISSING", "fallback"))
}

func TestConfigGetBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"on", true},
		{"enabled", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"garbage", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			config := NewConfig(map[string]string{"STATES_DATA_S3_PATH_STYLE": tt.value})
			assert.Equal(t, tt.expected, config.GetBool("STATES_DATA_S3_PATH_STYLE"))
		})
	}

	t.Run("missing key", func(t *testing.T) {
		assert.False(t, NewConfig(nil).GetBool("STATES_DATA_S3_PATH_STYLE"))
	})
}

func TestConfigGetIntWithDefault(t *testing.T) {
	config := NewConfig(map[string]string{
		"LIST_CONCURRENCY": "16",
		"BAD_INT":          "sixteen",
		"EMPTY":            "",
	})

	assert.Equal(t, 16, config.GetIntWithDefault("LIST_CONCURRENCY", 8))
	assert.Equal(t, 8, config.GetIntWithDefault("BAD_INT", 8))
	assert.Equal(t, 8, config.GetIntWithDefault("EMPTY", 8))
	assert.Equal(t, 8, config.GetIntWithDefault("MISSING", 8))
}

func TestConfigGetOneOf(t *testing.T) {
	allowed := []string{"auto", "mysql", "redis", "memory"}

	t.Run("accepts allowed values case-insensitively", func(t *testing.T) {
		config := NewConfig(map[string]string{"FUNFACTS_STORE": "Redis"})
		value, err := config.GetOneOf("FUNFACTS_STORE", "auto", allowed...)
		require.NoError(t, err)
		assert.Equal(t, "redis", value)
	})

	t.Run("uses the default when unset", func(t *testing.T) {
		value, err := NewConfig(nil).GetOneOf("FUNFACTS_STORE", "auto", allowed...)
		require.NoError(t, err)
		assert.Equal(t, "auto", value)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		config := NewConfig(map[string]string{"FUNFACTS_STORE": "postgres"})
		_, err := config.GetOneOf("FUNFACTS_STORE", "auto", allowed...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FUNFACTS_STORE")
		assert.Contains(t, err.Error(), "postgres")
	})
}

func TestConfigThreadSafety(t *testing.T) {
	values := map[string]string{"LIST_CONCURRENCY": "8"}

	const numGoroutines = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	// Readers share one config while others build new ones from the same map
	config := NewConfig(values)
	for i := range numGoroutines {
		go func(id int) {
			defer wg.Done()
			for range 100 {
				if id%2 == 0 {
					NewConfig(values)
				}
				config.GetIntWithDefault("LIST_CONCURRENCY", 4)
				config.GetBool("STATES_DATA_S3_PATH_STYLE")
				config.GetWithDefault("REDIS_URL", "")
			}
		}(i)
	}

	wg.Wait()
	assert.Equal(t, 8, config.GetIntWithDefault("LIST_CONCURRENCY", 4))
}
