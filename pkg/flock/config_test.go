package flock

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50, cfg.BoidCount)
	assert.Equal(t, 2.0, cfg.VisionAngle)
	assert.Equal(t, 0.1, cfg.CrowdRadius)
	assert.Equal(t, 0.2, cfg.FlockRadius)
	assert.Equal(t, 0.5, cfg.AloneVel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"No boids", func(c *Config) { c.BoidCount = 0 }},
		{"Negative crowd radius", func(c *Config) { c.CrowdRadius = -0.1 }},
		{"Negative vision angle", func(c *Config) { c.VisionAngle = -1 }},
		{"NaN align factor", func(c *Config) { c.AlignFactor = math.NaN() }},
		{"Infinite flock radius", func(c *Config) { c.FlockRadius = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("Negative factors are allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AlignFactor = -0.5
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeFile(t, "flock.json", `{"boidCount": 120, "visionAngle": 3.0}`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 120, cfg.BoidCount)
	assert.Equal(t, 3.0, cfg.VisionAngle)
	// untouched keys keep their defaults
	assert.Equal(t, DefaultConfig().KeepVelFactor, cfg.KeepVelFactor)
}

func TestLoadConfig_JSONRejectedBySchema(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown key", `{"boidCounts": 10}`},
		{"Zero boids", `{"boidCount": 0}`},
		{"Fractional count", `{"boidCount": 1.5}`},
		{"Wrong type", `{"flockRadius": "far"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "flock.json", tt.content))
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeFile(t, "flock.toml", "boid_count = 80\nalign_factor = 0.25\n")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 80, cfg.BoidCount)
	assert.Equal(t, 0.25, cfg.AlignFactor)
	assert.Equal(t, DefaultConfig().FlockRadius, cfg.FlockRadius)
}

func TestLoadConfig_TOMLErrors(t *testing.T) {
	t.Run("Unknown key", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "flock.toml", "boids = 3\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Invalid value", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "flock.toml", "crowd_radius = -1.0\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "flock.toml", "boid_count = \n"))
		assert.ErrorContains(t, err, "failed to decode config toml")
	})
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("Unsupported extension", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "flock.yaml", "boidCount: 3\n"))
		assert.ErrorIs(t, err, ErrUnsupportedConfigFormat)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadConfig_ShippedConfigs(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "flock.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig(filepath.Join("..", "..", "configs", "flock.json"))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.BoidCount)
	assert.Equal(t, 0.15, cfg.FlockRadius)
}
