package flock

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrInvalidConfig is wrapped by every Validate failure.
	ErrInvalidConfig = errors.New("invalid flock config")
	// ErrUnsupportedConfigFormat is returned by LoadConfig for unknown file extensions.
	ErrUnsupportedConfigFormat = errors.New("unsupported config format")
)

//go:embed flock.schema.json
var configSchema string

// Config holds the rule constants of a simulation. It is fixed once the
// flock is built: New copies it and nothing updates it afterwards.
type Config struct {
	// Population
	BoidCount  int     `json:"boidCount" toml:"boid_count"`
	BoidRadius float64 `json:"boidRadius" toml:"boid_radius"` // drawing radius, unit square coordinates

	// Perception
	VisionAngle float64 `json:"visionAngle" toml:"vision_angle"` // radians, compared to an unsigned angle in [0, Pi]
	CrowdRadius float64 `json:"crowdRadius" toml:"crowd_radius"` // comfort distance kept from each neighbor
	FlockRadius float64 `json:"flockRadius" toml:"flock_radius"` // neighbors farther than this are ignored

	// Rule strengths
	AccelFactor   float64 `json:"accelFactor" toml:"accel_factor"`       // cohesion & separation
	AlignFactor   float64 `json:"alignFactor" toml:"align_factor"`       // alignment
	AloneVel      float64 `json:"aloneVel" toml:"alone_vel"`             // cruising speed
	KeepVelFactor float64 `json:"keepVelFactor" toml:"keep_vel_factor"` // pull toward cruising speed
}

func DefaultConfig() Config {
	return Config{
		BoidCount:     50,
		BoidRadius:    0.01,
		VisionAngle:   2.0,
		CrowdRadius:   0.1,
		FlockRadius:   0.2,
		AccelFactor:   10.0,
		AlignFactor:   0.5,
		AloneVel:      0.5,
		KeepVelFactor: 10.0,
	}
}

// Validate reports the first constant that would make the simulation meaningless.
func (c Config) Validate() error {
	if c.BoidCount <= 0 {
		return fmt.Errorf("%w: boidCount must be positive, got %d", ErrInvalidConfig, c.BoidCount)
	}
	fields := []struct {
		name        string
		value       float64
		nonNegative bool
	}{
		{"boidRadius", c.BoidRadius, true},
		{"visionAngle", c.VisionAngle, true},
		{"crowdRadius", c.CrowdRadius, true},
		{"flockRadius", c.FlockRadius, true},
		{"accelFactor", c.AccelFactor, false},
		{"alignFactor", c.AlignFactor, false},
		{"aloneVel", c.AloneVel, true},
		{"keepVelFactor", c.KeepVelFactor, false},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfig, f.name, f.value)
		}
		if f.nonNegative && f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}

// LoadConfig reads a .json or .toml file on top of DefaultConfig.
// JSON files are validated against the embedded schema before decoding.
func LoadConfig(configFile string) (Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(configFile)); ext {
	case ".json":
		cfg, err = ParseJSONConfig(b)
	case ".toml":
		cfg, err = ParseTOMLConfig(b)
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", configFile, err)
	}
	return cfg, nil
}

// ParseJSONConfig validates b against the flock schema and decodes it over the defaults.
func ParseJSONConfig(b []byte) (Config, error) {
	sch, err := jsonschema.CompileString("flock.schema.json", configSchema)
	if err != nil {
		return Config{}, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return Config{}, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

// ParseTOMLConfig decodes b over the defaults; keys missing from b keep their default value.
func ParseTOMLConfig(b []byte) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(b), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
	}
	return cfg, cfg.Validate()
}
