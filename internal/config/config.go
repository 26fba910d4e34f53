// Package config loads and validates cadence's YAML configuration.
//
// The file lives at ~/.cadence/cadence.yaml by default and is created
// with DefaultConfig on first run. Besides runtime knobs it carries the
// full model definition: every linguistic variable, its universe and its
// membership shapes, plus the score-to-genre thresholds.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	ShapeTriangular  = "triangular"
	ShapeTrapezoidal = "trapezoidal"
)

// Config is the root of cadence.yaml.
type Config struct {
	DataDir      string      `yaml:"data_dir" json:"data_dir" validate:"required"`
	LogLevel     string      `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	SampleSize   int         `yaml:"sample_size" json:"sample_size" validate:"gte=1,lte=20"`
	CacheSize    int         `yaml:"cache_size" json:"cache_size" validate:"gte=0"`
	BatchWorkers int         `yaml:"batch_workers" json:"batch_workers" validate:"gte=1,lte=64"`
	Model        ModelDef    `yaml:"model" json:"model"`
	Thresholds   []Threshold `yaml:"thresholds" json:"thresholds" validate:"required,min=1,dive"`
}

// ModelDef describes the inference model's variables.
type ModelDef struct {
	Inputs []VariableDef `yaml:"inputs" json:"inputs" validate:"required,min=1,dive"`
	Output VariableDef   `yaml:"output" json:"output"`
}

// VariableDef describes one linguistic variable.
type VariableDef struct {
	Name  string    `yaml:"name" json:"name" validate:"required"`
	Min   float64   `yaml:"min" json:"min"`
	Max   float64   `yaml:"max" json:"max" validate:"gtfield=Min"`
	Step  float64   `yaml:"step" json:"step" validate:"gt=0"`
	Terms []TermDef `yaml:"terms" json:"terms" validate:"required,min=1,dive"`
}

// TermDef describes one membership function. Triangular shapes take
// three knots, trapezoidal shapes four.
type TermDef struct {
	Name   string    `yaml:"name" json:"name" validate:"required"`
	Shape  string    `yaml:"shape" json:"shape" validate:"oneof=triangular trapezoidal"`
	Params []float64 `yaml:"params,flow" json:"params" validate:"min=3,max=4"`
}

// Threshold assigns Genre to every score up to and including Max.
// The last threshold leaves Max unset and catches everything above.
type Threshold struct {
	Genre string   `yaml:"genre" json:"genre" validate:"required"`
	Max   *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

var validate = validator.New()

// Validate runs struct-tag validation and the semantic checks tags
// cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	for _, v := range append(append([]VariableDef(nil), c.Model.Inputs...), c.Model.Output) {
		for _, t := range v.Terms {
			want := 3
			if t.Shape == ShapeTrapezoidal {
				want = 4
			}
			if len(t.Params) != want {
				return fmt.Errorf("%w: %s.%s: %s needs %d params, got %d",
					ErrInvalidConfig, v.Name, t.Name, t.Shape, want, len(t.Params))
			}
		}
	}

	last := len(c.Thresholds) - 1
	for i, th := range c.Thresholds {
		switch {
		case i == last && th.Max != nil:
			return fmt.Errorf("%w: last threshold (%s) must omit max", ErrInvalidConfig, th.Genre)
		case i < last && th.Max == nil:
			return fmt.Errorf("%w: threshold %s needs a max", ErrInvalidConfig, th.Genre)
		case i > 0 && i < last && *th.Max <= *c.Thresholds[i-1].Max:
			return fmt.Errorf("%w: threshold %s max must increase", ErrInvalidConfig, th.Genre)
		}
	}
	return nil
}

// SlogLevel converts LogLevel for log/slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Parse decodes YAML on top of DefaultConfig, so omitted sections keep
// their defaults, then validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// DefaultPath returns ~/.cadence/cadence.yaml.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cadence", "cadence.yaml")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
