package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/anima-draw/engine/math"
	"github.com/spaghettifunk/anima-draw/engine/renderer/metadata"
)

// Config is the content of a draw configuration file.
type Config struct {
	Log  LogConfig  `toml:"log" yaml:"log"`
	Draw DrawConfig `toml:"draw" yaml:"draw"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

/**
 * @brief Tunables of the draw system. Zero values in a file fall back to the
 * defaults.
 */
type DrawConfig struct {
	// MaxInstancesPerDraw caps a batch. It is further capped by the host limit.
	MaxInstancesPerDraw int `toml:"max_instances_per_draw" yaml:"max_instances_per_draw"`
	// InstanceScale enlarges every instance matrix so outlines are not clipped
	// by the bounding cube.
	InstanceScale float32 `toml:"instance_scale" yaml:"instance_scale"`
	ShapeShader   string  `toml:"shape_shader" yaml:"shape_shader"`
	UnlitShader   string  `toml:"unlit_shader" yaml:"unlit_shader"`
	// RenderStage is where the draw pass runs in the host pipeline.
	RenderStage metadata.RenderStage `toml:"render_stage" yaml:"render_stage"`

	OutlineThickness          float32    `toml:"outline_thickness" yaml:"outline_thickness"`
	WireframeOutlineThickness float32    `toml:"wireframe_outline_thickness" yaml:"wireframe_outline_thickness"`
	OutlineColor              [4]float32 `toml:"outline_color" yaml:"outline_color"`
	EnableLighting            bool       `toml:"enable_lighting" yaml:"enable_lighting"`
	Smoothness                float32    `toml:"smoothness" yaml:"smoothness"`
}

const (
	DefaultMaxInstancesPerDraw = 1023
	DefaultInstanceScale       = 1.01
	DefaultShapeShader         = "Visualization/Shapes"
	DefaultUnlitShader         = "Visualization/UnlitColorAlpha"
)

var ErrInvalidConfig = errors.New("invalid draw configuration")

func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Draw: DrawConfig{
			MaxInstancesPerDraw:       DefaultMaxInstancesPerDraw,
			InstanceScale:             DefaultInstanceScale,
			ShapeShader:               DefaultShapeShader,
			UnlitShader:               DefaultUnlitShader,
			RenderStage:               metadata.RenderStageAfterPostProcessing,
			OutlineThickness:          0.02,
			WireframeOutlineThickness: 0.015,
			OutlineColor:              [4]float32{0, 0, 0, 1},
			EnableLighting:            true,
			Smoothness:                0.5,
		},
	}
}

// DefaultDraw returns the default draw section on its own.
func DefaultDraw() *DrawConfig {
	d := Default().Draw
	return &d
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads and validates the configuration file at path. Files ending in
// .yaml or .yml are read as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	parse := Parse
	if isYAML(path) {
		parse = ParseYAML
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: line %d column %d: %s", ErrInvalidConfig, row, col, derr.Error())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseYAML is Parse for YAML documents.
func ParseYAML(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as TOML, or YAML when path ends in .yaml or .yml.
func (c *Config) Save(path string) error {
	marshal := toml.Marshal
	if isYAML(path) {
		marshal = yaml.Marshal
	}
	data, err := marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects impossible values and clamps the rest into range.
func (c *Config) Validate() error {
	return c.Draw.Validate()
}

func (d *DrawConfig) Validate() error {
	if d.MaxInstancesPerDraw < 0 {
		return fmt.Errorf("%w: max_instances_per_draw %d is negative", ErrInvalidConfig, d.MaxInstancesPerDraw)
	}
	if d.MaxInstancesPerDraw == 0 {
		d.MaxInstancesPerDraw = DefaultMaxInstancesPerDraw
	}
	if d.InstanceScale <= 0 {
		d.InstanceScale = DefaultInstanceScale
	}
	if d.ShapeShader == "" {
		d.ShapeShader = DefaultShapeShader
	}
	if d.UnlitShader == "" {
		d.UnlitShader = DefaultUnlitShader
	}
	d.OutlineThickness = math.Clamp(d.OutlineThickness, 0, 1)
	d.WireframeOutlineThickness = math.Clamp(d.WireframeOutlineThickness, 0, 1)
	d.Smoothness = math.Clamp(d.Smoothness, 0, 1)
	return nil
}

// Outline returns the outline colour as a vector.
func (d *DrawConfig) Outline() math.Vec4 {
	return math.NewVec4(d.OutlineColor[0], d.OutlineColor[1], d.OutlineColor[2], d.OutlineColor[3])
}
