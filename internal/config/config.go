package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tlinesim/internal/drive"
	"github.com/san-kum/tlinesim/internal/tline"
)

const (
	DefaultLength  = 0.5
	DefaultSamples = 50
	DefaultSteps   = 100
	DefaultEndTime = 20.0
	DefaultMaxV    = 1.0
	DefaultZTrace  = 100.0
	DefaultZSource = 100.0
	DefaultZLoad   = 1e6
)

var ErrUnknownParam = errors.New("config: unknown parameter")

type Config struct {
	Name    string     `yaml:"name"`
	ZSource float64    `yaml:"z_source"`
	ZTrace  float64    `yaml:"z_trace"`
	ZLoad   float64    `yaml:"z_load"`
	Length  float64    `yaml:"length"`
	Samples int        `yaml:"samples"`
	Steps   int        `yaml:"steps"`
	EndTime float64    `yaml:"end_time"`
	Drive   drive.Spec `yaml:"drive"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:    "default",
		ZSource: DefaultZSource,
		ZTrace:  DefaultZTrace,
		ZLoad:   DefaultZLoad,
		Length:  DefaultLength,
		Samples: DefaultSamples,
		Steps:   DefaultSteps,
		EndTime: DefaultEndTime,
		Drive: drive.Spec{
			Kind: drive.KindRamp,
			MaxV: DefaultMaxV,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params samples the drive and assembles the simulation parameters.
func (c *Config) Params() (tline.Params, error) {
	drv, err := c.Drive.Sample(c.Steps, c.EndTime)
	if err != nil {
		return tline.Params{}, err
	}
	p := tline.Params{
		Drive:   drv,
		ZSource: c.ZSource,
		ZTrace:  c.ZTrace,
		ZLoad:   c.ZLoad,
		Length:  c.Length,
		Samples: c.Samples,
		EndTime: c.EndTime,
	}
	if err := p.Validate(); err != nil {
		return tline.Params{}, err
	}
	return p, nil
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// SweepParams lists the parameter names accepted by With.
var SweepParams = []string{"z_source", "z_trace", "z_load", "length", "max_v"}

// With returns a copy of c with one numeric parameter replaced.
func (c *Config) With(param string, v float64) (*Config, error) {
	out := c.Clone()
	switch param {
	case "z_source":
		out.ZSource = v
	case "z_trace":
		out.ZTrace = v
	case "z_load":
		out.ZLoad = v
	case "length":
		out.Length = v
	case "max_v":
		out.Drive.MaxV = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, param)
	}
	return out, nil
}
