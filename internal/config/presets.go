package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/tlinesim/internal/drive"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

func preset(name string, length, zSource, zLoad float64) *Config {
	return &Config{
		Name: name, ZSource: zSource, ZTrace: DefaultZTrace, ZLoad: zLoad,
		Length: length, Samples: DefaultSamples, Steps: DefaultSteps, EndTime: DefaultEndTime,
		Drive: drive.Spec{Kind: drive.KindRamp, MaxV: DefaultMaxV},
	}
}

var Presets = map[string]*Config{
	"quarter-matched": preset("quarter-matched", 0.25, 100, DefaultZLoad),
	"half-matched":    preset("half-matched", 0.5, 100, DefaultZLoad),
	"quarter-strong":  preset("quarter-strong", 0.25, 20, DefaultZLoad),
	"half-strong":     preset("half-strong", 0.5, 20, DefaultZLoad),

	"stub-one":     preset("stub-one", 1, 20, DefaultZLoad),
	"stub-half":    preset("stub-half", 0.5, 20, DefaultZLoad),
	"stub-third":   preset("stub-third", 0.33, 20, DefaultZLoad),
	"stub-quarter": preset("stub-quarter", 0.25, 20, DefaultZLoad),

	"load-1000": preset("load-1000", 0.5, 20, 1000),
	"load-500":  preset("load-500", 0.5, 20, 500),
	"load-200":  preset("load-200", 0.5, 20, 200),

	"matched-load": preset("matched-load", 0.5, 100, 100),

	"pulse-train": {
		Name: "pulse-train", ZSource: 30, ZTrace: DefaultZTrace, ZLoad: DefaultZLoad,
		Length: 0.5, Samples: DefaultSamples, Steps: 400, EndTime: 40,
		Drive: drive.Spec{Kind: drive.KindPulse, MaxV: 1, Delay: 1, Rise: 1, Fall: 1, Width: 8, Period: 20},
	},
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
