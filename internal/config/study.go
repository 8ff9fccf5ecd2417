package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Study is a scripted list of runs. Each run is a partial config layered
// over the study's base, or over a preset when it names one.
type Study struct {
	Name        string
	Description string
	Runs        []*Config
}

type studyFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Base        yaml.Node   `yaml:"base"`
	Runs        []yaml.Node `yaml:"runs"`
}

type runHeader struct {
	Preset string `yaml:"preset"`
}

func LoadStudy(path string) (*Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseStudy(data)
}

func ParseStudy(data []byte) (*Study, error) {
	var sf studyFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}

	base := DefaultConfig()
	if !sf.Base.IsZero() {
		if err := sf.Base.Decode(base); err != nil {
			return nil, fmt.Errorf("base: %w", err)
		}
	}

	study := &Study{Name: sf.Name, Description: sf.Description}
	prefix := sf.Name
	if prefix == "" {
		prefix = "run"
	}
	for i := range sf.Runs {
		node := &sf.Runs[i]

		var hdr runHeader
		if err := node.Decode(&hdr); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}

		cfg := base.Clone()
		if hdr.Preset != "" {
			p, err := GetPreset(hdr.Preset)
			if err != nil {
				return nil, fmt.Errorf("run %d: %w", i+1, err)
			}
			cfg = p
		}
		if err := node.Decode(cfg); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		if cfg.Name == "" || cfg.Name == base.Name {
			cfg.Name = fmt.Sprintf("%s_%d", prefix, i+1)
		}
		study.Runs = append(study.Runs, cfg)
	}
	return study, nil
}
