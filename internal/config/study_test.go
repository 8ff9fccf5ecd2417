package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const studyYAML = `
name: stubs
description: open stubs behind a strong driver
base:
  z_source: 20
  samples: 40
runs:
  - length: 1
  - length: 0.5
    name: half
  - preset: matched-load
  - preset: matched-load
    z_load: 200
`

func TestParseStudy(t *testing.T) {
	s, err := ParseStudy([]byte(studyYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Name != "stubs" || len(s.Runs) != 4 {
		t.Fatalf("unexpected study: %+v", s)
	}

	tests := []struct {
		name    string
		zSource float64
		zLoad   float64
		length  float64
		samples int
	}{
		{"stubs_1", 20, DefaultZLoad, 1, 40},
		{"half", 20, DefaultZLoad, 0.5, 40},
		{"matched-load", 100, 100, 0.5, DefaultSamples},
		{"matched-load", 100, 200, 0.5, DefaultSamples},
	}
	for i, tt := range tests {
		r := s.Runs[i]
		if r.Name != tt.name || r.ZSource != tt.zSource || r.ZLoad != tt.zLoad ||
			r.Length != tt.length || r.Samples != tt.samples {
			t.Errorf("run %d: got %+v", i+1, r)
		}
	}

	if Presets["matched-load"].ZLoad != 100 {
		t.Error("study run modified the shared preset")
	}
}

func TestLoadStudy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	if err := os.WriteFile(path, []byte("runs:\n  - z_load: 500\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadStudy(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Runs) != 1 || s.Runs[0].ZLoad != 500 || s.Runs[0].Name != "run_1" {
		t.Errorf("unexpected study: %+v", s.Runs[0])
	}
	if s.Runs[0].ZSource != DefaultZSource {
		t.Errorf("default lost: %+v", s.Runs[0])
	}
}

func TestParseStudy_UnknownPreset(t *testing.T) {
	_, err := ParseStudy([]byte("runs:\n  - preset: nope\n"))
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}
