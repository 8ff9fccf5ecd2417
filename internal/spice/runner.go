package spice

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const DefaultBinary = "ngspice"

// Runner drives an external ngspice in batch mode.
type Runner struct {
	Binary string
	Logger log.Logger
}

func NewRunner(binary string, logger log.Logger) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Runner{Binary: binary, Logger: logger}
}

// Run writes the deck into dir, simulates it and reads back the traces.
// Relative output names resolve against dir.
func (r *Runner) Run(ctx context.Context, deck Deck, dir string) (*Traces, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "deck", deck.Title)

	bin, err := exec.LookPath(r.Binary)
	if err != nil {
		return nil, fmt.Errorf("spice: %w", err)
	}

	cirPath := filepath.Join(dir, "deck.cir")
	f, err := os.Create(cirPath)
	if err != nil {
		return nil, err
	}
	if err := deck.WriteNetlist(f); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, "-b", cirPath)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	level.Debug(logger).Log("msg", "running", "bin", bin, "netlist", cirPath)
	if err := cmd.Run(); err != nil {
		level.Error(logger).Log("msg", "simulation failed", "err", err)
		return nil, fmt.Errorf("spice: %s: %w: %s", r.Binary, err, tail(out.String(), 5))
	}
	level.Debug(logger).Log("msg", "done", "elapsed", time.Since(start))

	outPath := deck.Output
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(dir, outPath)
	}
	data, err := os.Open(outPath)
	if err != nil {
		return nil, err
	}
	defer data.Close()

	tr, err := ReadTraces(data)
	if err != nil {
		return nil, err
	}
	level.Info(logger).Log("msg", "traces read", "points", tr.Len())
	return tr, nil
}

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
