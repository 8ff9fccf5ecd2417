package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/tlinesim/internal/config"
	"github.com/san-kum/tlinesim/internal/storage"
	"github.com/san-kum/tlinesim/internal/tline"
)

func metadata(cfg *config.Config, f *tline.Field) storage.RunMetadata {
	meta := storage.RunMetadata{
		Name:    cfg.Name,
		ZSource: cfg.ZSource,
		ZTrace:  cfg.ZTrace,
		ZLoad:   cfg.ZLoad,
		Length:  cfg.Length,
		EndTime: cfg.EndTime,
		Drive:   cfg.Drive,
		Metrics: storage.ProbeMetrics(f, cfg.EndTime),
	}
	return meta
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := lineConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()
	f, err := p.Simulate()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	if !f.Finite() {
		level.Warn(logger).Log("msg", "field has non-finite values", "zs", cfg.ZSource, "zt", cfg.ZTrace)
	}

	meta := metadata(cfg, f)
	runID, err := st.Save(meta, f)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d  samples: %d\n", f.Steps(), f.Samples())
	fmt.Println("\nmetrics:")
	printMetrics(meta.Metrics)
	return nil
}

// sweepConfigs expands --study or --param/--values into one config per run.
func sweepConfigs(cmd *cobra.Command) ([]*config.Config, error) {
	if studyFile != "" {
		s, err := config.LoadStudy(studyFile)
		if err != nil {
			return nil, err
		}
		level.Info(logger).Log("msg", "loaded study", "name", s.Name, "runs", len(s.Runs))
		return s.Runs, nil
	}

	if len(sweepValues) == 0 {
		return nil, fmt.Errorf("sweep needs --values or --study")
	}
	base, err := lineConfig(cmd)
	if err != nil {
		return nil, err
	}
	cfgs := make([]*config.Config, 0, len(sweepValues))
	for _, v := range sweepValues {
		c, err := base.With(sweepParam, v)
		if err != nil {
			return nil, err
		}
		c.Name = fmt.Sprintf("%s_%s_%g", base.Name, sweepParam, v)
		cfgs = append(cfgs, c)
	}
	return cfgs, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfgs, err := sweepConfigs(cmd)
	if err != nil {
		return err
	}

	sets := make([]tline.Params, len(cfgs))
	for i, c := range cfgs {
		if sets[i], err = c.Params(); err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
	}

	start := time.Now()
	fields, err := tline.Sweep(cmd.Context(), sets, workers)
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "sweep done", "runs", len(fields), "elapsed", time.Since(start))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tZS\tZT\tZL\tLENGTH\tLOAD PEAK\tLOAD TROUGH\tSETTLING")
	for i, f := range fields {
		meta := metadata(cfgs[i], f)
		runID, err := st.Save(meta, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%s\t%s\t%s\n",
			runID, meta.ZSource, meta.ZTrace, meta.ZLoad, meta.Length,
			metric(meta.Metrics, "load_peak"),
			metric(meta.Metrics, "load_trough"),
			metric(meta.Metrics, "load_settling"),
		)
	}
	return w.Flush()
}

func metric(m map[string]float64, name string) string {
	v, ok := m[name]
	if !ok {
		return "-"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}
