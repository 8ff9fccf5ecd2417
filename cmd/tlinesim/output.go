package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/tlinesim/internal/config"
	"github.com/san-kum/tlinesim/internal/render"
	"github.com/san-kum/tlinesim/internal/storage"
	"github.com/san-kum/tlinesim/internal/tline"
	"github.com/san-kum/tlinesim/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := lineConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}
	f, err := p.Simulate()
	if err != nil {
		return err
	}

	m := viz.NewModel(f, f.PositionAxis(cfg.Length), f.TimeAxis(cfg.EndTime), cfg.Name)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// stubLengths are the line lengths, in rise times, animated together by
// render --stubs.
var stubLengths = []struct {
	name   string
	length float64
}{
	{"one", 1},
	{"half", 0.5},
	{"third", 0.33},
	{"quarter", 0.25},
}

// stubTraces re-simulates the stored run at each stub length, stacking the
// lines one volt apart.
func stubTraces(ctx context.Context, meta *storage.RunMetadata) ([]render.Trace, error) {
	base := &config.Config{
		Name:    meta.Name,
		ZSource: meta.ZSource,
		ZTrace:  meta.ZTrace,
		ZLoad:   meta.ZLoad,
		Samples: meta.Samples,
		Steps:   meta.Steps,
		EndTime: meta.EndTime,
		Drive:   meta.Drive,
	}
	sets := make([]tline.Params, len(stubLengths))
	for i, s := range stubLengths {
		c, err := base.With("length", s.length)
		if err != nil {
			return nil, err
		}
		if sets[i], err = c.Params(); err != nil {
			return nil, err
		}
	}
	fields, err := tline.Sweep(ctx, sets, workers)
	if err != nil {
		return nil, err
	}
	traces := make([]render.Trace, len(fields))
	for i, f := range fields {
		traces[i] = render.Trace{
			Name:      stubLengths[i].name,
			Positions: f.PositionAxis(stubLengths[i].length),
			Field:     f,
			Offset:    float64(i),
		}
	}
	return traces, nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, f, times, err := loadRun(runID)
	if err != nil {
		return err
	}

	format = strings.ToLower(format)
	if outFile == "" {
		outFile = runID + "." + format
	}

	out, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer out.Close()

	chart := render.ProbeChart(fmt.Sprintf("%s  zs=%g zt=%g zl=%g length=%g",
		meta.Name, meta.ZSource, meta.ZTrace, meta.ZLoad, meta.Length), f, times)
	if meta.ZSource < meta.ZTrace {
		chart.Guides = render.OvershootGuides(meta.Drive.MaxV, meta.ZSource, meta.ZTrace, meta.EndTime)
	}

	switch format {
	case "png":
		err = render.WritePNG(out, chart, 6, 4)
	case "html":
		err = render.WriteHTML(out, chart)
	case "svg":
		err = render.WriteSVG(out, chart, 800, 500)
	case "gif":
		traces := []render.Trace{{Name: meta.Name, Positions: f.PositionAxis(meta.Length), Field: f}}
		if stubs {
			if traces, err = stubTraces(cmd.Context(), meta); err != nil {
				return err
			}
		}
		o := render.DefaultGIFOptions()
		o.Every = every
		o.Delay = max(100/max(frameRate, 1), 1)
		err = render.AnimateGIF(out, traces, o)
	default:
		return fmt.Errorf("unknown format %q (png, html, svg, gif)", format)
	}
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "rendered", "run", runID, "format", format, "file", outFile)
	return out.Close()
}
