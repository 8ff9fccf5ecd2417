package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tlinesim/internal/analysis"
	"github.com/san-kum/tlinesim/internal/storage"
	"github.com/san-kum/tlinesim/internal/tline"
)

func loadRun(runID string) (*storage.RunMetadata, *tline.Field, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	f, times, err := st.LoadField(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	return meta, f, times, nil
}

// output opens outFile, or stdout when it is empty.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tZS\tZT\tZL\tLENGTH\tSTEPS\tDRIVE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.ZSource,
			run.ZTrace,
			run.ZLoad,
			run.Length,
			run.Steps,
			run.Drive.Kind,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, f, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("zs=%g zt=%g zl=%g length=%g\n", meta.ZSource, meta.ZTrace, meta.ZLoad, meta.Length)
	fmt.Printf("steps: %d\n\n", f.Steps())

	for _, frac := range storage.ProbeFractions {
		graph := asciigraph.Plot(f.Probe(frac),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(storage.ProbeName(frac)+" voltage vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, f, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, f, times); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, f, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, f); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, f, _, err := loadRun(args[0])
	if err != nil {
		return err
	}
	dt := meta.EndTime / float64(f.Steps())

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("reflection at source: %+.4f\n", tline.ReflectionCoefficient(meta.ZSource, meta.ZTrace))
	fmt.Printf("reflection at load:   %+.4f\n", tline.ReflectionCoefficient(meta.ZLoad, meta.ZTrace))
	fmt.Printf("open-load overshoot:  %.4f\n", tline.OvershootLevel(meta.Drive.MaxV, meta.ZSource, meta.ZTrace))
	fmt.Printf("open-load undershoot: %.4f\n\n", tline.UndershootLevel(meta.Drive.MaxV, meta.ZSource, meta.ZTrace))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROBE\tPEAK\tAT\tTROUGH\tAT\tARRIVAL\tFINAL\tSETTLING\tRINGING")
	for _, frac := range storage.ProbeFractions {
		s := analysis.Summarize(f.Probe(frac), dt)
		fmt.Fprintf(w, "%s\t%.4f\t%.2f\t%.4f\t%.2f\t%.2f\t%.4f\t%.2f\t%.4f\n",
			storage.ProbeName(frac),
			s.Peak, s.PeakTime, s.Trough, s.TroughTime,
			s.Arrival, s.Final, s.Settling, s.RingingFreq,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	spec := analysis.PowerSpectrum(f.Load(), dt, true)
	if len(spec.Power) > 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spec.Power[1:],
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("load power spectrum"),
		))
	}
	return nil
}
