package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/tlinesim/internal/analysis"
	"github.com/san-kum/tlinesim/internal/config"
	"github.com/san-kum/tlinesim/internal/fdtd"
	"github.com/san-kum/tlinesim/internal/spice"
	"github.com/san-kum/tlinesim/internal/storage"
)

func deckFor(cfg *config.Config) spice.Deck {
	d := spice.NewDeck(cfg.ZSource, cfg.ZTrace, cfg.ZLoad, cfg.Length)
	d.Pulse.V2 = cfg.Drive.MaxV
	return d
}

func writeNetlist(cmd *cobra.Command, args []string) error {
	cfg, err := lineConfig(cmd)
	if err != nil {
		return err
	}
	w, err := output()
	if err != nil {
		return err
	}
	if err := deckFor(cfg).WriteNetlist(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func compareSpice(cmd *cobra.Command, args []string) error {
	cfg, err := lineConfig(cmd)
	if err != nil {
		return err
	}
	p, err := cfg.Params()
	if err != nil {
		return err
	}

	dir := workDir
	if dir == "" {
		if dir, err = os.MkdirTemp("", "tlinesim-spice-"); err != nil {
			return err
		}
		if !keepWork {
			defer os.RemoveAll(dir)
		}
	}

	deck := deckFor(cfg)
	runner := spice.NewRunner(spiceBin, log.With(logger, "component", "spice"))
	ref, err := runner.Run(cmd.Context(), deck, dir)
	if err != nil {
		return err
	}

	f, err := p.Simulate()
	if err != nil {
		return err
	}
	cmp, err := spice.Compare(ref.Normalize(deck.Pulse.Delay, deck.Pulse.Rise), f, cfg.EndTime, deck.ProbeFrac)
	if err != nil {
		return err
	}

	fmt.Printf("compared %d points against %s\n", cmp.Points, spiceBin)
	fmt.Printf("  rms source: %.4f\n", cmp.Source)
	fmt.Printf("  rms mid:    %.4f\n", cmp.Mid)
	fmt.Printf("  rms load:   %.4f\n", cmp.Load)
	if keepWork || workDir != "" {
		fmt.Printf("deck and traces in %s\n", dir)
	}
	return nil
}

func crossCheck(cmd *cobra.Command, args []string) error {
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
	ref, err := fdtd.Simulate(p, fdtd.Options{Courant: courant})
	if err != nil {
		return err
	}

	fmt.Printf("finite-difference reference: %d substeps per sample\n\n", ref.Substeps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROBE\tRMS\tPEAK\tREF PEAK")
	for _, frac := range storage.ProbeFractions {
		a, b := f.Probe(frac), ref.Field.Probe(frac)
		rms, err := analysis.RMSDiff(a, b)
		if err != nil {
			return err
		}
		_, pa := analysis.Peak(a)
		_, pb := analysis.Peak(b)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", storage.ProbeName(frac), rms, pa, pb)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, peakE := analysis.Peak(ref.Energy)
	fmt.Printf("\npeak stored energy: %.4g, at end: %.4g\n", peakE, ref.Energy[len(ref.Energy)-1])
	return nil
}
