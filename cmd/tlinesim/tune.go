package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/tlinesim/internal/optim"
)

// parseGrid turns "name=v1,v2" entries into parallel name and value lists.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	var names []string
	var ranges [][]float64
	for _, e := range entries {
		name, list, ok := strings.Cut(e, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("bad grid entry %q, want param=v1,v2,...", e)
		}
		var vals []float64
		for _, s := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %s: %w", name, err)
			}
			vals = append(vals, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	base, err := lineConfig(cmd)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}

	obj := optim.Metric(objective)
	if cmd.Flags().Changed("target") {
		obj = optim.Deviation(objective, target)
	}

	g := optim.NewGridSearch(names, ranges, workers)
	level.Info(logger).Log("msg", "grid search", "points", g.Size(), "metric", objective)
	cands, best, err := g.Search(cmd.Context(), base, obj)
	if err != nil {
		return err
	}

	order := make([]int, len(cands))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return cands[order[a]].Score < cands[order[b]].Score })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSCORE\n", strings.ToUpper(strings.Join(names, "\t")))
	for _, i := range order {
		c := cands[i]
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", c.Params[n])
		}
		fmt.Fprintf(w, "%.6g\n", c.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nbest:")
	for _, n := range names {
		fmt.Printf("  %s: %g\n", n, cands[best].Params[n])
	}
	return nil
}
