package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/tlinesim/internal/config"
	"github.com/san-kum/tlinesim/internal/fdtd"
)

var (
	dataDir string
	verbose bool
	logger  log.Logger

	// simulation overrides
	configFile string
	preset     string
	zSource    float64
	zTrace     float64
	zLoad      float64
	length     float64
	samples    int
	steps      int
	endTime    float64
	maxV       float64
	driveKind  string

	// sweep
	sweepParam  string
	sweepValues []float64
	studyFile   string
	workers     int

	// tune
	grid      []string
	objective string
	target    float64

	// output
	outFile   string
	format    string
	frameRate int
	every     int
	stubs     bool

	// reference simulators
	courant  float64
	spiceBin string
	workDir  string
	keepWork bool
)

// main registers the commands and runs the root command, exiting with
// status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "tlinesim",
		Short:         "transmission line reflection simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tlinesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate one line and store the result",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addLineFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot probe traces in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the voltage field to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata, field and probes to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure overshoot, settling and ringing at each probe",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "simulate a parameter sweep or a study file in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addLineFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "z_source", fmt.Sprintf("parameter to sweep %v", config.SweepParams))
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", nil, "values for the swept parameter")
	sweepCmd.Flags().StringVar(&studyFile, "study", "", "study file (yaml) listing the runs")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel simulations (default GOMAXPROCS)")

	tuneCmd := &cobra.Command{
		Use:     "tune",
		Short:   "grid search line parameters for the best probe metric",
		Example: "  tlinesim tune --preset half-strong --grid z_source=10,20,50,100,200 --metric load_peak --target 1",
		Args:    cobra.NoArgs,
		RunE:    runTune,
	}
	addLineFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "param=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&objective, "metric", "load_settling", "probe metric to minimize, e.g. load_peak")
	tuneCmd.Flags().Float64Var(&target, "target", 0, "minimize distance to this value instead")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "parallel simulations (default GOMAXPROCS)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate a line in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addLineFlags(liveCmd)

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a stored run to png, html, svg or gif",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.<format>)")
	renderCmd.Flags().StringVar(&format, "format", "png", "png, html, svg or gif")
	renderCmd.Flags().IntVar(&every, "every", 1, "gif: keep one frame in every n steps")
	renderCmd.Flags().BoolVar(&stubs, "stubs", false, "gif: animate the one, half, third and quarter stubs together")
	renderCmd.Flags().IntVar(&frameRate, "fps", 50, "gif frame rate")

	netlistCmd := &cobra.Command{
		Use:   "netlist",
		Short: "write the reference spice netlist for a line",
		Args:  cobra.NoArgs,
		RunE:  writeNetlist,
	}
	addLineFlags(netlistCmd)
	netlistCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare a simulation against ngspice",
		Args:  cobra.NoArgs,
		RunE:  compareSpice,
	}
	addLineFlags(compareCmd)
	compareCmd.Flags().StringVar(&spiceBin, "spice", "ngspice", "ngspice binary")
	compareCmd.Flags().StringVar(&workDir, "workdir", "", "directory for the deck and traces (default temp)")
	compareCmd.Flags().BoolVar(&keepWork, "keep", false, "keep the temporary work directory")

	crosscheckCmd := &cobra.Command{
		Use:   "crosscheck",
		Short: "compare the traveling-wave simulation against a finite-difference solve",
		Args:  cobra.NoArgs,
		RunE:  crossCheck,
	}
	addLineFlags(crosscheckCmd)
	crosscheckCmd.Flags().Float64Var(&courant, "courant", fdtd.DefaultCourant, "finite-difference courant number")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, analyzeCmd,
		sweepCmd, tuneCmd, presetsCmd, liveCmd, renderCmd, netlistCmd, compareCmd, crosscheckCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger == nil {
			logger = newLogger(false)
		}
		level.Error(logger).Log("err", err)
		stop()
		os.Exit(1)
	}
}

func newLogger(debug bool) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(l, level.AllowDebug())
	}
	return level.NewFilter(l, level.AllowInfo())
}

func addLineFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&zSource, "zs", d.ZSource, "source impedance (ohm)")
	f.Float64Var(&zTrace, "zt", d.ZTrace, "line impedance (ohm)")
	f.Float64Var(&zLoad, "zl", d.ZLoad, "load impedance (ohm)")
	f.Float64Var(&length, "length", d.Length, "line length in rise times")
	f.IntVar(&samples, "samples", d.Samples, "spatial samples")
	f.IntVar(&steps, "steps", d.Steps, "time steps")
	f.Float64Var(&endTime, "time", d.EndTime, "end time in rise times")
	f.Float64Var(&maxV, "maxv", d.Drive.MaxV, "drive amplitude")
	f.StringVar(&driveKind, "drive", d.Drive.Kind, "drive waveform: ramp, triangle, step, pulse")
}

// lineConfig resolves the preset, then the config file, then any flag set
// on the command line, in that order of increasing priority.
func lineConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("zs") {
		cfg.ZSource = zSource
	}
	if flags.Changed("zt") {
		cfg.ZTrace = zTrace
	}
	if flags.Changed("zl") {
		cfg.ZLoad = zLoad
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("time") {
		cfg.EndTime = endTime
	}
	if flags.Changed("maxv") {
		cfg.Drive.MaxV = maxV
	}
	if flags.Changed("drive") {
		cfg.Drive.Kind = driveKind
	}
	level.Debug(logger).Log("msg", "resolved config", "name", cfg.Name,
		"zs", cfg.ZSource, "zt", cfg.ZTrace, "zl", cfg.ZLoad, "length", cfg.Length,
		"samples", cfg.Samples, "steps", cfg.Steps, "time", cfg.EndTime, "drive", cfg.Drive.Kind)
	return cfg, nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Printf("  %-14s length=%-5g zs=%-5g zt=%-5g zl=%g\n", name, p.Length, p.ZSource, p.ZTrace, p.ZLoad)
	}
	return nil
}
