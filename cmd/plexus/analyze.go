package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/plexus/internal/analysis"
	"github.com/san-kum/plexus/internal/automation"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/optim"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/storage"
)

var (
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	steps       int
	targetLinks float64
)

func analysisCommands() []*cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "find the dominant period of a run and plot links against attraction",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "average metrics across a range of one field parameter",
		RunE:  sweepParamCmd,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "link_distance", "field parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 50, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 200, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 7, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search link distance and spacing for a target link count",
		RunE:  tuneField,
	}
	tuneCmd.Flags().Float64Var(&targetLinks, "target-links", 60, "mean links per frame to aim for")
	tuneCmd.Flags().IntVar(&steps, "steps", 5, "grid points per parameter")

	for _, c := range []*cobra.Command{sweepCmd, tuneCmd} {
		c.Flags().IntVar(&ticks, "ticks", 300, "frames per run")
		c.Flags().IntVar(&runs, "runs", 4, "seeds per grid point")
	}
	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "record every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	return []*cobra.Command{analyzeCmd, sweepCmd, tuneCmd, scenarioCmd}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	results, err := automation.RunScenario(ctx, sc, cfg, storage.New(dataDir))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tFRAMES\tLINKS\tATTRACTED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.3f\n", i+1, r.RunID, r.Frames, r.Metrics["links"], r.Metrics["attracted"])
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("run %s has too few frames to analyze", args[0])
	}

	links := make([]float64, len(frames))
	attracted := make([]float64, len(frames))
	for i, f := range frames {
		links[i] = float64(f.Links)
		attracted[i] = float64(f.Attracted)
	}

	peak := analysis.DominantPeriod(links)
	fmt.Printf("run: %s\n", args[0])
	fmt.Printf("samples: %d\n", len(frames))
	if peak.Bin == 0 {
		fmt.Println("no periodic component in links")
	} else {
		fmt.Printf("dominant period: %.1f frames (%.0f%% of power)\n", peak.Period, peak.Share*100)
	}

	fmt.Println("\nlinks (y) against attracted (x):")
	fmt.Print(analysis.NewPortrait(attracted, links).ASCII(60, 16))
	return nil
}

func sweepSimConfig(orbitRadius float64, orbitPeriod int) sim.Config {
	simCfg := sim.DefaultConfig()
	simCfg.Ticks = ticks
	simCfg.ValidateBounds = false
	simCfg.Path = sim.Orbit{Radius: orbitRadius, Period: orbitPeriod}
	return simCfg
}

func sweepParamCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, err := analysis.Sweep(ctx, analysis.SweepConfig{
		Bounds: field.Bounds{Width: cfg.Width, Height: cfg.Height},
		Base:   cfg.Field,
		Param:  sweepParam,
		Min:    sweepMin,
		Max:    sweepMax,
		Steps:  steps,
		Runs:   runs,
		Seed:   cfg.Seed,
		Sim:    sweepSimConfig(cfg.Record.OrbitRadius, cfg.Record.OrbitPeriod),
	})
	if err != nil {
		return err
	}

	names := make([]string, 0)
	for name := range points[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, sweepParam)
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for _, p := range points {
		fmt.Fprintf(w, "%g", p.Value)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.3f", p.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(analysis.Column(points, "links"),
		asciigraph.Height(10),
		asciigraph.Caption("mean links by "+sweepParam),
	))
	return nil
}

func tuneField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bounds := field.Bounds{Width: cfg.Width, Height: cfg.Height}
	simCfg := sweepSimConfig(cfg.Record.OrbitRadius, cfg.Record.OrbitPeriod)
	search := optim.NewGridSearch(
		[]string{"link_distance", "spacing"},
		[][]float64{
			optim.Linspace(cfg.Field.LinkDistance/2, cfg.Field.LinkDistance*2, steps),
			optim.Linspace(cfg.Field.Spacing/2, cfg.Field.Spacing*2, steps),
		},
	)

	best, score, err := search.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		prm := cfg.Field
		for name, v := range p {
			if err := prm.Set(name, v); err != nil {
				return 0, err
			}
		}
		ens := &sim.Ensemble{
			Bounds:    bounds,
			Params:    prm,
			NumRuns:   runs,
			SeedStart: cfg.Seed,
			Metrics:   metrics.Default,
		}
		results, err := ens.Run(ctx, simCfg)
		if err != nil {
			return 0, err
		}
		return math.Abs(sim.MeanMetrics(results)["links"] - targetLinks), nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("target: %.1f links per frame\n", targetLinks)
	fmt.Printf("best: link_distance=%.1f spacing=%.1f (off by %.2f)\n",
		best["link_distance"], best["spacing"], score)
	return nil
}
