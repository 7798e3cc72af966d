package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/logging"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/storage"
	"github.com/san-kum/plexus/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	debug      bool
	width      float64
	height     float64
	fps        int
	theme      string
	backend    string

	// run / export flags
	ticks   int
	live    bool
	gifOut  string
	outPath string
	caption string
	every   int
	runs    int
	svgOut  string
	braille bool

	logFile *os.File
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plexus",
		Short: "particle plexus field",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Subcommands share flag variables with different defaults.
			var resetErr error
			cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
				if !f.Changed && resetErr == nil {
					if err := f.Value.Set(f.DefValue); err != nil {
						resetErr = fmt.Errorf("reset --%s: %w", f.Name, err)
					}
				}
			})
			if resetErr != nil {
				return resetErr
			}
			f, err := logging.Setup(debug, dataDir)
			if err != nil {
				return err
			}
			logFile = f
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runBackend(cfg.Backend, cfg)
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".plexus", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.BoolVar(&debug, "debug", false, "write a debug log under the data directory")
	pf.Float64Var(&width, "width", config.DefaultWidth, "viewport width in pixels")
	pf.Float64Var(&height, "height", config.DefaultHeight, "viewport height in pixels")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme")
	pf.StringVar(&backend, "backend", config.DefaultBackend, "host for the root command")

	hostCmds := make([]*cobra.Command, 0, len(backends))
	for _, name := range backendNames() {
		name := name
		hostCmds = append(hostCmds, &cobra.Command{
			Use:   name,
			Short: backends[name].short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				return runBackend(name, cfg)
			},
		})
	}

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "choose and tune a preset, then run it in the terminal",
		RunE:  pickPreset,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "record a headless run",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultRecordTicks, "frames to simulate")
	runCmd.Flags().BoolVar(&live, "live", false, "print an ANSI sketch while running")
	runCmd.Flags().StringVar(&gifOut, "gif", "", "also write an animated GIF")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of seeds and report throughput",
		RunE:  benchEnsemble,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", config.DefaultRecordTicks, "frames per run")
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "write the link series as SVG")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "write one frame as SVG",
		RunE:  exportSVG,
	}
	exportPNGCmd := &cobra.Command{
		Use:   "export-png",
		Short: "write one frame as PNG",
		RunE:  exportPNG,
	}
	exportGIFCmd := &cobra.Command{
		Use:   "export-gif",
		Short: "write an animated GIF",
		RunE:  exportGIF,
	}
	for _, c := range []*cobra.Command{exportSVGCmd, exportPNGCmd, exportGIFCmd} {
		c.Flags().IntVar(&ticks, "ticks", 120, "frames to simulate first")
		c.Flags().StringVar(&outPath, "out", "", "output file")
	}
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "draw the frame as the terminal's Braille dots")
	exportPNGCmd.Flags().StringVar(&caption, "caption", "", "text drawn on the image")
	exportGIFCmd.Flags().IntVar(&every, "every", 2, "keep every n-th frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(hostCmds...)
	rootCmd.AddCommand(pickCmd, runCmd, benchCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, exportPNGCmd, exportGIFCmd, presetsCmd, initCmd)
	rootCmd.AddCommand(analysisCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newScene(cfg *config.Config) (*field.Scene, error) {
	return field.NewScene(cfg.Width, cfg.Height, cfg.Field, rand.New(rand.NewSource(cfg.Seed)))
}

func pickPreset(cmd *cobra.Command, args []string) error {
	cfg, name, err := tui.Pick()
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base.Field = cfg.Field
	log.Printf("pick: running tuned preset %s", name)
	return runBackend("tui", base)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("ticks") {
		ticks = cfg.Record.Ticks
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	scene, err := newScene(cfg)
	if err != nil {
		return err
	}

	s := sim.New(scene)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	var rec *export.GIFRecorder
	if gifOut != "" {
		rec = export.NewGIFRecorder(cfg.Field, 2)
		s.AddObserver(rec)
	}
	if live {
		lr := tui.NewLiveRenderer(os.Stdout, 70, 20, 30)
		lr.Start()
		defer lr.Stop()
		s.AddObserver(lr)
	}

	simCfg := sim.DefaultConfig()
	simCfg.Ticks = ticks
	simCfg.Path = sim.Orbit{Radius: cfg.Record.OrbitRadius, Period: cfg.Record.OrbitPeriod}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("recording %d frames at %.0fx%.0f...\n", ticks, cfg.Width, cfg.Height)
	start := time.Now()

	result, err := s.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset: preset,
		Seed:   cfg.Seed,
		Width:  cfg.Width,
		Height: cfg.Height,
		Path:   fmt.Sprintf("orbit r=%.0f period=%d", cfg.Record.OrbitRadius, cfg.Record.OrbitPeriod),
	}, result)
	if err != nil {
		return err
	}

	if rec != nil {
		if err := writeFile(gifOut, rec.Encode); err != nil {
			return err
		}
		fmt.Printf("gif: %s (%d frames)\n", gifOut, rec.Len())
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.TicksTaken)
	if len(result.Errors) > 0 {
		fmt.Printf("bounds violations: %d\n", len(result.Errors))
	}
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
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

func benchEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ens := &sim.Ensemble{
		Bounds:    field.Bounds{Width: cfg.Width, Height: cfg.Height},
		Params:    cfg.Field,
		NumRuns:   runs,
		SeedStart: cfg.Seed,
		Metrics:   metrics.Default,
	}
	simCfg := sim.DefaultConfig()
	simCfg.Ticks = ticks
	simCfg.ValidateBounds = false
	simCfg.Path = sim.Orbit{Radius: cfg.Record.OrbitRadius, Period: cfg.Record.OrbitPeriod}

	fmt.Printf("benchmarking %d runs x %d frames at %.0fx%.0f\n\n", runs, ticks, cfg.Width, cfg.Height)
	start := time.Now()
	results, err := ens.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := runs * ticks
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUNS\tFRAMES\tTIME\tFRAMES/SEC")
	fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", runs, total, elapsed, float64(total)/elapsed.Seconds())
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmean metrics:")
	printMetrics(sim.MeanMetrics(results))
	return nil
}

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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tVIEWPORT\tFRAMES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Ticks,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(sim.FrameStats) float64
	}{
		{"links per frame", func(f sim.FrameStats) float64 { return float64(f.Links) }},
		{"particles attracted", func(f sim.FrameStats) float64 { return float64(f.Attracted) }},
		{"mean speed (px/frame)", func(f sim.FrameStats) float64 { return f.MeanSpeed }},
	}

	var links []float64
	for i, s := range series {
		data := make([]float64, len(frames))
		for j, f := range frames {
			data[j] = s.value(f)
		}
		if i == 0 {
			links = data
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgOut != "" {
		doc := export.SeriesToSVG(links, 800, 200, "#ff6b8b")
		if err := os.WriteFile(svgOut, []byte(doc), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}
	return st.ExportJSONFile(outPath, args[0])
}

// snapshot simulates ticks frames with the record orbit and returns the last.
func snapshot(cmd *cobra.Command) (*config.Config, field.Frame, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, field.Frame{}, err
	}
	scene, err := newScene(cfg)
	if err != nil {
		return nil, field.Frame{}, err
	}
	if ticks < 1 {
		ticks = 1
	}
	orbit := sim.Orbit{Radius: cfg.Record.OrbitRadius, Period: cfg.Record.OrbitPeriod}
	var frame field.Frame
	for i := 0; i < ticks; i++ {
		if p, ok := orbit.At(i, scene.Bounds()); ok {
			scene.MovePointer(p.X, p.Y)
		}
		frame = scene.Tick()
	}
	return cfg, frame, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, frame, err := snapshot(cmd)
	if err != nil {
		return err
	}
	return writeOut("plexus.svg", func(w io.Writer) error {
		if braille {
			return export.FrameToBrailleSVG(w, frame, cfg.Field, cfg.DotSize)
		}
		return export.FrameToSVG(w, frame, cfg.Field)
	})
}

func exportPNG(cmd *cobra.Command, args []string) error {
	cfg, frame, err := snapshot(cmd)
	if err != nil {
		return err
	}
	if caption == "" && len(cfg.Captions) > 0 {
		caption = cfg.Captions[0]
	}
	return writeOut("plexus.png", func(w io.Writer) error {
		return export.FrameToPNG(w, frame, cfg.Field, caption)
	})
}

func exportGIF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scene, err := newScene(cfg)
	if err != nil {
		return err
	}

	rec := export.NewGIFRecorder(cfg.Field, every)
	s := sim.New(scene)
	s.AddObserver(rec)

	simCfg := sim.DefaultConfig()
	simCfg.Ticks = ticks
	simCfg.Path = sim.Orbit{Radius: cfg.Record.OrbitRadius, Period: cfg.Record.OrbitPeriod}
	if _, err := s.Run(context.Background(), simCfg); err != nil {
		return err
	}

	return writeOut("plexus.gif", rec.Encode)
}

func writeOut(def string, write func(w io.Writer) error) error {
	path := outPath
	if path == "" {
		path = def
	}
	if err := writeFile(path, write); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
