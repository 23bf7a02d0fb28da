package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rafaelvleite/kuramoto-metronomes/internal/analysis"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/cluster"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/config"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/engine"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/storage"
	"github.com/rafaelvleite/kuramoto-metronomes/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	n           int
	rows        int
	duration    float64
	fps         int
	substeps    int
	seed        uint64
	omegaMeanHz float64
	omegaSpread float64
	startSpread float64
	fadeIn      float64
	lambda      float64
	kStart      float64
	kEnd        float64
	rampStart   float64
	lockTarget  float64
	noiseStd    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "metronomes",
		Short: "kuramoto metronome synchronization simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".metronomes", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store its trace",
		RunE:  runSimulation,
	}
	addEngineFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot order parameter and coupling of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the order parameter trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, analyzeCmd, listCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&n, "n", config.DefaultN, "number of metronomes")
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "layout rows")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "output frames per second")
	cmd.Flags().IntVar(&substeps, "substeps", config.DefaultSubsteps, "integrator sub-steps per frame")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&omegaMeanHz, "omega", config.DefaultOmegaMeanHz, "mean natural frequency (Hz)")
	cmd.Flags().Float64Var(&omegaSpread, "spread", config.DefaultOmegaSpread, "natural frequency spread (rad/s)")
	cmd.Flags().Float64Var(&startSpread, "start-spread", config.DefaultStartSpread, "staggered start window (s)")
	cmd.Flags().Float64Var(&fadeIn, "fadein", config.DefaultFadeIn, "activation fade-in (s)")
	cmd.Flags().Float64Var(&lambda, "lambda", config.DefaultLambda, "spatial decay length (px)")
	cmd.Flags().Float64Var(&kStart, "k-start", config.DefaultKStart, "initial coupling")
	cmd.Flags().Float64Var(&kEnd, "k-end", config.DefaultKEnd, "final coupling")
	cmd.Flags().Float64Var(&rampStart, "ramp-start", config.DefaultRampStart, "coupling ramp start (s)")
	cmd.Flags().Float64Var(&lockTarget, "lock-target", config.DefaultLockTarget, "coupling ramp end (s)")
	cmd.Flags().Float64Var(&noiseStd, "noise", config.DefaultNoiseStd, "phase noise std")
}

// buildConfig resolves defaults, preset, config file, and explicit
// flags, in increasing precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("n") {
		cfg.N = n
	}
	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("substeps") {
		cfg.Substeps = substeps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("omega") {
		cfg.OmegaMeanHz = omegaMeanHz
	}
	if cmd.Flags().Changed("spread") {
		cfg.OmegaSpread = omegaSpread
	}
	if cmd.Flags().Changed("start-spread") {
		cfg.StartSpread = startSpread
	}
	if cmd.Flags().Changed("fadein") {
		cfg.FadeIn = fadeIn
	}
	if cmd.Flags().Changed("lambda") {
		cfg.Lambda = lambda
	}
	if cmd.Flags().Changed("k-start") {
		cfg.KStart = kStart
	}
	if cmd.Flags().Changed("k-end") {
		cfg.KEnd = kEnd
	}
	if cmd.Flags().Changed("ramp-start") {
		cfg.RampStart = rampStart
	}
	if cmd.Flags().Changed("lock-target") {
		cfg.LockTarget = lockTarget
	}
	if cmd.Flags().Changed("noise") {
		cfg.NoiseStd = noiseStd
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %d metronomes for %.0fs...\n", cfg.N, cfg.Duration)
	start := time.Now()

	series := &storage.Series{}
	err = eng.Run(context.Background(), func(f engine.Frame) bool {
		colored := 0
		for _, c := range f.Colors {
			if c != cluster.Neutral {
				colored++
			}
		}
		series.Append(f.Time, f.Order, f.Coupling, f.Locked, colored, f.Clusters)
		return true
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(series.Times))
	if len(series.Order) > 0 {
		fmt.Printf("final r: %.4f\n", series.Order[len(series.Order)-1])
	}
	lockTime := -1.0
	for i, locked := range series.Locked {
		if locked {
			lockTime = series.Times[i]
			break
		}
	}
	if lockTime >= 0 {
		fmt.Printf("fully locked at t=%.2fs\n", lockTime)
	} else {
		fmt.Println("never fully locked")
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("frames: %d\n", meta.Frames)
	if meta.LockTime >= 0 {
		fmt.Printf("locked at: %.2fs\n\n", meta.LockTime)
	} else {
		fmt.Printf("never locked\n\n")
	}

	graph := asciigraph.Plot(series.Order,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("order parameter r"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(series.Coupling,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("effective coupling K(t)"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Order) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	sampleRate := float64(config.DefaultFPS)
	if meta.Config != nil {
		sampleRate = float64(meta.Config.FPS)
	}

	ps := analysis.PowerSpectrum(series.Order)
	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum of r(t)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(series.Order, sampleRate)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tN\tDURATION\tFINAL_R\tLOCKED_AT")
	for _, run := range runs {
		nOsc := 0
		dur := 0.0
		if run.Config != nil {
			nOsc = run.Config.N
			dur = run.Config.Duration
		}
		lockedAt := "-"
		if run.LockTime >= 0 {
			lockedAt = fmt.Sprintf("%.2fs", run.LockTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1fs\t%.4f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			nOsc,
			dur,
			run.FinalOrder,
			lockedAt,
		)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "order", "coupling", "locked", "colored", "clusters"}); err != nil {
		return err
	}
	for i := range series.Times {
		locked := "0"
		if series.Locked[i] {
			locked = "1"
		}
		row := []string{
			strconv.FormatFloat(series.Times[i], 'f', 6, 64),
			strconv.FormatFloat(series.Order[i], 'f', 6, 64),
			strconv.FormatFloat(series.Coupling[i], 'f', 6, 64),
			locked,
			strconv.Itoa(series.Colored[i]),
			strconv.Itoa(series.Clusters[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, series)
}
