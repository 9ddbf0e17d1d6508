package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/windkit/airtraj/internal/config"
	"github.com/windkit/airtraj/internal/export"
	"github.com/windkit/airtraj/internal/grid"
	"github.com/windkit/airtraj/internal/met"
	"github.com/windkit/airtraj/internal/storage"
	"github.com/windkit/airtraj/internal/traj"
	"github.com/windkit/airtraj/internal/viz"
)

var (
	dataDir    string
	metFile    string
	timeIndex  int
	interp     string
	startLat   float64
	startLon   float64
	steps      int
	configFile string
	preset     string
	frameRate  int
	svgOut     string
	// subset bounds
	timeStart string
	timeEnd   string
	latMin    float64
	latMax    float64
	lonMin    float64
	lonMax    float64
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	rootCmd := &cobra.Command{
		Use:   "airtraj",
		Short: "atmospheric particle trajectory lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".airtraj", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a trajectory and save the run",
		RunE:  runTrajectory,
	}
	addFieldFlags(runCmd)
	runCmd.Flags().Float64Var(&startLat, "lat", config.DefaultLat, "starting latitude")
	runCmd.Flags().Float64Var(&startLon, "lon", config.DefaultLon, "starting longitude")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of integration steps")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "summarize a met file after normalization",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}

	subsetCmd := &cobra.Command{
		Use:   "subset [file]",
		Short: "slice a met file by time/lat/lon bounds",
		Args:  cobra.ExactArgs(1),
		RunE:  subsetDataset,
	}
	subsetCmd.Flags().StringVar(&timeStart, "t0", "", "range start (2023-01-01T02:00)")
	subsetCmd.Flags().StringVar(&timeEnd, "t1", "", "range end")
	subsetCmd.Flags().Float64Var(&latMin, "lat-min", -90, "minimum latitude")
	subsetCmd.Flags().Float64Var(&latMax, "lat-max", 90, "maximum latitude")
	subsetCmd.Flags().Float64Var(&lonMin, "lon-min", -180, "minimum longitude")
	subsetCmd.Flags().Float64Var(&lonMax, "lon-max", 180, "maximum longitude")
	_ = subsetCmd.MarkFlagRequired("t0")
	_ = subsetCmd.MarkFlagRequired("t1")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run track to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render run track as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a trajectory advance step by step",
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)
	liveCmd.Flags().Float64Var(&startLat, "lat", config.DefaultLat, "starting latitude")
	liveCmd.Flags().Float64Var(&startLon, "lon", config.DefaultLon, "starting longitude")
	liveCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of integration steps")
	liveCmd.Flags().IntVar(&frameRate, "fps", 10, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, infoCmd, subsetCmd, listCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&metFile, "file", "", "met data file (empty: built-in reference field)")
	cmd.Flags().IntVar(&timeIndex, "time-index", 0, "time slice used as the steady-state field")
	cmd.Flags().StringVar(&interp, "interp", config.DefaultInterp, "interpolation (nearest|bilinear)")
}

// buildConfig merges preset, config file, and flags in ascending priority.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

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

	if cmd.Flags().Changed("file") {
		cfg.MetFile = metFile
	}
	if cmd.Flags().Changed("time-index") {
		cfg.TimeIndex = timeIndex
	}
	if cmd.Flags().Changed("interp") {
		cfg.Interp = interp
	}
	if cmd.Flags().Changed("lat") {
		cfg.Start.Lat = startLat
	}
	if cmd.Flags().Changed("lon") {
		cfg.Start.Lon = startLon
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	return cfg, nil
}

// buildField resolves the velocity field a run integrates through: a met file
// slice, optionally subset first, or the built-in reference rotation field.
func buildField(cfg *config.Config) (traj.Field, string, error) {
	kind := traj.ParseInterp(cfg.Interp)

	if cfg.MetFile == "" {
		return grid.SolidBodyRotation(kind), "reference", nil
	}

	ds, err := met.Open(cfg.MetFile)
	if err != nil {
		return nil, "", err
	}
	logger.Info("met file loaded", ds.Summary()...)

	ds = ds.Normalize(aliasTable(cfg))

	if cfg.Subset.Enabled() {
		tr, err := met.ParseTimeRange(cfg.Subset.TimeStart, cfg.Subset.TimeEnd)
		if err != nil {
			return nil, "", err
		}
		ds = ds.Subset(tr,
			met.Bounds{Min: cfg.Subset.LatMin, Max: cfg.Subset.LatMax},
			met.Bounds{Min: cfg.Subset.LonMin, Max: cfg.Subset.LonMax})
		logger.Info("met file subset", ds.Summary()...)
	}

	field, err := ds.VelocityField(cfg.TimeIndex, kind)
	if err != nil {
		return nil, "", err
	}
	return field, cfg.MetFile, nil
}

// aliasTable applies config overrides on top of the default alias table.
func aliasTable(cfg *config.Config) met.AliasTable {
	table := met.DefaultAliases()
	for _, rule := range cfg.Aliases {
		replaced := false
		for i, entry := range table {
			if entry.Canonical == rule.Canonical {
				table[i].Aliases = rule.Aliases
				replaced = true
				break
			}
		}
		if !replaced {
			table = append(table, met.AliasEntry{Canonical: rule.Canonical, Aliases: rule.Aliases})
		}
	}
	return table
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	field, source, err := buildField(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := traj.Position{Lat: cfg.Start.Lat, Lon: cfg.Start.Lon}
	began := time.Now()

	result, err := traj.Integrate(ctx, start, field, cfg.Steps)
	if err != nil {
		return err
	}

	elapsed := time.Since(began)

	runID, err := st.Save(source, start, traj.ParseInterp(cfg.Interp), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.Len())
	final := result.Positions[result.Len()-1]
	fmt.Printf("final position: lat=%.4f, lon=%.4f\n", final.Lat, final.Lon)
	if len(result.Warnings) > 0 {
		fmt.Printf("domain exits: %d (first: %s)\n", len(result.Warnings), result.Warnings[0])
	}
	return nil
}

func showInfo(cmd *cobra.Command, args []string) error {
	ds, err := met.Open(args[0])
	if err != nil {
		return err
	}
	logger.Info("met file loaded", ds.Summary()...)

	ds = ds.Normalize(met.DefaultAliases())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "variables\t%v\n", ds.VarNames())
	fmt.Fprintf(w, "times\t%d\n", len(ds.Times))
	if len(ds.Times) > 0 {
		fmt.Fprintf(w, "time range\t%s .. %s\n",
			ds.Times[0].Format(time.RFC3339), ds.Times[len(ds.Times)-1].Format(time.RFC3339))
	}
	fmt.Fprintf(w, "latitudes\t%d\n", len(ds.Lats))
	fmt.Fprintf(w, "longitudes\t%d\n", len(ds.Lons))
	fmt.Fprintf(w, "history\t%s\n", ds.HistoryString())
	return w.Flush()
}

func subsetDataset(cmd *cobra.Command, args []string) error {
	ds, err := met.Open(args[0])
	if err != nil {
		return err
	}

	ds = ds.Normalize(met.DefaultAliases())

	tr, err := met.ParseTimeRange(timeStart, timeEnd)
	if err != nil {
		return err
	}

	sub := ds.Subset(tr, met.Bounds{Min: latMin, Max: latMax}, met.Bounds{Min: lonMin, Max: lonMax})

	fmt.Printf("times: %d\n", len(sub.Times))
	for _, t := range sub.Times {
		fmt.Printf("  %s\n", t.Format(time.RFC3339))
	}
	fmt.Printf("latitudes: %v\n", sub.Lats)
	fmt.Printf("longitudes: %v\n", sub.Lons)
	fmt.Printf("history:\n%s\n", sub.HistoryString())
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
	fmt.Fprintln(w, "ID\tTIME\tSOURCE\tSTART\tSTEPS\tINTERP\tEXITS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f,%.2f\t%d\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Source,
			run.StartLat,
			run.StartLon,
			run.Steps,
			run.Interp,
			run.Warnings,
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

	track, err := st.LoadTrack(runID)
	if err != nil {
		return err
	}
	if len(track) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("samples: %d\n\n", len(track))

	lats := make([]float64, len(track))
	lons := make([]float64, len(track))
	for i, p := range track {
		lats[i] = p.Lat
		lons[i] = p.Lon
	}

	fmt.Println(asciigraph.Plot(lats,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("latitude vs step"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(lons,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("longitude vs step"),
	))
	fmt.Println()
	fmt.Println(viz.TrackMap(track, 70, 20))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(runID)
	if err != nil {
		return err
	}

	result := &traj.Result{Positions: track}
	if meta.History != "" {
		result.AppendHistory(meta.History)
	}

	data := export.NewRunData(meta.ID, meta.Source, traj.ParseInterp(meta.Interp), result)
	return export.WriteJSON(os.Stdout, data)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	if len(track) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "lat", "lon"}); err != nil {
		return err
	}
	for i, p := range track {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.Lat, 'f', 6, 64),
			strconv.FormatFloat(p.Lon, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	track, err := st.LoadTrack(runID)
	if err != nil {
		return err
	}

	svg := export.TrackToSVG(track, 800, 600, "#00ff00")
	if svg == "" {
		return fmt.Errorf("track too short to render")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	field, source, err := buildField(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(field, source, traj.Position{Lat: cfg.Start.Lat, Lon: cfg.Start.Lon}, cfg.Steps, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
