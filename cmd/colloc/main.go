package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/colloc/internal/analysis"
	"github.com/san-kum/colloc/internal/collocation"
	"github.com/san-kum/colloc/internal/config"
	"github.com/san-kum/colloc/internal/export"
	"github.com/san-kum/colloc/internal/storage"
	"github.com/san-kum/colloc/internal/viz"
)

var (
	dataDir      string
	configFile   string
	preset       string
	distribution string
	precision    string
	function     string
	theme        string
	digits       int
	format       string
	outPath      string
	save         bool
	plot         bool
	svgPath      string
	sweepMin     int
	sweepMax     int
	plotWidth    int
	plotHeight   int
)

// main registers the colloc commands and flags and executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "colloc",
		Short: "pseudospectral differentiation matrices",
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".colloc", "data directory for saved operators")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&distribution, "dist", config.DefaultDistribution, "point distribution")
	pf.StringVar(&precision, "precision", config.DefaultPrecision, "float64 or float32")
	pf.StringVar(&function, "func", config.DefaultFunction, "test function")
	pf.IntVar(&digits, "digits", config.DefaultDigits, "digits after the decimal point")
	pf.StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme (%s)", strings.Join(viz.ThemeNames(), ", ")))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		viz.ApplyTheme(viz.GetTheme(theme))
	}

	pointsCmd := &cobra.Command{
		Use:   "points [n]",
		Short: "print collocation points",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPoints,
	}

	matrixCmd := &cobra.Command{
		Use:   "matrix [n]",
		Short: "print the differentiation matrix",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showMatrix,
	}

	checkCmd := &cobra.Command{
		Use:   "check [n]",
		Short: "compare f·D with the exact derivative",
		Args:  cobra.MaximumNArgs(1),
		RunE:  checkFunction,
	}
	checkCmd.Flags().BoolVar(&plot, "plot", false, "plot exact and approximate derivative")
	checkCmd.Flags().StringVar(&svgPath, "svg", "", "write exact and approximate curves to an svg file")
	checkCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	checkCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "convergence of the derivative error with n",
		Args:  cobra.NoArgs,
		RunE:  sweepSizes,
	}
	sweepCmd.Flags().IntVar(&sweepMin, "min", config.DefaultSweepMin, "smallest n")
	sweepCmd.Flags().IntVar(&sweepMax, "max", config.DefaultSweepMax, "largest n")
	sweepCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	sweepCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	exportCmd := &cobra.Command{
		Use:   "export [n]",
		Short: "write the matrix as csv, json or svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportMatrix,
	}
	exportCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "csv, json or svg")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&save, "save", false, "also keep a copy in the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved operators",
		Args:  cobra.NoArgs,
		RunE:  listSaved,
	}

	verifyCmd := &cobra.Command{
		Use:   "verify [file.json]",
		Short: "rebuild a saved json operator and compare",
		Args:  cobra.ExactArgs(1),
		RunE:  verifyFile,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore [n]",
		Short: "interactive explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return viz.RunExplorer(cfg.Size, cfg.Distribution, cfg.Function, theme)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tN\tPOINTS\tPRECISION\tFUNC")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", name, p.Size, p.Distribution, p.Precision, p.Function)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(pointsCmd, matrixCmd, checkCmd, sweepCmd, exportCmd, listCmd, verifyCmd, exploreCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file, explicit flags and
// the optional [n] argument, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
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

	flags := cmd.Flags()
	if flags.Changed("dist") || (preset == "" && configFile == "") {
		cfg.Distribution = distribution
	}
	if flags.Changed("precision") || (preset == "" && configFile == "") {
		cfg.Precision = precision
	}
	if flags.Changed("func") || (preset == "" && configFile == "") {
		cfg.Function = function
	}
	if flags.Changed("digits") {
		cfg.Output.Digits = digits
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Output.Format = format
	}
	if flags.Lookup("min") != nil && flags.Changed("min") {
		cfg.Sweep.Min = sweepMin
	}
	if flags.Lookup("max") != nil && flags.Changed("max") {
		cfg.Sweep.Max = sweepMax
	}

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", args[0], err)
		}
		cfg.Size = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// operator is a generated point set and matrix widened to float64.
type operator struct {
	doc    *export.Document
	points []float64
	rows   [][]float64
}

func buildOperator(cfg *config.Config) (*operator, error) {
	dist, err := cfg.DistributionStrategy()
	if err != nil {
		return nil, err
	}
	var doc *export.Document
	if cfg.Precision == "float32" {
		doc, err = buildDocument[float32](cfg.Size, dist)
	} else {
		doc, err = buildDocument[float64](cfg.Size, dist)
	}
	if err != nil {
		return nil, err
	}
	return &operator{doc: doc, points: doc.Points, rows: doc.Matrix}, nil
}

func buildDocument[S collocation.Scalar](n int, dist collocation.Distribution) (*export.Document, error) {
	pts, err := collocation.Generate[S](n, dist)
	if err != nil {
		return nil, err
	}
	d, err := collocation.Build(pts)
	if err != nil {
		return nil, err
	}
	return export.NewDocument(dist.Name(), pts, d)
}

func showPoints(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	op, err := buildOperator(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%d %s points (%s)\n", cfg.Size, cfg.Distribution, cfg.Precision)
	fmt.Println(viz.NodeStrip(op.points, 60))
	fmt.Println(viz.RenderPoints(op.points, cfg.Output.Digits))
	return nil
}

func showMatrix(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	op, err := buildOperator(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("differentiation matrix, n=%d, %s points (%s)\n", cfg.Size, cfg.Distribution, cfg.Precision)
	fmt.Println("entry (j,i) = L_j'(t_i); apply as fx · D")
	fmt.Println(viz.RenderMatrix(op.rows, cfg.Output.Digits))
	return nil
}

func evaluate(cfg *config.Config) (*analysis.Report, error) {
	dist, err := cfg.DistributionStrategy()
	if err != nil {
		return nil, err
	}
	fn, err := cfg.TestFunction()
	if err != nil {
		return nil, err
	}
	if cfg.Precision == "float32" {
		return analysis.Evaluate[float32](cfg.Size, dist, fn)
	}
	return analysis.Evaluate[float64](cfg.Size, dist, fn)
}

func checkFunction(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	r, err := evaluate(cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderReport(r, cfg.Output.Digits))
	if plot {
		if p := viz.PlotDerivative(r, plotWidth, plotHeight); p != "" {
			fmt.Println()
			fmt.Println(p)
		}
	}
	if svgPath != "" {
		svg := export.CurvesToSVG(r.Points, [][]float64{r.Exact, r.Approx}, []string{"#00ffff", "#ff00ff"}, 640, 360)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("curves written to %s\n", svgPath)
	}
	return nil
}

func sweepSizes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	dist, err := cfg.DistributionStrategy()
	if err != nil {
		return err
	}
	fn, err := cfg.TestFunction()
	if err != nil {
		return err
	}

	sizes := analysis.Sizes(cfg.Sweep.Min, cfg.Sweep.Max)
	var reports []*analysis.Report
	if cfg.Precision == "float32" {
		reports, err = analysis.Sweep[float32](context.Background(), sizes, dist, fn)
	} else {
		reports, err = analysis.Sweep[float64](context.Background(), sizes, dist, fn)
	}
	if err != nil {
		return err
	}

	fmt.Printf("convergence of %s' on %s points (%s)\n", fn.Name, dist.Name(), cfg.Precision)
	fmt.Println(viz.RenderSweep(reports))
	if p := viz.PlotConvergence(reports, plotWidth, plotHeight); p != "" {
		fmt.Println()
		fmt.Println(p)
	}
	return nil
}

func exportMatrix(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	op, err := buildOperator(cfg)
	if err != nil {
		return err
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(op.doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved as %s\n", id)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch cfg.Output.Format {
	case "json":
		return export.WriteJSON(out, op.doc)
	case "svg":
		_, err := fmt.Fprintln(out, export.MatrixToSVG(op.rows, 16))
		return err
	default:
		d := cfg.Output.Digits
		if !cmd.Flags().Changed("digits") {
			d = -1
		}
		return export.WriteCSV(out, op.rows, d)
	}
}

func listSaved(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	docs, err := st.List()
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Println("no saved operators")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tN\tPOINTS\tPRECISION\tCREATED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			doc.ID,
			doc.Size,
			doc.Distribution,
			doc.Precision,
			doc.Created.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func verifyFile(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := export.ReadJSON(f)
	if err != nil {
		return err
	}

	tol := 1e-12
	if doc.Precision == "float32" {
		tol = 1e-4
	}
	if err := doc.Verify(tol); err != nil {
		return err
	}
	fmt.Printf("ok: n=%d %s (%s) matches a fresh build\n", doc.Size, doc.Distribution, doc.Precision)
	return nil
}
