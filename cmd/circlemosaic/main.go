// CircleMosaic: circle-packing mosaic generator
//
// Sweeps a source image in raster order, places non-overlapping circles
// and fills each one with the source color at its center.
//
// Build:
//   go build -o circlemosaic ./cmd/circlemosaic
//
// Usage:
//   circlemosaic [flags] <image>
//   circlemosaic -profile sparse -pdf report.pdf -gcode plot.nc photo.jpg
//   circlemosaic -inspect circles.xlsx

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/piwi3910/CircleMosaic/internal/engine"
	"github.com/piwi3910/CircleMosaic/internal/gcode"
	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/piwi3910/CircleMosaic/internal/project"
	"github.com/piwi3910/CircleMosaic/internal/raster"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	white  = color.New(color.FgWhite)
)

// options holds everything parsed from the command line.
type options struct {
	output      string
	configPath  string
	profile     string
	replay      string
	saveProfile string
	remember    bool
	verbose     bool

	// Placement overrides, applied only when the flag was set.
	minRadius     float64
	maxRadius     float64
	likelihood    float64
	shrink        float64
	onCollision   string
	connectivity  int
	collision     string
	fill          string
	canvas        string
	seed          int64
	queueCapacity int
	angleStep     float64

	// Opt-in extra outputs.
	pdfPath      string
	dxfPath      string
	xlsxPath     string
	gcodePath    string
	overlayPath  string
	manifestPath string
	compare      bool
	inspect      string

	plotProfile string
	plotScale   float64
	bedWidth    float64
	bedHeight   float64
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		red.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("circlemosaic", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: circlemosaic [flags] <image>\n       circlemosaic -inspect <circles.csv|.xlsx|.dxf>\n\n")
		fmt.Fprintf(stderr, "Only the output PNG is written unless extra outputs, -save-profile or -remember are given.\n")
		fmt.Fprintf(stderr, "Extra outputs are written before the PNG; a failure leaves no PNG behind.\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.output, "o", "", "output PNG path (default from config, result.png)")
	fs.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "config file")
	fs.StringVar(&opts.profile, "profile", "", "placement profile: "+strings.Join(model.GetProfileNames(), "|")+" or a saved custom profile")
	fs.StringVar(&opts.replay, "replay", "", "reuse the settings and seed of a run manifest")
	fs.StringVar(&opts.saveProfile, "save-profile", "", "save the effective settings as a custom profile with this name")
	fs.BoolVar(&opts.remember, "remember", false, "record the input in the config file's recent list")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	fs.Float64Var(&opts.minRadius, "min-radius", 0, "smallest radius tested")
	fs.Float64Var(&opts.maxRadius, "max-radius", 0, "largest radius drawn")
	fs.Float64Var(&opts.likelihood, "likelihood", 0, "probability a pixel is tried, 0..1")
	fs.Float64Var(&opts.shrink, "shrink", 0, "radius divisor on collision")
	fs.StringVar(&opts.onCollision, "on-collision", "", "shrink|reject")
	fs.IntVar(&opts.connectivity, "connectivity", 0, "flood-fill connectivity, 4 or 8")
	fs.StringVar(&opts.collision, "collision", "", "ray|boundary")
	fs.StringVar(&opts.fill, "fill", "", "distance|mask")
	fs.StringVar(&opts.canvas, "canvas", "", "blank|copy")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed, 0 derives one from the clock")
	fs.IntVar(&opts.queueCapacity, "queue-capacity", 0, "flood-fill queue limit, 0 grows as needed")
	fs.Float64Var(&opts.angleStep, "angle-step", 0, "radians between sampled rays")

	fs.StringVar(&opts.pdfPath, "pdf", "", "write a PDF report")
	fs.StringVar(&opts.dxfPath, "dxf", "", "write circles as a DXF drawing")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "write the circle ledger as XLSX")
	fs.StringVar(&opts.gcodePath, "gcode", "", "write a pen-plotter G-code program")
	fs.StringVar(&opts.overlayPath, "overlay", "", "write the result with circle outlines")
	fs.StringVar(&opts.manifestPath, "manifest", "", "write a run manifest (JSON)")
	fs.BoolVar(&opts.compare, "compare", false, "compare the settings against alternative scenarios")
	fs.StringVar(&opts.inspect, "inspect", "", "summarize an exported circle list and exit")

	fs.StringVar(&opts.plotProfile, "plot-profile", "", "G-code dialect: "+strings.Join(gcode.GetProfileNames(), "|"))
	fs.Float64Var(&opts.plotScale, "plot-scale", 0, "millimeters per pixel for G-code")
	fs.Float64Var(&opts.bedWidth, "bed-width", 0, "plotter bed width in mm")
	fs.Float64Var(&opts.bedHeight, "bed-height", 0, "plotter bed height in mm")
	return fs
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	engine.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if opts.inspect != "" {
		return inspect(stdout, opts.inspect)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one input image")
	}
	input := fs.Arg(0)

	config, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(fs, &opts, config.Settings)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = config.Output
	}

	src, err := raster.Load(input)
	if err != nil {
		return err
	}
	cyan.Fprintf(stdout, "%s ", input)
	white.Fprintf(stdout, "%dx%d, %d channels, profile %q\n", src.Width, src.Height, src.Channels, settings.Profile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	packer, err := engine.New(settings)
	if err != nil {
		return err
	}
	start := time.Now()
	canvas, result, err := packer.Run(ctx, src)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	manifest := model.NewManifest(input, output, settings, packer.Seed(), result)
	if err := writeOutputs(stdout, &opts, canvas, result, manifest); err != nil {
		return err
	}
	if err := canvas.Result.SavePNG(output); err != nil {
		return err
	}
	green.Fprintf(stdout, "wrote %s: ", output)
	white.Fprintf(stdout, "%d circles, %.1f%% coverage, seed %d, %s\n",
		len(result.Placements), result.Coverage(), packer.Seed(), elapsed.Round(time.Millisecond))

	if opts.compare {
		pinned := settings
		pinned.Seed = packer.Seed()
		if err := compare(ctx, stdout, pinned, src); err != nil {
			return err
		}
	}

	if opts.saveProfile != "" {
		if err := saveProfile(opts.saveProfile, settings); err != nil {
			return err
		}
		green.Fprintf(stdout, "saved profile %q\n", opts.saveProfile)
	}

	if opts.remember {
		config.AddRecentInput(input)
		if err := project.SaveAppConfig(opts.configPath, config); err != nil {
			yellow.Fprintf(stderr, "warning: could not save config: %v\n", err)
		}
	}
	return nil
}

// resolveSettings layers the configured defaults, a replayed manifest, a
// named profile and finally every explicitly set flag.
func resolveSettings(fs *flag.FlagSet, opts *options, base model.Settings) (model.Settings, error) {
	settings := base

	if opts.replay != "" {
		mf, err := project.ImportManifest(opts.replay)
		if err != nil {
			return settings, err
		}
		settings = mf.Manifest.SeededSettings()
	}

	if opts.profile != "" {
		custom, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
		if err != nil {
			return settings, err
		}
		p, ok := project.FindProfile(opts.profile, custom)
		if !ok {
			return settings, fmt.Errorf("unknown profile %q", opts.profile)
		}
		p.Seed = settings.Seed
		settings = p
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "min-radius":
			settings.MinRadius = opts.minRadius
		case "max-radius":
			settings.MaxRadius = opts.maxRadius
		case "likelihood":
			settings.Likelihood = opts.likelihood
		case "shrink":
			settings.ShrinkFactor = opts.shrink
		case "on-collision":
			settings.OnCollision = model.CollisionPolicy(opts.onCollision)
		case "connectivity":
			settings.Connectivity = opts.connectivity
		case "collision":
			settings.Collision = model.CollisionStrategy(opts.collision)
		case "fill":
			settings.Fill = model.FillPolicy(opts.fill)
		case "canvas":
			settings.Canvas = model.CanvasMode(opts.canvas)
		case "seed":
			settings.Seed = opts.seed
		case "queue-capacity":
			settings.QueueCapacity = opts.queueCapacity
		case "angle-step":
			settings.AngleStep = opts.angleStep
		}
	})

	return settings, settings.Validate()
}

func saveProfile(name string, settings model.Settings) error {
	if _, builtin := project.FindProfile(name, nil); builtin {
		return fmt.Errorf("cannot overwrite built-in profile %q", name)
	}
	path := project.DefaultProfilesPath()
	custom, err := project.LoadCustomProfiles(path)
	if err != nil {
		return err
	}

	settings.Profile = name
	settings.Seed = 0
	replaced := false
	for k := range custom {
		if custom[k].Profile == name {
			custom[k] = settings
			replaced = true
		}
	}
	if !replaced {
		custom = append(custom, settings)
	}
	return project.SaveCustomProfiles(path, custom)
}

func compare(ctx context.Context, w io.Writer, settings model.Settings, src *raster.Buffer) error {
	results, err := engine.CompareScenarios(ctx, engine.BuildDefaultScenarios(settings), src)
	if err != nil {
		return err
	}

	cyan.Fprintf(w, "\n%-28s %8s %9s %11s %9s\n", "Scenario", "Circles", "Coverage", "Mean radius", "Rejected")
	for _, r := range results {
		fmt.Fprintf(w, "%-28s %8d %8.1f%% %11.2f %9d\n",
			r.Scenario.Name, r.Circles, r.Coverage, r.MeanRadius, r.Result.Rejected)
	}
	return nil
}
