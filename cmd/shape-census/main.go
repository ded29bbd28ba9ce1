package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/shape-census/internal/analysis"
	"github.com/ironsheep/shape-census/internal/config"
	"github.com/ironsheep/shape-census/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Handle --version and -v flags
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "shape-census %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return exitOK
		}
	}

	// Diagnostics go to stderr; stdout carries only the report.
	logger := log.New(stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
	var debug *log.Logger
	if os.Getenv("SHAPE_CENSUS_LOG_LEVEL") == "debug" {
		debug = logger
		debug.Printf("shape-census v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	fs := flag.NewFlagSet("shape-census", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }

	defaults := config.Default()
	var flagCfg config.Config
	configPath := fs.String("config", "", "Path to a JSON config file; explicit flags override it")
	fs.IntVar(&flagCfg.MinArea, config.KeyMinArea, defaults.MinArea, "Minimum pixel area for a region to count as a shape")
	fs.Float64Var(&flagCfg.ColorTol, config.KeyColorTol, defaults.ColorTol, "Maximum color distance for two shapes to share a color")
	fs.StringVar(&flagCfg.Metric, config.KeyMetric, defaults.Metric, "Color distance: rgb, lab or ciede2000")
	fs.StringVar(&flagCfg.Region, config.KeyRegion, defaults.Region, "Analyze only x1,y1,x2,y2 (default: whole image)")
	fs.Float64Var(&flagCfg.MedianRadius, config.KeyMedian, defaults.MedianRadius, "Median pre-filter radius, 0 disables")
	fs.StringVar(&flagCfg.Format, config.KeyFormat, defaults.Format, "Output format: text or json")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if len(positional) != 1 {
		fmt.Fprintln(stderr, "Error: exactly one image path is required")
		fs.Usage()
		return exitUsage
	}
	imagePath := positional[0]

	cfg := defaults
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg.Override(flagCfg, set)

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	res, err := analysis.New(opts, debug).AnalyzeFile(imagePath)
	if err != nil {
		if errors.Is(err, imaging.ErrDecode) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		logger.Printf("Analysis error: %v", err)
		return exitError
	}

	if err := analysis.Write(stdout, res, cfg.Format); err != nil {
		logger.Printf("Output error: %v", err)
		return exitError
	}
	return exitOK
}

// parseInterspersed parses flags that may appear before or after positional
// arguments, e.g. "image.png -min-area 500".
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "shape-census - count shapes and distinct colors on a white background")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: shape-census [options] <image>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w, "  --version, -v")
	fmt.Fprintln(w, "    \tPrint version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  SHAPE_CENSUS_LOG_LEVEL=debug    Log pipeline details to stderr")
}
