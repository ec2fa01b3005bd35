// Package main is the entry point for the rangescan command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/rangescan/internal/app"
	"github.com/dshills/rangescan/internal/config"
	"github.com/dshills/rangescan/internal/logging"
	"github.com/dshills/rangescan/internal/preview"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string

	query          string
	invert         bool
	mode           string
	matchTransform string
	gapTransform   string
	script         string
	format         string
	pretty         bool
	preview        bool
	watch          bool
	debounce       time.Duration
	logLevel       string

	showVersion bool
	showHelp    bool

	fs *flag.FlagSet
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return exitUsage
	}

	if opts.showHelp {
		opts.fs.Usage()
		return exitOK
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "rangescan %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitOK
	}

	if opts.fs.NArg() > 1 {
		fmt.Fprintf(stderr, "Error: expected at most one input file, got %d\n", opts.fs.NArg())
		return exitUsage
	}
	input := opts.fs.Arg(0)

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if cfg.Watch.Enabled && (input == "" || input == app.StdinPath) {
		fmt.Fprintf(stderr, "Error: -watch needs an input file\n")
		return exitUsage
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	defer func() { _ = logger.Sync() }()

	application, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrValidationFailed) || errors.Is(err, config.ErrScriptRequired) {
			return exitUsage
		}
		return exitError
	}
	defer application.Close()

	once := func() error {
		content, err := app.ReadInput(input, stdin)
		if err != nil {
			return err
		}
		res, err := application.Run(content)
		if err != nil {
			return err
		}
		if cfg.Output.Preview {
			return showPreview(content, res)
		}
		return app.Render(stdout, res, cfg.Output.Format, cfg.Output.Pretty)
	}

	if err := once(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if !cfg.Watch.Enabled {
		return exitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Watch(ctx, input, once); err != nil {
		logger.Error("watch stopped", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	return exitOK
}

func showPreview(content string, res *app.Result) error {
	p, err := preview.NewTerminal()
	if err != nil {
		return err
	}
	return p.Run(content, res.Ranges)
}

// loadConfig layers defaults, the config file, RANGESCAN_* variables and
// explicitly set flags, in that order.
func loadConfig(opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	applyFlags(&cfg, opts)
	return cfg, cfg.Validate()
}

// applyFlags copies the flags given on the command line into cfg. Flags
// left at their defaults do not override lower layers.
func applyFlags(cfg *config.Config, opts *options) {
	setters := map[string]func(){
		"query":           func() { cfg.Query = opts.query },
		"invert":          func() { cfg.Invert = opts.invert },
		"mode":            func() { cfg.Mode = opts.mode },
		"match-transform": func() { cfg.MatchTransform = opts.matchTransform },
		"gap-transform":   func() { cfg.GapTransform = opts.gapTransform },
		"script":          func() { cfg.Script = opts.script },
		"format":          func() { cfg.Output.Format = opts.format },
		"pretty":          func() { cfg.Output.Pretty = opts.pretty },
		"preview":         func() { cfg.Output.Preview = opts.preview },
		"watch":           func() { cfg.Watch.Enabled = opts.watch },
		"debounce":        func() { cfg.Watch.Debounce = config.Duration(opts.debounce) },
		"log-level":       func() { cfg.Log.Level = opts.logLevel },
	}
	shorthands := map[string]string{
		"q": "query",
		"i": "invert",
		"m": "mode",
		"f": "format",
		"w": "watch",
	}

	opts.fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := shorthands[name]; ok {
			name = long
		}
		if set, ok := setters[name]; ok {
			set()
		}
	})
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("rangescan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts.fs = fs

	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.query, "query", "", "Literal string to search for")
	fs.StringVar(&opts.query, "q", "", "Literal string to search for (shorthand)")
	fs.BoolVar(&opts.invert, "invert", false, "Scan the text between occurrences instead")
	fs.BoolVar(&opts.invert, "i", false, "Scan the text between occurrences instead (shorthand)")
	fs.StringVar(&opts.mode, "mode", config.ModeStrings, "Mode (ranges, strings, transform, reassemble)")
	fs.StringVar(&opts.mode, "m", config.ModeStrings, "Mode (shorthand)")
	fs.StringVar(&opts.matchTransform, "match-transform", "", "Transform applied to occurrences")
	fs.StringVar(&opts.gapTransform, "gap-transform", "", "Transform applied to the text between occurrences")
	fs.StringVar(&opts.script, "script", "", "Lua file defining lua:<name> transforms")
	fs.StringVar(&opts.format, "format", config.FormatText, "Output format (text, json)")
	fs.StringVar(&opts.format, "f", config.FormatText, "Output format (shorthand)")
	fs.BoolVar(&opts.pretty, "pretty", false, "Indent json output")
	fs.BoolVar(&opts.preview, "preview", false, "Show the content with highlighted ranges")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run when the input file changes")
	fs.BoolVar(&opts.watch, "w", false, "Re-run when the input file changes (shorthand)")
	fs.DurationVar(&opts.debounce, "debounce", 100*time.Millisecond, "Delay that coalesces bursts of changes in watch mode")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "Log level ("+strings.Join(logging.Levels, ", ")+")")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "rangescan - find, split and rewrite text around a literal string\n\n")
		fmt.Fprintf(out, "Usage: rangescan [options] [file]\n\n")
		fmt.Fprintf(out, "Reads stdin when no file is given.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  rangescan -q foo notes.txt                         Print every foo\n")
		fmt.Fprintf(out, "  rangescan -q , -i < data.csv                       Print the fields between commas\n")
		fmt.Fprintf(out, "  rangescan -q foo -m ranges -f json notes.txt       Byte ranges as json\n")
		fmt.Fprintf(out, "  rangescan -q foo -m transform -match-transform upper notes.txt\n")
		fmt.Fprintf(out, "  rangescan -q foo -m reassemble -script t.lua -gap-transform lua:shout notes.txt\n")
		fmt.Fprintf(out, "\nEnvironment variables %s* override the config file; flags override both.\n", config.EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}
