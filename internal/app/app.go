// Package app runs rangescan for a validated configuration: it resolves
// transforms, scans content, records metrics and renders results.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/dshills/rangescan/internal/config"
	"github.com/dshills/rangescan/internal/plugin/lua"
	"github.com/dshills/rangescan/internal/transform"
	"github.com/dshills/rangescan/pkg/scan"
)

// App executes runs for one configuration.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics runMetrics

	scripts *lua.Transformer
	matchFn scan.StringFunc
	gapFn   scan.StringFunc

	// Lua states are not safe for concurrent use.
	mu     sync.Mutex
	closed bool
}

// Option configures an App.
type Option func(*options)

type options struct {
	logger *zap.Logger
	scope  tally.Scope
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithScope sets the metrics scope. The default is tally.NoopScope.
func WithScope(scope tally.Scope) Option {
	return func(o *options) {
		o.scope = scope
	}
}

// New validates cfg, loads its Lua script if any and resolves its
// transforms.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{
		logger: zap.NewNop(),
		scope:  tally.NoopScope,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		logger:  o.logger,
		metrics: newRunMetrics(o.scope, cfg.Mode),
	}

	var resolver transform.ScriptResolver
	if cfg.Script != "" {
		scripts, err := lua.LoadFile(cfg.Script, lua.WithExecutionTimeout(cfg.ScriptTimeout.Std()))
		if err != nil {
			return nil, err
		}
		a.scripts = scripts
		resolver = scripts
		a.logger.Debug("loaded script", zap.String("path", cfg.Script))
	}

	var err error
	if a.matchFn, err = transform.Lookup(cfg.MatchTransform, resolver); err != nil {
		a.Close()
		return nil, fmt.Errorf("match transform: %w", err)
	}
	if a.gapFn, err = transform.Lookup(cfg.GapTransform, resolver); err != nil {
		a.Close()
		return nil, fmt.Errorf("gap transform: %w", err)
	}
	return a, nil
}

// Run scans content according to the configured mode.
func (a *App) Run(content string) (*Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	res := &Result{
		RunID:    uuid.NewString(),
		Mode:     a.cfg.Mode,
		Query:    a.cfg.Query,
		Inverted: a.cfg.Invert,
	}

	a.metrics.runs.Inc(1)
	if err := a.execute(res, content); err != nil {
		a.metrics.failures.Inc(1)
		a.logger.Error("run failed",
			zap.String("run_id", res.RunID),
			zap.String("mode", res.Mode),
			zap.Error(err),
		)
		return nil, &RunError{RunID: res.RunID, Mode: res.Mode, Err: err}
	}

	res.Elapsed = time.Since(start)
	a.metrics.ranges.Inc(int64(len(res.Ranges)))
	a.metrics.latency.Record(res.Elapsed)
	a.logger.Info("run complete",
		zap.String("run_id", res.RunID),
		zap.String("mode", res.Mode),
		zap.Int("query_len", len(res.Query)),
		zap.Int("content_len", len(content)),
		zap.Int("ranges", len(res.Ranges)),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (a *App) execute(res *Result, content string) error {
	mode := scan.ModeMatches
	if a.cfg.Invert {
		mode = scan.ModeGaps
	}

	switch a.cfg.Mode {
	case config.ModeRanges:
		res.Ranges = scan.NewWithMode(a.cfg.Query, content, mode).Collect()
	case config.ModeStrings:
		res.Ranges = scan.NewWithMode(a.cfg.Query, content, mode).CollectFunc(func(r scan.Range) {
			res.Strings = append(res.Strings, r.In(content))
		})
	case config.ModeTransform:
		res.Output = scan.Transform(a.cfg.Query, content, a.matchFn)
	case config.ModeReassemble:
		res.Output = scan.Reassemble(content, a.cfg.Query, a.gapFn, a.matchFn)
	default:
		return fmt.Errorf("%w: mode %q", config.ErrValidationFailed, a.cfg.Mode)
	}

	if a.scripts != nil {
		if err := a.scripts.Err(); err != nil {
			a.scripts.Reset()
			return err
		}
	}
	return nil
}

// Close releases the Lua state. It is safe to call more than once.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if a.scripts != nil {
		return a.scripts.Close()
	}
	return nil
}
