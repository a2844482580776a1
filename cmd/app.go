// Package cmd implements the CLI application to build a household savings panel.
package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/savings"
	"github.com/etnz/savings/config"
	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/inflation"
	"github.com/etnz/savings/wave"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&crosswalkCmd{}, "crosswalk")
	c.Register(&matchCmd{}, "crosswalk")
	c.Register(&inflationCmd{}, "crosswalk")

	c.Register(&yearDataCmd{}, "stages")
	c.Register(&twoPeriodCmd{}, "stages")
	c.Register(&savingsCmd{}, "stages")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file. See `psav topic config`.")
var forceReload = flag.Bool("force", false, "Recompute every stage even if its output file exists.")

// app is what every stage command needs: the configuration and the objects built from it.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *savings.Store
	panel  *savings.Panel
	calc   *savings.Calculator
	prices *inflation.Series
}

// loadConfig loads the configuration selected by the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *forceReload {
		cfg.ForceReload = true
	}
	return cfg, nil
}

// newLogger builds the logger of the run. Logs go to stderr.
func newLogger(c config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Encoding = c.Format
	if c.Format == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// newApp loads the configuration and opens the crosswalk and the price levels.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}

	cw, err := crosswalk.DecodeFile(cfg.Paths.Crosswalk)
	if err != nil {
		return nil, fmt.Errorf("failed to read crosswalk %q: %w", cfg.Paths.Crosswalk, err)
	}
	prices, err := inflation.DecodeFile(cfg.Paths.PriceLevels)
	if err != nil {
		return nil, fmt.Errorf("failed to read price levels %q: %w", cfg.Paths.PriceLevels, err)
	}
	log.Debug("configuration loaded", zap.Ints("years", cfg.YearsToInclude), zap.Int("toYear", cfg.ToYear),
		zap.Int("variables", cw.Len()))

	classes := savings.DefaultAssetClasses()
	store := &savings.Store{Dir: cfg.Paths.OutputDir, BaseName: cfg.BaseName, ForceReload: cfg.ForceReload}
	if cfg.OriginalSampleOnly() {
		store.Sample = "original"
	}
	return &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		prices: prices,
		panel: &savings.Panel{
			Crosswalk:          cw,
			Prices:             prices,
			Source:             savings.DirSource(cfg.Paths.ExtractDir),
			Store:              store,
			Variables:          savings.AssetVariables(classes),
			OriginalSampleOnly: cfg.OriginalSampleOnly(),
			Logger:             log,
		},
		calc: &savings.Calculator{
			Classes:           classes,
			ExcludeRetirement: cfg.ExcludeRetirementSavings,
			Logger:            log,
		},
	}, nil
}

// spans returns the timespans named in args, or the configured ones.
func (a *app) spans(args []string) ([]wave.Span, error) {
	if len(args) == 0 {
		return a.cfg.Spans(), nil
	}
	var spans []wave.Span
	for _, arg := range args {
		s, err := wave.ParseSpan(arg)
		if err != nil {
			return nil, err
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	return spans, nil
}

// savings returns the savings table of span, computed from the two-period table if needed.
func (a *app) savings(span wave.Span) (*savings.Table, error) {
	return a.store.Load(a.store.SavingsFile(span, a.cfg.ToYear), func() (*savings.Table, error) {
		tp, err := a.panel.TwoPeriod(span, a.cfg.ToYear)
		if err != nil {
			return nil, err
		}
		return a.calc.Compute(tp, span)
	})
}

// cleanSavings returns the savings recomputed on the rows kept by the
// two-period stage, restricted to Keep rows.
func (a *app) cleanSavings(span wave.Span) (*savings.Table, error) {
	return a.store.Load(savings.CleanFile(a.store.SavingsFile(span, a.cfg.ToYear)), func() (*savings.Table, error) {
		tp, err := a.panel.TwoPeriod(span, a.cfg.ToYear)
		if err != nil {
			return nil, err
		}
		t, err := a.calc.Compute(savings.KeepOnly(tp), span)
		if err != nil {
			return nil, err
		}
		return savings.KeepOnly(t), nil
	})
}
