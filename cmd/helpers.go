package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ziadkadry99/edition-advisor/internal/config"
	"github.com/ziadkadry99/edition-advisor/internal/dataset"
	"github.com/ziadkadry99/edition-advisor/internal/layout"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// A missing file yields the defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `advisor init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs always go to stderr so that
// stdout stays free for rendered output and the MCP protocol.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadDataset returns the compiled-in dataset, refusing to continue on
// blocking validation findings.
func loadDataset(log *slog.Logger) (*dataset.Dataset, error) {
	ds, rep, err := dataset.LoadDefault()
	for _, w := range rep.Warnings {
		log.Warn("dataset", "issue", w.Error())
	}
	if err != nil {
		return nil, fmt.Errorf("dataset is inconsistent: %w", err)
	}
	return ds, nil
}

// newEngine builds the layout engine, measuring text with the bundled font
// when it loads.
func newEngine(cfg *config.Config, log *slog.Logger) *layout.Engine {
	var m layout.Measurer
	fm, err := layout.NewFontMeasurer()
	if err != nil {
		log.Warn("falling back to estimated text widths", "error", err)
		m = layout.RuneMeasurer(0.6)
	} else {
		m = fm
	}
	return layout.NewEngine(cfg.LayoutOptions(), m)
}

// outputWriter opens path for writing, or returns stdout for "" and "-".
func outputWriter(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
