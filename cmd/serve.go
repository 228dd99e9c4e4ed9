package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/edition-advisor/internal/config"
	"github.com/ziadkadry99/edition-advisor/internal/dashboard"
	"github.com/ziadkadry99/edition-advisor/internal/metrics"
	"github.com/ziadkadry99/edition-advisor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactive advisor web server",
	Long: `Starts an HTTP server with the interactive decision tree, the comparison
page, a JSON API and Prometheus metrics. Session settings in the config file
are reloaded when the file changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// sessionOptions maps the config onto live session settings.
func sessionOptions(cfg *config.Config) (dashboard.Options, error) {
	profile, err := cfg.Profile()
	if err != nil {
		return dashboard.Options{}, err
	}
	opts := dashboard.DefaultOptions()
	opts.Profile = profile
	opts.FullTree = cfg.FullTree
	opts.InitialDelay = cfg.InitialDelay()
	opts.ResizeWait = cfg.ResizeWait()
	opts.FrameInterval = cfg.FrameInterval()
	return opts, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ds, err := loadDataset(log)
	if err != nil {
		return err
	}
	opts, err := sessionOptions(cfg)
	if err != nil {
		return err
	}

	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	m := metrics.New()
	srv := server.New(server.Config{Port: port, AllowAll: cfg.AllowAllOrigins}, m, log)
	dash, err := dashboard.New(ds, newEngine(cfg, log), opts, m, log)
	if err != nil {
		return fmt.Errorf("creating dashboard: %w", err)
	}
	dash.RegisterRoutes(srv.Router())

	// Hot reload of session settings. Layout geometry and the port need a restart.
	if _, statErr := os.Stat(cfgFile); statErr == nil {
		stopWatch, err := config.Watch(cfgFile, func(next *config.Config, err error) {
			if err != nil {
				log.Warn("config reload failed", "error", err)
				return
			}
			nextOpts, err := sessionOptions(next)
			if err != nil {
				log.Warn("config reload failed", "error", err)
				return
			}
			dash.SetOptions(nextOpts)
			log.Info("config reloaded", "path", cfgFile, "profile", nextOpts.Profile.Name)
		})
		if err != nil {
			log.Warn("config watch unavailable", "error", err)
		} else {
			defer stopWatch()
		}
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	log.Info("advisor server starting",
		slog.String("version", Version),
		slog.Int("port", port),
		slog.String("profile", opts.Profile.Name),
	)
	fmt.Fprintf(os.Stderr, "Open http://localhost:%d in a browser, press Ctrl+C to stop\n", port)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stderr, "\nShutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errc
}
