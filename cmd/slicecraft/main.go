package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"slicecraft/internal/config"
	"slicecraft/internal/game"
	"slicecraft/internal/logging"
	"slicecraft/internal/profiling"
	"slicecraft/internal/storage"

	"github.com/xlab/closer"
)

func init() {
	// glfw and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

type options struct {
	configPath string
	seed       int64
	snapshot   string
	ticks      int
	metrics    string
	saveID     string
	loadID     string
	label      bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML config file (default $SLICECRAFT_CONFIG)")
	flag.Int64Var(&o.seed, "seed", 0, "world seed, overrides the config when non-zero")
	flag.StringVar(&o.snapshot, "snapshot", "", "run headless and write the final frame to this PNG file")
	flag.IntVar(&o.ticks, "ticks", 60, "frames to simulate in headless mode")
	flag.StringVar(&o.metrics, "metrics", "", "serve Prometheus metrics on this address, e.g. :2112")
	flag.StringVar(&o.saveID, "save", "", "save slot written on exit (F5 in the viewer)")
	flag.StringVar(&o.loadID, "load", "", "save slot to load instead of generating a world")
	flag.BoolVar(&o.label, "label", true, "draw the debug label")
	flag.Parse()
	return o
}

func main() {
	defer closer.Close()

	o := parseFlags()
	if err := run(o); err != nil {
		logging.Errorf("%v", err)
		closer.Exit(1)
	}
}

func run(o options) error {
	settings, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.seed != 0 {
		settings.World.Seed = o.seed
	}
	config.SetFPSLimit(settings.Game.FPSLimit)
	config.SetShowLabel(o.label)

	logger, err := setupLogging(settings.Log)
	if err != nil {
		return err
	}
	closer.Bind(func() { logger.Close() })

	metrics := profiling.NewMetrics()
	addr := o.metrics
	if addr == "" {
		addr = settings.Game.MetricsAddr
	}
	if addr != "" {
		startMetrics(addr, metrics)
	}

	store, err := storage.Open(settings.Storage)
	if err != nil {
		return err
	}
	closer.Bind(func() {
		if err := store.Close(); err != nil {
			logging.Warnf("Closing store: %v", err)
		}
	})

	ctx := context.Background()
	session, err := game.NewSession(ctx, *settings, metrics)
	if err != nil {
		return err
	}
	if o.loadID != "" {
		if err := session.Load(ctx, store, o.loadID); err != nil {
			return err
		}
	}
	if o.saveID != "" {
		closer.Bind(func() {
			if err := session.Save(context.Background(), store, o.saveID); err != nil {
				logging.Errorf("Saving on exit: %v", err)
			}
		})
	}

	if o.snapshot != "" {
		return runHeadless(session, o.ticks, o.snapshot)
	}
	return runViewer(session, store, o.saveID, settings.Game)
}

func setupLogging(s config.LogSettings) (*logging.Logger, error) {
	level, err := logging.ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, level)
	if s.File != "" {
		if err := logger.AttachFile(s.File); err != nil {
			return nil, err
		}
	}
	logging.SetDefault(logger)
	return logger, nil
}

func startMetrics(addr string, m *profiling.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Infof("Prometheus /metrics available at %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Errorf("Metrics server: %v", err)
		}
	}()
	closer.Bind(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
}

func usageError(format string, args ...any) error {
	flag.Usage()
	return fmt.Errorf(format, args...)
}
