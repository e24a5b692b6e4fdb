package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/five82/hydrant/api"
	"github.com/five82/hydrant/hydrus"
	"github.com/five82/hydrant/internal/config"
	"github.com/five82/hydrant/internal/logging"
	"github.com/five82/hydrant/internal/prefs"
	"github.com/five82/hydrant/internal/state"
	"github.com/five82/hydrant/internal/ui"
)

// Options configure the page browser.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses ~/.config/hydrant/prefs.toml
	PollEvery  time.Duration // zero uses the configured poll_interval
}

// NewHydrus connects the high-level client described by cfg. metrics may be
// nil.
func NewHydrus(cfg config.Config, logger *zap.Logger, metrics *api.Metrics) (*hydrus.Hydrus, error) {
	transport, err := api.NewHTTPTransport(cfg.APIURL,
		api.WithAccessKey(cfg.AccessKey),
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
		api.WithMetrics(metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("init transport: %w", err)
	}
	client, err := api.NewClient(transport)
	if err != nil {
		return nil, fmt.Errorf("init client: %w", err)
	}
	return hydrus.New(client, hydrus.WithLogger(logger))
}

// Run boots the page browser until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := api.NewMetrics(reg)

	h, err := NewHydrus(cfg, logger, metrics)
	if err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, cfg.MetricsAddr, reg, logger)
	}

	store := &state.Store{}
	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	// Populate the store before the first frame.
	refresh(ctx, store, h, logger)
	StartPoller(ctx, store, h, interval, logger)

	logger.Info("page browser starting", zap.String("api_url", cfg.APIURL), zap.Duration("poll", interval))
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		ShowKeys:  userPrefs.ShowKeys,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
		Refresh: func(ctx context.Context) {
			refresh(ctx, store, h, logger)
		},
		Focus: func(ctx context.Context, key string) error {
			return h.Page(key).Focus(ctx)
		},
	})
}
