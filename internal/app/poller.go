package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/hydrant/api"
	"github.com/five82/hydrant/hydrus"
	"github.com/five82/hydrant/internal/state"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
)

// pageSource is the part of hydrus.Hydrus the poller reads.
type pageSource interface {
	Version(ctx context.Context) (api.APIVersionResponse, error)
	Pages(ctx context.Context) (*hydrus.Page, error)
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while hydrus is unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, src pageSource, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, src, logger)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

func refresh(ctx context.Context, store *state.Store, src pageSource, logger *zap.Logger) {
	version, err := src.Version(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		logger.Warn("version poll failed", zap.Error(err))
		return
	}
	root, err := src.Pages(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		logger.Warn("page poll failed", zap.Error(err))
		return
	}
	store.Update(&version, state.FlattenPages(root), nil)
}

// calculateBackoff doubles the interval per consecutive failure up to
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
