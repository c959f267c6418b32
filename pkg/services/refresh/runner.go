package refresh

import (
	"context"
	"time"

	"github.com/fin-tools/tco-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ProductLister enumerates the products whose snapshots the runner refreshes.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// SnapshotUpdater recalculates and persists one product's TCO snapshot.
type SnapshotUpdater interface {
	Refresh(ctx context.Context, productID string, timePeriodMonths int) (*domain.Product, error)
}

type Config struct {
	Interval         time.Duration
	TimePeriodMonths int
}

type Progress struct {
	RefreshedProducts int
	FailedProducts    int
	LastRefreshedAt   time.Time
}

// Runner periodically refreshes every product's cached TCO snapshot. It is
// constructed and owned by the composition root; there is no ambient global
// instance. A failed product is logged and skipped, the sweep continues.
type Runner struct {
	products ProductLister
	updater  SnapshotUpdater
	done     chan struct{}
	progress chan Progress
	config   Config
}

func NewRunner(products ProductLister, updater SnapshotUpdater, config Config) *Runner {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	return &Runner{
		products: products,
		updater:  updater,
		done:     make(chan struct{}),
		progress: make(chan Progress, 100),
		config:   config,
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) Progress() <-chan Progress {
	return r.progress
}

// Run sweeps immediately, then on every interval tick, until the context is
// cancelled.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx)
	defer close(r.done)
	defer close(r.progress)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	r.sweep(ctx, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("snapshot refresh stopped")
			return
		case <-ticker.C:
			r.sweep(ctx, logger)
		}
	}
}

func (r *Runner) sweep(ctx context.Context, logger *zerolog.Logger) {
	products, err := r.products.ListProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list products for refresh")
		return
	}

	refreshed, failed := 0, 0
	for _, product := range products {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.updater.Refresh(ctx, product.ID, r.config.TimePeriodMonths); err != nil {
			logger.Error().Err(err).Str("product", product.ID).Msg("failed to refresh tco snapshot")
			failed++
			continue
		}
		refreshed++
	}

	// Drop progress updates when nobody is listening.
	select {
	case r.progress <- Progress{
		RefreshedProducts: refreshed,
		FailedProducts:    failed,
		LastRefreshedAt:   time.Now(),
	}:
	default:
	}
}
