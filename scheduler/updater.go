package scheduler

import (
	"context"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// Updater refreshes the prices of a random subset of symbols on an interval.
type Updater struct {
	config  Config
	fetcher Fetcher
	pool    *Pool
	rand    *rand.Rand
}

func NewUpdater(c Config, f Fetcher, p *Pool) *Updater {
	return &Updater{config: c, fetcher: f, pool: p, rand: c.rand()}
}

// Tick samples a subset, refreshes it and returns the sampled symbols. It is
// not safe for concurrent use.
func (u *Updater) Tick(ctx context.Context) []string {
	symbols := Sample(u.rand, u.config.Symbols, u.config.SampleSize)
	log.WithField("symbols", symbols).Info("updating stocks")

	u.pool.Run(ctx, symbols, func(ctx context.Context, symbol string) {
		u.fetcher.FetchAndStore(ctx, symbol, true)
	})
	return symbols
}

// Run ticks once immediately and then every interval until ctx is done.
func (u *Updater) Run(ctx context.Context) {
	log.WithField("interval", u.config.Interval).Info("updater started")
	defer log.Info("updater stopped")

	u.Tick(ctx)

	ticker := time.NewTicker(u.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.Tick(ctx)
		}
	}
}
