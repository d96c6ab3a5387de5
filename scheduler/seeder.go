package scheduler

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Summary counts the outcome of a batch.
type Summary struct {
	Stored int
	Failed []string
}

// Seeder performs the initial population of the store.
type Seeder struct {
	Config  Config
	Fetcher Fetcher
	Pool    *Pool
}

// Seed fetches and creates a record for every configured symbol.
func (s Seeder) Seed(ctx context.Context) Summary {
	log.WithField("symbols", s.Config.Symbols).Info("getting stock info and adding to store")

	var (
		mu  sync.Mutex
		sum Summary
	)
	s.Pool.Run(ctx, s.Config.Symbols, func(ctx context.Context, symbol string) {
		err := s.Fetcher.FetchAndStore(ctx, symbol, false)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			sum.Failed = append(sum.Failed, symbol)
			return
		}
		sum.Stored++
	})

	log.WithFields(log.Fields{"stored": sum.Stored, "failed": sum.Failed}).Info("seeding finished")
	return sum
}
