package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/gruis/stockboard/api"
	"github.com/gruis/stockboard/dashboard"
	"github.com/gruis/stockboard/scheduler"
	"github.com/gruis/stockboard/store"
	"github.com/gruis/stockboard/web"
)

// pipeline is everything the seed and serve commands share.
type pipeline struct {
	config  scheduler.Config
	store   store.Store
	fetcher scheduler.Fetcher
	pool    *scheduler.Pool
}

func newPipeline(ctx context.Context, ac AppConfig) (*pipeline, error) {
	provider, err := ac.provider()
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, ac.storeOptions())
	if err != nil {
		return nil, err
	}
	log.WithField("store", ac.Store).Info("store connection is successful")

	return &pipeline{
		config:  ac.schedulerConfig(),
		store:   s,
		fetcher: scheduler.Fetcher{Provider: provider, Store: s},
		pool:    scheduler.NewPool(ac.Workers, ac.RateLimit, ac.RateBurst),
	}, nil
}

func (p *pipeline) seeder() scheduler.Seeder {
	return scheduler.Seeder{Config: p.config, Fetcher: p.fetcher, Pool: p.pool}
}

func serve(ctx context.Context, ac AppConfig) error {
	p, err := newPipeline(ctx, ac)
	if err != nil {
		return err
	}
	defer p.store.Close()

	if ac.Seed {
		p.seeder().Seed(ctx)
	}

	go scheduler.NewUpdater(p.config, p.fetcher, p.pool).Run(ctx)

	srv := api.New(p.store, web.Assets())
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start(fmt.Sprintf(":%d", ac.Port))
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown(context.Background())
	}
}

func seed(ctx context.Context, ac AppConfig) error {
	p, err := newPipeline(ctx, ac)
	if err != nil {
		return err
	}
	defer p.store.Close()

	sum := p.seeder().Seed(ctx)
	if len(sum.Failed) > 0 {
		log.WithField("failed", sum.Failed).Warn("some symbols were not stored")
	}
	return nil
}

func purge(ctx context.Context, ac AppConfig) error {
	s, err := store.Open(ctx, ac.storeOptions())
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.DeleteAll(ctx)
	if err != nil {
		return err
	}
	log.WithField("deleted", n).Warn("data deleted from store")
	return nil
}

func watch(ctx context.Context, ac AppConfig) error {
	key, order, err := dashboard.ParseSort(ac.Sort, ac.Order)
	if err != nil {
		return err
	}

	w := &dashboard.Watcher{
		Client:   dashboard.Client{BaseURL: ac.ServerURL},
		Board:    dashboard.NewBoard(ac.Blink),
		Renderer: dashboard.Renderer{Out: os.Stdout, Clear: true},
		Interval: ac.PollInterval,
		SortKey:  key,
		Order:    order,
	}
	w.Run(ctx)
	return nil
}
