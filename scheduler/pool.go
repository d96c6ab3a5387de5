package scheduler

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	DefaultRate    = 5
	DefaultBurst   = 5
	DefaultWorkers = 5
)

// Pool runs per-symbol tasks on a fixed set of workers. Every task first takes
// a token from a bucket shared by all batches, so concurrent batches together
// stay under the external request quota.
type Pool struct {
	workers int
	limiter *rate.Limiter
}

func NewPool(workers int, perSecond float64, burst int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Pool{
		workers: workers,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Run hands each symbol to fn and returns once the batch is drained or ctx is
// done. Tasks are independent; their completion order is unspecified.
func (p *Pool) Run(ctx context.Context, symbols []string, fn func(context.Context, string)) {
	tasks := make(chan string)
	var wg sync.WaitGroup

	n := p.workers
	if n > len(symbols) {
		n = len(symbols)
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go p.worker(ctx, i, tasks, fn, &wg)
	}

feed:
	for _, s := range symbols {
		select {
		case tasks <- s:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()
}

func (p *Pool) worker(ctx context.Context, id int, tasks <-chan string, fn func(context.Context, string), wg *sync.WaitGroup) {
	defer wg.Done()

	for symbol := range tasks {
		if err := p.limiter.Wait(ctx); err != nil {
			log.WithError(err).
				WithFields(log.Fields{"worker": id, "symbol": symbol}).
				Debug("rate limiter wait aborted")
			continue
		}
		fn(ctx, symbol)
	}
}
