package scheduler

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/gruis/stockboard/quotes"
	"github.com/gruis/stockboard/store"
)

// Fetcher pulls a quote from the provider and writes it to the store.
type Fetcher struct {
	Provider quotes.Provider
	Store    store.Store
}

// FetchAndStore creates a new record for symbol or, with updateOnly, updates
// the price fields of the existing one. Failures are logged and returned; the
// caller decides whether to count them, never to retry.
func (f Fetcher) FetchAndStore(ctx context.Context, symbol string, updateOnly bool) error {
	logger := log.WithFields(log.Fields{"symbol": symbol, "update": updateOnly})

	q, err := f.Provider.Quote(ctx, symbol)
	if err != nil {
		logger.WithError(err).Error("quote fetch failed")
		return err
	}

	if updateOnly {
		err = f.Store.UpdatePrices(ctx, symbol, q.CurrentPrice, q.PreviousClose)
	} else {
		err = f.Store.Create(ctx, q)
	}
	if err != nil {
		logger.WithError(err).Error("quote store failed")
		return err
	}

	logger.WithFields(log.Fields{
		"price":          q.CurrentPrice,
		"previous close": q.PreviousClose,
	}).Info("quote stored")
	return nil
}
