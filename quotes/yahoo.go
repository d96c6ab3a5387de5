package quotes

import (
	"context"
	"fmt"

	"github.com/piquette/finance-go/quote"

	"github.com/gruis/stockboard/stock"
)

// Yahoo fetches quotes straight from Yahoo Finance. It needs no API key but
// does not expose a company website.
type Yahoo struct{}

func (Yahoo) Quote(ctx context.Context, symbol string) (stock.Quote, error) {
	if err := ctx.Err(); err != nil {
		return stock.Quote{}, err
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return stock.Quote{}, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return stock.Quote{}, fmt.Errorf("%w: %s", MissingPriceError, symbol)
	}

	return stock.Quote{
		Symbol:        symbol,
		CompanyName:   q.ShortName,
		CurrentPrice:  stock.Round2(q.RegularMarketPrice),
		PreviousClose: q.RegularMarketPreviousClose,
	}, nil
}
