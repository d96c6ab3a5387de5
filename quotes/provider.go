package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gruis/stockboard/stock"
)

var BadStatusError = errors.New("quote api returned an unexpected status")
var MissingPriceError = errors.New("quote api response has no regular market price")
var UnknownProviderError = errors.New("unknown quote provider")

// Provider fetches a single quote from an external price source.
type Provider interface {
	Quote(ctx context.Context, symbol string) (stock.Quote, error)
}

// Options configures a provider built by New.
type Options struct {
	Name    string
	RapidAPI
}

// New returns the provider named in opts; "rapidapi" is the default.
func New(opts Options) (Provider, error) {
	switch strings.ToLower(opts.Name) {
	case "", "rapidapi":
		r := opts.RapidAPI
		return &r, nil
	case "yahoo":
		return Yahoo{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", UnknownProviderError, opts.Name)
	}
}
