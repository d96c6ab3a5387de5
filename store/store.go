package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/gruis/stockboard/stock"
)

var DuplicateSymbolError = errors.New("stock symbol already stored")
var NotFoundError = errors.New("stock symbol not stored")
var UnknownDriverError = errors.New("unknown store driver")

// Store is the single collection of stock records, unique by symbol.
// Implementations serialize their own writes.
type Store interface {
	// Create inserts a new record; it fails with DuplicateSymbolError when the
	// symbol is already stored.
	Create(ctx context.Context, q stock.Quote) error
	// UpdatePrices mutates only the price fields of an existing record.
	UpdatePrices(ctx context.Context, symbol string, currentPrice, previousClose float64) error
	// List returns every record in insertion order.
	List(ctx context.Context) ([]stock.Quote, error)
	// DeleteAll removes every record and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	Close() error
}

type Options struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
}

// Open connects to the store named by opts.Driver; "redis" is the default.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Driver) {
	case "", "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.RedisAddr, err)
		}
		return NewRedisStore(client), nil
	case "postgres", "postgresql":
		return OpenPostgres(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", UnknownDriverError, opts.Driver)
	}
}
