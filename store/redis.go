package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gruis/stockboard/stock"
)

const (
	keyPrefix = "stock:"
	indexKey  = "stocks"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps each record in a hash at stock:<symbol> and the insertion
// order of symbols in the stocks list.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(symbol string) string {
	return keyPrefix + symbol
}

func (r *RedisStore) Create(ctx context.Context, q stock.Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}

	k := key(q.Symbol)
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, k).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", DuplicateSymbolError, q.Symbol)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k,
				"symbol", q.Symbol,
				"companyName", q.CompanyName,
				"currentPrice", q.CurrentPrice,
				"previousClose", q.PreviousClose,
				"companyWebSite", q.CompanyWebSite,
			)
			pipe.RPush(ctx, indexKey, q.Symbol)
			return nil
		})
		return err
	}, k)
}

func (r *RedisStore) UpdatePrices(ctx context.Context, symbol string, currentPrice, previousClose float64) error {
	if currentPrice == 0 {
		return fmt.Errorf("%s: %w", symbol, stock.MissingPriceError)
	}

	k := key(symbol)
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, k).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", NotFoundError, symbol)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, k, "currentPrice", currentPrice, "previousClose", previousClose)
			return nil
		})
		return err
	}, k)
}

func (r *RedisStore) List(ctx context.Context) ([]stock.Quote, error) {
	symbols, err := r.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return []stock.Quote{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(symbols))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, sym := range symbols {
			cmds[i] = pipe.HGetAll(ctx, key(sym))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	quotes := make([]stock.Quote, 0, len(symbols))
	for i, cmd := range cmds {
		if len(cmd.Val()) == 0 {
			// index entry without a record; skipped until the next purge
			continue
		}
		var q stock.Quote
		if err := cmd.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", symbols[i], err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (r *RedisStore) DeleteAll(ctx context.Context) (int64, error) {
	symbols, err := r.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return 0, err
	}

	keys := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		keys = append(keys, key(sym))
	}

	var removed *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(keys) > 0 {
			removed = pipe.Del(ctx, keys...)
		}
		pipe.Del(ctx, indexKey)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if removed == nil {
		return 0, nil
	}
	return removed.Val(), nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
