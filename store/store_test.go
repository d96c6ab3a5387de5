package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gruis/stockboard/stock"
)

var fixtures = []stock.Quote{
	{Symbol: "MSFT", CompanyName: "Microsoft Corporation", CurrentPrice: 242.35, PreviousClose: 240.1, CompanyWebSite: "http://www.microsoft.com"},
	{Symbol: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: 150, PreviousClose: 145, CompanyWebSite: "http://www.apple.com"},
	{Symbol: "GME", CompanyName: "GameStop Corp.", CurrentPrice: 40.1, PreviousClose: 42.35},
}

func newRedisStore(t *testing.T) *RedisStore {
	mr := miniredis.RunT(t)
	s := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { s.Close() })
	return s
}

// testStore exercises the behavior every Store implementation must share.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	if _, err := s.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}

	for _, q := range fixtures {
		if err := s.Create(ctx, q); err != nil {
			t.Fatalf("Create(%s): %v", q.Symbol, err)
		}
	}

	dup := fixtures[1]
	dup.CurrentPrice = 1
	if err := s.Create(ctx, dup); !errors.Is(err, DuplicateSymbolError) {
		t.Errorf("duplicate Create err = %v, want %v", err, DuplicateSymbolError)
	}

	if err := s.Create(ctx, stock.Quote{Symbol: "NOPRICE"}); !errors.Is(err, stock.MissingPriceError) {
		t.Errorf("Create without price err = %v, want %v", err, stock.MissingPriceError)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != len(fixtures) {
		t.Fatalf("List returned %d records, want %d", len(got), len(fixtures))
	}
	for i := range fixtures {
		if got[i] != fixtures[i] {
			t.Errorf("List[%d] = %+v, want %+v", i, got[i], fixtures[i])
		}
	}

	if err := s.UpdatePrices(ctx, "AAPL", 151.25, 150); err != nil {
		t.Fatalf("UpdatePrices: %v", err)
	}
	if err := s.UpdatePrices(ctx, "TSLA", 700, 690); !errors.Is(err, NotFoundError) {
		t.Errorf("UpdatePrices unknown err = %v, want %v", err, NotFoundError)
	}

	got, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := fixtures[1]
	want.CurrentPrice, want.PreviousClose = 151.25, 150
	if got[1] != want {
		t.Errorf("updated record = %+v, want %+v", got[1], want)
	}
	if got[0] != fixtures[0] || got[2] != fixtures[2] {
		t.Error("UpdatePrices touched other records")
	}

	n, err := s.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if n != int64(len(fixtures)) {
		t.Errorf("DeleteAll removed %d, want %d", n, len(fixtures))
	}
	got, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List after DeleteAll returned %d records", len(got))
	}
}

func TestRedisStore(t *testing.T) {
	testStore(t, newRedisStore(t))
}

func TestRedisStoreListEmpty(t *testing.T) {
	got, err := newRedisStore(t).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", got)
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("STOCKBOARD_TEST_DATABASE")
	if dsn == "" {
		t.Skip("STOCKBOARD_TEST_DATABASE not set")
	}

	s, err := OpenPostgres(context.Background(), dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	defer s.Close()

	testStore(t, s)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s, err := Open(ctx, Options{RedisAddr: mr.Addr()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*RedisStore); !ok {
		t.Errorf("default store = %T, want *RedisStore", s)
	}

	if _, err := Open(ctx, Options{Driver: "mongo"}); !errors.Is(err, UnknownDriverError) {
		t.Errorf("err = %v, want %v", err, UnknownDriverError)
	}
}
