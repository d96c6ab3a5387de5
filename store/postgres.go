package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/gruis/stockboard/stock"
)

const schema = `CREATE TABLE IF NOT EXISTS stocks (
	id              SERIAL PRIMARY KEY,
	symbol          TEXT NOT NULL UNIQUE,
	company_name    TEXT NOT NULL DEFAULT '',
	current_price   DOUBLE PRECISION NOT NULL,
	previous_close  DOUBLE PRECISION NOT NULL DEFAULT 0,
	company_website TEXT NOT NULL DEFAULT ''
)`

// pq error code for unique_violation
const uniqueViolation = "23505"

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps records in a single stocks table. The serial id never
// leaves this type.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects, pings and makes sure the stocks table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(pctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Create(ctx context.Context, q stock.Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO stocks (symbol, company_name, current_price, previous_close, company_website)
		 VALUES ($1, $2, $3, $4, $5)`,
		q.Symbol, q.CompanyName, q.CurrentPrice, q.PreviousClose, q.CompanyWebSite)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", DuplicateSymbolError, q.Symbol)
	}
	return err
}

func (p *PostgresStore) UpdatePrices(ctx context.Context, symbol string, currentPrice, previousClose float64) error {
	if currentPrice == 0 {
		return fmt.Errorf("%s: %w", symbol, stock.MissingPriceError)
	}

	res, err := p.db.ExecContext(ctx,
		`UPDATE stocks SET current_price = $1, previous_close = $2 WHERE symbol = $3`,
		currentPrice, previousClose, symbol)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", NotFoundError, symbol)
	}
	return nil
}

func (p *PostgresStore) List(ctx context.Context) ([]stock.Quote, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT symbol, company_name, current_price, previous_close, company_website
		 FROM stocks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := []stock.Quote{}
	for rows.Next() {
		var q stock.Quote
		if err := rows.Scan(&q.Symbol, &q.CompanyName, &q.CurrentPrice, &q.PreviousClose, &q.CompanyWebSite); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (p *PostgresStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM stocks`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
