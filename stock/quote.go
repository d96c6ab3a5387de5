package stock

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is the currency every quote is priced in.
const Currency = "USD"

var MissingSymbolError = errors.New("a stock symbol is required")
var MissingPriceError = errors.New("stock price required")

// Quote is a single stored stock record, unique by Symbol.
type Quote struct {
	Symbol         string  `json:"symbol" redis:"symbol"`
	CompanyName    string  `json:"companyName" redis:"companyName"`
	CurrentPrice   float64 `json:"currentPrice" redis:"currentPrice"`
	PreviousClose  float64 `json:"previousClose" redis:"previousClose"`
	CompanyWebSite string  `json:"companyWebSite" redis:"companyWebSite"`
}

// Validate checks the invariants a record must satisfy before it is written.
func (q Quote) Validate() error {
	if strings.TrimSpace(q.Symbol) == "" {
		return MissingSymbolError
	}
	if q.CurrentPrice == 0 {
		return fmt.Errorf("%s: %w", q.Symbol, MissingPriceError)
	}
	return nil
}

func (q Quote) Price() *money.Money {
	return MoneyFor(q.CurrentPrice)
}

func (q Quote) Close() *money.Money {
	return MoneyFor(q.PreviousClose)
}

// Change is the difference between the current price and the previous close.
func (q Quote) Change() *money.Money {
	c, _ := q.Price().Subtract(q.Close())
	return c
}

// PercentChange is Change relative to the previous close, in percent, rounded
// to two decimals. A zero previous close yields zero.
func (q Quote) PercentChange() float64 {
	if q.PreviousClose == 0 {
		return 0
	}
	return Round2(q.Change().AsMajorUnits() / q.PreviousClose * 100)
}

func (q Quote) Tone() Tone {
	return ToneOf(q.Change().AsMajorUnits())
}

// MoneyFor converts a price in major units into money, rounding to cents.
func MoneyFor(v float64) *money.Money {
	return money.New(int64(math.Round(v*100)), Currency)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
