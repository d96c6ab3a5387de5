package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gruis/stockboard/stock"
)

const (
	DefaultHost    = "apidojo-yahoo-finance-v1.p.rapidapi.com"
	DefaultBaseURL = "https://" + DefaultHost
	summaryPath    = "/stock/v2/get-summary"
)

// RapidAPI fetches quotes from the Yahoo Finance summary endpoint hosted on
// RapidAPI. The free tier allows 5 requests per second.
type RapidAPI struct {
	Key     string
	Host    string
	BaseURL string
	Region  string
	Client  *http.Client
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

// summary is the subset of the get-summary payload we care about
type summary struct {
	Price struct {
		RegularMarketPrice         rawValue `json:"regularMarketPrice"`
		RegularMarketPreviousClose rawValue `json:"regularMarketPreviousClose"`
		LongName                   string   `json:"longName"`
	} `json:"price"`
	SummaryProfile struct {
		Website string `json:"website"`
	} `json:"summaryProfile"`
}

func (r *RapidAPI) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

func (r *RapidAPI) host() string {
	if r.Host != "" {
		return r.Host
	}
	return DefaultHost
}

func (r *RapidAPI) endpoint(symbol string) string {
	base := r.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	region := r.Region
	if region == "" {
		region = "US"
	}
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("region", region)
	return base + summaryPath + "?" + q.Encode()
}

func (r *RapidAPI) Quote(ctx context.Context, symbol string) (stock.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint(symbol), nil)
	if err != nil {
		return stock.Quote{}, err
	}
	req.Header.Set("x-rapidapi-key", r.Key)
	req.Header.Set("x-rapidapi-host", r.host())

	resp, err := r.client().Do(req)
	if err != nil {
		return stock.Quote{}, fmt.Errorf("failed to fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return stock.Quote{}, fmt.Errorf("%w: %s for %s", BadStatusError, resp.Status, symbol)
	}

	var s summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return stock.Quote{}, fmt.Errorf("failed to decode response for %s: %w", symbol, err)
	}

	if s.Price.RegularMarketPrice.Raw == nil {
		return stock.Quote{}, fmt.Errorf("%w: %s", MissingPriceError, symbol)
	}

	q := stock.Quote{
		Symbol:         symbol,
		CompanyName:    s.Price.LongName,
		CurrentPrice:   stock.Round2(*s.Price.RegularMarketPrice.Raw),
		CompanyWebSite: s.SummaryProfile.Website,
	}
	if s.Price.RegularMarketPreviousClose.Raw != nil {
		q.PreviousClose = *s.Price.RegularMarketPreviousClose.Raw
	}
	return q, nil
}
