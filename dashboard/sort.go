package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gruis/stockboard/stock"
)

type SortKey string

const (
	Unsorted SortKey = ""
	ByName   SortKey = "name"
	ByPrice  SortKey = "price"
)

type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

var SortError = errors.New("unrecognized sort option")

// ParseSort accepts "name" or "price" (or nothing) and "asc", "ascending",
// "desc" or "descending".
func ParseSort(key, order string) (SortKey, Order, error) {
	var (
		k SortKey
		o Order
	)

	switch strings.ToLower(key) {
	case "", "none":
		k = Unsorted
	case "name":
		k = ByName
	case "price":
		k = ByPrice
	default:
		return "", "", fmt.Errorf("%w: sort %q", SortError, key)
	}

	switch strings.ToLower(order) {
	case "", "asc", "ascending":
		o = Ascending
	case "desc", "descending":
		o = Descending
	default:
		return "", "", fmt.Errorf("%w: order %q", SortError, order)
	}
	return k, o, nil
}

// less reports whether a sorts before b; equal keys report false both ways so
// a stable sort keeps their order.
func less(a, b stock.Quote, key SortKey, order Order) bool {
	var cmp int
	switch key {
	case ByName:
		cmp = strings.Compare(strings.ToUpper(a.CompanyName), strings.ToUpper(b.CompanyName))
	case ByPrice:
		switch {
		case a.CurrentPrice < b.CurrentPrice:
			cmp = -1
		case a.CurrentPrice > b.CurrentPrice:
			cmp = 1
		}
	}
	if order == Descending {
		cmp = -cmp
	}
	return cmp < 0
}

// Sort stable-sorts quotes in place.
func Sort(quotes []stock.Quote, key SortKey, order Order) {
	if key == Unsorted {
		return
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return less(quotes[i], quotes[j], key, order)
	})
}
