package dashboard

import (
	"sort"
	"time"

	"github.com/gruis/stockboard/stock"
)

const DefaultBlink = 800 * time.Millisecond

// Row is what the dashboard shows for one symbol.
type Row struct {
	Quote         stock.Quote
	Change        float64
	PercentChange float64
	Tone          stock.Tone
	BlinkUntil    time.Time
}

func newRow(q stock.Quote) *Row {
	r := &Row{}
	r.set(q)
	return r
}

func (r *Row) set(q stock.Quote) {
	r.Quote = q
	r.Change = q.Change().AsMajorUnits()
	r.PercentChange = q.PercentChange()
	r.Tone = q.Tone()
}

func (r Row) Blinking(now time.Time) bool {
	return now.Before(r.BlinkUntil)
}

// Update describes one row touched by Refresh.
type Update struct {
	Symbol   string
	OldPrice float64
	NewPrice float64
	Tone     stock.Tone
	Blink    bool
	Added    bool
}

// Board keeps the rows currently on display and decides which of them a
// refresh has to redraw.
type Board struct {
	blink time.Duration
	now   func() time.Time
	rows  []*Row
	index map[string]*Row
}

func NewBoard(blink time.Duration) *Board {
	if blink <= 0 {
		blink = DefaultBlink
	}
	return &Board{blink: blink, now: time.Now, index: map[string]*Row{}}
}

// Load replaces every row, as on a full render.
func (b *Board) Load(quotes []stock.Quote) {
	b.rows = b.rows[:0]
	b.index = map[string]*Row{}
	for _, q := range quotes {
		b.add(q)
	}
}

func (b *Board) add(q stock.Quote) *Row {
	r := newRow(q)
	b.rows = append(b.rows, r)
	b.index[q.Symbol] = r
	return r
}

// Refresh applies a freshly polled listing. Only rows whose current price
// moved are rewritten; their tone is recomputed and, unless the change is
// flat, they blink for the board's blink duration. Unknown symbols are
// appended.
func (b *Board) Refresh(quotes []stock.Quote) []Update {
	now := b.now()
	var updates []Update

	for _, q := range quotes {
		r, ok := b.index[q.Symbol]
		if !ok {
			r = b.add(q)
			updates = append(updates, Update{Symbol: q.Symbol, NewPrice: q.CurrentPrice, Tone: r.Tone, Added: true})
			continue
		}
		if r.Quote.CurrentPrice == q.CurrentPrice {
			continue
		}

		old := r.Quote.CurrentPrice
		r.set(q)
		u := Update{Symbol: q.Symbol, OldPrice: old, NewPrice: q.CurrentPrice, Tone: r.Tone}
		if r.Tone != stock.Neutral {
			r.BlinkUntil = now.Add(b.blink)
			u.Blink = true
		}
		updates = append(updates, u)
	}
	return updates
}

// Sort reorders the rows and, like a full re-render, drops any highlight.
func (b *Board) Sort(key SortKey, order Order) {
	if key == Unsorted {
		return
	}
	sort.SliceStable(b.rows, func(i, j int) bool {
		return less(b.rows[i].Quote, b.rows[j].Quote, key, order)
	})
	for _, r := range b.rows {
		r.BlinkUntil = time.Time{}
	}
}

// Rows returns a copy of the rows in display order.
func (b *Board) Rows() []Row {
	rows := make([]Row, len(b.rows))
	for i, r := range b.rows {
		rows[i] = *r
	}
	return rows
}

func (b *Board) Blinking(symbol string, now time.Time) bool {
	r, ok := b.index[symbol]
	return ok && r.Blinking(now)
}

func (b *Board) BlinkDuration() time.Duration {
	return b.blink
}
