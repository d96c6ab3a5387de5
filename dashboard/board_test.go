package dashboard

import (
	"testing"
	"time"

	"github.com/gruis/stockboard/stock"
)

var epoch = time.Date(2021, 2, 1, 14, 30, 0, 0, time.UTC)

func newTestBoard() *Board {
	b := NewBoard(800 * time.Millisecond)
	b.now = func() time.Time { return epoch }
	b.Load([]stock.Quote{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: 150, PreviousClose: 145},
		{Symbol: "GME", CompanyName: "GameStop Corp.", CurrentPrice: 40, PreviousClose: 42},
		{Symbol: "DIS", CompanyName: "The Walt Disney Company", CurrentPrice: 170, PreviousClose: 170},
	})
	return b
}

func TestBoardLoad(t *testing.T) {
	rows := newTestBoard().Rows()
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	aapl := rows[0]
	if aapl.Change != 5 || aapl.PercentChange != 3.45 || aapl.Tone != stock.Positive {
		t.Errorf("AAPL row = %+v", aapl)
	}
	if rows[1].Tone != stock.Negative || rows[2].Tone != stock.Neutral {
		t.Errorf("tones = %s, %s", rows[1].Tone, rows[2].Tone)
	}
	if aapl.Blinking(epoch) {
		t.Error("loaded row is blinking")
	}
}

func TestBoardRefreshOnlyChanged(t *testing.T) {
	b := newTestBoard()

	updates := b.Refresh([]stock.Quote{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: 150, PreviousClose: 146},
		{Symbol: "GME", CompanyName: "GameStop Corp.", CurrentPrice: 44, PreviousClose: 42},
		{Symbol: "DIS", CompanyName: "The Walt Disney Company", CurrentPrice: 168, PreviousClose: 170},
	})

	if len(updates) != 2 {
		t.Fatalf("updates = %+v, want GME and DIS", updates)
	}
	if u := updates[0]; u.Symbol != "GME" || u.OldPrice != 40 || u.NewPrice != 44 || u.Tone != stock.Positive || !u.Blink {
		t.Errorf("GME update = %+v", u)
	}
	if u := updates[1]; u.Symbol != "DIS" || u.Tone != stock.Negative || !u.Blink {
		t.Errorf("DIS update = %+v", u)
	}

	rows := b.Rows()
	if rows[0].Quote.PreviousClose != 145 {
		t.Error("AAPL row rewritten although its price did not move")
	}
	if rows[1].Change != 2 || rows[1].PercentChange != 4.76 {
		t.Errorf("GME row = %+v", rows[1])
	}
	if !b.Blinking("GME", epoch.Add(799*time.Millisecond)) {
		t.Error("GME not blinking inside the blink window")
	}
	if b.Blinking("GME", epoch.Add(800*time.Millisecond)) {
		t.Error("GME still blinking after the blink window")
	}
	if b.Blinking("AAPL", epoch) {
		t.Error("unchanged row is blinking")
	}
}

func TestBoardRefreshFlat(t *testing.T) {
	b := newTestBoard()

	updates := b.Refresh([]stock.Quote{{Symbol: "GME", CurrentPrice: 42, PreviousClose: 42}})
	if len(updates) != 1 {
		t.Fatalf("updates = %+v", updates)
	}
	if updates[0].Tone != stock.Neutral || updates[0].Blink {
		t.Errorf("flat update = %+v", updates[0])
	}
	if b.Blinking("GME", epoch) {
		t.Error("flat change started a blink")
	}
}

func TestBoardRefreshAddsUnknown(t *testing.T) {
	b := newTestBoard()

	updates := b.Refresh([]stock.Quote{{Symbol: "NVDA", CompanyName: "NVIDIA Corporation", CurrentPrice: 540, PreviousClose: 530}})
	if len(updates) != 1 || !updates[0].Added {
		t.Fatalf("updates = %+v", updates)
	}
	rows := b.Rows()
	if len(rows) != 4 || rows[3].Quote.Symbol != "NVDA" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestBoardSort(t *testing.T) {
	b := newTestBoard()
	b.Refresh([]stock.Quote{{Symbol: "GME", CompanyName: "GameStop Corp.", CurrentPrice: 400, PreviousClose: 42}})

	b.Sort(ByPrice, Descending)
	rows := b.Rows()
	if rows[0].Quote.Symbol != "GME" || rows[1].Quote.Symbol != "DIS" || rows[2].Quote.Symbol != "AAPL" {
		t.Errorf("order = %s %s %s", rows[0].Quote.Symbol, rows[1].Quote.Symbol, rows[2].Quote.Symbol)
	}
	if b.Blinking("GME", epoch) {
		t.Error("sort kept the highlight")
	}
}
