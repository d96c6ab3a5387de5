package dashboard

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/gruis/stockboard/stock"
)

const clearScreen = "\033[H\033[2J"

var tones = map[stock.Tone]*color.Color{
	stock.Positive: color.New(color.FgGreen),
	stock.Negative: color.New(color.FgRed),
	stock.Neutral:  color.New(color.Reset),
}

var blinks = map[stock.Tone]*color.Color{
	stock.Positive: color.New(color.FgBlack, color.BgGreen, color.Bold),
	stock.Negative: color.New(color.FgBlack, color.BgRed, color.Bold),
}

// Renderer draws the board as a table on a terminal.
type Renderer struct {
	Out   io.Writer
	Clear bool
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (r Renderer) Render(rows []Row, now time.Time) {
	if r.Clear {
		fmt.Fprint(r.Out, clearScreen)
	}
	fmt.Fprintf(r.Out, "%-6s %-32s %12s %10s %10s\n", "SYMBOL", "COMPANY", "PRICE", "CHANGE", "CHANGE %")

	for _, row := range rows {
		c := tones[row.Tone]
		if b, ok := blinks[row.Tone]; ok && row.Blinking(now) {
			c = b
		}
		fmt.Fprintf(r.Out, "%-6s %-32s %12s %s %s\n",
			row.Quote.Symbol,
			truncate(row.Quote.CompanyName, 32),
			row.Quote.Price().Display(),
			c.Sprintf("%10.2f", row.Change),
			c.Sprintf("%9.2f%%", row.PercentChange),
		)
	}
}
