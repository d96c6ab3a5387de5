package dashboard

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultPollInterval = 6 * time.Second

// Watcher is the single poll loop behind the terminal dashboard. Polls never
// overlap: the next one starts only after the previous one returned.
type Watcher struct {
	Client   Client
	Board    *Board
	Renderer Renderer
	Interval time.Duration
	SortKey  SortKey
	Order    Order
}

func (w *Watcher) interval() time.Duration {
	if w.Interval > 0 {
		return w.Interval
	}
	return DefaultPollInterval
}

func (w *Watcher) render() {
	w.Renderer.Render(w.Board.Rows(), w.Board.now())
}

// Load fetches the listing and performs a full render.
func (w *Watcher) Load(ctx context.Context) error {
	quotes, err := w.Client.Stocks(ctx)
	if err != nil {
		return err
	}
	w.Board.Load(quotes)
	w.Board.Sort(w.SortKey, w.Order)
	w.render()
	return nil
}

// Poll fetches the listing once and redraws if any row changed. It reports
// whether a highlight was started.
func (w *Watcher) Poll(ctx context.Context) (bool, error) {
	quotes, err := w.Client.Stocks(ctx)
	if err != nil {
		return false, err
	}

	updates := w.Board.Refresh(quotes)
	if len(updates) == 0 {
		return false, nil
	}

	blink := false
	for _, u := range updates {
		log.WithFields(log.Fields{
			"symbol": u.Symbol,
			"old":    u.OldPrice,
			"new":    u.NewPrice,
			"tone":   u.Tone,
		}).Debug("row updated")
		blink = blink || u.Blink
	}
	w.render()
	return blink, nil
}

// Run loads the board and then polls every interval until ctx is done.
// Fetch failures are logged and leave the display as it was.
func (w *Watcher) Run(ctx context.Context) {
	if err := w.Load(ctx); err != nil {
		log.WithError(err).Error("initial load failed")
	}

	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()

	var unblink <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-unblink:
			unblink = nil
			w.render()
		case <-ticker.C:
			blink, err := w.Poll(ctx)
			if err != nil {
				log.WithError(err).Error("refresh failed")
				continue
			}
			if blink {
				unblink = time.After(w.Board.BlinkDuration())
			}
		}
	}
}
