package scheduler

import (
	"math/rand"
	"strings"
	"time"
)

// DefaultSymbols is the ticker list the dashboard ships with.
var DefaultSymbols = []string{"MSFT", "AAPL", "DIS", "NVDA", "AMD", "TWLO", "AAL", "PLTR", "FCEL", "GME"}

const (
	DefaultSampleSize = 5
	DefaultInterval   = 16 * time.Second
)

// Config is shared by the Seeder and the Updater.
type Config struct {
	Symbols    []string
	SampleSize int
	Interval   time.Duration
	// Seed drives subset selection; zero picks a time based seed.
	Seed int64
}

// NewConfig normalizes symbols (trimmed, upper-cased, de-duplicated, order
// kept) and fills in defaults for unset fields.
func NewConfig(c Config) Config {
	if len(c.Symbols) == 0 {
		c.Symbols = DefaultSymbols
	}

	seen := map[string]bool{}
	symbols := make([]string, 0, len(c.Symbols))
	for _, s := range c.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		symbols = append(symbols, s)
	}
	c.Symbols = symbols

	if c.SampleSize <= 0 {
		c.SampleSize = DefaultSampleSize
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	return c
}

func (c Config) rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Sample picks n symbols uniformly at random without replacement. n is capped
// at len(symbols); symbols is left untouched.
func Sample(r *rand.Rand, symbols []string, n int) []string {
	if n > len(symbols) {
		n = len(symbols)
	}
	if n <= 0 {
		return nil
	}

	pool := append([]string(nil), symbols...)
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
