package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/gruis/stockboard/config"
	"github.com/gruis/stockboard/quotes"
)

const testConfig = `
symbols: [aapl, gme, AAPL]
refresh-interval: 30s
sample-size: 2
sample-seed: 11
store: postgres
database: postgres://stocks:<password>@db:5432/stocks
database-password: hunter2
provider: yahoo
`

func TestAppConfig(t *testing.T) {
	if err := config.LoadDirect(AppName, []byte(testConfig)); err != nil {
		t.Fatalf("LoadDirect: %v", err)
	}

	var ac AppConfig
	if err := viper.Unmarshal(&ac); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	sc := ac.schedulerConfig()
	if len(sc.Symbols) != 2 || sc.Symbols[0] != "AAPL" || sc.Symbols[1] != "GME" {
		t.Errorf("symbols = %v", sc.Symbols)
	}
	if sc.Interval != 30*time.Second || sc.SampleSize != 2 || sc.Seed != 11 {
		t.Errorf("scheduler config = %+v", sc)
	}

	so := ac.storeOptions()
	if so.Driver != "postgres" || so.DatabaseURL != "postgres://stocks:hunter2@db:5432/stocks" {
		t.Errorf("store options = %+v", so)
	}

	p, err := ac.provider()
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	if _, ok := p.(quotes.Yahoo); !ok {
		t.Errorf("provider = %T, want quotes.Yahoo", p)
	}
}
