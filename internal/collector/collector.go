package collector

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"CrashSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.OHLCV
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchIntradayBars(symbol string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars[symbol], nil
}

// Collector turns raw intraday bars into a MarketSnapshot.
type Collector struct {
	Fetcher   Fetcher
	Symbol    string
	VIXSymbol string
	Now       func() time.Time
}

// NewCollector creates a new Collector. vixSymbol may be empty, in which case
// snapshots carry no volatility reading.
func NewCollector(fetcher Fetcher, symbol, vixSymbol string) *Collector {
	return &Collector{
		Fetcher:   fetcher,
		Symbol:    symbol,
		VIXSymbol: vixSymbol,
		Now:       time.Now,
	}
}

// Collect fetches today's bars and computes the percentage move from session
// open to last trade, rounded to two decimals. The VIX fetch is best effort:
// any failure leaves the reading absent and never fails the snapshot.
func (c *Collector) Collect() (*model.MarketSnapshot, error) {
	bars, err := c.Fetcher.FetchIntradayBars(c.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch intraday bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no intraday data for %s", c.Symbol)
	}

	open := bars[0].Close
	last := bars[len(bars)-1].Close

	snap := &model.MarketSnapshot{
		Price:     last,
		FetchedAt: c.Now(),
	}
	if open != 0 {
		pct := math.Round((last-open)/open*100*100) / 100
		snap.PercentMove = &pct
	}

	if c.VIXSymbol != "" {
		vixBars, err := c.Fetcher.FetchIntradayBars(c.VIXSymbol)
		if err != nil || len(vixBars) == 0 {
			log.Warn().Err(err).Str("symbol", c.VIXSymbol).Msg("vix fetch failed, continuing without")
		} else {
			vix := vixBars[len(vixBars)-1].Close
			snap.VIX = &vix
		}
	}

	return snap, nil
}
