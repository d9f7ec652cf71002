package collector

import "CrashSentinel/internal/model"

// Fetcher defines the interface for fetching intraday market data.
type Fetcher interface {
	// FetchIntradayBars returns today's session bars for the symbol,
	// oldest first.
	FetchIntradayBars(symbol string) ([]model.OHLCV, error)
	Name() string
}
