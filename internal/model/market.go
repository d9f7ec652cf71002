package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// MarketSnapshot is one intraday reading of the tracked index.
// Optional figures are nil when the data source does not provide them.
type MarketSnapshot struct {
	PercentMove *float64  // signed % move since the session open
	Price       float64   // last traded price
	FetchedAt   time.Time // when the snapshot was taken
	VIX         *float64  // index volatility
	FlowIn      *float64  // FII net flow, crores
	FlowOut     *float64  // DII net flow, crores
	TopMovers   []string
}
