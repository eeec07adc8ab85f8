package models

import "time"

// PairMove is one line of the "top cryptos" block of a market overview.
type PairMove struct {
	Pair   string
	Glyph  string
	Change float64 // percent, already rounded to 2 decimals
}

// MarketOverview представляет обзор рынка
type MarketOverview struct {
	Trend          string
	Sentiment      string
	Recommendation string
	Movers         []PairMove
	KeyLevels      string
	Comment        string
	CreatedAt      time.Time
}
