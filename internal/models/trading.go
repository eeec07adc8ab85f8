package models

import "time"

// Direction направление сделки
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Directions lists both trade directions in sampling order.
var Directions = []Direction{DirectionLong, DirectionShort}

// RiskLevel is the risk label attached to a trade idea.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevels lists the risk labels in sampling order.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// RiskProfile параметры риска для уровня риска
type RiskProfile struct {
	RiskPercent int
	Leverage    int
}

// TradeIdea представляет синтетическую торговую идею
type TradeIdea struct {
	ID          int
	Pair        string
	Timeframe   string
	Direction   Direction
	EntryPrice  float64
	TakeProfit1 float64
	TakeProfit2 float64
	TakeProfit3 float64
	StopLoss    float64
	RiskLevel   RiskLevel
	RiskPercent int
	Leverage    int
	Reasoning   string
	CreatedAt   time.Time
}
