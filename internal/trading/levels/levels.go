package levels

import (
	"math"

	"github.com/Alias1177/cryptosignals/internal/models"
)

// Precision is the number of fractional digits kept on every price level.
const Precision = 4

var (
	longTargets  = [3]float64{1.02, 1.05, 1.08}
	shortTargets = [3]float64{0.98, 0.95, 0.92}
)

const (
	longStop  = 0.97
	shortStop = 1.03
)

// Levels holds the entry, take-profit and stop-loss prices of a trade.
type Levels struct {
	Entry    float64
	Targets  [3]float64
	StopLoss float64
}

// Compute derives trade levels from a base price using fixed percentage
// multipliers. Targets sit above the entry for LONG and below it for SHORT;
// the stop-loss mirrors them. Every result is rounded to Precision digits.
func Compute(direction models.Direction, basePrice float64) Levels {
	targets, stop := longTargets, longStop
	if direction == models.DirectionShort {
		targets, stop = shortTargets, shortStop
	}

	lv := Levels{
		Entry:    Round(basePrice, Precision),
		StopLoss: Round(basePrice*stop, Precision),
	}
	for i, m := range targets {
		lv.Targets[i] = Round(basePrice*m, Precision)
	}
	return lv
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
