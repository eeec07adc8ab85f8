package analyze

import (
	"fmt"

	"github.com/Alias1177/cryptosignals/internal/models"
	"github.com/Alias1177/cryptosignals/internal/trading/levels"
)

const (
	minBasePrice = 0.1
	maxBasePrice = 100000

	minIdeaID = 1000
	maxIdeaID = 9999
)

// GenerateIdea builds a random trade idea. Identifiers are random and may repeat.
func (a *Analyzer) GenerateIdea() (models.TradeIdea, error) {
	s := &sampler{r: a.rand}
	p := a.pools

	pair := pick(s, "pairs", p.Pairs)
	timeframe := pick(s, "timeframes", p.Timeframes)
	direction := pick(s, "directions", models.Directions)
	riskLevel := pick(s, "risk levels", models.RiskLevels)
	basePrice := s.uniform(minBasePrice, maxBasePrice)
	reasoning := pick(s, "reasons", p.Reasons)
	id := s.between(minIdeaID, maxIdeaID)
	if s.err != nil {
		return models.TradeIdea{}, a.fail(OpIdea, s.err)
	}

	profile, ok := p.RiskProfiles[riskLevel]
	if !ok {
		return models.TradeIdea{}, a.fail(OpIdea, fmt.Errorf("no risk profile for %q", riskLevel))
	}

	lv := levels.Compute(direction, basePrice)

	idea := models.TradeIdea{
		ID:          id,
		Pair:        pair,
		Timeframe:   timeframe,
		Direction:   direction,
		EntryPrice:  lv.Entry,
		TakeProfit1: lv.Targets[0],
		TakeProfit2: lv.Targets[1],
		TakeProfit3: lv.Targets[2],
		StopLoss:    lv.StopLoss,
		RiskLevel:   riskLevel,
		RiskPercent: profile.RiskPercent,
		Leverage:    profile.Leverage,
		Reasoning:   reasoning,
		CreatedAt:   a.timestamp(),
	}

	a.logger.Debug().
		Int("idea_id", idea.ID).
		Str("pair", idea.Pair).
		Str("direction", string(idea.Direction)).
		Float64("entry", idea.EntryPrice).
		Msg("Generated trading idea")

	return idea, nil
}
