package analyze

import (
	"github.com/Alias1177/cryptosignals/internal/models"
	"github.com/Alias1177/cryptosignals/internal/trading/levels"
)

const (
	minMove = -10.0
	maxMove = 15.0
)

// AnalyzeMarket builds a random market overview. The pair subset is drawn
// without replacement; the glyph of each line is drawn independently of the
// sign of its move.
func (a *Analyzer) AnalyzeMarket() (models.MarketOverview, error) {
	s := &sampler{r: a.rand}
	p := a.pools

	trend := pick(s, "trends", p.Trends)
	sentiment := pick(s, "sentiments", p.Sentiments)
	recommendation := pick(s, "recommendations", p.Recommendations)

	pairs := s.sample("pairs", p.Pairs, a.moversSample)
	movers := make([]models.PairMove, 0, len(pairs))
	for _, pair := range pairs {
		glyph := pick(s, "move glyphs", p.MoveGlyphs)
		change := s.uniform(minMove, maxMove)
		movers = append(movers, models.PairMove{
			Pair:   pair,
			Glyph:  glyph,
			Change: levels.Round(change, 2),
		})
	}

	keyLevels := pick(s, "key levels", p.KeyLevels)
	comment := pick(s, "comments", p.Comments)
	if s.err != nil {
		return models.MarketOverview{}, a.fail(OpMarket, s.err)
	}

	a.logger.Debug().Str("trend", trend).Int("movers", len(movers)).Msg("Generated market overview")

	return models.MarketOverview{
		Trend:          trend,
		Sentiment:      sentiment,
		Recommendation: recommendation,
		Movers:         movers,
		KeyLevels:      keyLevels,
		Comment:        comment,
		CreatedAt:      a.timestamp(),
	}, nil
}
