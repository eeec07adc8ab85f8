package analyze

import "github.com/Alias1177/cryptosignals/internal/models"

// AnalyzePhoto answers a chart submission. The result is sampled from phrase
// banks only: the image is never downloaded and its metadata does not affect
// the output. Callers must not present it as a reading of the chart.
func (a *Analyzer) AnalyzePhoto(image models.ImageMetadata) (models.ChartAnalysis, error) {
	s := &sampler{r: a.rand}
	p := a.pools

	patterns := pick(s, "patterns", p.Patterns)
	recommendations := pick(s, "chart recommendations", p.ChartRecommendations)
	entryPoints := pick(s, "entry points", p.EntryPoints)
	riskManagement := pick(s, "risk management", p.RiskManagement)
	timeframe := pick(s, "timeframes", p.Timeframes)
	if s.err != nil {
		return models.ChartAnalysis{}, a.fail(OpPhoto, s.err)
	}

	a.logger.Debug().
		Str("file_id", image.FileID).
		Int("width", image.Width).
		Int("height", image.Height).
		Int("file_size", image.FileSize).
		Msg("Generated chart analysis")

	return models.ChartAnalysis{
		Patterns:        patterns,
		Recommendations: recommendations,
		EntryPoints:     entryPoints,
		RiskManagement:  riskManagement,
		Timeframe:       timeframe,
		Image:           image,
		CreatedAt:       a.timestamp(),
	}, nil
}
