package analyze

import (
	"strings"

	"github.com/Alias1177/cryptosignals/internal/models"
)

const ellipsis = "..."

var textRecommendations = map[models.Sentiment]string{
	models.SentimentBullish: "Рассмотрите LONG позицию",
	models.SentimentBearish: "Рассмотрите SHORT позицию",
	models.SentimentNeutral: "Дождитесь более четких сигналов",
}

// AnalyzeText derives a coarse sentiment from keyword membership. Each keyword
// counts once if it occurs anywhere in the lower-cased text, so "long" also
// matches inside "belong". Empty input is neutral.
func (a *Analyzer) AnalyzeText(text string) (models.TextSentimentResult, error) {
	lower := strings.ToLower(text)
	bullish := countKeywords(lower, a.pools.BullishWords)
	bearish := countKeywords(lower, a.pools.BearishWords)

	sentiment := models.SentimentNeutral
	switch {
	case bullish > bearish:
		sentiment = models.SentimentBullish
	case bearish > bullish:
		sentiment = models.SentimentBearish
	}

	echo, truncated := truncateRunes(text, a.echoLimit)
	if truncated {
		echo += ellipsis
	}

	reminders := make([]string, len(a.pools.Reminders))
	copy(reminders, a.pools.Reminders)

	a.logger.Debug().
		Int("bullish", bullish).
		Int("bearish", bearish).
		Str("sentiment", string(sentiment)).
		Msg("Analyzed text")

	return models.TextSentimentResult{
		Text:           echo,
		Truncated:      truncated,
		BullishCount:   bullish,
		BearishCount:   bearish,
		Sentiment:      sentiment,
		Recommendation: textRecommendations[sentiment],
		Reminders:      reminders,
		CreatedAt:      a.timestamp(),
	}, nil
}

func countKeywords(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

// truncateRunes cuts s after limit runes without re-encoding it.
func truncateRunes(s string, limit int) (string, bool) {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}
