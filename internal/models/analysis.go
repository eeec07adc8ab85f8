package models

import "time"

// ImageMetadata describes a submitted chart image. Only metadata is carried;
// the pixel payload is never downloaded.
type ImageMetadata struct {
	FileID   string
	Width    int
	Height   int
	FileSize int
	FileName string // documents only
	MimeType string // documents only
}

// IsDocument reports whether the image was sent as a file rather than a photo.
func (m ImageMetadata) IsDocument() bool {
	return m.MimeType != "" || m.FileName != ""
}

// ChartAnalysis is the response to an image submission. It is built from phrase
// banks and does not depend on the image content.
type ChartAnalysis struct {
	Patterns        string
	Recommendations string
	EntryPoints     string
	RiskManagement  string
	Timeframe       string
	Image           ImageMetadata
	CreatedAt       time.Time
}

// Sentiment настроение, определенное по ключевым словам
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// TextSentimentResult результат анализа текста пользователя
type TextSentimentResult struct {
	Text           string // echoed input, truncated with "..." when over the cap
	Truncated      bool
	BullishCount   int
	BearishCount   int
	Sentiment      Sentiment
	Recommendation string
	Reminders      []string
	CreatedAt      time.Time
}
