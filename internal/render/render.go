package render

import (
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/Alias1177/cryptosignals/internal/models"
)

// Every message is sent with the Telegram HTML parse mode. Interpolated values
// are escaped; markup lives in the templates only.
var (
	tradingIdeaTmpl    = template.Must(template.New("trading_idea").Parse(tradingIdeaTemplate))
	analysisResultTmpl = template.Must(template.New("analysis_result").Parse(analysisResultTemplate))
	photoAnalysisTmpl  = template.Must(template.New("photo_analysis").Parse(photoAnalysisTemplate))
	textAnalysisTmpl   = template.Must(template.New("text_analysis").Parse(textAnalysisTemplate))
)

var sentimentLabels = map[models.Sentiment]string{
	models.SentimentBullish: "Бычье 📈",
	models.SentimentBearish: "Медвежье 📉",
	models.SentimentNeutral: "Нейтральное ↔️",
}

type tradingIdeaView struct {
	IdeaID      int
	Pair        string
	Timeframe   string
	TradeType   string
	EntryPrice  string
	TP1         string
	TP2         string
	TP3         string
	StopLoss    string
	RiskLevel   string
	Leverage    int
	Reasoning   string
	RiskPercent int
	Timestamp   string
}

// TradingIdea renders a trade idea. Prices are printed with 4 decimals.
func TradingIdea(idea models.TradeIdea) (string, error) {
	return execute(tradingIdeaTmpl, tradingIdeaView{
		IdeaID:      idea.ID,
		Pair:        html.EscapeString(idea.Pair),
		Timeframe:   html.EscapeString(idea.Timeframe),
		TradeType:   string(idea.Direction),
		EntryPrice:  price(idea.EntryPrice),
		TP1:         price(idea.TakeProfit1),
		TP2:         price(idea.TakeProfit2),
		TP3:         price(idea.TakeProfit3),
		StopLoss:    price(idea.StopLoss),
		RiskLevel:   strings.ToUpper(string(idea.RiskLevel)),
		Leverage:    idea.Leverage,
		Reasoning:   html.EscapeString(idea.Reasoning),
		RiskPercent: idea.RiskPercent,
		Timestamp:   models.FormatTimestamp(idea.CreatedAt),
	})
}

type analysisResultView struct {
	Trend          string
	Sentiment      string
	Recommendation string
	TopCryptos     string
	KeyLevels      string
	Comment        string
	Timestamp      string
}

// MarketOverview renders a market overview, one line per sampled pair.
func MarketOverview(o models.MarketOverview) (string, error) {
	return execute(analysisResultTmpl, analysisResultView{
		Trend:          html.EscapeString(o.Trend),
		Sentiment:      html.EscapeString(o.Sentiment),
		Recommendation: html.EscapeString(o.Recommendation),
		TopCryptos:     TopCryptos(o.Movers),
		KeyLevels:      html.EscapeString(o.KeyLevels),
		Comment:        html.EscapeString(o.Comment),
		Timestamp:      models.FormatTimestamp(o.CreatedAt),
	})
}

// TopCryptos formats movers as "• PAIR: GLYPH CHANGE%" lines.
func TopCryptos(movers []models.PairMove) string {
	lines := make([]string, 0, len(movers))
	for _, m := range movers {
		lines = append(lines, fmt.Sprintf("• %s: %s %.2f%%", html.EscapeString(m.Pair), m.Glyph, m.Change))
	}
	return strings.Join(lines, "\n")
}

type photoAnalysisView struct {
	Patterns        string
	Recommendations string
	EntryPoints     string
	RiskManagement  string
	Timeframe       string
	Timestamp       string
}

// ChartAnalysis renders the answer to an image submission.
func ChartAnalysis(c models.ChartAnalysis) (string, error) {
	return execute(photoAnalysisTmpl, photoAnalysisView{
		Patterns:        html.EscapeString(c.Patterns),
		Recommendations: html.EscapeString(c.Recommendations),
		EntryPoints:     html.EscapeString(c.EntryPoints),
		RiskManagement:  html.EscapeString(c.RiskManagement),
		Timeframe:       html.EscapeString(c.Timeframe),
		Timestamp:       models.FormatTimestamp(c.CreatedAt),
	})
}

type textAnalysisView struct {
	Text           string
	Sentiment      string
	Recommendation string
	Reminders      []string
	Timestamp      string
}

// TextSentiment renders the keyword sentiment reading of a user's text. The
// echoed text is user input and is always escaped.
func TextSentiment(r models.TextSentimentResult) (string, error) {
	reminders := make([]string, len(r.Reminders))
	for i, s := range r.Reminders {
		reminders[i] = html.EscapeString(s)
	}
	return execute(textAnalysisTmpl, textAnalysisView{
		Text:           html.EscapeString(r.Text),
		Sentiment:      SentimentLabel(r.Sentiment),
		Recommendation: html.EscapeString(r.Recommendation),
		Reminders:      reminders,
		Timestamp:      models.FormatTimestamp(r.CreatedAt),
	})
}

// SentimentLabel returns the display label of a sentiment.
func SentimentLabel(s models.Sentiment) string {
	if label, ok := sentimentLabels[s]; ok {
		return label
	}
	return sentimentLabels[models.SentimentNeutral]
}

func price(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func execute(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return sb.String(), nil
}
