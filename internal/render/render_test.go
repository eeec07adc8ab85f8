package render

import (
	"strings"
	"testing"
	"time"

	"github.com/Alias1177/cryptosignals/internal/models"
)

var createdAt = time.Date(2024, time.January, 5, 9, 7, 0, 0, time.UTC)

func TestTradingIdea(t *testing.T) {
	idea := models.TradeIdea{
		ID:          4821,
		Pair:        "SOL/USDT",
		Timeframe:   "4h",
		Direction:   models.DirectionLong,
		EntryPrice:  100,
		TakeProfit1: 102,
		TakeProfit2: 105,
		TakeProfit3: 108,
		StopLoss:    97,
		RiskLevel:   models.RiskMedium,
		RiskPercent: 2,
		Leverage:    2,
		Reasoning:   "Объемы подтверждают движение цены",
		CreatedAt:   createdAt,
	}

	got, err := TradingIdea(idea)
	if err != nil {
		t.Fatalf("TradingIdea() error = %v", err)
	}

	for _, want := range []string{
		"<b>💡 Торговая идея #4821</b>",
		"<b>🪙 Пара:</b> SOL/USDT",
		"<b>⏰ Таймфрейм:</b> 4h",
		"<b>📊 Тип сделки:</b> LONG",
		"<b>📈 Вход:</b> 100.0000",
		"• TP1: 102.0000",
		"• TP2: 105.0000",
		"• TP3: 108.0000",
		"<b>🛡️ Стоп-лосс:</b> 97.0000",
		"<b>⚖️ Риск:</b> MEDIUM",
		"<b>🔢 Плечо:</b> 2x",
		"Объемы подтверждают движение цены",
		"Не рискуйте более 2% от депозита на одну сделку!",
		"<i>Время создания: 05.01.2024 09:07</i>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("TradingIdea() missing %q in:\n%s", want, got)
		}
	}
}

func TestMarketOverview(t *testing.T) {
	o := models.MarketOverview{
		Trend:          "Боковой ↔️",
		Sentiment:      "Страх 😱",
		Recommendation: "Держать",
		Movers: []models.PairMove{
			{Pair: "BTC/USDT", Glyph: "📈", Change: 3.2},
			{Pair: "DOT/USDT", Glyph: "📉", Change: -7.5},
		},
		KeyLevels: "Общий рынок находится в консолидации",
		Comment:   "Техническая картина остается неопределенной.",
		CreatedAt: createdAt,
	}

	got, err := MarketOverview(o)
	if err != nil {
		t.Fatalf("MarketOverview() error = %v", err)
	}

	for _, want := range []string{
		"<b>📊 Общий тренд:</b> Боковой ↔️",
		"<b>📈 Настроение рынка:</b> Страх 😱",
		"<b>🎯 Рекомендация:</b> Держать",
		"• BTC/USDT: 📈 3.20%\n• DOT/USDT: 📉 -7.50%",
		"Общий рынок находится в консолидации",
		"<i>Обновлено: 05.01.2024 09:07</i>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MarketOverview() missing %q in:\n%s", want, got)
		}
	}
}

func TestChartAnalysis(t *testing.T) {
	c := models.ChartAnalysis{
		Patterns:        "• Двойная вершина",
		Recommendations: "• Контролировать риски",
		EntryPoints:     "• При пробитии: текущая цена + 0.5%",
		RiskManagement:  "• Трейлинг стоп",
		Timeframe:       "1d",
		CreatedAt:       createdAt,
	}

	got, err := ChartAnalysis(c)
	if err != nil {
		t.Fatalf("ChartAnalysis() error = %v", err)
	}

	for _, want := range []string{
		"<b>📊 Обнаруженные паттерны:</b>\n• Двойная вершина",
		"<b>🎯 Рекомендации:</b>\n• Контролировать риски",
		"<b>📈 Точки входа:</b>\n• При пробитии: текущая цена + 0.5%",
		"<b>🛡️ Управление рисками:</b>\n• Трейлинг стоп",
		"<b>⏰ Таймфрейм:</b> 1d",
		"<i>Анализ выполнен: 05.01.2024 09:07</i>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ChartAnalysis() missing %q in:\n%s", want, got)
		}
	}
}

func TestTextSentiment(t *testing.T) {
	r := models.TextSentimentResult{
		Text:           "buy <b>now</b> & hold",
		Sentiment:      models.SentimentBullish,
		Recommendation: "Рассмотрите LONG позицию",
		Reminders:      []string{"Первое", "Второе"},
		CreatedAt:      createdAt,
	}

	got, err := TextSentiment(r)
	if err != nil {
		t.Fatalf("TextSentiment() error = %v", err)
	}

	for _, want := range []string{
		"<i>buy &lt;b&gt;now&lt;/b&gt; &amp; hold</i>",
		"• Общее настроение: Бычье 📈\n• Рекомендация: Рассмотрите LONG позицию\n• Первое\n• Второе\n\n<b>⚠️ Напоминание:</b>",
		"<i>Проанализировано: 05.01.2024 09:07</i>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("TextSentiment() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<b>now</b>") {
		t.Error("TextSentiment() must escape user markup")
	}
}

func TestSentimentLabel(t *testing.T) {
	tests := []struct {
		in   models.Sentiment
		want string
	}{
		{models.SentimentBullish, "Бычье 📈"},
		{models.SentimentBearish, "Медвежье 📉"},
		{models.SentimentNeutral, "Нейтральное ↔️"},
		{models.Sentiment("unknown"), "Нейтральное ↔️"},
	}
	for _, tt := range tests {
		if got := SentimentLabel(tt.in); got != tt.want {
			t.Errorf("SentimentLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
