package pools

import (
	"errors"
	"fmt"

	"github.com/Alias1177/cryptosignals/internal/models"
)

// Pools holds every option pool the generators sample from. A Pools value is
// built once at startup and only read afterwards.
type Pools struct {
	Pairs        []string
	Timeframes   []string
	RiskProfiles map[models.RiskLevel]models.RiskProfile

	// Trade ideas
	Reasons []string

	// Market overview
	Trends          []string
	Sentiments      []string
	Recommendations []string
	KeyLevels       []string
	Comments        []string
	MoveGlyphs      []string

	// Chart analysis
	Patterns             []string
	ChartRecommendations []string
	EntryPoints          []string
	RiskManagement       []string

	// Text analysis
	BullishWords []string
	BearishWords []string
	Reminders    []string
}

var defaultPairs = []string{
	"BTC/USDT",
	"ETH/USDT",
	"BNB/USDT",
	"ADA/USDT",
	"SOL/USDT",
	"DOT/USDT",
	"AVAX/USDT",
	"MATIC/USDT",
}

var defaultTimeframes = []string{"1h", "4h", "1d", "1w"}

var defaultRiskProfiles = map[models.RiskLevel]models.RiskProfile{
	models.RiskLow:    {RiskPercent: 1, Leverage: 1},
	models.RiskMedium: {RiskPercent: 2, Leverage: 2},
	models.RiskHigh:   {RiskPercent: 3, Leverage: 3},
}

var reasons = []string{
	"Техническая формация указывает на продолжение тренда",
	"Пробитие ключевого уровня поддержки/сопротивления",
	"Дивергенция на RSI сигнализирует о развороте",
	"Формация треугольник завершается",
	"Объемы подтверждают движение цены",
	"Уровни Фибоначчи указывают на коррекцию",
}

var trends = []string{"Бычий 📈", "Медвежий 📉", "Боковой ↔️"}

var sentiments = []string{"Жадность 😈", "Страх 😱", "Нейтральное 😐", "Крайняя жадность 🤑"}

var recommendations = []string{"Покупать", "Продавать", "Держать", "Ждать входа"}

var keyLevels = []string{
	"Bitcoin: 42,000$ поддержка, 45,000$ сопротивление",
	"Ethereum: 2,500$ поддержка, 2,800$ сопротивление",
	"Общий рынок находится в консолидации",
	"Ожидается пробитие треугольника на BTC",
}

var comments = []string{
	"Рынок показывает признаки стабилизации после недавней волатильности.",
	"Объемы торгов снижаются, что может указывать на консолидацию.",
	"Макроэкономические факторы оказывают давление на рынок.",
	"Техническая картина остается неопределенной.",
}

var moveGlyphs = []string{"📈", "📉"}

var patterns = []string{
	"• Восходящий треугольник\n• Пробитие уровня поддержки\n• Дивергенция RSI",
	"• Нисходящий клин\n• Двойная вершина\n• Перепроданность по Stochastic",
	"• Флаг-вымпел\n• Ретест сопротивления\n• Бычья дивергенция MACD",
	"• Голова и плечи\n• Пробитие трендовой линии\n• Объемы подтверждают движение",
}

var chartRecommendations = []string{
	"• Рассмотреть LONG позицию\n• Дождаться подтверждения пробития\n• Установить тейк-профиты по уровням",
	"• Возможность SHORT позиции\n• Ждать отскока от сопротивления\n• Контролировать риски",
	"• Оставаться в стороне\n• Неопределенная техническая картина\n• Ждать четких сигналов",
	"• Готовиться к развороту\n• Фиксировать прибыль\n• Переносить стопы в безубыток",
}

var entryPoints = []string{
	"• При пробитии: текущая цена + 0.5%\n• При откате: -2% от текущей цены\n• При подтверждении объемом",
	"• На ретесте уровня\n• При закрытии свечи выше сопротивления\n• После формирования пин-бара",
	"• В зоне поддержки\n• При дивергенции индикаторов\n• На пробитии нисходящего тренда",
}

var riskManagement = []string{
	"• Стоп-лосс: 2% от входа\n• Размер позиции: 1-2% депозита\n• Соотношение прибыль/убыток: 1:3",
	"• Трейлинг стоп\n• Частичная фиксация на 50%\n• Максимальный риск: 1% депозита",
	"• Стоп по структуре\n• Пирамидинг при подтверждении\n• Контроль эмоций",
}

// Keyword lists are matched as substrings of the lower-cased text.
var bullishWords = []string{"buy", "long", "bull", "up", "покупать", "лонг", "рост"}

var bearishWords = []string{"sell", "short", "bear", "down", "продавать", "шорт", "падение"}

var reminders = []string{
	"Обязательно используйте стоп-лосс",
	"Не рискуйте более 2% депозита",
	"Учитывайте общий тренд рынка",
}

// Default returns a fresh copy of the built-in pools.
func Default() *Pools {
	profiles := make(map[models.RiskLevel]models.RiskProfile, len(defaultRiskProfiles))
	for k, v := range defaultRiskProfiles {
		profiles[k] = v
	}

	return &Pools{
		Pairs:                clone(defaultPairs),
		Timeframes:           clone(defaultTimeframes),
		RiskProfiles:         profiles,
		Reasons:              clone(reasons),
		Trends:               clone(trends),
		Sentiments:           clone(sentiments),
		Recommendations:      clone(recommendations),
		KeyLevels:            clone(keyLevels),
		Comments:             clone(comments),
		MoveGlyphs:           clone(moveGlyphs),
		Patterns:             clone(patterns),
		ChartRecommendations: clone(chartRecommendations),
		EntryPoints:          clone(entryPoints),
		RiskManagement:       clone(riskManagement),
		BullishWords:         clone(bullishWords),
		BearishWords:         clone(bearishWords),
		Reminders:            clone(reminders),
	}
}

// WithPairs returns a copy of p using the given trading pairs. An empty list
// keeps the current pairs.
func (p *Pools) WithPairs(pairs []string) *Pools {
	cp := *p
	if len(pairs) > 0 {
		cp.Pairs = clone(pairs)
	}
	return &cp
}

// WithTimeframes returns a copy of p using the given timeframes. An empty list
// keeps the current timeframes.
func (p *Pools) WithTimeframes(timeframes []string) *Pools {
	cp := *p
	if len(timeframes) > 0 {
		cp.Timeframes = clone(timeframes)
	}
	return &cp
}

// ErrInvalidPools is wrapped by every error returned from Validate.
var ErrInvalidPools = errors.New("invalid option pools")

// Validate checks the invariants the generators rely on: no empty pool, unique
// pairs, a profile for every risk level and a pair pool large enough for a
// sample of moversSample pairs without replacement.
func (p *Pools) Validate(moversSample int) error {
	banks := map[string][]string{
		"pairs":                 p.Pairs,
		"timeframes":            p.Timeframes,
		"reasons":               p.Reasons,
		"trends":                p.Trends,
		"sentiments":            p.Sentiments,
		"recommendations":       p.Recommendations,
		"key levels":            p.KeyLevels,
		"comments":              p.Comments,
		"move glyphs":           p.MoveGlyphs,
		"patterns":              p.Patterns,
		"chart recommendations": p.ChartRecommendations,
		"entry points":          p.EntryPoints,
		"risk management":       p.RiskManagement,
	}
	for name, bank := range banks {
		if len(bank) == 0 {
			return fmt.Errorf("%w: %s pool is empty", ErrInvalidPools, name)
		}
	}

	seen := make(map[string]struct{}, len(p.Pairs))
	for _, pair := range p.Pairs {
		if _, ok := seen[pair]; ok {
			return fmt.Errorf("%w: duplicate pair %q", ErrInvalidPools, pair)
		}
		seen[pair] = struct{}{}
	}

	for _, level := range models.RiskLevels {
		if _, ok := p.RiskProfiles[level]; !ok {
			return fmt.Errorf("%w: no risk profile for %q", ErrInvalidPools, level)
		}
	}

	if moversSample < 1 {
		return fmt.Errorf("%w: movers sample size must be positive, got %d", ErrInvalidPools, moversSample)
	}
	if moversSample > len(p.Pairs) {
		return fmt.Errorf("%w: movers sample size %d exceeds %d pairs", ErrInvalidPools, moversSample, len(p.Pairs))
	}
	return nil
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
