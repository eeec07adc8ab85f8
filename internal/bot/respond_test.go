package bot

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/cryptosignals/internal/analyze"
	"github.com/Alias1177/cryptosignals/internal/models"
)

func newTestResponder(t *testing.T) *Responder {
	t.Helper()
	a, err := analyze.New(analyze.Options{
		Rand:     analyze.NewLockedRand(7),
		Now:      func() time.Time { return time.Date(2024, time.March, 9, 14, 5, 0, 0, time.UTC) },
		Location: time.UTC,
	})
	require.NoError(t, err)
	return NewResponder(a, zerolog.Nop())
}

type brokenGenerator struct {
	err   error
	panic bool
}

func (b brokenGenerator) fail(op analyze.Operation) error {
	if b.panic {
		panic("index out of range")
	}
	return &analyze.GenerationError{Op: op, Err: b.err}
}

func (b brokenGenerator) GenerateIdea() (models.TradeIdea, error) {
	return models.TradeIdea{}, b.fail(analyze.OpIdea)
}

func (b brokenGenerator) AnalyzeMarket() (models.MarketOverview, error) {
	return models.MarketOverview{}, b.fail(analyze.OpMarket)
}

func (b brokenGenerator) AnalyzePhoto(models.ImageMetadata) (models.ChartAnalysis, error) {
	return models.ChartAnalysis{}, b.fail(analyze.OpPhoto)
}

func (b brokenGenerator) AnalyzeText(string) (models.TextSentimentResult, error) {
	return models.TextSentimentResult{}, b.fail(analyze.OpText)
}

func TestResponderRendersRecords(t *testing.T) {
	r := newTestResponder(t)

	assert.Contains(t, r.Idea(), "Торговая идея #")
	assert.Contains(t, r.Market(), "Анализ рынка")
	assert.Contains(t, r.Photo(models.ImageMetadata{FileID: "x"}), "Анализ графика")

	text := r.Text("buy <b>now</b>")
	assert.Contains(t, text, "Анализ вашей идеи")
	assert.Contains(t, text, "buy &lt;b&gt;now&lt;/b&gt;")
}

func TestResponderConvertsErrors(t *testing.T) {
	r := NewResponder(brokenGenerator{err: errors.New("reasons pool is empty")}, zerolog.Nop())

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"идея", r.Idea(), "❌ Ошибка при генерации торговой идеи: reasons pool is empty"},
		{"рынок", r.Market(), "❌ Ошибка при анализе рынка: reasons pool is empty"},
		{"фото", r.Photo(models.ImageMetadata{}), "❌ Ошибка при анализе изображения: reasons pool is empty"},
		{"текст", r.Text("buy"), "❌ Ошибка при анализе текста: reasons pool is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestResponderRecoversPanics(t *testing.T) {
	r := NewResponder(brokenGenerator{panic: true}, zerolog.Nop())

	var out string
	assert.NotPanics(t, func() { out = r.Market() })
	assert.True(t, strings.HasPrefix(out, "❌ Ошибка при анализе рынка: "))
	assert.Contains(t, out, "index out of range")
}

func TestDiagnosticEscapesCause(t *testing.T) {
	got := Diagnostic(analyze.OpText, errors.New("bad <input>"))
	assert.Equal(t, "❌ Ошибка при анализе текста: bad &lt;input&gt;", got)
}
