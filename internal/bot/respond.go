package bot

import (
	"errors"
	"fmt"
	"html"

	"github.com/rs/zerolog"

	"github.com/Alias1177/cryptosignals/internal/analyze"
	"github.com/Alias1177/cryptosignals/internal/models"
	"github.com/Alias1177/cryptosignals/internal/render"
)

// Generator produces the records behind every bot answer.
type Generator interface {
	GenerateIdea() (models.TradeIdea, error)
	AnalyzeMarket() (models.MarketOverview, error)
	AnalyzePhoto(image models.ImageMetadata) (models.ChartAnalysis, error)
	AnalyzeText(text string) (models.TextSentimentResult, error)
}

var diagnosticPrefixes = map[analyze.Operation]string{
	analyze.OpIdea:   "❌ Ошибка при генерации торговой идеи: ",
	analyze.OpMarket: "❌ Ошибка при анализе рынка: ",
	analyze.OpPhoto:  "❌ Ошибка при анализе изображения: ",
	analyze.OpText:   "❌ Ошибка при анализе текста: ",
}

// Responder turns generated records into ready-to-send HTML. It never fails:
// generation errors, rendering errors and panics all become a diagnostic
// message in place of the answer.
type Responder struct {
	gen    Generator
	logger zerolog.Logger
}

func NewResponder(gen Generator, logger zerolog.Logger) *Responder {
	return &Responder{gen: gen, logger: logger.With().Str("component", "responder").Logger()}
}

func (r *Responder) Idea() string {
	return respond(r, analyze.OpIdea, r.gen.GenerateIdea, render.TradingIdea)
}

func (r *Responder) Market() string {
	return respond(r, analyze.OpMarket, r.gen.AnalyzeMarket, render.MarketOverview)
}

func (r *Responder) Photo(image models.ImageMetadata) string {
	gen := func() (models.ChartAnalysis, error) { return r.gen.AnalyzePhoto(image) }
	return respond(r, analyze.OpPhoto, gen, render.ChartAnalysis)
}

func (r *Responder) Text(text string) string {
	gen := func() (models.TextSentimentResult, error) { return r.gen.AnalyzeText(text) }
	return respond(r, analyze.OpText, gen, render.TextSentiment)
}

func respond[T any](r *Responder, op analyze.Operation, generate func() (T, error), format func(T) (string, error)) (out string) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("%v", p)
			r.logger.Error().Err(err).Str("op", string(op)).Msg("Recovered from panic")
			out = Diagnostic(op, err)
		}
	}()

	record, err := generate()
	if err != nil {
		return Diagnostic(op, err)
	}

	text, err := format(record)
	if err != nil {
		r.logger.Error().Err(err).Str("op", string(op)).Msg("Failed to render response")
		return Diagnostic(op, err)
	}
	return text
}

// Diagnostic formats the user-visible message for a failed operation.
func Diagnostic(op analyze.Operation, err error) string {
	prefix, ok := diagnosticPrefixes[op]
	if !ok {
		prefix = "❌ Ошибка: "
	}

	cause := err
	var genErr *analyze.GenerationError
	if errors.As(err, &genErr) && genErr.Err != nil {
		cause = genErr.Err
	}
	return prefix + html.EscapeString(cause.Error())
}
