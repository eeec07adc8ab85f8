package bot

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const logTextLimit = 50

// Sender is the outbound side of the Bot API used by the handler.
type Sender interface {
	Send(ctx context.Context, msg tgbotapi.Chattable) (tgbotapi.Message, error)
	SendHTML(ctx context.Context, chatID int64, text string, markup any) ([]tgbotapi.Message, error)
	EditHTML(ctx context.Context, chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Handler dispatches incoming updates to the responder and replies.
type Handler struct {
	sender    Sender
	responder *Responder
	logger    zerolog.Logger
	wg        sync.WaitGroup
}

func NewHandler(sender Sender, responder *Responder, logger zerolog.Logger) *Handler {
	return &Handler{
		sender:    sender,
		responder: responder,
		logger:    logger.With().Str("component", "handler").Logger(),
	}
}

// Run handles updates until the channel is closed or ctx is done, each on its
// own goroutine, then waits for the updates in flight.
func (h *Handler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	// In-flight replies are finished even after shutdown begins.
	work := context.WithoutCancel(ctx)

	defer h.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("Stopping update loop")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.logger.Info().Msg("Update channel closed")
				return nil
			}
			h.wg.Add(1)
			go func() {
				defer h.wg.Done()
				h.Handle(work, update)
			}()
		}
	}
}

// Handle processes a single update synchronously.
func (h *Handler) Handle(ctx context.Context, update tgbotapi.Update) {
	log := h.logger.With().
		Int("update_id", update.UpdateID).
		Str("request_id", uuid.NewString()).
		Logger()

	defer func() {
		if p := recover(); p != nil {
			log.Error().Err(fmt.Errorf("%v", p)).Msg("Recovered from panic while handling update")
		}
	}()

	switch {
	case update.Message != nil:
		h.handleMessage(ctx, log, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, log, update.CallbackQuery)
	default:
		log.Debug().Msg("Ignoring update without message or callback")
	}
}

func (h *Handler) handleMessage(ctx context.Context, log zerolog.Logger, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		log.Warn().Msg("Message without chat")
		return
	}
	chatID := msg.Chat.ID

	lc := log.With().Int64("chat_id", chatID)
	if msg.From != nil {
		lc = lc.Int64("user_id", msg.From.ID)
	}
	req := Classify(msg)
	log = lc.Str("kind", req.Kind.String()).Logger()

	switch req.Kind {
	case KindStart:
		log.Info().Msg("User started the bot")
		h.replyHTML(ctx, log, chatID, WelcomeMessage)
	case KindHelp:
		log.Info().Msg("User requested help")
		h.replyHTML(ctx, log, chatID, HelpMessage)
	case KindIdea:
		log.Info().Msg("User requested trading idea")
		h.process(ctx, log, chatID, ErrorGeneral, h.responder.Idea, ideaKeyboard())
	case KindMarket:
		log.Info().Msg("User requested market analysis")
		h.process(ctx, log, chatID, ErrorGeneral, h.responder.Market, nil)
	case KindImage:
		log.Info().Str("file_id", req.Image.FileID).Bool("document", req.Image.IsDocument()).Msg("User sent an image for analysis")
		h.process(ctx, log, chatID, ErrorProcessingImage, func() string { return h.responder.Photo(req.Image) }, nil)
	case KindText:
		log.Info().Str("text", preview(req.Text, logTextLimit)).Msg("User sent text for analysis")
		h.process(ctx, log, chatID, ErrorGeneral, func() string { return h.responder.Text(req.Text) }, nil)
	case KindUnknownCommand:
		log.Info().Str("text", preview(req.Text, logTextLimit)).Msg("Unknown command")
		h.replyPlain(ctx, log, chatID, ErrorInvalidCommand)
	case KindUnsupportedDocument:
		log.Info().Msg("User sent a non-image document")
		h.replyPlain(ctx, log, chatID, ErrorImagesOnly)
	case KindUnsupportedFormat:
		log.Info().Str("mime_type", req.Image.MimeType).Str("file_name", req.Image.FileName).Msg("Unsupported image format")
		h.replyPlain(ctx, log, chatID, ErrorInvalidFormat)
	default:
		log.Debug().Msg("Ignoring message")
	}
}

// process shows the "analysis started" notice, computes the answer, removes
// the notice and sends the answer. On a transport failure the user gets
// failText instead.
func (h *Handler) process(ctx context.Context, log zerolog.Logger, chatID int64, failText string, produce func() string, markup any) {
	notice, err := h.sender.Send(ctx, tgbotapi.NewMessage(chatID, AnalysisStarted))
	if err != nil {
		log.Error().Err(err).Msg("Failed to send processing message")
		h.replyPlain(ctx, log, chatID, failText)
		return
	}

	result := produce()

	if err := h.sender.Delete(ctx, chatID, notice.MessageID); err != nil {
		log.Warn().Err(err).Int("message_id", notice.MessageID).Msg("Failed to delete processing message")
	}

	if _, err := h.sender.SendHTML(ctx, chatID, result, markup); err != nil {
		log.Error().Err(err).Msg("Failed to send response")
		h.replyPlain(ctx, log, chatID, failText)
		return
	}
	log.Info().Msg("Response sent")
}

func (h *Handler) handleCallback(ctx context.Context, log zerolog.Logger, cb *tgbotapi.CallbackQuery) {
	lc := log.With().Str("callback_data", cb.Data)
	if cb.From != nil {
		lc = lc.Int64("user_id", cb.From.ID)
	}
	log = lc.Logger()
	log.Info().Msg("User pressed callback")

	if err := h.sender.AnswerCallback(ctx, cb.ID, ""); err != nil {
		log.Error().Err(err).Msg("Failed to answer callback")
		return
	}

	if cb.Data != CallbackNewIdea {
		return
	}
	if cb.Message == nil || cb.Message.Chat == nil {
		log.Warn().Msg("Callback without message, cannot edit")
		return
	}

	keyboard := ideaKeyboard()
	err := h.sender.EditHTML(ctx, cb.Message.Chat.ID, cb.Message.MessageID, h.responder.Idea(), &keyboard)
	if err != nil {
		log.Error().Err(err).Msg("Failed to edit message with new idea")
		if err := h.sender.AnswerCallback(ctx, cb.ID, ErrorCallback); err != nil {
			log.Warn().Err(err).Msg("Failed to report callback error")
		}
		return
	}
	log.Info().Msg("Trading idea replaced")
}

func (h *Handler) replyHTML(ctx context.Context, log zerolog.Logger, chatID int64, text string) {
	if _, err := h.sender.SendHTML(ctx, chatID, text, nil); err != nil {
		log.Error().Err(err).Msg("Failed to send reply")
		h.replyPlain(ctx, log, chatID, ErrorGeneral)
	}
}

func (h *Handler) replyPlain(ctx context.Context, log zerolog.Logger, chatID int64, text string) {
	if _, err := h.sender.Send(ctx, tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Msg("Failed to send message")
	}
}

func ideaKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(NewIdeaButton, CallbackNewIdea),
	))
}

func preview(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
