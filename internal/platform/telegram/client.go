package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// MaxMessageLength is the longest text Telegram accepts in one message.
const MaxMessageLength = 4096

// API is the part of *tgbotapi.BotAPI the client needs.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Client is a wrapper for the Bot API with rate limiting and retries
type Client struct {
	api             API
	limiter         *rate.Limiter
	maxRetry        time.Duration
	initialInterval time.Duration
	logger          zerolog.Logger
}

// ClientOptions holds options for creating a new Client
type ClientOptions struct {
	RequestsPerSec  float64
	Burst           int
	MaxRetryTimeout time.Duration
	InitialInterval time.Duration
	Logger          *zerolog.Logger
}

// NewClient creates a new Bot API client with rate limiting
func NewClient(api API, opts ClientOptions) *Client {
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 25
	}
	if opts.Burst == 0 {
		opts.Burst = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}
	if opts.InitialInterval == 0 {
		opts.InitialInterval = backoff.DefaultInitialInterval
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	return &Client{
		api:             api,
		limiter:         rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.Burst),
		maxRetry:        opts.MaxRetryTimeout,
		initialInterval: opts.InitialInterval,
		logger:          opts.Logger.With().Str("component", "telegram").Logger(),
	}
}

// Send delivers a chattable that answers with a message.
func (c *Client) Send(ctx context.Context, msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	var sent tgbotapi.Message
	err := c.do(ctx, msg, func() error {
		var err error
		sent, err = c.api.Send(msg)
		return err
	})
	return sent, err
}

// Request delivers a chattable whose answer is not a message, such as a
// deletion or a callback answer.
func (c *Client) Request(ctx context.Context, req tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	var resp *tgbotapi.APIResponse
	err := c.do(ctx, req, func() error {
		var err error
		resp, err = c.api.Request(req)
		return err
	})
	return resp, err
}

// SendHTML sends text with HTML parse mode, split into as many messages as the
// length limit requires. The reply markup is attached to the last part.
func (c *Client) SendHTML(ctx context.Context, chatID int64, text string, markup any) ([]tgbotapi.Message, error) {
	parts := SplitMessage(text, MaxMessageLength)
	sent := make([]tgbotapi.Message, 0, len(parts))
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		if i == len(parts)-1 && markup != nil {
			msg.ReplyMarkup = markup
		}
		m, err := c.Send(ctx, msg)
		if err != nil {
			return sent, fmt.Errorf("send part %d/%d: %w", i+1, len(parts), err)
		}
		sent = append(sent, m)
	}
	return sent, nil
}

// EditHTML replaces the text of an existing message. Texts over the length
// limit are cut to the first part.
func (c *Client) EditHTML(ctx context.Context, chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, SplitMessage(text, MaxMessageLength)[0])
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = markup
	_, err := c.Send(ctx, edit)
	return err
}

// Delete removes a message.
func (c *Client) Delete(ctx context.Context, chatID int64, messageID int) error {
	_, err := c.Request(ctx, tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

// AnswerCallback acknowledges a callback query, optionally showing text.
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	_, err := c.Request(ctx, tgbotapi.NewCallback(callbackID, text))
	return err
}

func (c *Client) do(ctx context.Context, what tgbotapi.Chattable, call func() error) error {
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		err := call()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		if wait := retryAfter(err); wait > 0 {
			select {
			case <-ctx.Done():
				return backoff.Permanent(ctx.Err())
			case <-time.After(wait):
			}
		}
		return err
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.InitialInterval = c.initialInterval
	backoffStrategy.MaxElapsedTime = c.maxRetry

	notify := func(err error, next time.Duration) {
		c.logger.Warn().Err(err).Str("call", fmt.Sprintf("%T", what)).Dur("retry_in", next).Msg("Telegram call failed, retrying")
	}

	return backoff.RetryNotify(operation, backoff.WithContext(backoffStrategy, ctx), notify)
}

// IsRetryable reports whether a failed call may succeed when repeated: flood
// control and server errors are, other Bot API errors are not. Errors that
// did not come from the Bot API (network failures) are retried too.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}

func retryAfter(err error) time.Duration {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second
	}
	return 0
}
