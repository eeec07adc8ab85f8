package broadcast

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Poster sends an HTML message to a chat.
type Poster interface {
	SendHTML(ctx context.Context, chatID int64, text string, markup any) ([]tgbotapi.Message, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule checks a standard five-field cron spec or a descriptor such
// as "@hourly" or "@every 30m".
func ParseSchedule(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid broadcast schedule %q: %w", spec, err)
	}
	return nil
}

// Scheduler posts generated content to one chat, once or on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	poster  Poster
	content func() string
	chatID  int64
	timeout time.Duration
	logger  zerolog.Logger
}

// Options holds options for creating a new Scheduler
type Options struct {
	ChatID   int64
	Location *time.Location
	Timeout  time.Duration
	Logger   *zerolog.Logger
}

// NewScheduler creates a scheduler that posts whatever content returns.
func NewScheduler(poster Poster, content func() string, opts Options) *Scheduler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Minute
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(opts.Location),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		poster:  poster,
		content: content,
		chatID:  opts.ChatID,
		timeout: opts.Timeout,
		logger:  opts.Logger.With().Str("component", "broadcast").Int64("chat_id", opts.ChatID).Logger(),
	}
}

// Post sends one message now.
func (s *Scheduler) Post(ctx context.Context) error {
	sent, err := s.poster.SendHTML(ctx, s.chatID, s.content(), nil)
	if err != nil {
		return fmt.Errorf("post to chat %d: %w", s.chatID, err)
	}
	s.logger.Info().Int("messages", len(sent)).Msg("Broadcast posted")
	return nil
}

// Schedule registers a recurring post. Start must be called to run it.
func (s *Scheduler) Schedule(spec string) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.Post(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Scheduled broadcast failed")
		}
	})
	if err != nil {
		return 0, fmt.Errorf("invalid broadcast schedule %q: %w", spec, err)
	}
	s.logger.Info().Str("schedule", spec).Msg("Broadcast scheduled")
	return id, nil
}

// Next reports when an entry runs next. It is zero before Start.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running post to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("Broadcast still running at shutdown")
	}
}
