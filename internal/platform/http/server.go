package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Server receives Telegram webhook deliveries and exposes a health check.
type Server struct {
	echo    *echo.Echo
	addr    string
	path    string
	updates chan tgbotapi.Update
	seen    *cache.Cache
	logger  zerolog.Logger

	closeOnce sync.Once
}

// ServerOptions holds options for creating a new Server
type ServerOptions struct {
	Addr        string
	WebhookPath string
	Buffer      int
	DedupTTL    time.Duration
	Logger      *zerolog.Logger
}

// WebhookPath derives a hard-to-guess route from the bot token so the token
// itself never appears in URLs or access logs.
func WebhookPath(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "/telegram/" + hex.EncodeToString(sum[:])[:32]
}

// NewServer creates the webhook server. Updates are delivered on Updates().
func NewServer(opts ServerOptions) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.WebhookPath == "" {
		opts.WebhookPath = "/telegram"
	}
	if opts.Buffer == 0 {
		opts.Buffer = 100
	}
	if opts.DedupTTL == 0 {
		opts.DedupTTL = 10 * time.Minute
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		addr:    opts.Addr,
		path:    opts.WebhookPath,
		updates: make(chan tgbotapi.Update, opts.Buffer),
		seen:    cache.New(opts.DedupTTL, 2*opts.DedupTTL),
		logger:  opts.Logger.With().Str("component", "webhook").Logger(),
	}

	e.GET("/healthz", s.health)
	e.POST(s.path, s.receive)
	return s
}

// Updates returns the channel webhook deliveries are forwarded to. It is
// closed by Shutdown.
func (s *Server) Updates() tgbotapi.UpdatesChannel {
	return s.updates
}

// Path is the route Telegram must post updates to.
func (s *Server) Path() string {
	return s.path
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.addr).Str("path", s.path).Msg("HTTP server starting")
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting deliveries, waits for in-flight ones and closes
// the updates channel.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.echo.Shutdown(ctx)
	s.closeOnce.Do(func() { close(s.updates) })
	return err
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) receive(c echo.Context) error {
	var update tgbotapi.Update
	if err := c.Bind(&update); err != nil {
		s.logger.Warn().Err(err).Msg("Invalid update payload")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid update payload"})
	}

	key := strconv.Itoa(update.UpdateID)
	if err := s.seen.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
		s.logger.Debug().Int("update_id", update.UpdateID).Msg("Duplicate update dropped")
		return c.NoContent(http.StatusOK)
	}

	select {
	case s.updates <- update:
		return c.NoContent(http.StatusOK)
	case <-c.Request().Context().Done():
		// Let Telegram redeliver it.
		s.seen.Delete(key)
		return c.NoContent(http.StatusServiceUnavailable)
	}
}
