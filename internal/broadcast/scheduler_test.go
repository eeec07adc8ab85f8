package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	mu    sync.Mutex
	posts map[int64][]string
	err   error
}

func (f *fakePoster) SendHTML(_ context.Context, chatID int64, text string, _ any) ([]tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.posts == nil {
		f.posts = map[int64][]string{}
	}
	f.posts[chatID] = append(f.posts[chatID], text)
	return []tgbotapi.Message{{MessageID: 1}}, nil
}

func TestPost(t *testing.T) {
	poster := &fakePoster{}
	s := NewScheduler(poster, func() string { return "<b>🔍 Анализ рынка</b>" }, Options{ChatID: -100500})

	require.NoError(t, s.Post(context.Background()))
	assert.Equal(t, []string{"<b>🔍 Анализ рынка</b>"}, poster.posts[-100500])
}

func TestPostWrapsError(t *testing.T) {
	sendErr := errors.New("Forbidden: bot is not a member of the channel chat")
	s := NewScheduler(&fakePoster{err: sendErr}, func() string { return "x" }, Options{ChatID: 1})

	err := s.Post(context.Background())
	assert.ErrorIs(t, err, sendErr)
}

func TestScheduleRunsJob(t *testing.T) {
	poster := &fakePoster{}
	calls := 0
	s := NewScheduler(poster, func() string { calls++; return "overview" }, Options{ChatID: 5, Location: time.UTC})

	id, err := s.Schedule("0 9 * * *")
	require.NoError(t, err)

	s.Start()
	defer s.Stop(context.Background())

	next := s.Next(id)
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 0, next.Minute())

	// Run the registered job directly instead of waiting for 09:00.
	s.cron.Entry(id).Job.Run()
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"overview"}, poster.posts[5])
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"0 9 * * *", false},
		{"*/15 * * * *", false},
		{"@hourly", false},
		{"@every 30m", false},
		{"0 0 9 * * *", true},
		{"каждый час", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ParseSchedule(tt.spec)
		if tt.wantErr {
			assert.Error(t, err, tt.spec)
		} else {
			assert.NoError(t, err, tt.spec)
		}
	}
}
