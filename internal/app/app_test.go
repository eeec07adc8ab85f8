package app

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/cryptosignals/internal/analyze"
	"github.com/Alias1177/cryptosignals/internal/config"
	"github.com/Alias1177/cryptosignals/internal/pools"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:             config.ModePolling,
		SendRatePerSec:   25,
		SendMaxRetry:     time.Second,
		MoversSampleSize: 2,
		TextEchoLimit:    20,
		Timezone:         "UTC",
		TradingPairs:     []string{"BTC/USDT", "ETH/USDT"},
		Timeframes:       []string{"15m"},
	}
}

func TestNewAnalyzerAppliesOverrides(t *testing.T) {
	a, err := NewAnalyzer(testConfig(), analyze.NewLockedRand(1), zerolog.Nop())
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		idea, err := a.GenerateIdea()
		require.NoError(t, err)
		assert.Contains(t, []string{"BTC/USDT", "ETH/USDT"}, idea.Pair)
		assert.Equal(t, "15m", idea.Timeframe)
	}

	overview, err := a.AnalyzeMarket()
	require.NoError(t, err)
	assert.Len(t, overview.Movers, 2)
}

func TestNewAnalyzerRejectsOversizedSample(t *testing.T) {
	cfg := testConfig()
	cfg.MoversSampleSize = 3

	_, err := NewAnalyzer(cfg, nil, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, pools.ErrInvalidPools)
}

func TestNewTelegramRequiresToken(t *testing.T) {
	_, _, err := NewTelegram(testConfig(), zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrMissingToken)
}

func TestNewResponder(t *testing.T) {
	r, err := NewResponder(testConfig(), analyze.NewLockedRand(3), zerolog.Nop())
	require.NoError(t, err)
	assert.Contains(t, r.Market(), "Анализ рынка")
}
