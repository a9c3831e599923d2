package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/fake-artist-backend/internal/config"
)

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"env-file", "addr", "catalog-dsn", "turn-timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestLoadCatalog_DefaultsToEmbeddedList(t *testing.T) {
	words, err := loadCatalog(context.Background(), config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Greater(t, words.Len(), 0)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := config.Config{
		Addr:            "127.0.0.1:0",
		MinPlayers:      3,
		EventRate:       10,
		EventBurst:      10,
		OutboxSize:      8,
		LogLevel:        "error",
		ShutdownTimeout: time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
