package logging_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/handler/http/requestid"
	"newswire/internal/observability/logging"
)

func TestNewLoggerLevels(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := logging.NewLogger()
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))

	t.Setenv("LOG_LEVEL", "error")
	logger = logging.NewLogger()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelError))

	t.Setenv("LOG_LEVEL", "")
	logger = logging.NewLogger()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
}

func TestWithRequestID(t *testing.T) {
	base := slog.New(slog.DiscardHandler)

	// without an ID the logger is returned unchanged
	assert.Same(t, base, logging.WithRequestID(t.Context(), base))

	ctx := requestid.WithRequestID(t.Context(), "req-1")
	assert.NotSame(t, base, logging.WithRequestID(ctx, base))
}

func TestLoggerContextRoundtrip(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := logging.WithLogger(t.Context(), logger)

	require.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, slog.Default(), logging.FromContext(t.Context()))
}
