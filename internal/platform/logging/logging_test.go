package logging_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"depflow/internal/platform/config"
	"depflow/internal/platform/logging"
)

func TestNewFileWritesEntries(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)

	logger, err := logging.NewFile(cfg)
	require.NoError(t, err)
	logger.Info("diagram opened")
	_ = logger.Sync()

	raw, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), "diagram opened"), "log file: %s", raw)
}

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	cfg, err = cfg.WithLogLevel("error")
	require.NoError(t, err)

	logger, err := logging.New(cfg)
	require.NoError(t, err)
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
