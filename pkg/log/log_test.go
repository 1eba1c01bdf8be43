package log

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitTestLogger(t *testing.T) {
	lg, props, err := InitTestLogger(t, &Config{Level: "debug"})
	require.NoError(t, err)
	lg.Debug("encoder ready", FieldModule("encoder"), FieldFormat("json"))
	assert.Equal(t, zapcore.DebugLevel, props.Level.Level())
}

func TestInitLoggerRejectsBadLevel(t *testing.T) {
	_, _, err := InitLoggerWithWriteSyncer(&Config{Level: "loud"}, zapcore.AddSync(os.Stderr))
	assert.Error(t, err)
}

func TestInitLoggerTraceIsDebug(t *testing.T) {
	_, props, err := InitLoggerWithWriteSyncer(&Config{Level: "trace", Format: "json"}, zapcore.AddSync(os.Stderr))
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, props.Level.Level())
}

func TestInitFileLogger(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Level: "info", File: FileLogConfig{RootPath: dir, Filename: "encoder.log"}}
	lg, _, err := InitLogger(cfg)
	require.NoError(t, err)
	lg.Info("written to file")
	require.NoError(t, lg.Sync())
	assert.Equal(t, defaultLogMaxSize, cfg.File.MaxSize)

	_, err = os.Stat(filepath.Join(dir, "encoder.log"))
	assert.NoError(t, err)

	_, _, err = InitLogger(&Config{Level: "info", File: FileLogConfig{RootPath: dir, Filename: "."}})
	assert.Error(t, err)
}

func TestCtxLogger(t *testing.T) {
	ctx := WithModule(context.Background(), "encoder")
	l := Ctx(ctx)
	require.NotNil(t, l)
	assert.Same(t, l, Ctx(ctx))
	assert.NotNil(t, Ctx(nil)) //nolint:staticcheck
	assert.NotNil(t, Ctx(context.Background()))
}

func TestRatedLogging(t *testing.T) {
	lg, _, err := InitTestLogger(t, &Config{Level: "debug"})
	require.NoError(t, err)
	l := NewMLogger(lg).WithRateGroup("test.rated", 1, 1)
	assert.True(t, l.RatedDebug(1, "first"))
	assert.False(t, l.RatedDebug(1, "second"))

	child := l.With(zap.String("k", "v"))
	assert.False(t, child.RatedInfo(1, "child shares the group"))
}

func TestGlobalLevel(t *testing.T) {
	old := GetLevel()
	defer SetLevel(old)
	SetLevel(zapcore.ErrorLevel)
	assert.Equal(t, zapcore.ErrorLevel, GetLevel())
	assert.NotNil(t, R())
}
