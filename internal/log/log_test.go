package log

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger_Levels(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)

	SetLogger(flags, true)
	assert.True(t, Logger().Core().Enabled(zapcore.DebugLevel))

	SetLogger(flags, false)
	assert.False(t, Logger().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Logger().Core().Enabled(zapcore.InfoLevel))
}

func TestSetLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rootfind.log")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)
	require.NoError(t, flags.Parse([]string{"--log-path", path}))

	SetLogger(flags, false)
	Logger().Info("hello", zap.String("k", "v"))
	_ = Logger().Sync() // stderr sync may fail on some platforms
	assert.FileExists(t, path)
}

func TestSetCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetCore(core)
	Logger().Debug("probe")
	assert.Equal(t, 1, logs.FilterMessage("probe").Len())
}
