package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/FilipRuta/sight-readia/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapPassesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core))

	log.Warn("beam group left open",
		log.Field().Int("measure", 3),
		log.Field().String("value", "begin"),
		log.Field().Error("error", errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "beam group left open", entry.Message)
	ctx := entry.ContextMap()
	assert.EqualValues(t, 3, ctx["measure"])
	assert.Equal(t, "begin", ctx["value"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestSetLevelFiltersEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core))

	log.SetLevel(contracts.WarnLevel)
	log.Info("hidden")
	log.Debug("hidden")
	log.Warn("shown")
	log.Error("shown")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, 2, logs.FilterMessage("shown").Len())
}

func TestNopLoggerIsSilent(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Info("nothing", log.Field().Bool("ok", true))
		log.Warn("nothing")
	})
}

func TestSetDestinationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sightreadia.log")
	log := NewZapLogger()
	log.SetDestination(contracts.FileLog, path)
	log.Info("score parsed", log.Field().Int("measures", 12))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"score parsed"`)
	assert.Contains(t, string(data), `"measures":12`)
}
