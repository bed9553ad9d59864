package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"prod", "production", "dev", ""} {
		l, err := New(mode)
		require.NoError(t, err, "mode %q", mode)
		assert.NotNil(t, l.SugaredLogger)
	}
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "builder").Info("generated", "test_id", "t1")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "builder", fields["component"])
	assert.Equal(t, "t1", fields["test_id"])
	assert.Equal(t, "generated", entries[0].Message)
}
