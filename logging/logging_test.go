package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level       string
		environment string
		enabled     zapcore.Level
		disabled    zapcore.Level
	}{
		{"info", "production", zapcore.InfoLevel, zapcore.DebugLevel},
		{"debug", "development", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{" WARN ", "", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", "production", zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.environment, func(t *testing.T) {
			logger, err := New(tt.level, tt.environment)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.disabled))
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New("loud", "production")
	assert.Error(t, err)
}
