package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		skipped zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"garbage", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := New("osm2svg-test", tt.level)
			require.NoError(t, err)

			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.skipped))
		})
	}
}
