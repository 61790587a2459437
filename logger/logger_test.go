package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"hotel-guest-service/config"
)

func TestNew_AppliesLevel(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggerConfig
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{"json info", config.LoggerConfig{Level: "info", Encoding: "json"}, zapcore.InfoLevel, zapcore.DebugLevel},
		{"console debug", config.LoggerConfig{Level: "debug", Encoding: "console"}, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"json error", config.LoggerConfig{Level: "error", Encoding: "json", DisableCaller: true}, zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)

			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.disabled))
		})
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "chatty", Encoding: "json"})

	assert.ErrorContains(t, err, "parse log level")
}
