package logging

import (
	"testing"

	"github.com/aha-designer/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"json info", config.LogConfig{Level: "info", Format: "json"}, zapcore.InfoLevel, false},
		{"console debug", config.LogConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"format defaults to json", config.LogConfig{Level: "warn"}, zapcore.WarnLevel, false},
		{"bad level", config.LogConfig{Level: "loud", Format: "json"}, 0, true},
		{"bad format", config.LogConfig{Level: "info", Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}

			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
		})
	}
}
