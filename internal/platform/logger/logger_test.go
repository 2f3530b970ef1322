package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "onboarding/pkg/domain-errors"
)

func TestNew(t *testing.T) {
	t.Run("json handler honors level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("warn", FormatJSON, &buf)
		require.NoError(t, err)

		logger.Info("screen_changed", "to", "otp-validation")
		assert.Zero(t, buf.Len())

		logger.Warn("failed to emit audit event", "event", "session_started")
		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "WARN", line["level"])
		assert.Equal(t, "session_started", line["event"])
	})

	t.Run("text is the default format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("DEBUG", "", &buf)
		require.NoError(t, err)
		logger.Debug("stale timer firing discarded")
		assert.Contains(t, buf.String(), "msg=\"stale timer firing discarded\"")
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := New("loud", FormatText, &bytes.Buffer{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = New("info", "xml", &bytes.Buffer{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
