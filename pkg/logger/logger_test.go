package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_None(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("text", "none", &buf)
	require.NoError(t, err)
	log.Error("dropped")
	require.Empty(t, buf.String())
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("json", "info", &buf)
	require.NoError(t, err)

	log.Debug("filtered")
	log.Info("encoded", zap.Int("runs", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "encoded", entry["msg"])
	require.Equal(t, "info", entry["level"])
	require.EqualValues(t, 3, entry["runs"])
	require.Contains(t, entry, "timestamp")
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger("text", "warn", &buf)
	require.NoError(t, err)

	log.Info("filtered")
	log.Warn("ambiguous input")
	require.Contains(t, buf.String(), "WARN")
	require.Contains(t, buf.String(), "ambiguous input")
	require.NotContains(t, buf.String(), "filtered")
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger("text", "loud", &bytes.Buffer{})
	require.Error(t, err)

	_, err = NewLogger("xml", "info", &bytes.Buffer{})
	require.Error(t, err)
}
