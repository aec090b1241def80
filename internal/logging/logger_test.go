package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var lines []map[string]interface{}

	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &entry))

		lines = append(lines, entry)
	}

	return lines
}

func TestLogger_JSONFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := New(Config{Level: "debug", Format: FormatJSON, Output: &buf})
	logger.Debug("request", map[string]interface{}{"method": "GET", "status": 200})
	logger.Error("failed", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "request", lines[0]["message"])
	assert.Equal(t, "GET", lines[0]["method"])
	assert.InDelta(t, 200, lines[0]["status"], 0)
	assert.Equal(t, "error", lines[1]["level"])
}

func TestLogger_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level string
		want  int
	}{
		{name: "warn drops info", level: "warn", want: 2},
		{name: "unknown level means info", level: "chatty", want: 3},
		{name: "case insensitive", level: "ERROR", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := New(Config{Level: tt.level, Format: FormatJSON, Output: &buf})
			logger.Debug("d", nil)
			logger.Info("i", nil)
			logger.Warn("w", nil)
			logger.Error("e", nil)

			assert.Len(t, decodeLines(t, &buf), tt.want)
		})
	}
}

func TestLogger_WithComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	New(Config{Format: FormatJSON, Output: &buf}).WithComponent("webhook").Info("started", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "webhook", lines[0]["component"])
}

func TestLogger_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	New(Config{Format: FormatConsole, NoColor: true, Output: &buf}).Info("hello", map[string]interface{}{"k": "v"})

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=v")
}
