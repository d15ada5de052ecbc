package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nfrund/authforms/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "json", "info")

	logger.Debug("hidden")
	logger.Info("shown", "form", "login")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "login", entry["form"])
}

func TestNewWithWriter_TextDefaultsToDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "", "")

	logger.Debug("details")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "source=")
}
