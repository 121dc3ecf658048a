package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLogger_ComponentField(t *testing.T) {
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "ingest")
	l.Warnf("blank truck type on row %d", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ingest", line["component"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "blank truck type on row 3", line["message"])
}

func TestZerologLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "assign")
	l.Infof("dropped")
	assert.Zero(t, buf.Len())
	l.Errorf("kept")
	assert.NotZero(t, buf.Len())
}
