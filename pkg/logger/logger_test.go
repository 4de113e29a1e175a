package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, CarrierKey, "envia")

	log.With("component", "shipping").WithContext(ctx).Info("quote ready", "price", 110.0)
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "quote ready", entry["msg"])
	assert.Equal(t, "shipping", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "envia", entry["carrier"])
	assert.Equal(t, 110.0, entry["price"])
	assert.Contains(t, entry, "timestamp")
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := MustNew(Config{Level: "warn", Output: &buf})

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	assert.NotPanics(t, func() {
		log.Named("test").With("k", "v").Error("ignored")
	})
}
