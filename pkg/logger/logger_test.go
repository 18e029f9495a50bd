package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/honlnm/biztime/pkg/logger"
)

//nolint:paralleltest
func TestHandler_RequestID(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := new(bytes.Buffer)

	l, err := logger.NewWithWriter(buf, "debug")
	require.NoError(t, err)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	require.Equal(t, "req-1", logger.RequestIDFromCtx(ctx))

	l.With("component", "test").InfoContext(ctx, "hello")

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "hello", record["msg"])
	require.Equal(t, "req-1", record["request_id"])
	require.Equal(t, "test", record["component"])
}

//nolint:paralleltest
func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.NewWithWriter(new(bytes.Buffer), "loud")
	require.Error(t, err)
}

func TestRequestIDFromCtx_Empty(t *testing.T) {
	t.Parallel()

	require.Empty(t, logger.RequestIDFromCtx(context.Background()))
}
