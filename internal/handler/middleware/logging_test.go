//go:build unit

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(requestIDHandler{Handler: slog.NewJSONHandler(&buf, nil)}).With("op", "create booking")

	t.Run("request context adds request_id", func(t *testing.T) {
		buf.Reset()
		logger.InfoContext(WithRequestID(context.Background(), "20261015-abcd"), "booking created")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "20261015-abcd", rec["request_id"])
		assert.Equal(t, "create booking", rec["op"])
	})

	t.Run("background context logs without it", func(t *testing.T) {
		buf.Reset()
		logger.InfoContext(context.Background(), "availability cache warmed")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.NotContains(t, rec, "request_id")
	})
}
