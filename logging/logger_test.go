package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := New(INFO, buffer)
	ctx := WithTraceID(context.Background(), "trace-1")

	logger.Debugc(ctx, "hidden")
	assert.Equal(t, 0, buffer.Len())
	assert.False(t, logger.IsDebugEnabled())

	logger.Infoc(ctx, "resolved", "entity", "User")
	entry := map[string]interface{}{}
	assert.Nil(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "resolved", entry["msg"])
	assert.Equal(t, "User", entry["entity"])
	assert.Equal(t, "trace-1", entry["reqTraceId"])
	assert.NotNil(t, entry["timestamp"])
	assert.NotNil(t, entry["function"])
}

func TestRedactAttrs(t *testing.T) {
	var testCases = []struct {
		description string
		attr        slog.Attr
		expect      interface{}
	}{
		{description: "sensitive key", attr: slog.String("password", "abc"), expect: "[REDACTED]"},
		{description: "nested map", attr: slog.Any("data", map[string]any{"token": "x", "name": "n"}), expect: map[string]any{"token": "[REDACTED]", "name": "n"}},
		{description: "text pattern", attr: slog.String("url", "/a?token=xyz"), expect: "/a?token=[REDACTED]"},
		{description: "number", attr: slog.Int("count", 3), expect: int64(3)},
	}
	for _, testCase := range testCases {
		actual := redactAttrs(testCase.attr)
		if !assert.Len(t, actual, 1, testCase.description) {
			continue
		}
		attr := actual[0].(slog.Attr)
		assert.EqualValues(t, testCase.expect, attr.Value.Any(), testCase.description)
	}
}

func TestMiddleware(t *testing.T) {
	var traceID string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceID(r.Context())
	}))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(TraceIDHeader, "upstream")
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "upstream", traceID)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, traceID, 36)
	assert.Equal(t, traceID, recorder.Header().Get(TraceIDHeader))
}
