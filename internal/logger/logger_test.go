package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, L())
		assert.False(t, IsDevelopment())
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, L())
		assert.True(t, IsDevelopment())
	})
}

func TestL_LazyInit(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
	assert.True(t, IsDevelopment())
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestID", func(t *testing.T) {
		assert.Equal(t, "req-1", RequestIDFrom(WithRequestID(ctx, "req-1")))
		assert.Equal(t, "", RequestIDFrom(ctx))
	})

	t.Run("UserID", func(t *testing.T) {
		id, ok := userIDFrom(WithUserID(ctx, 7))
		assert.True(t, ok)
		assert.Equal(t, int64(7), id)

		_, ok = userIDFrom(ctx)
		assert.False(t, ok)
	})
}

func TestFromCtx(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	t.Run("WithRequestAndUser", func(t *testing.T) {
		ctx := WithUserID(WithRequestID(context.Background(), "req-abc"), 42)
		FromCtx(ctx).Info("hello")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc", fields["request_id"])
		assert.Equal(t, int64(42), fields["user_id"])
	})

	t.Run("Bare", func(t *testing.T) {
		FromCtx(context.Background()).Info("bare")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, Sync)
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	t.Run("Success", func(t *testing.T) {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/items", nil))

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, zapcore.InfoLevel, logs[0].Level)
		assert.Equal(t, "/api/items", logs[0].ContextMap()["path"])
		assert.Equal(t, int64(200), logs[0].ContextMap()["status"])
		assert.Equal(t, int64(2), logs[0].ContextMap()["bytes"])
	})

	t.Run("ClientError", func(t *testing.T) {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})
}
