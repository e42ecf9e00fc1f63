package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestRecovery(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	t.Run("plain response", func(t *testing.T) {
		logger, logs := observed()
		rec := httptest.NewRecorder()

		Recovery(logger, nil)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/x", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		entries := logs.FilterMessage("panic serving request").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
		assert.Equal(t, "/projects/x", entries[0].ContextMap()["path"])
	})

	t.Run("error page", func(t *testing.T) {
		logger, _ := observed()
		page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<h1>Something went wrong</h1>"))
		})
		rec := httptest.NewRecorder()

		Recovery(logger, page)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong")
	})

	t.Run("no panic", func(t *testing.T) {
		logger, logs := observed()
		rec := httptest.NewRecorder()
		ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		Recovery(logger, nil)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Zero(t, logs.Len())
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		logger, _ := observed()
		abort := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			Recovery(logger, nil)(abort).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		level  zapcore.Level
	}{
		{"ok", http.StatusOK, "hello", zapcore.InfoLevel},
		{"implicit ok", 0, "hello", zapcore.InfoLevel},
		{"not found", http.StatusNotFound, "missing", zapcore.WarnLevel},
		{"bad gateway", http.StatusBadGateway, "upstream", zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := observed()
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			})

			chain := chimw.RequestID(Logger(logger)(h))
			chain.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/blogs?x=1", nil))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)

			fields := entry.ContextMap()
			want := tt.status
			if want == 0 {
				want = http.StatusOK
			}
			assert.Equal(t, "GET", fields["method"])
			assert.Equal(t, "/blogs", fields["path"])
			assert.EqualValues(t, want, fields["status"])
			assert.EqualValues(t, len(tt.body), fields["bytes"])
			assert.NotEmpty(t, fields["request_id"])
			assert.Contains(t, fields, "duration")
		})
	}
}
