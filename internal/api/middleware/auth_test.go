package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	newHandler := func(captured *int64) http.Handler {
		return Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			require.True(t, ok)
			*captured = userID
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("ValidHeader", func(t *testing.T) {
		var captured int64
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "42")
		rec := httptest.NewRecorder()

		newHandler(&captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(42), captured)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		var captured int64
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		newHandler(&captured).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Zero(t, captured)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		for _, value := range []string{"abc", "-5", "0", "1.5"} {
			var captured int64
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-User-ID", value)
			rec := httptest.NewRecorder()

			newHandler(&captured).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code, "value=%q", value)
		}
	})
}

func TestRequestID(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, ok := GetRequestID(r.Context())
		assert.True(t, ok)
		assert.NotEmpty(t, reqID)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("GeneratesWhenAbsent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("PreservesClientValue", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-supplied-id")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-ID"))
	})
}
