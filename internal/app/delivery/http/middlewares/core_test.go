package middlewares

import (
	"checkout-service/internal/app/config"
	"checkout-service/internal/pkg/constvars"
	"checkout-service/internal/pkg/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := newTestMiddlewares(&config.InternalConfig{})

	var seen string
	handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id", seen)
		assert.Equal(t, "client-id", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("generates id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestBodyBuffer_KeepsRawBytes(t *testing.T) {
	middlewares := newTestMiddlewares(&config.InternalConfig{App: config.App{RequestBodyLimitInMegabyte: 1}})
	payload := `{"id":"CHEC_1",  "status":"PAID"}`

	handler := middlewares.BodyBuffer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := r.Context().Value(constvars.CONTEXT_RAW_BODY).([]byte)
		assert.Equal(t, payload, string(raw))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, payload, string(body), "body should still be readable")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payments", strings.NewReader(payload)))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBodyBuffer_RejectsOversizedBody(t *testing.T) {
	middlewares := newTestMiddlewares(&config.InternalConfig{App: config.App{RequestBodyLimitInMegabyte: 1}})
	called := false
	handler := middlewares.BodyBuffer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	body := strings.NewReader(strings.Repeat("a", 2<<20))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payments", body))

	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	middlewares := newTestMiddlewares(&config.InternalConfig{})
	handler := middlewares.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestLoggingAndRequestLogger_PassThrough(t *testing.T) {
	middlewares := newTestMiddlewares(&config.InternalConfig{})
	accessLog := logrus.New()
	accessLog.SetOutput(io.Discard)

	handler := middlewares.Logging(middlewares.RequestLogger(accessLog)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestRateLimiter_BlocksAfterAllowance(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, time.Minute, zap.NewNop())
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payments", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, serve("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, serve("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.1:1002"))
	assert.Equal(t, http.StatusTooManyRequests, serve("10.0.0.1:1003"), "blocked ip stays blocked")
	assert.Equal(t, http.StatusOK, serve("10.0.0.2:1000"), "other ips are unaffected")
}

func TestInstrument_CountsRequests(t *testing.T) {
	registry := prometheus.NewRegistry()
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{}, registry)

	handler := middlewares.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Equal(t, float64(1), testutil.ToFloat64(middlewares.httpMetrics.requestsTotal.WithLabelValues(http.MethodPost, "unmatched", "201")))
}
