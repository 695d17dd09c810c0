package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geolearn-io/client/internal/config"
	"github.com/geolearn-io/client/internal/models"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 2 * time.Second
	cfg.Retry.MaxAttempts = 2
	cfg.Retry.Wait = time.Millisecond
	cfg.Retry.MaxWait = 5 * time.Millisecond
	cfg.Breaker.Threshold = 3
	cfg.Breaker.Cooldown = 100 * time.Millisecond
	return cfg
}

func TestDo_GetRetriedOnServiceUnavailable(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	resp, err := transport.Do(context.Background(), &Call{
		Op:     "health",
		Method: http.MethodGet,
		Path:   "/health",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), calls.Load(), "two retries after the initial attempt")
}

func TestDo_PostNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	_, err := transport.Do(context.Background(), &Call{
		Op:     "submit_answer",
		Method: http.MethodPost,
		Path:   "/answers/submit",
		Body:   map[string]int{"question_id": 1, "answer_id": 2},
	})
	assert.True(t, models.IsTransient(err))
	assert.Equal(t, int32(1), calls.Load(), "mutating calls must never be retried")
}

func TestDo_IdempotentMarkedPostRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"theorems":[]}`))
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	_, err := transport.Do(context.Background(), &Call{
		Op:         "relevant_theorems",
		Method:     http.MethodPost,
		Path:       "/theorems/relevant",
		Idempotent: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDo_RateLimitRetriedOnGet(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"theorems":[]}`))
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	resp, err := transport.Do(context.Background(), &Call{
		Op:     "theorems",
		Method: http.MethodGet,
		Path:   "/theorems",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_RateLimitIsTransient(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	_, err := transport.Do(context.Background(), &Call{
		Op:     "submit_answer",
		Method: http.MethodPost,
		Path:   "/answers/submit",
	})
	assert.True(t, models.IsTransient(err), "overload counts toward the breaker like a 5xx")
	_, ok := models.AsBusiness(err)
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load(), "mutating calls still never retry")
}

func TestDo_BadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"no more questions"}`))
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	_, err := transport.Do(context.Background(), &Call{
		Op:     "next_question",
		Method: http.MethodGet,
		Path:   "/questions/next",
	})

	business, ok := models.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "no more questions", business.Message)
	assert.Equal(t, http.StatusBadRequest, business.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "caller errors are returned immediately")
}

func TestDo_UnauthorizedClassifiedAsInvalidSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	_, err := transport.Do(context.Background(), &Call{
		Op:     "first_question",
		Method: http.MethodGet,
		Path:   "/questions/first",
	})
	assert.True(t, models.IsInvalidSession(err))
}

func TestDo_InvalidSessionCodeInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_session"}`))
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	_, err := transport.Do(context.Background(), &Call{
		Op:     "next_question",
		Method: http.MethodGet,
		Path:   "/questions/next",
	})
	assert.True(t, models.IsInvalidSession(err))
}

func TestDo_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Retry.MaxAttempts = 0
	transport := New(cfg)

	call := func() error {
		_, err := transport.Do(context.Background(), &Call{
			Op:     "first_question",
			Method: http.MethodGet,
			Path:   "/questions/first",
		})
		return err
	}

	for i := 0; i < 3; i++ {
		assert.True(t, models.IsTransient(call()))
	}
	assert.Equal(t, int32(3), calls.Load())

	// Threshold reached: the breaker rejects without network I/O.
	err := call()
	assert.True(t, models.IsCircuitOpen(err))
	assert.Equal(t, int32(3), calls.Load(), "open breaker must not touch the network")
}

func TestDo_BreakerHalfOpenTrialSuccessCloses(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Retry.MaxAttempts = 0
	transport := New(cfg)

	call := func() error {
		_, err := transport.Do(context.Background(), &Call{
			Op:     "health",
			Method: http.MethodGet,
			Path:   "/health",
		})
		return err
	}

	for i := 0; i < 3; i++ {
		require.Error(t, call())
	}
	require.True(t, models.IsCircuitOpen(call()))

	// Cool-down elapses; the remote recovers; the trial call closes the
	// breaker and fully resets the failure counter.
	failing.Store(false)
	time.Sleep(150 * time.Millisecond)

	require.NoError(t, call())
	require.NoError(t, call())

	// A single new failure must not reopen it.
	failing.Store(true)
	require.Error(t, call())
	failing.Store(false)
	assert.NoError(t, call())
}

func TestDo_BusinessErrorsDoNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad answer id"}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	transport := New(cfg)

	for i := 0; i < 10; i++ {
		_, err := transport.Do(context.Background(), &Call{
			Op:     "submit_answer",
			Method: http.MethodPost,
			Path:   "/answers/submit",
		})
		_, ok := models.AsBusiness(err)
		require.True(t, ok, "breaker must stay closed across caller errors")
	}
}

func TestDo_ConnectionErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	cfg := testConfig(server.URL)
	cfg.Retry.MaxAttempts = 0
	transport := New(cfg)

	_, err := transport.Do(context.Background(), &Call{
		Op:     "health",
		Method: http.MethodGet,
		Path:   "/health",
	})
	assert.True(t, models.IsTransient(err))
}

func TestDecode_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	resp, err := transport.Do(context.Background(), &Call{
		Op:     "health",
		Method: http.MethodGet,
		Path:   "/health",
	})
	require.NoError(t, err)

	var out map[string]any
	err = Decode("health", resp, &out)

	var decodeErr *models.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestDo_CookiesSentVerbatim(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("session"); err == nil {
			got = cookie.Value
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	transport := New(testConfig(server.URL))

	_, err := transport.Do(context.Background(), &Call{
		Op:     "session_status",
		Method: http.MethodGet,
		Path:   "/session/status",
		Cookies: []*http.Cookie{
			{Name: "session", Value: "opaque-credential"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "opaque-credential", got)
}
