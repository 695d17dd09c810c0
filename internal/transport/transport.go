// Package transport owns outbound HTTP connections to the learning API:
// connection pooling, keep-alive, per-call timeouts, bounded retry with
// exponential backoff on transient failures, and a circuit breaker shared
// across caller contexts. It does not interpret response bodies beyond
// classifying the HTTP outcome into the client's error taxonomy.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/geolearn-io/client/internal/common"
	"github.com/geolearn-io/client/internal/config"
	"github.com/geolearn-io/client/internal/models"
)

const (
	poolMaxIdleConns        = 50
	poolMaxIdleConnsPerHost = 20
	poolIdleConnTimeout     = 90 * time.Second
)

// Call describes one outbound request against the API base URL.
type Call struct {
	// Op names the logical operation for logs and error messages.
	Op     string
	Method string
	// Path is relative to the configured base URL.
	Path  string
	Query map[string]string
	Body  any
	// Cookies carries the session credential, verbatim as issued.
	Cookies []*http.Cookie
	// Idempotent opts a non-GET call into the retry policy. GETs are
	// always retryable; mutating calls never are unless marked.
	Idempotent bool
}

// Transport is the shared outbound HTTP layer. Safe for concurrent use
// across caller contexts; the connection pool and the breaker are the only
// state shared between them.
type Transport struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
}

type idempotentKey struct{}

// New builds a Transport from configuration: a pooled keep-alive HTTP
// client with resty's bounded exponential-backoff retry, wrapped in a
// consecutive-failure circuit breaker.
func New(cfg *config.Config) *Transport {
	pool := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.API.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        poolMaxIdleConns,
		MaxIdleConnsPerHost: poolMaxIdleConnsPerHost,
		IdleConnTimeout:     poolIdleConnTimeout,
	}

	client := resty.NewWithClient(&http.Client{Transport: pool}).
		SetBaseURL(cfg.API.BaseURL).
		SetTimeout(cfg.API.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", common.UserAgent()).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.Wait).
		SetRetryMaxWaitTime(cfg.Retry.MaxWait).
		AddRetryCondition(retryCondition)

	threshold := cfg.Breaker.Threshold
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geolearn-api",
		MaxRequests: 1,
		Timeout:     cfg.Breaker.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Only remote-side failures count toward the breaker. Business
		// errors, invalid-session signals and decode failures say
		// nothing about the health of the remote service.
		IsSuccessful: func(err error) bool {
			return !models.IsTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state change")
		},
	})

	return &Transport{
		client:  client,
		breaker: breaker,
	}
}

// retryCondition limits resty's automatic retry to idempotent requests
// failing transiently: connection errors and the configured status set.
// Everything else is returned immediately without retry.
func retryCondition(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil {
		return false
	}

	idempotent := r.Request.Method == http.MethodGet
	if !idempotent {
		if flagged, ok := r.Request.Context().Value(idempotentKey{}).(bool); ok {
			idempotent = flagged
		}
	}
	if !idempotent {
		return false
	}

	if err != nil {
		return true
	}

	switch r.StatusCode() {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Do executes the call through the circuit breaker. While the breaker is
// open, it fails immediately with a CircuitOpenError and no network I/O.
// Errors are classified per the client's taxonomy; a returned response
// always has a 2xx status.
func (t *Transport) Do(ctx context.Context, call *Call) (*resty.Response, error) {
	result, err := t.breaker.Execute(func() (any, error) {
		return t.send(ctx, call)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logrus.WithFields(logrus.Fields{
				"operation": call.Op,
			}).Debug("Call rejected by open circuit breaker")
			return nil, &models.CircuitOpenError{Op: call.Op, Err: err}
		}
		return nil, err
	}
	return result.(*resty.Response), nil
}

func (t *Transport) send(ctx context.Context, call *Call) (*resty.Response, error) {
	if call.Idempotent {
		ctx = context.WithValue(ctx, idempotentKey{}, true)
	}

	req := t.client.R().SetContext(ctx)

	if len(call.Query) > 0 {
		req.SetQueryParams(call.Query)
	}
	if call.Body != nil {
		req.SetBody(call.Body)
	}
	if len(call.Cookies) > 0 {
		req.SetCookies(call.Cookies)
	}

	resp, err := req.Execute(call.Method, call.Path)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"operation": call.Op,
			"path":      call.Path,
		}).WithError(err).Error("Request failed")
		return nil, &models.TransientError{Op: call.Op, Err: err}
	}

	return classify(call, resp)
}

// classify maps the HTTP outcome to the error taxonomy. 2xx passes through;
// an invalid-session signal, a 5xx or 429, and a domain 4xx each become
// their distinct error kind.
func classify(call *Call, resp *resty.Response) (*resty.Response, error) {
	status := resp.StatusCode()

	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return resp, nil
	}

	var body models.ErrorResponse
	_ = json.Unmarshal(resp.Body(), &body)

	if status == http.StatusUnauthorized || body.Error == models.InvalidSessionCode {
		logrus.WithFields(logrus.Fields{
			"operation": call.Op,
			"status":    status,
		}).Warn("Remote session reported invalid")
		return nil, &models.InvalidSessionError{Op: call.Op}
	}

	// 429 signals remote-side overload, not a caller mistake: it retries,
	// counts toward the breaker, and surfaces as transient like a 5xx.
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		reason := body.Reason()
		if len(reason) == 0 {
			reason = http.StatusText(status)
		}
		logrus.WithFields(logrus.Fields{
			"operation": call.Op,
			"status":    status,
			"reason":    reason,
		}).Error("Remote-side failure")
		return nil, &models.TransientError{
			Op:         call.Op,
			StatusCode: status,
			Err:        errors.New(reason),
		}
	}

	message := body.Reason()
	if len(message) == 0 {
		message = http.StatusText(status)
	}
	return nil, &models.BusinessError{
		Op:         call.Op,
		StatusCode: status,
		Message:    message,
	}
}

// Decode unmarshals a 2xx response body into out, reporting a DecodeError
// when the body does not match the expected shape.
func Decode(op string, resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &models.DecodeError{Op: op, Err: err}
	}
	return nil
}
