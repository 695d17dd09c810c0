// Package client exposes the logical operations of the Geometry Learning
// System API as a resilient, mostly-local-feeling interface. A shared
// Service owns the connection pool, the circuit breaker and the response
// cache; a Client scopes one caller context's session state on top of it.
package client

import (
	"net/http"

	"github.com/geolearn-io/client/internal/cache"
	"github.com/geolearn-io/client/internal/config"
	"github.com/geolearn-io/client/internal/sessions"
	"github.com/geolearn-io/client/internal/transport"
)

// Service holds the resources shared across every caller context: the
// pooled transport with its circuit breaker, the TTL response cache, and
// the configuration. Safe for concurrent use.
type Service struct {
	cfg       *config.Config
	transport *transport.Transport
	cache     *cache.Store
}

// NewService wires the shared transport and cache from configuration.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:       cfg,
		transport: transport.New(cfg),
		cache:     cache.New(cfg.Cache.Enabled, cfg.Cache.CleanupInterval),
	}
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// ClearCache flushes the shared response cache. Explicit operator action
// for debugging and testing, not part of normal operation.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// NewClient creates a Client for a fresh caller context with no remote
// session yet. Session establishment happens lazily on first use.
func NewClient(svc *Service) *Client {
	return &Client{
		svc:      svc,
		affinity: sessions.NewAffinity(),
	}
}

// NewClientWithCredential creates a Client resuming a previously issued
// session credential, for example one persisted between CLI invocations.
// The credential is trusted optimistically; a downstream invalid-session
// response re-establishes on demand.
func NewClientWithCredential(svc *Service, credential []*http.Cookie) *Client {
	c := NewClient(svc)
	if len(credential) > 0 {
		c.affinity.Establish(credential)
	}
	return c
}
