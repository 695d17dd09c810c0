package client

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/geolearn-io/client/internal/models"
	"github.com/geolearn-io/client/internal/sessions"
	"github.com/geolearn-io/client/internal/transport"
)

// Client issues operations on behalf of one caller context. Its session
// credential is never shared with another context. Operations within one
// context are expected to be issued sequentially; distinct contexts may run
// concurrently.
type Client struct {
	svc      *Service
	affinity *sessions.Affinity
}

// Affinity exposes the context's session state, mainly so the surrounding
// application can persist the credential between invocations.
func (c *Client) Affinity() *sessions.Affinity {
	return c.affinity
}

// call executes one request with the stored credential attached verbatim,
// decoding a 2xx body into out when out is non-nil. An invalid-session
// response clears the local state so the next ensure re-establishes.
func (c *Client) call(ctx context.Context, call *transport.Call, out any) error {
	call.Cookies = c.affinity.Credential()

	resp, err := c.svc.transport.Do(ctx, call)
	if err != nil {
		if models.IsInvalidSession(err) {
			c.affinity.Invalidate()
		}
		return err
	}

	if out == nil {
		return nil
	}
	return transport.Decode(call.Op, resp, out)
}

// callRead executes a read-only request, transparently re-establishing the
// session exactly once when the remote side reports the credential invalid.
// Safe only for calls without side effects.
func (c *Client) callRead(ctx context.Context, call *transport.Call, out any) error {
	err := c.call(ctx, call, out)
	if !models.IsInvalidSession(err) {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"operation": call.Op,
		"context":   c.affinity.ContextID(),
	}).Info("Re-establishing remote session after invalidation")

	if _, serr := c.StartSession(ctx); serr != nil {
		return serr
	}
	return c.call(ctx, call, out)
}

// isUnsupported reports whether err is the explicit "combined endpoint not
// implemented" signal: a 404 on the combined route. A 404'd call never
// executed server-side, so decomposing afterwards cannot duplicate side
// effects.
func isUnsupported(err error) bool {
	b, ok := models.AsBusiness(err)
	return ok && b.StatusCode == http.StatusNotFound
}

// isBusiness reports whether err is a domain condition rather than a
// failure. Continuation fetches absorb every such condition, most commonly
// "no more questions": a merged result simply goes without the piece
// instead of failing an already-recorded submit.
func isBusiness(err error) bool {
	_, ok := models.AsBusiness(err)
	return ok
}
