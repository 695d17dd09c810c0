package client

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/geolearn-io/client/internal/models"
	"github.com/geolearn-io/client/internal/transport"
)

// StartSession starts a new learning session and stores the credential
// issued via the response cookies. On any failure, no local state changes:
// either the network call and the state update both happen, or neither.
func (c *Client) StartSession(ctx context.Context) (*models.Session, error) {
	call := &transport.Call{
		Op:     "start_session",
		Method: http.MethodPost,
		Path:   "/session/start",
	}

	resp, err := c.svc.transport.Do(ctx, call)
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := transport.Decode(call.Op, resp, &session); err != nil {
		return nil, err
	}

	c.affinity.Establish(resp.Cookies())

	logrus.WithFields(logrus.Fields{
		"session": session.SessionID,
		"context": c.affinity.ContextID(),
	}).Info("Learning session started")

	return &session, nil
}

// EnsureSession establishes a remote session for this context if one is not
// already established. Between an explicit start and an explicit end this
// performs at most one network call, no matter how many operations run in
// between; when the session is already established it returns immediately
// with no I/O.
func (c *Client) EnsureSession(ctx context.Context) error {
	if c.affinity.Established() {
		return nil
	}
	_, err := c.StartSession(ctx)
	return err
}

// SessionStatus fetches the active flag and learning state of the current
// remote session. Does not establish a session.
func (c *Client) SessionStatus(ctx context.Context) (*models.SessionStatus, error) {
	var status models.SessionStatus
	err := c.call(ctx, &transport.Call{
		Op:     "session_status",
		Method: http.MethodGet,
		Path:   "/session/status",
	}, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// EndSession ends the current learning session, optionally attaching final
// feedback. Local session state is cleared regardless of the call's
// outcome: a context's state never outlives an explicit end, even when the
// network call fails. That failure is logged and returned, but the next
// operation on this context starts from a clean slate either way.
func (c *Client) EndSession(ctx context.Context, req *models.EndSessionRequest) (*models.SessionEnd, error) {
	if req == nil {
		req = &models.EndSessionRequest{SaveToDB: true}
	}

	defer c.affinity.Invalidate()

	var result models.SessionEnd
	err := c.call(ctx, &transport.Call{
		Op:     "end_session",
		Method: http.MethodPost,
		Path:   "/session/end",
		Body:   req,
	}, &result)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"context": c.affinity.ContextID(),
		}).WithError(err).Warn("Session end call failed, clearing local state anyway")
		return nil, err
	}

	return &result, nil
}

// ResetSession resets the remote session's learning state without ending
// the session or touching the credential.
func (c *Client) ResetSession(ctx context.Context) (*models.SessionReset, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}

	var result models.SessionReset
	err := c.call(ctx, &transport.Call{
		Op:     "reset_session",
		Method: http.MethodPost,
		Path:   "/session/reset",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
