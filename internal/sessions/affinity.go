// Package sessions tracks remote-session affinity. The remote API issues an
// opaque credential via a response cookie on session start; every later call
// scoped to the same caller context must resend it unmodified. The client
// never constructs or guesses a credential value.
package sessions

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Affinity holds the remote-session state for one caller context. One
// context's credential is never visible to or reused by another; create one
// Affinity per concurrently handled request or logical user.
type Affinity struct {
	mu          sync.Mutex
	contextID   uuid.UUID
	established bool
	credential  []*http.Cookie
	createdAt   time.Time
}

// NewAffinity creates empty session state for a fresh caller context.
func NewAffinity() *Affinity {
	return &Affinity{
		contextID: uuid.New(),
		createdAt: time.Now(),
	}
}

// ContextID identifies the caller context, for logging.
func (a *Affinity) ContextID() uuid.UUID {
	return a.contextID
}

// CreatedAt is when this context's session state was first created.
func (a *Affinity) CreatedAt() time.Time {
	return a.createdAt
}

// Established reports whether a remote session has been established for this
// context and not since ended or invalidated.
func (a *Affinity) Established() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.established
}

// Establish stores the credential cookies exactly as received from the
// remote side and marks the session established. Both updates happen under
// one lock so no half-established state is ever observable.
func (a *Affinity) Establish(credential []*http.Cookie) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.credential = append([]*http.Cookie(nil), credential...)
	a.established = true

	logrus.WithFields(logrus.Fields{
		"context": a.contextID,
		"cookies": len(credential),
	}).Debug("Remote session established")
}

// Credential returns a copy of the stored credential cookies, verbatim as
// received. Empty until Establish has been called.
func (a *Affinity) Credential() []*http.Cookie {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*http.Cookie(nil), a.credential...)
}

// Invalidate clears the stored state so the next ensure re-establishes the
// session. Called on an explicit end or when a response reports the
// credential invalid.
func (a *Affinity) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.established {
		logrus.WithField("context", a.contextID).Debug("Remote session invalidated")
	}
	a.credential = nil
	a.established = false
}
