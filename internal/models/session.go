package models

// Session is the response to a session start call. The session credential
// itself travels in a response cookie, not in this body.
type Session struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message,omitempty"`
}

// SessionStatus describes the current remote session and learning state.
type SessionStatus struct {
	Active    bool           `json:"active"`
	SessionID string         `json:"session_id,omitempty"`
	State     map[string]any `json:"state,omitempty"`
}

// EndSessionRequest closes the current learning session, optionally
// attaching final feedback.
type EndSessionRequest struct {
	Feedback        *int  `json:"feedback,omitempty"`
	TriangleTypes   []int `json:"triangle_types,omitempty"`
	HelpfulTheorems []int `json:"helpful_theorems,omitempty"`
	SaveToDB        bool  `json:"save_to_db"`
}

// SessionEnd is the confirmation returned by the session end endpoint.
type SessionEnd struct {
	SessionID string `json:"session_id,omitempty"`
	Saved     bool   `json:"saved,omitempty"`
	Message   string `json:"message,omitempty"`
}

// SessionReset is the confirmation returned by the session reset endpoint.
type SessionReset struct {
	Message string         `json:"message,omitempty"`
	State   map[string]any `json:"state,omitempty"`
}
