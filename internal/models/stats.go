package models

// Statistics aggregates outcomes across all saved sessions.
type Statistics struct {
	TotalSessions     int            `json:"total_sessions"`
	TotalInteractions int            `json:"total_interactions"`
	AverageQuestions  float64        `json:"average_questions,omitempty"`
	FeedbackCounts    map[string]int `json:"feedback_counts,omitempty"`
}

// SessionRecord is one saved session from the history endpoint.
type SessionRecord struct {
	SessionID    string `json:"session_id"`
	StartedAt    string `json:"started_at,omitempty"`
	EndedAt      string `json:"ended_at,omitempty"`
	Questions    int    `json:"questions,omitempty"`
	Feedback     *int   `json:"feedback,omitempty"`
	TriangleType *int   `json:"triangle_type,omitempty"`
}

// SessionHistory is a page of saved sessions.
type SessionHistory struct {
	Sessions []SessionRecord `json:"sessions"`
	Total    int             `json:"total,omitempty"`
}

// SessionData is the current session's interaction log.
type SessionData struct {
	SessionID    string           `json:"session_id,omitempty"`
	Interactions []map[string]any `json:"interactions,omitempty"`
}

// Health is the liveness report from the health endpoint.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

const healthStatusHealthy = "healthy"

// Healthy reports whether the API considers itself fully operational.
func (h *Health) Healthy() bool {
	return h != nil && h.Status == healthStatusHealthy
}

// DatabaseTables lists the tables backing the remote service. Diagnostic
// use only.
type DatabaseTables struct {
	Tables []string `json:"tables"`
}
