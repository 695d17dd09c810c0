package models

// BootstrapRequest asks the combined bootstrap endpoint for everything a
// fresh page needs in one round trip.
type BootstrapRequest struct {
	AutoStartSession       bool `json:"auto_start_session"`
	IncludeTheorems        bool `json:"include_theorems"`
	IncludeFeedbackOptions bool `json:"include_feedback_options"`
	IncludeTriangles       bool `json:"include_triangles"`
}

// BootstrapResult is the merged initial page data: a started session, the
// first question, and whichever static datasets were requested. The same
// shape is produced whether the combined endpoint answered in one call or
// the client decomposed into individual calls; Meta records which.
type BootstrapResult struct {
	Session         *Session         `json:"session,omitempty"`
	FirstQuestion   *Question        `json:"first_question,omitempty"`
	AnswerOptions   []AnswerOption   `json:"answer_options,omitempty"`
	Theorems        []Theorem        `json:"theorems,omitempty"`
	FeedbackOptions []FeedbackOption `json:"feedback_options,omitempty"`
	Triangles       []TriangleType   `json:"triangles,omitempty"`

	Meta CallMeta `json:"-"`
}

// AdminDashboard is the merged admin view: aggregate statistics, the theorem
// catalogue, and a liveness report.
type AdminDashboard struct {
	Statistics *Statistics `json:"statistics,omitempty"`
	Theorems   []Theorem   `json:"theorems,omitempty"`
	Health     *Health     `json:"health,omitempty"`

	Meta CallMeta `json:"-"`
}
