package models

// Question is a single learning question served by the API.
type Question struct {
	QuestionID   int    `json:"question_id"`
	QuestionText string `json:"question_text"`
	Info         string `json:"info,omitempty"`
}

// AnswerOption is one selectable answer. The full set is effectively static
// for the lifetime of a deployment.
type AnswerOption struct {
	AnswerID int    `json:"answer_id"`
	Text     string `json:"text"`
}

// AnswerOptionList is the answer options endpoint response.
type AnswerOptionList struct {
	Options []AnswerOption `json:"options"`

	Meta CallMeta `json:"-"`
}

// SubmitAnswerRequest submits an answer, optionally asking the API to
// include the next question (and its answer options) in the same response.
type SubmitAnswerRequest struct {
	QuestionID           int  `json:"question_id"`
	AnswerID             int  `json:"answer_id"`
	IncludeNextQuestion  bool `json:"include_next_question,omitempty"`
	IncludeAnswerOptions bool `json:"include_answer_options,omitempty"`
}

// SubmitResult is the outcome of an answer submission. NextQuestion and
// NextAnswerOptions are populated only when requested, whether the remote
// side provided them in the combined response or they were fetched and
// merged afterwards; Meta records which.
type SubmitResult struct {
	Message           string         `json:"message,omitempty"`
	RelevantTheorems  []Theorem      `json:"relevant_theorems,omitempty"`
	NextQuestion      *Question      `json:"next_question,omitempty"`
	NextAnswerOptions []AnswerOption `json:"next_answer_options,omitempty"`

	Meta CallMeta `json:"-"`
}

// Theorem is a geometry theorem with its relevance weighting.
type Theorem struct {
	TheoremID   int     `json:"theorem_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    int     `json:"category"`
	Weight      float64 `json:"weight,omitempty"`
	Active      bool    `json:"active"`
}

// TheoremList is the theorems endpoint response.
type TheoremList struct {
	Theorems []Theorem `json:"theorems"`

	Meta CallMeta `json:"-"`
}

// RelevantTheoremsRequest asks for theorems relevant to one question/answer
// pair, filtered by a minimum weight threshold.
type RelevantTheoremsRequest struct {
	QuestionID    int     `json:"question_id"`
	AnswerID      int     `json:"answer_id"`
	BaseThreshold float64 `json:"base_threshold"`
}

// FeedbackOption is one of the predefined session feedback choices.
type FeedbackOption struct {
	FeedbackID int    `json:"feedback_id"`
	Text       string `json:"text"`
}

// FeedbackOptionList is the feedback options endpoint response.
type FeedbackOptionList struct {
	Options []FeedbackOption `json:"options"`

	Meta CallMeta `json:"-"`
}

// FeedbackRequest submits session feedback without ending the session.
type FeedbackRequest struct {
	Feedback        int   `json:"feedback"`
	TriangleTypes   []int `json:"triangle_types,omitempty"`
	HelpfulTheorems []int `json:"helpful_theorems,omitempty"`
}

// FeedbackResult is the confirmation returned by the feedback endpoint.
type FeedbackResult struct {
	Message string `json:"message,omitempty"`
}

// TriangleType is one of the triangle categories used across the system.
type TriangleType struct {
	TriangleID int    `json:"triangle_id"`
	Name       string `json:"name"`
}

// TriangleTypeList is the triangle types endpoint response.
type TriangleTypeList struct {
	Triangles []TriangleType `json:"triangles"`

	Meta CallMeta `json:"-"`
}
