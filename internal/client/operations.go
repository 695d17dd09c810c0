package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/geolearn-io/client/internal/cache"
	"github.com/geolearn-io/client/internal/models"
	"github.com/geolearn-io/client/internal/transport"
)

// FirstQuestion fetches the first question of a session, establishing the
// session first when needed.
func (c *Client) FirstQuestion(ctx context.Context) (*models.Question, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}

	var question models.Question
	err := c.callRead(ctx, &transport.Call{
		Op:     "first_question",
		Method: http.MethodGet,
		Path:   "/questions/first",
	}, &question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// NextQuestion fetches the next question based on the current learning
// state. A "no more questions" condition surfaces as a BusinessError.
func (c *Client) NextQuestion(ctx context.Context) (*models.Question, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}

	var question models.Question
	err := c.callRead(ctx, &transport.Call{
		Op:     "next_question",
		Method: http.MethodGet,
		Path:   "/questions/next",
	}, &question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// QuestionDetails fetches one question by ID.
func (c *Client) QuestionDetails(ctx context.Context, questionID int) (*models.Question, error) {
	var question models.Question
	err := c.callRead(ctx, &transport.Call{
		Op:     "question_details",
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/questions/%d", questionID),
	}, &question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// AnswerOptions returns the answer option set. Options are effectively
// static, so results are cached; Meta reports a cache hit.
func (c *Client) AnswerOptions(ctx context.Context) (*models.AnswerOptionList, error) {
	options, hit, err := cache.GetOrFetch(c.svc.cache, "answer_options", c.svc.cfg.Cache.AnswerOptionsTTL,
		func() ([]models.AnswerOption, error) {
			var list models.AnswerOptionList
			if err := c.callRead(ctx, &transport.Call{
				Op:     "answer_options",
				Method: http.MethodGet,
				Path:   "/answers/options",
			}, &list); err != nil {
				return nil, err
			}
			return list.Options, nil
		})
	if err != nil {
		return nil, err
	}

	return &models.AnswerOptionList{
		Options: options,
		Meta:    models.CallMeta{FromCache: hit, Path: models.PathDirect},
	}, nil
}

// SubmitAnswer submits an answer without requesting any combined extras.
func (c *Client) SubmitAnswer(ctx context.Context, questionID, answerID int) (*models.SubmitResult, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}

	var result models.SubmitResult
	err := c.call(ctx, &transport.Call{
		Op:     "submit_answer",
		Method: http.MethodPost,
		Path:   "/answers/submit",
		Body: models.SubmitAnswerRequest{
			QuestionID: questionID,
			AnswerID:   answerID,
		},
	}, &result)
	if err != nil {
		return nil, err
	}

	result.Meta.Path = models.PathDirect
	return &result, nil
}

// Theorems returns the theorem catalogue, optionally filtered to active
// theorems or one triangle category. Cached per filter combination.
func (c *Client) Theorems(ctx context.Context, activeOnly bool, category *int) (*models.TheoremList, error) {
	key := fmt.Sprintf("theorems_active=%t_cat=%s", activeOnly, categoryKey(category))

	theorems, hit, err := cache.GetOrFetch(c.svc.cache, key, c.svc.cfg.Cache.TheoremsTTL,
		func() ([]models.Theorem, error) {
			query := map[string]string{}
			if activeOnly {
				query["active_only"] = "true"
			}
			if category != nil {
				query["category"] = strconv.Itoa(*category)
			}

			var list models.TheoremList
			if err := c.callRead(ctx, &transport.Call{
				Op:     "theorems",
				Method: http.MethodGet,
				Path:   "/theorems",
				Query:  query,
			}, &list); err != nil {
				return nil, err
			}
			return list.Theorems, nil
		})
	if err != nil {
		return nil, err
	}

	return &models.TheoremList{
		Theorems: theorems,
		Meta:     models.CallMeta{FromCache: hit, Path: models.PathDirect},
	}, nil
}

func categoryKey(category *int) string {
	if category == nil {
		return "none"
	}
	return strconv.Itoa(*category)
}

// TheoremDetails fetches one theorem by ID.
func (c *Client) TheoremDetails(ctx context.Context, theoremID int) (*models.Theorem, error) {
	var theorem models.Theorem
	err := c.callRead(ctx, &transport.Call{
		Op:     "theorem_details",
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/theorems/%d", theoremID),
	}, &theorem)
	if err != nil {
		return nil, err
	}
	return &theorem, nil
}

// RelevantTheorems fetches the theorems relevant to one question/answer
// pair above the given weight threshold. POST on the remote side but free
// of side effects, so it is marked idempotent for the retry policy.
func (c *Client) RelevantTheorems(ctx context.Context, questionID, answerID int, baseThreshold float64) (*models.TheoremList, error) {
	var list models.TheoremList
	err := c.callRead(ctx, &transport.Call{
		Op:         "relevant_theorems",
		Method:     http.MethodPost,
		Path:       "/theorems/relevant",
		Idempotent: true,
		Body: models.RelevantTheoremsRequest{
			QuestionID:    questionID,
			AnswerID:      answerID,
			BaseThreshold: baseThreshold,
		},
	}, &list)
	if err != nil {
		return nil, err
	}

	list.Meta.Path = models.PathDirect
	return &list, nil
}

// FeedbackOptions returns the predefined feedback choices, cached.
func (c *Client) FeedbackOptions(ctx context.Context) (*models.FeedbackOptionList, error) {
	options, hit, err := cache.GetOrFetch(c.svc.cache, "feedback_options", c.svc.cfg.Cache.FeedbackOptionsTTL,
		func() ([]models.FeedbackOption, error) {
			var list models.FeedbackOptionList
			if err := c.callRead(ctx, &transport.Call{
				Op:     "feedback_options",
				Method: http.MethodGet,
				Path:   "/feedback/options",
			}, &list); err != nil {
				return nil, err
			}
			return list.Options, nil
		})
	if err != nil {
		return nil, err
	}

	return &models.FeedbackOptionList{
		Options: options,
		Meta:    models.CallMeta{FromCache: hit, Path: models.PathDirect},
	}, nil
}

// SubmitFeedback submits session feedback without ending the session.
func (c *Client) SubmitFeedback(ctx context.Context, req *models.FeedbackRequest) (*models.FeedbackResult, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}

	var result models.FeedbackResult
	err := c.call(ctx, &transport.Call{
		Op:     "submit_feedback",
		Method: http.MethodPost,
		Path:   "/feedback/submit",
		Body:   req,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// TriangleTypes returns the triangle categories, cached.
func (c *Client) TriangleTypes(ctx context.Context) (*models.TriangleTypeList, error) {
	triangles, hit, err := cache.GetOrFetch(c.svc.cache, "triangle_types", c.svc.cfg.Cache.TriangleTypesTTL,
		func() ([]models.TriangleType, error) {
			var list models.TriangleTypeList
			if err := c.callRead(ctx, &transport.Call{
				Op:     "triangle_types",
				Method: http.MethodGet,
				Path:   "/db/triangles",
			}, &list); err != nil {
				return nil, err
			}
			return list.Triangles, nil
		})
	if err != nil {
		return nil, err
	}

	return &models.TriangleTypeList{
		Triangles: triangles,
		Meta:      models.CallMeta{FromCache: hit, Path: models.PathDirect},
	}, nil
}

// SessionHistory pages through saved sessions.
func (c *Client) SessionHistory(ctx context.Context, limit *int, offset int) (*models.SessionHistory, error) {
	query := map[string]string{
		"offset": strconv.Itoa(offset),
	}
	if limit != nil {
		query["limit"] = strconv.Itoa(*limit)
	}

	var history models.SessionHistory
	err := c.callRead(ctx, &transport.Call{
		Op:     "session_history",
		Method: http.MethodGet,
		Path:   "/sessions/history",
		Query:  query,
	}, &history)
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// CurrentSessionData fetches the current session's interaction log.
func (c *Client) CurrentSessionData(ctx context.Context) (*models.SessionData, error) {
	var data models.SessionData
	err := c.callRead(ctx, &transport.Call{
		Op:     "current_session_data",
		Method: http.MethodGet,
		Path:   "/sessions/current",
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// SessionStatistics fetches aggregate statistics over all saved sessions.
func (c *Client) SessionStatistics(ctx context.Context) (*models.Statistics, error) {
	var stats models.Statistics
	err := c.callRead(ctx, &transport.Call{
		Op:     "session_statistics",
		Method: http.MethodGet,
		Path:   "/sessions/statistics",
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// DatabaseTables lists the remote service's database tables. Diagnostic
// use only.
func (c *Client) DatabaseTables(ctx context.Context) (*models.DatabaseTables, error) {
	var tables models.DatabaseTables
	err := c.callRead(ctx, &transport.Call{
		Op:     "database_tables",
		Method: http.MethodGet,
		Path:   "/db/tables",
	}, &tables)
	if err != nil {
		return nil, err
	}
	return &tables, nil
}

// Health probes the API's liveness. Not on the hot path, no session
// attach, no cache. Bypasses the credential-attaching call path entirely so
// a probe never leaks or depends on session state.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	call := &transport.Call{
		Op:     "health",
		Method: http.MethodGet,
		Path:   "/health",
	}

	resp, err := c.svc.transport.Do(ctx, call)
	if err != nil {
		return nil, err
	}

	var health models.Health
	if err := transport.Decode(call.Op, resp, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
