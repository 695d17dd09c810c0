package client

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/geolearn-io/client/internal/models"
	"github.com/geolearn-io/client/internal/transport"
)

// SubmitAnswerEnhanced submits an answer and, when requested, returns the
// next question and its answer options in the same result. The combined
// endpoint is tried first; when it ignores the include flags the missing
// read-only pieces are fetched and merged, and when the combined form is
// unsupported the operation decomposes into individual calls. The mutating
// submit is sent exactly once on every path: only read-only continuations
// are ever re-issued.
func (c *Client) SubmitAnswerEnhanced(ctx context.Context, questionID, answerID int, wantNext, wantOptions bool) (*models.SubmitResult, error) {
	if err := c.EnsureSession(ctx); err != nil {
		return nil, err
	}

	var result models.SubmitResult
	err := c.call(ctx, &transport.Call{
		Op:     "submit_answer_enhanced",
		Method: http.MethodPost,
		Path:   "/answers/submit",
		Body: models.SubmitAnswerRequest{
			QuestionID:           questionID,
			AnswerID:             answerID,
			IncludeNextQuestion:  wantNext,
			IncludeAnswerOptions: wantOptions,
		},
	}, &result)

	switch {
	case err == nil:
		if wantNext && result.NextQuestion == nil {
			// The remote side answered but ignored the include flags, for
			// example an older deployment. Fetch the read-only continuation
			// and merge it into the combined shape.
			logrus.WithFields(logrus.Fields{
				"operation": "submit_answer_enhanced",
			}).Debug("Combined response missing next question, merging from individual calls")

			if ferr := c.attachContinuation(ctx, &result, wantOptions); ferr != nil {
				return nil, ferr
			}
			result.Meta.Path = models.PathMerged
			return &result, nil
		}

		result.Meta.Path = models.PathCombined
		if wantOptions && len(result.NextAnswerOptions) == 0 {
			if ferr := c.attachAnswerOptions(ctx, &result); ferr != nil {
				return nil, ferr
			}
			result.Meta.Path = models.PathMerged
		}
		return &result, nil

	case isUnsupported(err):
		// The combined form does not exist on this deployment; the 404'd
		// call never executed, so a plain submit is still the first and
		// only mutating send.
		logrus.WithFields(logrus.Fields{
			"operation": "submit_answer_enhanced",
		}).Info("Combined submit unsupported, decomposing into individual calls")

		plain, perr := c.SubmitAnswer(ctx, questionID, answerID)
		if perr != nil {
			return nil, perr
		}
		if wantNext {
			if ferr := c.attachContinuation(ctx, plain, wantOptions); ferr != nil {
				return nil, ferr
			}
		} else if wantOptions {
			if ferr := c.attachAnswerOptions(ctx, plain); ferr != nil {
				return nil, ferr
			}
		}
		plain.Meta.Path = models.PathDecomposed
		return plain, nil

	default:
		return nil, err
	}
}

// attachContinuation fetches the next question (and optionally the answer
// options) and merges them into result. A domain condition from the fetch,
// typically an exhausted question sequence, is a normal outcome: the result
// simply carries no next question.
func (c *Client) attachContinuation(ctx context.Context, result *models.SubmitResult, wantOptions bool) error {
	next, err := c.NextQuestion(ctx)
	if err != nil {
		if isBusiness(err) {
			return nil
		}
		return err
	}
	result.NextQuestion = next

	if wantOptions {
		return c.attachAnswerOptions(ctx, result)
	}
	return nil
}

func (c *Client) attachAnswerOptions(ctx context.Context, result *models.SubmitResult) error {
	options, err := c.AnswerOptions(ctx)
	if err != nil {
		return err
	}
	result.NextAnswerOptions = options.Options
	return nil
}

// Bootstrap fetches everything a fresh page needs: a started session, the
// first question, and the requested static datasets. The combined endpoint
// is used opportunistically; a 404 decomposes into the equivalent sequence
// of individual calls producing the same result shape. A nil request asks
// for everything.
func (c *Client) Bootstrap(ctx context.Context, req *models.BootstrapRequest) (*models.BootstrapResult, error) {
	if req == nil {
		req = &models.BootstrapRequest{
			AutoStartSession:       true,
			IncludeTheorems:        true,
			IncludeFeedbackOptions: true,
			IncludeTriangles:       true,
		}
	}

	call := &transport.Call{
		Op:      "bootstrap",
		Method:  http.MethodPost,
		Path:    "/bootstrap",
		Body:    req,
		Cookies: c.affinity.Credential(),
	}

	resp, err := c.svc.transport.Do(ctx, call)
	if err != nil {
		if isUnsupported(err) {
			logrus.Info("Combined bootstrap unsupported, decomposing into individual calls")
			return c.bootstrapDecomposed(ctx, req)
		}
		return nil, err
	}

	var result models.BootstrapResult
	if derr := transport.Decode(call.Op, resp, &result); derr != nil {
		return nil, derr
	}

	// The combined endpoint starts the session server-side and issues the
	// credential exactly like a plain session start.
	if cookies := resp.Cookies(); len(cookies) > 0 {
		c.affinity.Establish(cookies)
	}

	result.Meta.Path = models.PathCombined
	if err := c.fillBootstrap(ctx, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// fillBootstrap fetches any requested dataset the combined response left
// out and merges it in, marking the result as merged when anything was
// missing. All fills are read-only.
func (c *Client) fillBootstrap(ctx context.Context, req *models.BootstrapRequest, result *models.BootstrapResult) error {
	merged := false

	if result.FirstQuestion == nil {
		first, err := c.FirstQuestion(ctx)
		if err != nil {
			if !isBusiness(err) {
				return err
			}
		} else {
			result.FirstQuestion = first
		}
		merged = true
	}

	if len(result.AnswerOptions) == 0 {
		options, err := c.AnswerOptions(ctx)
		if err != nil {
			return err
		}
		result.AnswerOptions = options.Options
		merged = true
	}

	if req.IncludeTheorems && len(result.Theorems) == 0 {
		theorems, err := c.Theorems(ctx, true, nil)
		if err != nil {
			return err
		}
		result.Theorems = theorems.Theorems
		merged = true
	}

	if req.IncludeFeedbackOptions && len(result.FeedbackOptions) == 0 {
		options, err := c.FeedbackOptions(ctx)
		if err != nil {
			return err
		}
		result.FeedbackOptions = options.Options
		merged = true
	}

	if req.IncludeTriangles && len(result.Triangles) == 0 {
		triangles, err := c.TriangleTypes(ctx)
		if err != nil {
			return err
		}
		result.Triangles = triangles.Triangles
		merged = true
	}

	if merged {
		result.Meta.Path = models.PathMerged
	}
	return nil
}

func (c *Client) bootstrapDecomposed(ctx context.Context, req *models.BootstrapRequest) (*models.BootstrapResult, error) {
	result := &models.BootstrapResult{
		Meta: models.CallMeta{Path: models.PathDecomposed},
	}

	// Session start is the one mutating step; it runs at most once.
	if req.AutoStartSession && !c.affinity.Established() {
		session, err := c.StartSession(ctx)
		if err != nil {
			return nil, err
		}
		result.Session = session
	}

	first, err := c.FirstQuestion(ctx)
	if err != nil {
		if !isBusiness(err) {
			return nil, err
		}
	} else {
		result.FirstQuestion = first
	}

	options, err := c.AnswerOptions(ctx)
	if err != nil {
		return nil, err
	}
	result.AnswerOptions = options.Options

	if req.IncludeTheorems {
		theorems, err := c.Theorems(ctx, true, nil)
		if err != nil {
			return nil, err
		}
		result.Theorems = theorems.Theorems
	}

	if req.IncludeFeedbackOptions {
		feedback, err := c.FeedbackOptions(ctx)
		if err != nil {
			return nil, err
		}
		result.FeedbackOptions = feedback.Options
	}

	if req.IncludeTriangles {
		triangles, err := c.TriangleTypes(ctx)
		if err != nil {
			return nil, err
		}
		result.Triangles = triangles.Triangles
	}

	return result, nil
}

// AdminDashboard fetches the combined admin view: statistics, the theorem
// catalogue and a health report. Falls back to the three individual calls
// when the combined endpoint is absent; fills any piece a combined
// response left out. Every step is read-only.
func (c *Client) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	var dash models.AdminDashboard
	err := c.call(ctx, &transport.Call{
		Op:     "admin_dashboard",
		Method: http.MethodGet,
		Path:   "/admin/dashboard",
	}, &dash)

	if err != nil {
		if !isUnsupported(err) {
			return nil, err
		}
		logrus.Info("Combined admin dashboard unsupported, decomposing into individual calls")
		return c.dashboardDecomposed(ctx)
	}

	dash.Meta.Path = models.PathCombined

	merged := false
	if dash.Statistics == nil {
		stats, err := c.SessionStatistics(ctx)
		if err != nil {
			return nil, err
		}
		dash.Statistics = stats
		merged = true
	}
	if len(dash.Theorems) == 0 {
		theorems, err := c.Theorems(ctx, true, nil)
		if err != nil {
			return nil, err
		}
		dash.Theorems = theorems.Theorems
		merged = true
	}
	if dash.Health == nil {
		health, err := c.Health(ctx)
		if err != nil {
			return nil, err
		}
		dash.Health = health
		merged = true
	}
	if merged {
		dash.Meta.Path = models.PathMerged
	}

	return &dash, nil
}

func (c *Client) dashboardDecomposed(ctx context.Context) (*models.AdminDashboard, error) {
	stats, err := c.SessionStatistics(ctx)
	if err != nil {
		return nil, err
	}

	theorems, err := c.Theorems(ctx, true, nil)
	if err != nil {
		return nil, err
	}

	health, err := c.Health(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AdminDashboard{
		Statistics: stats,
		Theorems:   theorems.Theorems,
		Health:     health,
		Meta:       models.CallMeta{Path: models.PathDecomposed},
	}, nil
}
