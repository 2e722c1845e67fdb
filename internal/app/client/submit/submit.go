// Package submit relays a finished record to the persistence endpoint.
package submit

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/registro/internal/app/client/apiclient"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
)

// Result is the typed outcome of one submission.
type Result struct {
	Kind       models.SubmissionKind
	HTTPStatus int    // 0 when no response arrived
	Message    string // acknowledgment or error text from the endpoint
}

// OK reports whether the endpoint acknowledged the record.
func (r Result) OK() bool { return r.Kind == models.SubmissionOK }

// Client calls POST /api/save-resource.
type Client struct {
	url  string
	http *http.Client
	log  *zap.Logger
}

// New returns a Client for the API at baseURL. hc may be nil.
func New(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{url: apiclient.Endpoint(baseURL, "/api/save-resource"), http: hc, log: log}
}

type reply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Submit sends the row built from r and meta. It never returns an error;
// every failure is folded into the Result kind.
func (c *Client) Submit(ctx context.Context, r models.ResourceRecord, meta models.GeneratedMetadata) Result {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Submit(), c.log, "record submission")
	defer cancel()

	row := models.NewSheetRow(r, meta)

	var out reply
	code, err := apiclient.PostJSON(ctx, c.http, c.url, row, &out)
	res := classify(code, err, out)
	if !res.OK() {
		c.log.Warn("record submission failed",
			zap.String("kind", string(res.Kind)),
			zap.Int("status", code),
			zap.Error(err))
	}
	return res
}

func classify(code int, err error, out reply) Result {
	var se *apiclient.StatusError
	switch {
	case err == nil && out.Success:
		return Result{Kind: models.SubmissionOK, HTTPStatus: code, Message: out.Message}
	case err == nil:
		return Result{Kind: models.SubmissionUnavailable, HTTPStatus: code, Message: "sin confirmación del registro central"}
	case errors.As(err, &se):
		return Result{Kind: KindForStatus(se.Code), HTTPStatus: se.Code, Message: errorMessage(se.Body)}
	default:
		return Result{Kind: models.SubmissionUnavailable, HTTPStatus: code, Message: err.Error()}
	}
}

// KindForStatus maps a non-2xx status code onto a submission kind.
func KindForStatus(code int) models.SubmissionKind {
	switch code {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return models.SubmissionRejected
	case http.StatusTooManyRequests:
		return models.SubmissionRateLimited
	default:
		return models.SubmissionUnavailable
	}
}
