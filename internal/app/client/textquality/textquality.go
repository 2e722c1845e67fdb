// Package textquality asks the validation endpoint whether a piece of text
// looks misspelled.
package textquality

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/registro/internal/app/client/apiclient"
	"github.com/dalemusser/registro/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// okToken is the literal the service answers when the text is fine.
const okToken = "OK"

// Client calls POST /api/validate.
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
	return &Client{url: apiclient.Endpoint(baseURL, "/api/validate"), http: hc, log: log}
}

type request struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

type response struct {
	Result *string `json:"result"`
}

// Check returns the service's warning for text, or "" when the text is fine.
// Errors are returned to the caller, which decides how to fail open.
func (c *Client) Check(ctx context.Context, text, label string) (string, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Validate(), c.log, "text validation")
	defer cancel()

	var out response
	if _, err := apiclient.PostJSON(ctx, c.http, c.url, request{Text: text, Context: label}, &out); err != nil {
		c.log.Debug("text validation failed", zap.String("context", label), zap.Error(err))
		return "", err
	}
	if out.Result == nil {
		return "", nil
	}
	w := strings.TrimSpace(*out.Result)
	if w == okToken {
		return "", nil
	}
	return w, nil
}
