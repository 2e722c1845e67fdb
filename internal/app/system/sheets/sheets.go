// Package sheets relays rows to the spreadsheet-backed store.
//
// The store is reached through a webhook (a Google Apps Script web app or
// anything speaking the same contract): one JSON row per POST, any 2xx
// answer without an error field counts as stored.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/registro/internal/app/system/limits"
	"github.com/dalemusser/registro/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// ErrNotConfigured is returned by Append when no webhook URL is set.
var ErrNotConfigured = errors.New("sheets: webhook not configured")

// ErrRejected is returned when the webhook answers 2xx but reports an error.
var ErrRejected = errors.New("sheets: row rejected by webhook")

// Client posts rows to the webhook.
type Client struct {
	url  string
	http *http.Client
	log  *zap.Logger
}

// New returns a Client for webhookURL. When secret is set every request
// carries it as a bearer token. base may be nil.
func New(webhookURL, secret string, base *http.Client, log *zap.Logger) *Client {
	if base == nil {
		base = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	hc := base
	if secret != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: secret,
			TokenType:   "Bearer",
		}))
	}
	return &Client{url: strings.TrimSpace(webhookURL), http: hc, log: log}
}

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool {
	return c != nil && c.url != ""
}

// webhookReply is the loose shape Apps Script handlers answer with.
type webhookReply struct {
	Status string `json:"status"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// Append sends one row.
func (c *Client) Append(ctx context.Context, row models.SheetRow) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limits.MaxUpstreamResponse))
	if err != nil {
		c.log.Debug("webhook response body read failed", zap.Error(err), zap.Int("status", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	// A cut-off answer can't confirm the row was stored.
	if err != nil {
		return fmt.Errorf("read webhook response: %w", err)
	}

	var reply webhookReply
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &reply) == nil {
		if reply.Error != "" || strings.EqualFold(reply.Status, "error") || strings.EqualFold(reply.Result, "error") {
			c.log.Warn("webhook reported an error",
				zap.String("status", reply.Status),
				zap.String("error", reply.Error))
			return ErrRejected
		}
	}
	return nil
}
