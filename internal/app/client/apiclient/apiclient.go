// Package apiclient holds the HTTP plumbing shared by the clients of the
// service's own /api endpoints.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dalemusser/registro/internal/app/system/limits"
)

// StatusError reports a non-2xx answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

type callerKey struct{}

// WithCallerIP attaches the originating browser's IP to ctx. Requests made
// with the context forward it in X-Forwarded-For.
func WithCallerIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, callerKey{}, ip)
}

// CallerIP returns the IP stored by WithCallerIP.
func CallerIP(ctx context.Context) string {
	ip, _ := ctx.Value(callerKey{}).(string)
	return ip
}

// Endpoint joins base and path without doubling slashes.
func Endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// PostJSON sends in as JSON to url and decodes a 2xx answer into out (when
// out is non-nil). The status code is returned whenever a response arrived.
// Non-2xx answers yield a *StatusError.
func PostJSON(ctx context.Context, hc *http.Client, url string, in, out any) (int, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	body, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if ip := CallerIP(ctx); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, limits.MaxUpstreamResponse))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
