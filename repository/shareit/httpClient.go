package shareitrepo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"shareit/util/httpx"
)

const (
	headerUserID    = "X-Sharer-User-Id"
	headerRequestID = "X-Request-Id"
)

type httpRepo struct {
	baseURL string
	client  *http.Client
}

// NewHTTP talks to the server at baseURL. A nil client uses the shared one.
func NewHTTP(baseURL string, client *http.Client) Repo {
	if client == nil {
		client = httpx.Client()
	}
	return &httpRepo{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (r *httpRepo) Forward(ctx context.Context, call Call) (*Reply, error) {
	url := r.baseURL + call.Path
	if call.RawQuery != "" {
		url += "?" + call.RawQuery
	}
	var body io.Reader
	if len(call.Body) > 0 {
		body = bytes.NewReader(call.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, call.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("shareitrepo.Forward: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if call.UserID != "" {
		httpReq.Header.Set(headerUserID, call.UserID)
	}
	if call.RequestID != "" {
		httpReq.Header.Set(headerRequestID, call.RequestID)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("shareitrepo.Forward %s %s: %w", call.Method, call.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("shareitrepo.Forward read: %w", err)
	}
	return &Reply{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}
