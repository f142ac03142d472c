// Package gateway talks to the local OpenClaw gateway over its generic
// "invoke named tool" HTTP contract. Every tool call is a POST to
// /tools/invoke; results come back wrapped in a content envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is where a locally running gateway listens.
	DefaultBaseURL = "http://127.0.0.1:18789"

	// sessionListLimit caps how many sessions one fetch returns.
	sessionListLimit = 20
)

// Source is the session-source contract the poller and the CLI consume.
// Both the HTTP client and the mock implement it.
type Source interface {
	FetchSessions(ctx context.Context, messageLimit int) (*SessionsResponse, error)
	FetchCronJobs(ctx context.Context) (*CronListResponse, error)
	FetchHistory(ctx context.Context, sessionKey string, limit int) ([]SessionMessage, error)
	Ping(ctx context.Context) error
}

// Client is the HTTP gateway client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a gateway client. An empty baseURL falls back to
// the local default.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// invokeRequest is the envelope for every tool call.
type invokeRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

type invokeResponse struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// resultEnvelope is how the gateway wraps tool results: the actual
// payload is a JSON string in content[0].text.
type resultEnvelope struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// invoke calls a named tool and decodes the result into out. The
// wrapped content envelope is tried first; a plain result is the
// fallback for tools that return bare JSON.
func (c *Client) invoke(ctx context.Context, tool string, args map[string]any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	body, err := json.Marshal(invokeRequest{Tool: tool, Args: args})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", tool, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tools/invoke", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", tool, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned %s for tool %s", resp.Status, tool)
	}

	var ir invokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", tool, err)
	}
	if !ir.OK {
		if ir.Error != nil && ir.Error.Message != "" {
			return fmt.Errorf("gateway error for tool %s: %s", tool, ir.Error.Message)
		}
		return fmt.Errorf("gateway error for tool %s", tool)
	}
	if out == nil {
		return nil
	}

	// Unwrap the content envelope if present.
	var env resultEnvelope
	if err := json.Unmarshal(ir.Result, &env); err == nil && len(env.Content) > 0 && env.Content[0].Text != "" {
		if err := json.Unmarshal([]byte(env.Content[0].Text), out); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", tool, err)
		}
		return nil
	}
	if err := json.Unmarshal(ir.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", tool, err)
	}
	return nil
}

// FetchSessions lists sessions, with up to messageLimit recent messages
// inlined per session.
func (c *Client) FetchSessions(ctx context.Context, messageLimit int) (*SessionsResponse, error) {
	var out SessionsResponse
	err := c.invoke(ctx, "sessions_list", map[string]any{
		"limit":        sessionListLimit,
		"messageLimit": messageLimit,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchCronJobs lists all cron jobs, disabled ones included.
func (c *Client) FetchCronJobs(ctx context.Context) (*CronListResponse, error) {
	var out CronListResponse
	err := c.invoke(ctx, "cron", map[string]any{
		"action":          "list",
		"includeDisabled": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchHistory returns the full message history of one session,
// tool traffic included.
func (c *Client) FetchHistory(ctx context.Context, sessionKey string, limit int) ([]SessionMessage, error) {
	var out HistoryResponse
	err := c.invoke(ctx, "sessions_history", map[string]any{
		"sessionKey":   sessionKey,
		"limit":        limit,
		"includeTools": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// Ping checks gateway reachability via the session_status tool.
func (c *Client) Ping(ctx context.Context) error {
	return c.invoke(ctx, "session_status", nil, nil)
}
