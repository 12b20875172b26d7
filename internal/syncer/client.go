// Package syncer talks to the remote state API and keeps the local activity
// store in step with it.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"asura/tracker/internal/domain"
)

// ErrNoSession is returned by calls that need a bearer token when none is set.
var ErrNoSession = errors.New("no active session")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote returned %d %s", e.Status, http.StatusText(e.Status))
}

// Client is an HTTP client for the state API.
type Client struct {
	http  *http.Client
	base  string
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		base: strings.TrimRight(baseURL, "/"),
	}
}

// WithToken returns a copy of c that attaches token to every request.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// HasSession reports whether a bearer token is attached.
func (c *Client) HasSession() bool {
	return c.token != ""
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, email, password, name string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: password, Name: name}, &out, false); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &out, false); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Me(ctx context.Context) (domain.Profile, error) {
	var p domain.Profile
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &p, true)
	return p, err
}

// FetchState returns the stored document, or nil when the server has none.
func (c *Client) FetchState(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/state", nil, &raw, true); err != nil {
		return nil, err
	}
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	return raw, nil
}

// PushState replaces the remote document with raw.
func (c *Client) PushState(ctx context.Context, raw []byte) error {
	return c.do(ctx, http.MethodPut, "/api/state", json.RawMessage(raw), nil, true)
}

// ExportState asks the server to snapshot the stored document and returns a
// download URL.
func (c *Client) ExportState(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/state/export", nil, &out, true); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	if auth && c.token == "" {
		return ErrNoSession
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&msg)
		return &StatusError{Status: resp.StatusCode, Message: msg.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
