package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public GitHub API endpoint.
	DefaultBaseURL = "https://api.github.com"

	defaultTimeout = 100 * time.Second
	acceptHeader   = "application/vnd.github+json"
	apiVersion     = "2022-11-28"
)

// Client performs authenticated API calls. The authorization header value is
// fixed at construction: a JWT for app-level calls or an installation token.
type Client struct {
	baseURL       string
	http          *http.Client
	authorization string
	userAgent     string
}

// Option customizes a client.
type Option func(*Client)

// WithBaseURL points the client at a GitHub Enterprise API root or a test
// server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func newClient(authorization string, opts ...Option) *Client {
	c := &Client{
		baseURL:       DefaultBaseURL,
		http:          &http.Client{Timeout: defaultTimeout},
		authorization: authorization,
		userAgent:     "octocheck",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTokenClient returns a client authenticated with an installation or
// personal access token.
func NewTokenClient(token string, opts ...Option) *Client {
	return newClient("token "+token, opts...)
}

// Repository fetches a repository, confirming the client can see it.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	var out Repository
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", owner, repo), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCheckRun creates a check run on owner/repo.
func (c *Client) CreateCheckRun(ctx context.Context, owner, repo string, req CreateCheckRun) (*CheckRun, error) {
	var out CheckRun
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/check-runs", owner, repo), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCheckRun replaces the output of an existing check run. Annotations
// sent in an update are appended to the ones already on the run.
func (c *Client) UpdateCheckRun(ctx context.Context, owner, repo string, id int64, req UpdateCheckRun) (*CheckRun, error) {
	var out CheckRun
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/%s/check-runs/%d", owner, repo, id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return newAPIError(method, path, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Repo binds a client to one repository.
type Repo struct {
	client *Client
	Owner  string
	Name   string
}

// Repo returns a handle on owner/name.
func (c *Client) Repo(owner, name string) *Repo {
	return &Repo{client: c, Owner: owner, Name: name}
}

// CreateCheckRun creates a check run on the bound repository.
func (r *Repo) CreateCheckRun(ctx context.Context, req CreateCheckRun) (*CheckRun, error) {
	return r.client.CreateCheckRun(ctx, r.Owner, r.Name, req)
}

// UpdateCheckRun updates a check run on the bound repository.
func (r *Repo) UpdateCheckRun(ctx context.Context, id int64, out Output) (*CheckRun, error) {
	return r.client.UpdateCheckRun(ctx, r.Owner, r.Name, id, UpdateCheckRun{Output: &out})
}
