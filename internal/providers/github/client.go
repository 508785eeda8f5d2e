// Package github fetches profile statistics from the GitHub REST API.
// Authentication is optional: with a token requests go through an oauth2
// client, without one they hit the public unauthenticated rate limit.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers"
	"golang.org/x/oauth2"
)

const userAgent = "trio-portfolio-backend"

// Profile is the subset of the GitHub user payload the portfolio renders.
type Profile struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	HTMLURL         string `json:"html_url"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	Owner           struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type Client struct {
	base     string
	username string
	httpc    *http.Client
}

// NewClient builds a client from provider config. A zero timeout falls back
// to 10 seconds so a slow upstream trips the demo path instead of hanging
// the page.
func NewClient(cfg config.GitHubConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		hc = oauth2.NewClient(context.Background(), src)
		hc.Timeout = timeout
	}
	return &Client{base: cfg.APIBaseURL, username: cfg.Username, httpc: hc}
}

// get issues one API call and returns the raw body for schema validation.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &providers.UpstreamError{Provider: "github", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &providers.UpstreamError{Provider: "github", Status: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// User fetches the configured user's profile.
func (c *Client) User(ctx context.Context) (*Profile, error) {
	if c.username == "" {
		return nil, providers.ErrNotConfigured
	}
	raw, err := c.get(ctx, "/users/"+c.username)
	if err != nil {
		return nil, err
	}
	if err := providers.ValidateJSON("github", raw, profileSchema); err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &providers.SchemaError{Provider: "github", Causes: []string{err.Error()}}
	}
	return &p, nil
}

// Repos fetches the user's repositories (most recently updated first).
func (c *Client) Repos(ctx context.Context) ([]Repo, error) {
	if c.username == "" {
		return nil, providers.ErrNotConfigured
	}
	raw, err := c.get(ctx, fmt.Sprintf("/users/%s/repos?sort=updated&per_page=100", c.username))
	if err != nil {
		return nil, err
	}
	if err := providers.ValidateJSON("github", raw, repoListSchema); err != nil {
		return nil, err
	}
	var rs []Repo
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, &providers.SchemaError{Provider: "github", Causes: []string{err.Error()}}
	}
	return rs, nil
}

// Languages fetches per-language byte counts for one repository. No schema
// here: the payload is a flat string-to-int map and the decoder is the check.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	raw, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, repo))
	if err != nil {
		return nil, err
	}
	var langs map[string]int64
	if err := json.Unmarshal(raw, &langs); err != nil {
		return nil, &providers.SchemaError{Provider: "github", Causes: []string{err.Error()}}
	}
	return langs, nil
}
