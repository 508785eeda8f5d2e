// Package leetcode fetches solve counts from the public LeetCode stats
// mirror. No authentication is involved; an unset (or placeholder) username
// simply means the provider is not configured.
package leetcode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers"
)

// Stats is the validated subset of the mirror's payload.
type Stats struct {
	TotalSolved       int `json:"totalSolved"`
	TotalQuestions    int `json:"totalQuestions"`
	EasySolved        int `json:"easySolved"`
	MediumSolved      int `json:"mediumSolved"`
	HardSolved        int `json:"hardSolved"`
	Ranking           int `json:"ranking"`
	ContributionPoint int `json:"contributionPoint"`
	Reputation        int `json:"reputation"`
}

// Breakdown groups solved counts by difficulty.
type Breakdown struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

func (s *Stats) DifficultyBreakdown() Breakdown {
	return Breakdown{Easy: s.EasySolved, Medium: s.MediumSolved, Hard: s.HardSolved}
}

const statsSchema = `{
  "type": "object",
  "required": ["totalSolved", "easySolved", "mediumSolved", "hardSolved", "totalQuestions", "ranking"],
  "properties": {
    "totalSolved": {"type": "integer"},
    "totalQuestions": {"type": "integer"},
    "easySolved": {"type": "integer"},
    "mediumSolved": {"type": "integer"},
    "hardSolved": {"type": "integer"},
    "ranking": {"type": "integer"},
    "contributionPoint": {"type": "integer"},
    "reputation": {"type": "integer"}
  }
}`

type Client struct {
	base     string
	username string
	httpc    *http.Client
}

func NewClient(cfg config.LeetCodeConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	username := cfg.Username
	if !cfg.Configured() {
		username = ""
	}
	return &Client{base: cfg.APIBaseURL, username: username, httpc: &http.Client{Timeout: timeout}}
}

// Username returns the configured handle ("" when unset).
func (c *Client) Username() string { return c.username }

// Stats fetches and validates the user's solve statistics.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	if c.username == "" {
		return nil, providers.ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/"+c.username, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "trio-portfolio-backend")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &providers.UpstreamError{Provider: "leetcode", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &providers.UpstreamError{Provider: "leetcode", Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.UpstreamError{Provider: "leetcode", Err: err}
	}
	if err := providers.ValidateJSON("leetcode", raw, statsSchema); err != nil {
		return nil, err
	}
	var s Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &providers.SchemaError{Provider: "leetcode", Causes: []string{err.Error()}}
	}
	return &s, nil
}
