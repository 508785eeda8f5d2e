// Package linkedin fetches the signed-in member profile from the official
// v2 API. LinkedIn exposes no follower/connection counts over this API, so
// only identity fields come back live; the stats service fills the counts
// from its demo policy.
package linkedin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/config"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers"
)

// LocalizedString is LinkedIn's locale-keyed string container.
type LocalizedString struct {
	Localized map[string]string `json:"localized"`
}

// Value prefers en_US and otherwise picks the lexically first locale, so the
// choice is deterministic across requests.
func (l LocalizedString) Value() string {
	if v, ok := l.Localized["en_US"]; ok {
		return v
	}
	keys := make([]string, 0, len(l.Localized))
	for k := range l.Localized {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return l.Localized[keys[0]]
}

type Profile struct {
	ID         string           `json:"id"`
	FirstName  LocalizedString  `json:"firstName"`
	LastName   LocalizedString  `json:"lastName"`
	Headline   *LocalizedString `json:"headline,omitempty"`
	VanityName string           `json:"vanityName,omitempty"`
}

// ProfileURL derives the public URL from the vanity name when present.
func (p *Profile) ProfileURL() string {
	if p.VanityName == "" {
		return ""
	}
	return "https://linkedin.com/in/" + p.VanityName
}

const profileSchema = `{
  "type": "object",
  "required": ["id", "firstName", "lastName"],
  "properties": {
    "id": {"type": "string"},
    "firstName": {
      "type": "object",
      "required": ["localized"],
      "properties": {"localized": {"type": "object"}}
    },
    "lastName": {
      "type": "object",
      "required": ["localized"],
      "properties": {"localized": {"type": "object"}}
    },
    "vanityName": {"type": "string"}
  }
}`

type Client struct {
	base  string
	token string
	httpc *http.Client
}

func NewClient(cfg config.LinkedInConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{base: cfg.APIBaseURL, token: cfg.AccessToken, httpc: &http.Client{Timeout: timeout}}
}

// Profile fetches /v2/me for the token's member.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	if c.token == "" {
		return nil, providers.ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v2/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RestLi-Protocol-Version", "2.0.0")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &providers.UpstreamError{Provider: "linkedin", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &providers.UpstreamError{Provider: "linkedin", Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.UpstreamError{Provider: "linkedin", Err: err}
	}
	if err := providers.ValidateJSON("linkedin", raw, profileSchema); err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &providers.SchemaError{Provider: "linkedin", Causes: []string{err.Error()}}
	}
	return &p, nil
}
