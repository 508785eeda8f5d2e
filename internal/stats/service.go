package stats

import (
	"context"
	"errors"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/providers"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/github"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/leetcode"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/linkedin"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/logger"
	"github.com/jatinbuilds/trio/backend/go-services/pkg/metrics"
)

// Source interfaces keep the service testable without real clients.
type GitHubSource interface {
	Stats(ctx context.Context) (*github.Stats, error)
}

type LeetCodeSource interface {
	Stats(ctx context.Context) (*leetcode.Stats, error)
	Username() string
}

type LinkedInSource interface {
	Profile(ctx context.Context) (*linkedin.Profile, error)
}

// Service applies the two-stage pipeline per provider: try a live fetch,
// then map the outcome into a display payload. Any failure (missing
// configuration, schema mismatch, timeout, upstream error) degrades to the
// provider's demo payload, so callers always get something to render and
// never an error.
type Service struct {
	github   GitHubSource
	leetcode LeetCodeSource
	linkedin LinkedInSource
	cache    Cache
	ttl      time.Duration
}

func NewService(gh GitHubSource, lc LeetCodeSource, li LinkedInSource, cache Cache, ttl time.Duration) *Service {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{github: gh, leetcode: lc, linkedin: li, cache: cache, ttl: ttl}
}

// outcome buckets errors for metrics and logs.
func outcome(err error) string {
	switch {
	case errors.Is(err, providers.ErrNotConfigured):
		return "not_configured"
	case providers.IsSchemaError(err):
		return "invalid_schema"
	default:
		return "upstream_error"
	}
}

func recordFallback(provider string, err error) {
	metrics.ProviderFetches.WithLabelValues(provider, outcome(err)).Inc()
	metrics.DemoFallbacks.WithLabelValues(provider).Inc()
	if errors.Is(err, providers.ErrNotConfigured) {
		logger.Debugf("stats: %s not configured, serving demo data", provider)
		return
	}
	logger.Warnf("stats: %s live fetch failed, serving demo data: %v", provider, err)
}

// GitHub returns the cached or live GitHub display payload, degrading to the
// fixed demo payload on any failure. Demo payloads are never cached: the
// provider may become configured at any time.
func (s *Service) GitHub(ctx context.Context) *GitHubDisplay {
	var cached GitHubDisplay
	if ok, err := s.cache.Get(ctx, "github", &cached); err == nil && ok {
		metrics.ProviderFetches.WithLabelValues("github", "cache_hit").Inc()
		return &cached
	}

	st, err := s.github.Stats(ctx)
	if err != nil {
		recordFallback("github", err)
		return demoGitHub()
	}

	disp := toGitHubDisplay(st)
	if err := s.cache.Set(ctx, "github", disp, s.ttl); err != nil {
		logger.Warnf("stats: github cache write failed: %v", err)
	}
	metrics.ProviderFetches.WithLabelValues("github", "live").Inc()
	return disp
}

func (s *Service) LeetCode(ctx context.Context) *LeetCodeDisplay {
	var cached LeetCodeDisplay
	if ok, err := s.cache.Get(ctx, "leetcode", &cached); err == nil && ok {
		metrics.ProviderFetches.WithLabelValues("leetcode", "cache_hit").Inc()
		return &cached
	}

	st, err := s.leetcode.Stats(ctx)
	if err != nil {
		recordFallback("leetcode", err)
		return demoLeetCode()
	}

	disp := toLeetCodeDisplay(s.leetcode.Username(), st)
	if err := s.cache.Set(ctx, "leetcode", disp, s.ttl); err != nil {
		logger.Warnf("stats: leetcode cache write failed: %v", err)
	}
	metrics.ProviderFetches.WithLabelValues("leetcode", "live").Inc()
	return disp
}

// LinkedIn serves the official profile when a token is configured. The v2
// API exposes no connection/follower counts, so even live payloads carry
// the demo counts for those two fields.
func (s *Service) LinkedIn(ctx context.Context) *LinkedInDisplay {
	var cached LinkedInDisplay
	if ok, err := s.cache.Get(ctx, "linkedin", &cached); err == nil && ok {
		metrics.ProviderFetches.WithLabelValues("linkedin", "cache_hit").Inc()
		return &cached
	}

	p, err := s.linkedin.Profile(ctx)
	if err != nil {
		recordFallback("linkedin", err)
		return demoLinkedIn()
	}

	disp := toLinkedInDisplay(p)
	demo := demoLinkedIn()
	disp.Connections = demo.Connections
	disp.Followers = demo.Followers
	if err := s.cache.Set(ctx, "linkedin", disp, s.ttl); err != nil {
		logger.Warnf("stats: linkedin cache write failed: %v", err)
	}
	metrics.ProviderFetches.WithLabelValues("linkedin", "live").Inc()
	return disp
}
