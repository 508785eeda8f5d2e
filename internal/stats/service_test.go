package stats

import (
	"context"
	"testing"
	"time"

	"github.com/jatinbuilds/trio/backend/go-services/internal/providers"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/github"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/leetcode"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/linkedin"
	"github.com/stretchr/testify/require"
)

type fakeGitHub struct {
	stats *github.Stats
	err   error
	calls int
}

func (f *fakeGitHub) Stats(ctx context.Context) (*github.Stats, error) {
	f.calls++
	return f.stats, f.err
}

type fakeLeetCode struct {
	stats    *leetcode.Stats
	err      error
	username string
}

func (f *fakeLeetCode) Stats(ctx context.Context) (*leetcode.Stats, error) { return f.stats, f.err }
func (f *fakeLeetCode) Username() string                                   { return f.username }

type fakeLinkedIn struct {
	profile *linkedin.Profile
	err     error
}

func (f *fakeLinkedIn) Profile(ctx context.Context) (*linkedin.Profile, error) {
	return f.profile, f.err
}

func newTestService(gh *fakeGitHub, lc *fakeLeetCode, li *fakeLinkedIn) *Service {
	if gh == nil {
		gh = &fakeGitHub{err: providers.ErrNotConfigured}
	}
	if lc == nil {
		lc = &fakeLeetCode{err: providers.ErrNotConfigured}
	}
	if li == nil {
		li = &fakeLinkedIn{err: providers.ErrNotConfigured}
	}
	return NewService(gh, lc, li, NewMemoryCache(), time.Hour)
}

func TestGitHub_NotConfiguredServesDemo(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	d := svc.GitHub(context.Background())
	require.True(t, d.IsDemo)
	require.Equal(t, 120, d.TotalStars)
	require.Equal(t, 45, d.TotalForks)
	require.Equal(t, "demo-user", d.User.Login)

	// idempotent: same demo payload on every call
	again := svc.GitHub(context.Background())
	require.Equal(t, d, again)
}

func TestGitHub_LivePayloadAndCache(t *testing.T) {
	gh := &fakeGitHub{stats: &github.Stats{
		User:       &github.Profile{Login: "octo", PublicRepos: 2, Followers: 9},
		Repos:      []github.Repo{{Name: "one", StargazersCount: 7}},
		TotalStars: 7,
		TotalForks: 3,
		Languages:  map[string]int64{"Go": 100},
	}}
	svc := newTestService(gh, nil, nil)

	d := svc.GitHub(context.Background())
	require.False(t, d.IsDemo)
	require.Equal(t, 7, d.TotalStars)
	require.Equal(t, "octo", d.User.Login)

	// second call is served from cache, not the client
	_ = svc.GitHub(context.Background())
	require.Equal(t, 1, gh.calls)
}

func TestGitHub_DemoNotCached(t *testing.T) {
	gh := &fakeGitHub{err: &providers.UpstreamError{Provider: "github", Status: 502}}
	svc := newTestService(gh, nil, nil)

	d := svc.GitHub(context.Background())
	require.True(t, d.IsDemo)

	// provider recovers; next call fetches live instead of a cached demo
	gh.err = nil
	gh.stats = &github.Stats{User: &github.Profile{Login: "octo"}, Languages: map[string]int64{}}
	d = svc.GitHub(context.Background())
	require.False(t, d.IsDemo)
	require.Equal(t, 2, gh.calls)
}

func TestGitHub_DisplayTruncatesRepos(t *testing.T) {
	repos := make([]github.Repo, 10)
	for i := range repos {
		repos[i] = github.Repo{ID: int64(i), StargazersCount: 1}
	}
	gh := &fakeGitHub{stats: &github.Stats{User: &github.Profile{Login: "octo", PublicRepos: 10}, Repos: repos, TotalStars: 10}}
	svc := newTestService(gh, nil, nil)

	d := svc.GitHub(context.Background())
	require.Len(t, d.Repos, 6)
	// totals still cover the full list
	require.Equal(t, 10, d.TotalStars)
	require.Equal(t, 10, d.TotalRepos)
}

func TestLeetCode_DemoPayload(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	d := svc.LeetCode(context.Background())
	require.True(t, d.IsDemo)
	require.Equal(t, 150, d.SolvedCount)
	require.Equal(t, leetcode.Breakdown{Easy: 80, Medium: 60, Hard: 10}, d.DifficultyBreakdown)
}

func TestLeetCode_Live(t *testing.T) {
	lc := &fakeLeetCode{
		username: "crafter",
		stats:    &leetcode.Stats{TotalSolved: 321, EasySolved: 150, MediumSolved: 140, HardSolved: 31, Ranking: 42},
	}
	svc := newTestService(nil, lc, nil)
	d := svc.LeetCode(context.Background())
	require.False(t, d.IsDemo)
	require.Equal(t, "crafter", d.Username)
	require.Equal(t, 321, d.SolvedCount)
	require.Equal(t, 42, d.Ranking)
}

func TestLinkedIn_LiveKeepsEstimatedCounts(t *testing.T) {
	li := &fakeLinkedIn{profile: &linkedin.Profile{
		ID:         "x",
		FirstName:  linkedin.LocalizedString{Localized: map[string]string{"en_US": "Jatin"}},
		LastName:   linkedin.LocalizedString{Localized: map[string]string{"en_US": "Prakash"}},
		VanityName: "jatin-prakash",
	}}
	svc := newTestService(nil, nil, li)
	d := svc.LinkedIn(context.Background())
	require.False(t, d.IsDemo)
	require.True(t, d.IsOfficial)
	require.Equal(t, "Jatin", d.FirstName)
	// the v2 API has no counts; the estimated ones fill in
	require.Equal(t, 500, d.Connections)
	require.Equal(t, 1200, d.Followers)
}

func TestLinkedIn_Fallback(t *testing.T) {
	svc := newTestService(nil, nil, &fakeLinkedIn{err: &providers.UpstreamError{Provider: "linkedin", Status: 401}})
	d := svc.LinkedIn(context.Background())
	require.True(t, d.IsDemo)
	require.False(t, d.IsOfficial)
	require.Equal(t, "Demo", d.FirstName)
}
