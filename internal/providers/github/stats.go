package github

import (
	"context"
	"sync"

	"github.com/jatinbuilds/trio/backend/go-services/pkg/logger"
)

// Stats is the aggregated view the portfolio widgets consume.
type Stats struct {
	User       *Profile         `json:"user"`
	Repos      []Repo           `json:"repos"`
	TotalStars int              `json:"totalStars"`
	TotalForks int              `json:"totalForks"`
	Languages  map[string]int64 `json:"languages"`
}

// Stats fetches the profile and repository list concurrently, then fans out
// one languages call per repository. A single repository's language fetch
// failing only omits that repo's contribution; it never aborts the
// aggregation. Star/fork totals are exact integer sums over every repo.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var (
		wg      sync.WaitGroup
		profile *Profile
		repos   []Repo
		perr    error
		rerr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		profile, perr = c.User(ctx)
	}()
	go func() {
		defer wg.Done()
		repos, rerr = c.Repos(ctx)
	}()
	wg.Wait()
	if perr != nil {
		return nil, perr
	}
	if rerr != nil {
		return nil, rerr
	}

	totalStars, totalForks := 0, 0
	for _, r := range repos {
		totalStars += r.StargazersCount
		totalForks += r.ForksCount
	}

	type langResult struct {
		langs map[string]int64
		err   error
	}
	results := make([]langResult, len(repos))
	wg.Add(len(repos))
	for i, r := range repos {
		go func(i int, r Repo) {
			defer wg.Done()
			langs, err := c.Languages(ctx, r.Owner.Login, r.Name)
			results[i] = langResult{langs: langs, err: err}
		}(i, r)
	}
	wg.Wait()

	languages := map[string]int64{}
	for i, res := range results {
		if res.err != nil {
			logger.Warnf("github: language fetch for %s failed, omitting: %v", repos[i].Name, res.err)
			continue
		}
		for lang, bytes := range res.langs {
			languages[lang] += bytes
		}
	}

	return &Stats{
		User:       profile,
		Repos:      repos,
		TotalStars: totalStars,
		TotalForks: totalForks,
		Languages:  languages,
	}, nil
}
