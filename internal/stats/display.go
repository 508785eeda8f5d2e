package stats

import (
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/github"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/leetcode"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/linkedin"
)

// Display payloads are what the stats endpoints return: live data or demo
// data, always renderable, with IsDemo true iff the values did not come from
// a live upstream call.

type GitHubUserSummary struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

type GitHubDisplay struct {
	User       GitHubUserSummary `json:"user"`
	Repos      []github.Repo     `json:"repos"`
	TotalStars int               `json:"totalStars"`
	TotalForks int               `json:"totalForks"`
	Languages  map[string]int64  `json:"languages"`
	TotalRepos int               `json:"totalRepos"`
	IsDemo     bool              `json:"isDemo"`
}

type LeetCodeDisplay struct {
	Username            string             `json:"username"`
	SolvedCount         int                `json:"solvedCount"`
	DifficultyBreakdown leetcode.Breakdown `json:"difficultyBreakdown"`
	Ranking             int                `json:"ranking,omitempty"`
	ContributionPoints  int                `json:"contributionPoints,omitempty"`
	Reputation          int                `json:"reputation,omitempty"`
	TotalQuestions      int                `json:"totalQuestions,omitempty"`
	IsDemo              bool               `json:"isDemo"`
}

type LinkedInDisplay struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Headline    string `json:"headline"`
	Location    string `json:"location,omitempty"`
	Connections int    `json:"connections"`
	Followers   int    `json:"followers"`
	ProfileURL  string `json:"profileUrl"`
	IsOfficial  bool   `json:"isOfficial"`
	IsDemo      bool   `json:"isDemo"`
}

// maxDisplayRepos limits the repos echoed to the UI; totals still cover the
// full list.
const maxDisplayRepos = 6

// toGitHubDisplay is the pure live-to-display mapping, unit-testable without
// network access.
func toGitHubDisplay(s *github.Stats) *GitHubDisplay {
	repos := s.Repos
	if len(repos) > maxDisplayRepos {
		repos = repos[:maxDisplayRepos]
	}
	return &GitHubDisplay{
		User: GitHubUserSummary{
			Login:       s.User.Login,
			AvatarURL:   s.User.AvatarURL,
			Name:        s.User.Name,
			Bio:         s.User.Bio,
			PublicRepos: s.User.PublicRepos,
			Followers:   s.User.Followers,
			Following:   s.User.Following,
		},
		Repos:      repos,
		TotalStars: s.TotalStars,
		TotalForks: s.TotalForks,
		Languages:  s.Languages,
		TotalRepos: s.User.PublicRepos,
		IsDemo:     false,
	}
}

func toLeetCodeDisplay(username string, s *leetcode.Stats) *LeetCodeDisplay {
	return &LeetCodeDisplay{
		Username:            username,
		SolvedCount:         s.TotalSolved,
		DifficultyBreakdown: s.DifficultyBreakdown(),
		Ranking:             s.Ranking,
		ContributionPoints:  s.ContributionPoint,
		Reputation:          s.Reputation,
		TotalQuestions:      s.TotalQuestions,
		IsDemo:              false,
	}
}

func toLinkedInDisplay(p *linkedin.Profile) *LinkedInDisplay {
	headline := ""
	if p.Headline != nil {
		headline = p.Headline.Value()
	}
	return &LinkedInDisplay{
		FirstName:  p.FirstName.Value(),
		LastName:   p.LastName.Value(),
		Headline:   headline,
		ProfileURL: p.ProfileURL(),
		IsOfficial: true,
		IsDemo:     false,
	}
}
