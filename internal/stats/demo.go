package stats

import (
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/github"
	"github.com/jatinbuilds/trio/backend/go-services/internal/providers/leetcode"
)

// Fixed demo payloads served whenever a live fetch is impossible. Values are
// stable so UI widgets always have plausible non-empty content, and repeated
// calls produce byte-identical responses.

func demoGitHub() *GitHubDisplay {
	return &GitHubDisplay{
		User: GitHubUserSummary{
			Login:       "demo-user",
			AvatarURL:   "https://github.com/identicons/demo-user.png",
			Name:        "Demo User",
			Bio:         "Full-stack developer passionate about open source",
			PublicRepos: 25,
			Followers:   150,
			Following:   100,
		},
		Repos:      []github.Repo{},
		TotalStars: 120,
		TotalForks: 45,
		Languages: map[string]int64{
			"TypeScript": 35000,
			"JavaScript": 28000,
			"Python":     15000,
			"Go":         8000,
		},
		TotalRepos: 25,
		IsDemo:     true,
	}
}

func demoLeetCode() *LeetCodeDisplay {
	return &LeetCodeDisplay{
		Username:            "demo-user",
		SolvedCount:         150,
		DifficultyBreakdown: leetcode.Breakdown{Easy: 80, Medium: 60, Hard: 10},
		IsDemo:              true,
	}
}

func demoLinkedIn() *LinkedInDisplay {
	return &LinkedInDisplay{
		FirstName:   "Demo",
		LastName:    "User",
		Headline:    "Full Stack Developer",
		Location:    "India",
		Connections: 500,
		Followers:   1200,
		ProfileURL:  "https://linkedin.com/in/demo-user",
		IsOfficial:  false,
		IsDemo:      true,
	}
}
