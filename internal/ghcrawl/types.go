package ghcrawl

import "time"

// RepoInfo holds repository metadata.
type RepoInfo struct {
	Owner       string    `json:"owner"`
	Name        string    `json:"repo"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Language    string    `json:"primary_language"`
	Topics      []string  `json:"topics"`
	License     string    `json:"license"`
	URL         string    `json:"url"`
}

// WeekActivity is one weekly bucket of the commit activity statistics.
type WeekActivity struct {
	Week  time.Time
	Total int
	Days  []int
}

// Contributor is a repository contributor and their commit count.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// CommitData holds a commit's identity and full message.
type CommitData struct {
	SHA     string
	Message string
	Date    time.Time
}

// IssueData holds an entry of the repository issue list. Pull requests
// appear in that list too and are flagged by IsPullRequest.
type IssueData struct {
	Number        int
	Title         string
	Body          string
	State         string
	Labels        []string
	CreatedAt     time.Time
	ClosedAt      *time.Time
	IsPullRequest bool
}

// PullRequestData holds pull request metadata.
type PullRequestData struct {
	Number    int
	Title     string
	State     string
	CreatedAt time.Time
}

// ReviewComment holds a single line-level PR review comment.
type ReviewComment struct {
	Body string
	Path string
}

// Review holds a submitted PR review.
type Review struct {
	State string
	Body  string
}

// EventData holds a single event from a user's activity timeline.
type EventData struct {
	Type      string
	Repo      string
	CreatedAt time.Time
}

// UserProfile is the public profile of a GitHub account.
type UserProfile struct {
	Login       string    `json:"username"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"account_created"`
	URL         string    `json:"url"`
}

// UserRepo is one entry of a user's repository listing.
type UserRepo struct {
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Fork        bool      `json:"fork"`
	UpdatedAt   time.Time `json:"updated_at"`
	URL         string    `json:"url"`
}
