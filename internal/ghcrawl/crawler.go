package ghcrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
)

// statsRetryDelay is the fixed wait before re-requesting statistics that
// GitHub answered with 202.
const statsRetryDelay = 3 * time.Second

// Crawler fetches repository and user resources from the GitHub REST API.
// Every call goes through the Fetcher's retry policy.
type Crawler struct {
	client  *github.Client
	fetcher *Fetcher
}

// Option configures a Crawler.
type Option func(*crawlerOptions)

type crawlerOptions struct {
	policy  Policy
	sleep   Sleeper
	baseURL string
}

// WithPolicy overrides the default retry policy.
func WithPolicy(p Policy) Option {
	return func(o *crawlerOptions) { o.policy = p }
}

// WithSleeper replaces the sleeper used for retry waits and throttling.
func WithSleeper(s Sleeper) Option {
	return func(o *crawlerOptions) { o.sleep = s }
}

// WithBaseURL points the crawler at a different API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(o *crawlerOptions) { o.baseURL = u }
}

// NewCrawler returns a Crawler authenticated with token. An empty token
// makes unauthenticated requests.
func NewCrawler(token string, opts ...Option) (*Crawler, error) {
	o := crawlerOptions{policy: DefaultPolicy()}
	for _, opt := range opts {
		opt(&o)
	}

	client := newGitHubClient(token)
	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parsing github base url: %w", err)
		}
		client.BaseURL = u
	}
	return &Crawler{
		client:  client,
		fetcher: NewFetcher(o.policy, o.sleep),
	}, nil
}

// Fetcher exposes the crawler's retry engine.
func (c *Crawler) Fetcher() *Fetcher { return c.fetcher }

// Repo fetches repository metadata.
func (c *Crawler) Repo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	r, err := fetch(ctx, c.fetcher, "repo", func(ctx context.Context) (*github.Repository, *github.Response, error) {
		return c.client.Repositories.Get(ctx, owner, repo)
	})
	if err != nil {
		return nil, err
	}
	info := &RepoInfo{
		Owner:       owner,
		Name:        repo,
		FullName:    r.GetFullName(),
		Description: r.GetDescription(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		Size:        r.GetSize(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
		Language:    r.GetLanguage(),
		Topics:      topics(r.Topics),
		URL:         r.GetHTMLURL(),
	}
	if r.GetLicense() != nil {
		info.License = r.GetLicense().GetName()
	}
	return info, nil
}

// Languages returns bytes of code per language.
func (c *Crawler) Languages(ctx context.Context, owner, repo string) (map[string]int, error) {
	return fetch(ctx, c.fetcher, "languages", func(ctx context.Context) (map[string]int, *github.Response, error) {
		return c.client.Repositories.ListLanguages(ctx, owner, repo)
	})
}

// CommitActivity returns the last year of weekly commit totals. When GitHub
// is still computing the statistics it waits once and asks again.
func (c *Crawler) CommitActivity(ctx context.Context, owner, repo string) ([]WeekActivity, error) {
	call := func(ctx context.Context) ([]*github.WeeklyCommitActivity, *github.Response, error) {
		return c.client.Repositories.ListCommitActivity(ctx, owner, repo)
	}
	weeks, err := fetch(ctx, c.fetcher, "commit_activity", call)
	if errors.Is(err, ErrPending) {
		slog.Debug("commit activity is being computed, retrying once", "repo", owner+"/"+repo, "wait", statsRetryDelay)
		if err := c.fetcher.Sleep(ctx, statsRetryDelay); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		weeks, err = fetch(ctx, c.fetcher, "commit_activity", call)
	}
	if err != nil {
		return nil, err
	}

	result := make([]WeekActivity, 0, len(weeks))
	for _, w := range weeks {
		result = append(result, WeekActivity{
			Week:  w.GetWeek().Time,
			Total: w.GetTotal(),
			Days:  w.Days,
		})
	}
	return result, nil
}

// Contributors returns the first page of repository contributors.
func (c *Crawler) Contributors(ctx context.Context, owner, repo string) ([]Contributor, error) {
	list, err := fetch(ctx, c.fetcher, "contributors", func(ctx context.Context) ([]*github.Contributor, *github.Response, error) {
		return c.client.Repositories.ListContributors(ctx, owner, repo, nil)
	})
	if err != nil {
		return nil, err
	}
	result := make([]Contributor, 0, len(list))
	for _, ct := range list {
		result = append(result, Contributor{
			Login:         ct.GetLogin(),
			Contributions: ct.GetContributions(),
		})
	}
	return result, nil
}

// Commits returns up to limit of the most recent commits.
func (c *Crawler) Commits(ctx context.Context, owner, repo string, limit int) ([]CommitData, error) {
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: limit}}
	list, err := fetch(ctx, c.fetcher, "commits", func(ctx context.Context) ([]*github.RepositoryCommit, *github.Response, error) {
		return c.client.Repositories.ListCommits(ctx, owner, repo, opts)
	})
	if err != nil {
		return nil, err
	}
	result := make([]CommitData, 0, len(list))
	for _, cm := range list {
		result = append(result, CommitData{
			SHA:     cm.GetSHA(),
			Message: cm.GetCommit().GetMessage(),
			Date:    cm.GetCommit().GetAuthor().GetDate().Time,
		})
	}
	return result, nil
}

// Readme returns the decoded README text.
func (c *Crawler) Readme(ctx context.Context, owner, repo string) (string, error) {
	rc, err := fetch(ctx, c.fetcher, "readme", func(ctx context.Context) (*github.RepositoryContent, *github.Response, error) {
		return c.client.Repositories.GetReadme(ctx, owner, repo, nil)
	})
	if err != nil {
		return "", err
	}
	content, err := rc.GetContent()
	if err != nil {
		return "", fmt.Errorf("%w: readme: %w", ErrUndecodable, err)
	}
	return content, nil
}

// Issues returns up to limit issues in any state. The list includes pull
// requests, flagged by IsPullRequest.
func (c *Crawler) Issues(ctx context.Context, owner, repo string, limit int) ([]IssueData, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	list, err := fetch(ctx, c.fetcher, "issues", func(ctx context.Context) ([]*github.Issue, *github.Response, error) {
		return c.client.Issues.ListByRepo(ctx, owner, repo, opts)
	})
	if err != nil {
		return nil, err
	}
	result := make([]IssueData, 0, len(list))
	for _, is := range list {
		id := IssueData{
			Number:        is.GetNumber(),
			Title:         is.GetTitle(),
			Body:          is.GetBody(),
			State:         is.GetState(),
			CreatedAt:     is.GetCreatedAt().Time,
			IsPullRequest: is.IsPullRequest(),
		}
		for _, lbl := range is.Labels {
			id.Labels = append(id.Labels, lbl.GetName())
		}
		if is.ClosedAt != nil {
			t := is.GetClosedAt().Time
			id.ClosedAt = &t
		}
		result = append(result, id)
	}
	return result, nil
}

// PullRequests returns up to limit pull requests in any state.
func (c *Crawler) PullRequests(ctx context.Context, owner, repo string, limit int) ([]PullRequestData, error) {
	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	list, err := fetch(ctx, c.fetcher, "pulls", func(ctx context.Context) ([]*github.PullRequest, *github.Response, error) {
		return c.client.PullRequests.List(ctx, owner, repo, opts)
	})
	if err != nil {
		return nil, err
	}
	result := make([]PullRequestData, 0, len(list))
	for _, pr := range list {
		result = append(result, PullRequestData{
			Number:    pr.GetNumber(),
			Title:     pr.GetTitle(),
			State:     pr.GetState(),
			CreatedAt: pr.GetCreatedAt().Time,
		})
	}
	return result, nil
}

// PullComments returns the line-level review comments of a pull request.
func (c *Crawler) PullComments(ctx context.Context, owner, repo string, number int) ([]ReviewComment, error) {
	list, err := fetch(ctx, c.fetcher, "pull_comments", func(ctx context.Context) ([]*github.PullRequestComment, *github.Response, error) {
		return c.client.PullRequests.ListComments(ctx, owner, repo, number, nil)
	})
	if err != nil {
		return nil, err
	}
	result := make([]ReviewComment, 0, len(list))
	for _, cm := range list {
		result = append(result, ReviewComment{Body: cm.GetBody(), Path: cm.GetPath()})
	}
	return result, nil
}

// PullReviews returns the submitted reviews of a pull request.
func (c *Crawler) PullReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	list, err := fetch(ctx, c.fetcher, "pull_reviews", func(ctx context.Context) ([]*github.PullRequestReview, *github.Response, error) {
		return c.client.PullRequests.ListReviews(ctx, owner, repo, number, nil)
	})
	if err != nil {
		return nil, err
	}
	result := make([]Review, 0, len(list))
	for _, rv := range list {
		result = append(result, Review{State: rv.GetState(), Body: rv.GetBody()})
	}
	return result, nil
}

// UserEvents returns up to limit of a user's most recent events.
func (c *Crawler) UserEvents(ctx context.Context, username string, limit int) ([]EventData, error) {
	opts := &github.ListOptions{PerPage: limit}
	list, err := fetch(ctx, c.fetcher, "events", func(ctx context.Context) ([]*github.Event, *github.Response, error) {
		return c.client.Activity.ListEventsPerformedByUser(ctx, username, false, opts)
	})
	if err != nil {
		return nil, err
	}
	result := make([]EventData, 0, len(list))
	for _, ev := range list {
		result = append(result, EventData{
			Type:      ev.GetType(),
			Repo:      ev.GetRepo().GetName(),
			CreatedAt: ev.GetCreatedAt().Time,
		})
	}
	return result, nil
}

// User fetches the public profile of username.
func (c *Crawler) User(ctx context.Context, username string) (*UserProfile, error) {
	u, err := fetch(ctx, c.fetcher, "user", func(ctx context.Context) (*github.User, *github.Response, error) {
		return c.client.Users.Get(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	return &UserProfile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		Bio:         u.GetBio(),
		Company:     u.GetCompany(),
		Location:    u.GetLocation(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
		URL:         u.GetHTMLURL(),
	}, nil
}

// UserRepos returns up to limit of username's repositories, most recently
// updated first. A single page is read, so limit is capped at 100.
func (c *Crawler) UserRepos(ctx context.Context, username string, limit int) ([]UserRepo, error) {
	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: min(limit, 100)},
	}
	list, err := fetch(ctx, c.fetcher, "user_repos", func(ctx context.Context) ([]*github.Repository, *github.Response, error) {
		return c.client.Repositories.ListByUser(ctx, username, opts)
	})
	if err != nil {
		return nil, err
	}
	result := make([]UserRepo, 0, len(list))
	for _, r := range list {
		result = append(result, UserRepo{
			Name:        r.GetName(),
			FullName:    r.GetFullName(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			Fork:        r.GetFork(),
			UpdatedAt:   r.GetUpdatedAt().Time,
			URL:         r.GetHTMLURL(),
		})
	}
	return result[:min(len(result), limit)], nil
}

// FileContent returns the decoded content of a file in the default branch.
func (c *Crawler) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	fc, err := fetch(ctx, c.fetcher, "contents", func(ctx context.Context) (*github.RepositoryContent, *github.Response, error) {
		file, _, resp, err := c.client.Repositories.GetContents(ctx, owner, repo, path, nil)
		return file, resp, err
	})
	if err != nil {
		return "", err
	}
	if fc == nil {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}
	content, err := fc.GetContent()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUndecodable, path, err)
	}
	return content, nil
}

func topics(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}
