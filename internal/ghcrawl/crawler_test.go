package ghcrawl

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_Repo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/lens", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"full_name": "octo/lens",
			"description": "a lens",
			"stargazers_count": 120,
			"forks_count": 7,
			"size": 2048,
			"language": "Go",
			"topics": ["cli", "github"],
			"license": {"name": "MIT License"},
			"html_url": "https://github.com/octo/lens",
			"created_at": "2023-01-02T00:00:00Z",
			"updated_at": "2024-05-06T00:00:00Z"
		}`)
	})
	c, _ := newTestCrawler(t, mux)

	info, err := c.Repo(context.Background(), "octo", "lens")
	require.NoError(t, err)
	assert.Equal(t, "octo", info.Owner)
	assert.Equal(t, "lens", info.Name)
	assert.Equal(t, "octo/lens", info.FullName)
	assert.Equal(t, 120, info.Stars)
	assert.Equal(t, 7, info.Forks)
	assert.Equal(t, "Go", info.Language)
	assert.Equal(t, []string{"cli", "github"}, info.Topics)
	assert.Equal(t, "MIT License", info.License)
	assert.Equal(t, 2023, info.CreatedAt.Year())
}

func TestCrawler_CommitActivityRetriesOnceWhenPending(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/stats/commit_activity", func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		fmt.Fprint(w, `[{"week": 1700000000, "total": 4, "days": [0,1,1,0,2,0,0]}]`)
	})
	c, rec := newTestCrawler(t, mux)

	weeks, err := c.CommitActivity(context.Background(), "o", "r")
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	assert.Equal(t, 4, weeks[0].Total)
	assert.Equal(t, []int{0, 1, 1, 0, 2, 0, 0}, weeks[0].Days)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, []time.Duration{statsRetryDelay}, rec.recorded())
}

func TestCrawler_CommitActivityStillPending(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/stats/commit_activity", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusAccepted)
	})
	c, _ := newTestCrawler(t, mux)

	weeks, err := c.CommitActivity(context.Background(), "o", "r")
	require.ErrorIs(t, err, ErrPending)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, weeks)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCrawler_Readme(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/readme", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"type": "file", "encoding": "base64", "content": "IyBIZWxsbwoKV29ybGQ="}`)
	})
	c, _ := newTestCrawler(t, mux)

	text, err := c.Readme(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n\nWorld", text)
}

func TestCrawler_MissingReadmeIsUnavailable(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/readme", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	c, _ := newTestCrawler(t, mux)

	text, err := c.Readme(context.Background(), "o", "r")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, text)
	assert.Equal(t, int32(3), hits.Load())
}

func TestCrawler_IssuesFlagPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("state"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{"number": 1, "title": "crash on start", "state": "closed",
			 "labels": [{"name": "bug"}],
			 "created_at": "2024-01-01T00:00:00Z", "closed_at": "2024-01-03T00:00:00Z"},
			{"number": 2, "title": "add flag", "state": "open",
			 "created_at": "2024-02-01T00:00:00Z",
			 "pull_request": {"url": "https://api.github.com/repos/o/r/pulls/2"}}
		]`)
	})
	c, _ := newTestCrawler(t, mux)

	issues, err := c.Issues(context.Background(), "o", "r", 50)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, []string{"bug"}, issues[0].Labels)
	assert.False(t, issues[0].IsPullRequest)
	require.NotNil(t, issues[0].ClosedAt)
	assert.Equal(t, 48*time.Hour, issues[0].ClosedAt.Sub(issues[0].CreatedAt))

	assert.True(t, issues[1].IsPullRequest)
	assert.Nil(t, issues[1].ClosedAt)
}

func TestCrawler_PullCommentsAndReviews(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/pulls/9/comments", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"body": "nit: rename", "path": "main.go"}]`)
	})
	mux.HandleFunc("/repos/o/r/pulls/9/reviews", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"state": "APPROVED", "body": "lgtm"}, {"state": "CHANGES_REQUESTED"}]`)
	})
	c, _ := newTestCrawler(t, mux)

	comments, err := c.PullComments(context.Background(), "o", "r", 9)
	require.NoError(t, err)
	assert.Equal(t, []ReviewComment{{Body: "nit: rename", Path: "main.go"}}, comments)

	reviews, err := c.PullReviews(context.Background(), "o", "r", 9)
	require.NoError(t, err)
	assert.Equal(t, []Review{{State: "APPROVED", Body: "lgtm"}, {State: "CHANGES_REQUESTED"}}, reviews)
}

func TestCrawler_UserEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo/events", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[
			{"type": "PushEvent", "repo": {"name": "octo/lens"}, "created_at": "2024-03-01T00:00:00Z"},
			{"type": "IssuesEvent", "repo": {"name": "acme/tool"}, "created_at": "2024-03-02T00:00:00Z"}
		]`)
	})
	c, _ := newTestCrawler(t, mux)

	events, err := c.UserEvents(context.Background(), "octo", 100)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "PushEvent", events[0].Type)
	assert.Equal(t, "acme/tool", events[1].Repo)
}

func TestCrawler_FileContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/contents/go.mod", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"type": "file", "encoding": "base64", "content": "bW9kdWxlIHgK"}`)
	})
	c, _ := newTestCrawler(t, mux)

	content, err := c.FileContent(context.Background(), "o", "r", "go.mod")
	require.NoError(t, err)
	assert.Equal(t, "module x\n", content)
}

func TestCrawler_FileContentBadEncoding(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r/contents/requirements.txt", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"type": "file", "encoding": "base64", "content": "!!not base64!!"}`)
	})
	c, _ := newTestCrawler(t, mux)

	_, err := c.FileContent(context.Background(), "o", "r", "requirements.txt")
	require.ErrorIs(t, err, ErrUndecodable)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCrawler_RepoWithoutTopics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/o/r", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"full_name": "o/r"}`)
	})
	c, _ := newTestCrawler(t, mux)

	info, err := c.Repo(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.NotNil(t, info.Topics)
	assert.Empty(t, info.Topics)
}

func TestCrawler_User(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"login": "octo",
			"name": "Octo Cat",
			"bio": "builds tools",
			"public_repos": 42,
			"followers": 150,
			"following": 3,
			"created_at": "2015-06-01T00:00:00Z",
			"html_url": "https://github.com/octo"
		}`)
	})
	c, _ := newTestCrawler(t, mux)

	u, err := c.User(context.Background(), "octo")
	require.NoError(t, err)
	assert.Equal(t, "octo", u.Login)
	assert.Equal(t, "Octo Cat", u.Name)
	assert.Equal(t, 42, u.PublicRepos)
	assert.Equal(t, 150, u.Followers)
	assert.Equal(t, 2015, u.CreatedAt.Year())
}

func TestCrawler_UserRepos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octo/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `[
			{"name": "lens", "full_name": "octo/lens", "stargazers_count": 9, "forks_count": 2, "updated_at": "2024-01-01T00:00:00Z"},
			{"name": "fork", "full_name": "octo/fork", "fork": true},
			{"name": "extra", "full_name": "octo/extra"}
		]`)
	})
	c, _ := newTestCrawler(t, mux)

	repos, err := c.UserRepos(context.Background(), "octo", 2)
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "lens", repos[0].Name)
	assert.Equal(t, 9, repos[0].Stars)
	assert.Equal(t, 2, repos[0].Forks)
	assert.True(t, repos[1].Fork)
}
