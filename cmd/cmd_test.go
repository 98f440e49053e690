package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drpaneas/repolens/internal/analyzer"
	"github.com/drpaneas/repolens/internal/config"
	"github.com/drpaneas/repolens/internal/ghcrawl"
	"github.com/drpaneas/repolens/internal/report"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"GITHUB_TOKEN", "REPOLENS_GITHUB_TOKEN", "REPOLENS_PROVIDER", "REPOLENS_FORMAT", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseRepos(t *testing.T) {
	refs, err := parseRepos([]string{"octo/lens", "https://github.com/acme/tool"})
	require.NoError(t, err)
	assert.Equal(t, []repoRef{{"octo", "lens"}, {"acme", "tool"}}, refs)

	_, err = parseRepos([]string{"octo/lens", "nope"})
	assert.ErrorIs(t, err, ghcrawl.ErrBadLink)
}

func TestRoot_RequiresToken(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "analyze", "octo/lens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestRoot_HostedProviderRequiresKey(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	_, err := execute(t, "--provider", "openai", "modernize", "octo/lens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestRoot_ConfigFileAndFlags(t *testing.T) {
	isolateEnv(t)
	file := filepath.Join(t.TempDir(), "repolens.yaml")
	require.NoError(t, os.WriteFile(file, []byte("github-token: ghp_file\nprovider: none\nformat: json\n"), 0o644))

	// Setup succeeds, so the failure comes from the argument itself.
	_, err := execute(t, "--config", file, "analyze", "not-a-repo")
	assert.ErrorIs(t, err, ghcrawl.ErrBadLink)

	_, err = execute(t, "--config", file, "--format", "yaml", "analyze", "octo/lens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestRoot_ArgumentCounts(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("REPOLENS_PROVIDER", "none")

	_, err := execute(t, "analyze")
	assert.Error(t, err)
	_, err = execute(t, "modernize", "a/b", "c/d")
	assert.Error(t, err)
	_, err = execute(t, "serve", "extra")
	assert.Error(t, err)
	_, err = execute(t, "profile")
	assert.Error(t, err)
}

func TestProfile_BadLink(t *testing.T) {
	isolateEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("REPOLENS_PROVIDER", "none")

	_, err := execute(t, "profile", "https://gitlab.com/octo")
	assert.ErrorIs(t, err, ghcrawl.ErrBadLink)
}

func testReports() []*analyzer.Report {
	return []*analyzer.Report{
		{RepoInfo: ghcrawl.RepoInfo{FullName: "octo/lens"}},
		{RepoInfo: ghcrawl.RepoInfo{FullName: "acme/tool"}},
	}
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, config.FormatJSON, nil, testReports()[:1]))
	var single map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &single))
	assert.Equal(t, "octo/lens", single["full_name"])

	buf.Reset()
	require.NoError(t, render(&buf, config.FormatJSON, nil, testReports()))
	var many []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &many))
	assert.Len(t, many, 2)
}

func TestRender_Markdown(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, render(&buf, config.FormatMarkdown, report.NewGenerator(dir), testReports()))

	assert.FileExists(t, filepath.Join(dir, "octo_lens_analysis_report.md"))
	assert.FileExists(t, filepath.Join(dir, "acme_tool_analysis_report.md"))
	assert.Contains(t, buf.String(), "acme_tool_analysis_report.md")
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, config.FormatText, nil, testReports()))
	assert.Contains(t, buf.String(), "Repository analysis: octo/lens")
	assert.Contains(t, buf.String(), "Repository analysis: acme/tool")
}

// stubSource serves empty resources for every repository except those named
// in missing, whose metadata lookup fails.
type stubSource struct {
	missing map[string]bool
}

func (s stubSource) Repo(_ context.Context, owner, repo string) (*ghcrawl.RepoInfo, error) {
	if s.missing[repo] {
		return nil, fmt.Errorf("%w: 404", ghcrawl.ErrUnavailable)
	}
	return &ghcrawl.RepoInfo{FullName: owner + "/" + repo}, nil
}

func (stubSource) Languages(context.Context, string, string) (map[string]int, error) {
	return map[string]int{}, nil
}

func (stubSource) CommitActivity(context.Context, string, string) ([]ghcrawl.WeekActivity, error) {
	return nil, nil
}

func (stubSource) Contributors(context.Context, string, string) ([]ghcrawl.Contributor, error) {
	return nil, nil
}

func (stubSource) Commits(context.Context, string, string, int) ([]ghcrawl.CommitData, error) {
	return nil, nil
}

func (stubSource) Readme(context.Context, string, string) (string, error) { return "", nil }

func (stubSource) Issues(context.Context, string, string, int) ([]ghcrawl.IssueData, error) {
	return nil, nil
}

func (stubSource) PullRequests(context.Context, string, string, int) ([]ghcrawl.PullRequestData, error) {
	return nil, nil
}

func (stubSource) PullComments(context.Context, string, string, int) ([]ghcrawl.ReviewComment, error) {
	return nil, nil
}

func (stubSource) PullReviews(context.Context, string, string, int) ([]ghcrawl.Review, error) {
	return nil, nil
}

func (stubSource) UserEvents(context.Context, string, int) ([]ghcrawl.EventData, error) {
	return nil, nil
}

func TestAnalyzeAll_MissingRepoKeepsOthers(t *testing.T) {
	an := analyzer.New(stubSource{missing: map[string]bool{"missing": true}}, nil, analyzer.DefaultOptions())
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	refs := []repoRef{{"o", "good"}, {"o", "missing"}, {"o", "other"}}
	reports, err := analyzeAll(cmd, an, refs, false, 2)

	require.Error(t, err)
	assert.ErrorIs(t, err, analyzer.ErrRepoUnavailable)
	assert.Contains(t, err.Error(), "o/missing")
	require.Len(t, reports, 2)
	assert.Equal(t, "o/good", reports[0].FullName)
	assert.Equal(t, "o/other", reports[1].FullName)
	assert.Equal(t, analyzer.NarrativeUnavailable, reports[0].Narrative)
}

func TestAnalyzeAll_AllSucceed(t *testing.T) {
	an := analyzer.New(stubSource{}, nil, analyzer.DefaultOptions())
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	reports, err := analyzeAll(cmd, an, []repoRef{{"o", "a"}, {"o", "b"}}, false, 1)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}
