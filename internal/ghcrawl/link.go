package ghcrawl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadLink reports a link that names no GitHub account or repository.
var ErrBadLink = errors.New("invalid repository link")

// ParseRepoLink extracts owner and repo from a GitHub link such as
// "https://github.com/owner/repo", "github.com/owner/repo/tree/main" or a
// bare "owner/repo".
func ParseRepoLink(link string) (owner, repo string, err error) {
	parts, err := linkPath(link)
	if err != nil {
		return "", "", err
	}
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadLink, link)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// ParseProfileLink extracts the account name from a GitHub link such as
// "https://github.com/octo", "github.com/octo/lens" or a bare "octo".
func ParseProfileLink(link string) (string, error) {
	parts, err := linkPath(link)
	if err != nil {
		return "", err
	}
	if parts[0] == "" {
		return "", fmt.Errorf("%w: %q", ErrBadLink, link)
	}
	return parts[0], nil
}

// linkPath returns the slash-separated path segments after "github.com/".
func linkPath(link string) ([]string, error) {
	s := strings.TrimSpace(link)
	if i := strings.Index(s, "github.com/"); i >= 0 {
		s = s[i+len("github.com/"):]
	} else if strings.Contains(s, "://") {
		return nil, fmt.Errorf("%w: %q is not a github.com link", ErrBadLink, link)
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return strings.Split(strings.Trim(s, "/"), "/"), nil
}
