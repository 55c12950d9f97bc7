// Package githist is the commit-history adapter. It queries GitHub through
// the gh CLI (which also supplies authentication) and turns the caller's
// commits into per-pull-request tasks of 30-minute sessions.
package githist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// runner executes an external command and returns its stdout. Swapped out
// in tests.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client wraps the gh CLI.
type Client struct {
	run runner
}

// NewClient returns a Client backed by the real gh and git binaries.
func NewClient() *Client {
	return &Client{run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, args[0], err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, args[0], err)
	}
	return stdout.Bytes(), nil
}

// Login returns the authenticated GitHub username.
func (c *Client) Login(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "gh", "api", "/user", "--jq", ".login")
	if err != nil {
		return "", fmt.Errorf("failed to resolve GitHub user (is gh authenticated?): %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// UserEmail returns the configured git author email, the identity commits
// are attributed to.
func (c *Client) UserEmail(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "git", "config", "user.email")
	if err != nil {
		return "", fmt.Errorf("could not get git user email: %w", err)
	}
	email := strings.TrimSpace(string(out))
	if email == "" {
		return "", fmt.Errorf("git user.email is empty; set it with git config")
	}
	return email, nil
}

// ListRepos returns the names of all repositories in the organization.
func (c *Client) ListRepos(ctx context.Context, org string) ([]string, error) {
	out, err := c.run(ctx, "gh", "repo", "list", org, "--limit", "1000", "--json", "name")
	if err != nil {
		return nil, fmt.Errorf("could not fetch repositories for %s: %w", org, err)
	}
	var repos []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(out, &repos); err != nil {
		return nil, fmt.Errorf("unexpected repo list payload: %w", err)
	}
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}
	return names, nil
}

// PullRequest is a merged PR candidate for commit attribution.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// ListMergedPRs returns PRs in org/repo merged inside the day range.
func (c *Client) ListMergedPRs(ctx context.Context, org, repo, startDay, endDay string) ([]PullRequest, error) {
	out, err := c.run(ctx, "gh", "pr", "list",
		"--repo", org+"/"+repo,
		"--state", "merged",
		"--search", fmt.Sprintf("merged:%s..%s", startDay, endDay),
		"--json", "number,title",
		"--limit", "100")
	if err != nil {
		return nil, fmt.Errorf("could not list merged PRs for %s/%s: %w", org, repo, err)
	}
	var prs []PullRequest
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, fmt.Errorf("unexpected PR list payload for %s/%s: %w", org, repo, err)
	}
	return prs, nil
}

// Commit is a single commit on a pull request.
type Commit struct {
	SHA         string
	AuthorEmail string
	AuthorDate  string // RFC 3339, as reported by the API
}

// ListPRCommits returns all commits on a pull request.
func (c *Client) ListPRCommits(ctx context.Context, org, repo string, number int) ([]Commit, error) {
	out, err := c.run(ctx, "gh", "api",
		fmt.Sprintf("repos/%s/%s/pulls/%d/commits", org, repo, number))
	if err != nil {
		return nil, fmt.Errorf("could not list commits for %s/%s#%d: %w", org, repo, number, err)
	}

	var payload []struct {
		SHA    string `json:"sha"`
		Commit struct {
			Author struct {
				Email string `json:"email"`
				Date  string `json:"date"`
			} `json:"author"`
		} `json:"commit"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("unexpected commit payload for %s/%s#%d: %w", org, repo, number, err)
	}

	commits := make([]Commit, 0, len(payload))
	for _, p := range payload {
		commits = append(commits, Commit{
			SHA:         p.SHA,
			AuthorEmail: p.Commit.Author.Email,
			AuthorDate:  p.Commit.Author.Date,
		})
	}
	return commits, nil
}
