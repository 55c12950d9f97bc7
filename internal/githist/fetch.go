package githist

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vatfree/timecard/internal/dates"
	"github.com/vatfree/timecard/internal/engtag"
	"github.com/vatfree/timecard/pkg/models"
)

// sessionLength is the work window attributed to a single commit: thirty
// minutes ending at the commit timestamp.
const sessionLength = int64(30 * 60)

// Fetcher turns the configured author's commits into tasks.
type Fetcher struct {
	Client *Client
	Org    string
	// Diag receives operator progress lines; it is never the data channel.
	Diag io.Writer
}

// prGroup accumulates one task's worth of commits while scanning PRs.
type prGroup struct {
	repo       string
	title      string
	timestamps []int64
}

// Fetch scans every repository in the organization for merged PRs in the
// range and collects the commits authored by the configured git identity.
// Each commit becomes a 30-minute session ending at the commit time; the
// merger, not this adapter, collapses overlaps.
func (f *Fetcher) Fetch(ctx context.Context, rng dates.Range) ([]models.Task, error) {
	login, err := f.Client.Login(ctx)
	if err != nil {
		return nil, err
	}
	email, err := f.Client.UserEmail(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(f.Diag, "Generating time report for %s (%s) in %s\n", login, email, f.Org)
	fmt.Fprintf(f.Diag, "Week: %s\n\n", rng)

	fmt.Fprintln(f.Diag, "Fetching repositories...")
	repos, err := f.Client.ListRepos(ctx, f.Org)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(f.Diag, "Found %d repositories\n\n", len(repos))

	var groups []*prGroup
	commitCount := 0

	for _, repo := range repos {
		prs, err := f.Client.ListMergedPRs(ctx, f.Org, repo, rng.StartDay(), rng.EndDay())
		if err != nil {
			return nil, err
		}
		if len(prs) == 0 {
			continue
		}
		fmt.Fprintf(f.Diag, "  Checking %d PRs in %s...\n", len(prs), repo)

		for _, pr := range prs {
			commits, err := f.Client.ListPRCommits(ctx, f.Org, repo, pr.Number)
			if err != nil {
				return nil, err
			}

			timestamps := attributedTimestamps(commits, email, rng)
			if len(timestamps) == 0 {
				// A PR with no attributable commits is simply omitted.
				continue
			}
			groups = append(groups, &prGroup{repo: repo, title: pr.Title, timestamps: timestamps})
			commitCount += len(timestamps)
		}
	}

	fmt.Fprintf(f.Diag, "\nFound %d commits across %d PRs\n", commitCount, len(groups))

	tasks := make([]models.Task, 0, len(groups))
	for _, g := range groups {
		tasks = append(tasks, g.task())
	}
	return tasks, nil
}

// attributedTimestamps filters a PR's commits down to the author's commits
// inside the range, deduplicated across branches (same SHA) and across
// squash rewrites (same author date within the PR).
func attributedTimestamps(commits []Commit, email string, rng dates.Range) []int64 {
	seenSHA := make(map[string]bool, len(commits))
	seenTime := make(map[int64]bool, len(commits))

	var timestamps []int64
	for _, c := range commits {
		if c.AuthorEmail != email {
			continue
		}
		if c.SHA != "" && seenSHA[c.SHA] {
			continue
		}
		seenSHA[c.SHA] = true

		t, err := time.Parse(time.RFC3339, c.AuthorDate)
		if err != nil {
			continue
		}
		ts := t.Unix()
		if !rng.Contains(ts) {
			continue
		}
		if seenTime[ts] {
			continue
		}
		seenTime[ts] = true
		timestamps = append(timestamps, ts)
	}
	return timestamps
}

// task builds the interchange task for one PR. The name is the eng-tagged
// title; without an eng tag the repo name serves as the hashtag.
func (g *prGroup) task() models.Task {
	tag, cleaned, ok := engtag.Extract(g.title)
	if !ok {
		tag = g.repo
	}
	name := "#" + tag
	if cleaned != "" {
		name = cleaned + " #" + tag
	}

	earliest := g.timestamps[0]
	sessions := make([]models.Session, 0, len(g.timestamps))
	for _, ts := range g.timestamps {
		if ts < earliest {
			earliest = ts
		}
		sessions = append(sessions, models.Session{Start: ts - sessionLength, End: ts})
	}

	return models.Task{
		Name:          name,
		Sessions:      sessions,
		SortTimestamp: earliest,
	}
}
