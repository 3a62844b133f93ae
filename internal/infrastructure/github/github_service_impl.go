package github

import (
	"context"
	"fmt"

	"gitstreet-core/internal/domain/story"
	"gitstreet-core/internal/github"
)

// GitHubServiceImpl implements the domain story.GitHubService interface
type GitHubServiceImpl struct {
	client *github.Client
}

// NewGitHubService creates a new GitHub service implementation
func NewGitHubService(client *github.Client) story.GitHubService {
	return &GitHubServiceImpl{client: client}
}

// FetchRepositories lists the authenticated user's repositories
func (g *GitHubServiceImpl) FetchRepositories(ctx context.Context) ([]story.RemoteRepository, error) {
	githubRepos, err := g.client.GetUserRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories from GitHub: %w", err)
	}

	remotes := make([]story.RemoteRepository, len(githubRepos))
	for i, ghRepo := range githubRepos {
		remote := story.RemoteRepository{
			Name:            ghRepo.Name,
			FullName:        ghRepo.FullName,
			DefaultBranch:   ghRepo.DefaultBranch,
			PushedAt:        ghRepo.PushedAt,
			StargazersCount: ghRepo.StargazersCount,
			ForksCount:      ghRepo.ForksCount,
			OpenIssuesCount: ghRepo.OpenIssuesCount,
			HTMLURL:         ghRepo.HTMLURL,
			Topics:          ghRepo.Topics,
			Fork:            ghRepo.Fork,
		}
		if ghRepo.Description != nil {
			remote.Description = *ghRepo.Description
		}
		if ghRepo.Homepage != nil {
			remote.Homepage = *ghRepo.Homepage
		}
		if remote.DefaultBranch == "" {
			remote.DefaultBranch = "main"
		}
		remotes[i] = remote
	}

	return remotes, nil
}

// FetchLanguages returns the language breakdown for a repository
func (g *GitHubServiceImpl) FetchLanguages(ctx context.Context, fullName string) ([]story.LanguageStat, error) {
	languages, err := g.client.GetLanguages(ctx, fullName)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch languages from GitHub: %w", err)
	}

	stats := make([]story.LanguageStat, len(languages))
	for i, language := range languages {
		stats[i] = story.LanguageStat{Name: language.Name, Bytes: language.Bytes}
	}
	return stats, nil
}

// FetchCommits returns recent commits for a branch, most recent first
func (g *GitHubServiceImpl) FetchCommits(ctx context.Context, fullName, branch string, perPage int) ([]story.CommitInfo, error) {
	commits, err := g.client.GetCommits(ctx, fullName, branch, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commits from GitHub: %w", err)
	}

	infos := make([]story.CommitInfo, len(commits))
	for i, commit := range commits {
		info := story.CommitInfo{
			SHA:         commit.SHA,
			Message:     commit.Commit.Message,
			AuthorName:  commit.Commit.Author.Name,
			CommittedAt: commit.Commit.Author.Date,
			URL:         commit.HTMLURL,
		}
		if commit.Author != nil {
			info.AuthorLogin = commit.Author.Login
		}
		if commit.Stats != nil {
			info.Additions = commit.Stats.Additions
			info.Deletions = commit.Stats.Deletions
			info.TotalChanges = commit.Stats.Total
		}
		info.FilesChanged = len(commit.Files)
		infos[i] = info
	}
	return infos, nil
}
