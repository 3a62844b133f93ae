package story

import "context"

// RemoteRepository represents a repository as listed by the hosting API,
// before it is filtered and converted into a directory Repository.
type RemoteRepository struct {
	Name            string
	FullName        string
	Description     string
	DefaultBranch   string
	PushedAt        string
	StargazersCount int
	ForksCount      int
	OpenIssuesCount int
	HTMLURL         string
	Homepage        string
	Topics          []string
	Fork            bool
}

// GitHubService is the domain interface for the source-control hosting API.
// Implementation lives in the infrastructure layer.
type GitHubService interface {
	// FetchRepositories lists the authenticated user's repositories,
	// forks included; callers filter.
	FetchRepositories(ctx context.Context) ([]RemoteRepository, error)

	// FetchLanguages returns the language breakdown for a repository,
	// ordered by byte count descending. Results are cached per full name
	// for the process lifetime.
	FetchLanguages(ctx context.Context, fullName string) ([]LanguageStat, error)

	// FetchCommits returns up to perPage recent commits for the branch,
	// most recent first.
	FetchCommits(ctx context.Context, fullName, branch string, perPage int) ([]CommitInfo, error)
}

// StoryService turns repository activity into surreal narrative segments.
// Implementations must always produce at least three segments, degrading to
// a local deterministic fallback when the external generator misbehaves;
// that is why there is no error return.
type StoryService interface {
	ComposeStory(ctx context.Context, repository Repository, commits []CommitInfo) []string
}
