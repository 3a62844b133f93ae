package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"gitstreet-core/internal/domain/story"
	"gitstreet-core/internal/scene"

	"github.com/google/uuid"
)

// SnapshotService owns the authoritative current and next snapshot slots and
// the repository directory behind them. Refresh, Advance, and Snapshot all
// serialize on one mutex, so a reader never observes a half-updated pair and
// the two mutators never interleave. Fetches inside a held section may fan
// out concurrently; they never re-enter the lock.
type SnapshotService struct {
	github         story.GitHubService
	stories        story.StoryService
	commitPageSize int

	mu           sync.Mutex
	selector     *story.Selector
	repositories []story.Repository
	current      *story.Snapshot
	next         *story.Snapshot
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(github story.GitHubService, stories story.StoryService, commitPageSize int) *SnapshotService {
	if commitPageSize < 1 {
		commitPageSize = 5
	}
	return &SnapshotService{
		github:         github,
		stories:        stories,
		commitPageSize: commitPageSize,
		selector:       story.NewSelector(),
	}
}

// Refresh re-fetches the full repository list, rebuilds the traversal order,
// and repopulates the snapshot pair from a fresh base. A failure anywhere
// leaves the previously held snapshots untouched.
func (s *SnapshotService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("Refreshing repository cache from GitHub")

	remotes, err := s.github.FetchRepositories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}

	var filtered []story.RemoteRepository
	for _, remote := range remotes {
		if !remote.Fork {
			filtered = append(filtered, remote)
		}
	}

	// Per-repository language lookups are independent; fan out and join.
	languages := make([][]story.LanguageStat, len(filtered))
	languageErrs := make([]error, len(filtered))
	var wg sync.WaitGroup
	for i, remote := range filtered {
		wg.Add(1)
		go func(i int, fullName string) {
			defer wg.Done()
			languages[i], languageErrs[i] = s.github.FetchLanguages(ctx, fullName)
		}(i, remote.FullName)
	}
	wg.Wait()
	for _, err := range languageErrs {
		if err != nil {
			return fmt.Errorf("failed to fetch languages: %w", err)
		}
	}

	repositories := make([]story.Repository, 0, len(filtered))
	for i, remote := range filtered {
		stats := languages[i]
		if len(stats) > 5 {
			stats = stats[:5]
		}
		repositories = append(repositories, story.Repository{
			Name:            remote.Name,
			FullName:        remote.FullName,
			Description:     remote.Description,
			DefaultBranch:   remote.DefaultBranch,
			LatestCommitSHA: remote.PushedAt,
			StargazersCount: remote.StargazersCount,
			ForksCount:      remote.ForksCount,
			OpenIssuesCount: remote.OpenIssuesCount,
			HTMLURL:         remote.HTMLURL,
			Homepage:        remote.Homepage,
			Topics:          remote.Topics,
			Languages:       stats,
		})
	}

	if len(repositories) == 0 {
		log.Println("No repositories found for the authenticated user")
		s.repositories = nil
		s.selector.Load(nil)
		s.current = nil
		s.next = nil
		return nil
	}

	s.repositories = repositories
	s.selector.Load(repositories)

	// Any starting point works; the selector owns determinism from here on.
	base := repositories[rand.Intn(len(repositories))]
	return s.rebuildFrom(ctx, base)
}

// Advance moves the traversal one step: the old next target becomes the new
// current, both snapshots rebuilt from scratch. With no current snapshot it
// restarts from the first repository in the order.
func (s *SnapshotService) Advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		base, ok := s.selector.First()
		if !ok {
			return nil
		}
		return s.rebuildFrom(ctx, base)
	}

	next, ok := s.selector.Next(&s.current.Repository)
	if !ok || next.FullName == s.current.Repository.FullName {
		return nil
	}
	return s.rebuildFrom(ctx, next)
}

// Snapshot returns the requested snapshot pair member, "current" or "next".
func (s *SnapshotService) Snapshot(kind string) (*story.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snapshot *story.Snapshot
	switch kind {
	case "current":
		snapshot = s.current
	case "next":
		snapshot = s.next
	default:
		return nil, story.ErrSnapshotNotAvailable(kind)
	}
	if snapshot == nil {
		return nil, story.ErrSnapshotNotAvailable(kind)
	}
	return snapshot, nil
}

// rebuildFrom builds the current snapshot from base and the next snapshot
// from base's successor. Both builds run concurrently; the slots are only
// assigned once both have succeeded, so a failure mid-rebuild cannot leave a
// mixed pair. Callers must hold the mutex.
func (s *SnapshotService) rebuildFrom(ctx context.Context, base story.Repository) error {
	var nextRepo *story.Repository
	if next, ok := s.selector.Next(&base); ok && next.FullName != base.FullName {
		nextRepo = &next
	}

	var (
		wg                    sync.WaitGroup
		currentSnap, nextSnap *story.Snapshot
		currentErr, nextErr   error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		currentSnap, currentErr = s.buildSnapshot(ctx, base)
	}()

	if nextRepo != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			nextSnap, nextErr = s.buildSnapshot(ctx, *nextRepo)
		}()
	}
	wg.Wait()

	if currentErr != nil {
		return fmt.Errorf("failed to build current snapshot: %w", currentErr)
	}
	if nextErr != nil {
		return fmt.Errorf("failed to build next snapshot: %w", nextErr)
	}

	s.current = currentSnap
	s.next = nextSnap
	return nil
}

// buildSnapshot assembles a complete snapshot for one repository. The
// repository parameter is a value copy; resolving the head SHA updates the
// copy inside the snapshot, never the shared directory record.
func (s *SnapshotService) buildSnapshot(ctx context.Context, repository story.Repository) (*story.Snapshot, error) {
	commits, err := s.github.FetchCommits(ctx, repository.FullName, repository.DefaultBranch, s.commitPageSize)
	if err != nil {
		return nil, story.ErrCommitFetchFailed(repository.FullName, err)
	}

	if len(commits) > 0 {
		repository.LatestCommitSHA = commits[0].SHA
	}

	surreal := s.stories.ComposeStory(ctx, repository, commits)
	sceneDoc := scene.Build(repository, scene.Seed(repository.LatestCommitSHA))

	return &story.Snapshot{
		ID:         uuid.NewString(),
		Repository: repository,
		Commits:    commits,
		Surreal:    surreal,
		Scene:      sceneDoc,
	}, nil
}
