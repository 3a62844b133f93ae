package narrative

import (
	"context"
	"fmt"
	"log"

	"gitstreet-core/internal/domain/story"
)

// minSegments is the smallest narrative the frontend can render.
const minSegments = 3

// Generator produces narrative segments from an external model. It may fail
// or return fewer segments than required; this service recovers.
type Generator interface {
	GenerateSegments(ctx context.Context, repository story.Repository, commits []story.CommitInfo) ([]string, error)
}

// StoryServiceImpl implements the domain story.StoryService interface
type StoryServiceImpl struct {
	generator Generator
}

// NewStoryService creates a new story service implementation. A nil
// generator is valid and routes every request to the local fallback.
func NewStoryService(generator Generator) story.StoryService {
	return &StoryServiceImpl{generator: generator}
}

// ComposeStory returns narrative segments for the repository's activity.
// Generator failures, malformed output, and undersized results all degrade
// to the deterministic local fallback; the caller always gets at least
// three segments.
func (s *StoryServiceImpl) ComposeStory(ctx context.Context, repository story.Repository, commits []story.CommitInfo) []string {
	if s.generator == nil {
		return fallbackSegments(repository, commits)
	}

	segments, err := s.generator.GenerateSegments(ctx, repository, commits)
	if err != nil {
		log.Printf("Story generation failed for %s, using fallback: %v", repository.FullName, err)
		return fallbackSegments(repository, commits)
	}
	if len(segments) < minSegments {
		log.Printf("Story generation returned %d segments for %s, using fallback", len(segments), repository.FullName)
		return fallbackSegments(repository, commits)
	}
	return segments
}

// fallbackSegments builds a deterministic narrative from the repository
// context alone, with no external calls.
func fallbackSegments(repository story.Repository, commits []story.CommitInfo) []string {
	primaryLanguage := "code"
	if len(repository.Languages) > 0 {
		primaryLanguage = repository.Languages[0].Name
	}

	var contributors []string
	seen := map[string]bool{}
	for _, commit := range commits {
		author := commit.AuthorName
		if author == "" {
			author = commit.AuthorLogin
		}
		if author != "" && !seen[author] && len(contributors) < 3 {
			contributors = append(contributors, author)
			seen[author] = true
		}
	}
	contributorLine := "unknown dreamers"
	if len(contributors) > 0 {
		contributorLine = joinNames(contributors)
	}

	segments := []string{
		fmt.Sprintf("%s drifts through %s constellations while %s plot the next merge.",
			repository.Name, primaryLanguage, contributorLine),
	}

	if len(commits) > 0 {
		first := commits[0]
		segments = append(segments, fmt.Sprintf("Commit %s murmurs '%s' as it ripples across %s.",
			shortSHA(first.SHA), first.Message, repository.DefaultBranch))
	} else {
		segments = append(segments, fmt.Sprintf("The branch %s hums quietly, waiting for new commits to bend its skyline.",
			repository.DefaultBranch))
	}

	var filesChanged, changes int
	for _, commit := range commits {
		filesChanged += commit.FilesChanged
		if commit.TotalChanges > 0 {
			changes += commit.TotalChanges
		} else {
			changes += commit.Additions + commit.Deletions
		}
	}
	segments = append(segments, fmt.Sprintf("This cycle reshaped %d files with %d lines in motion, leaving the street faintly aglow.",
		filesChanged, changes))

	return segments
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func joinNames(names []string) string {
	out := names[0]
	for _, name := range names[1:] {
		out += ", " + name
	}
	return out
}
