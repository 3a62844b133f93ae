package story_test

import (
	"testing"

	"gitstreet-core/internal/domain/story"
)

func testRepositories() []story.Repository {
	return []story.Repository{
		{Name: "gamma", FullName: "acme/gamma", LatestCommitSHA: "ccc333"},
		{Name: "alpha", FullName: "acme/alpha", LatestCommitSHA: "aaa111"},
		{Name: "beta", FullName: "acme/beta", LatestCommitSHA: "bbb222"},
	}
}

func TestSelector_LoadSortsDeterministically(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(testRepositories())

	first, ok := selector.First()
	if !ok {
		t.Fatal("First() ok = false, want true")
	}
	if first.FullName != "acme/alpha" {
		t.Errorf("First().FullName = %v, want acme/alpha", first.FullName)
	}
}

func TestSelector_NextFollowsAlphabeticalOrder(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(testRepositories())

	alpha := story.Repository{Name: "alpha", FullName: "acme/alpha", LatestCommitSHA: "aaa111"}
	next, ok := selector.Next(&alpha)
	if !ok {
		t.Fatal("Next(alpha) ok = false, want true")
	}
	if next.FullName != "acme/beta" {
		t.Errorf("Next(alpha).FullName = %v, want acme/beta", next.FullName)
	}
}

func TestSelector_NextWrapsAround(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(testRepositories())

	gamma := story.Repository{Name: "gamma", FullName: "acme/gamma", LatestCommitSHA: "ccc333"}
	next, ok := selector.Next(&gamma)
	if !ok {
		t.Fatal("Next(gamma) ok = false, want true")
	}
	if next.FullName != "acme/alpha" {
		t.Errorf("Next(gamma).FullName = %v, want acme/alpha", next.FullName)
	}
}

func TestSelector_NextFromNilReturnsFirst(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(testRepositories())

	next, ok := selector.Next(nil)
	if !ok {
		t.Fatal("Next(nil) ok = false, want true")
	}
	first, _ := selector.First()
	if next.FullName != first.FullName {
		t.Errorf("Next(nil).FullName = %v, want %v", next.FullName, first.FullName)
	}
}

func TestSelector_NextForDroppedRepositoryFallsBackToFirst(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(testRepositories())

	dropped := story.Repository{Name: "omega", FullName: "acme/omega", LatestCommitSHA: "fff999"}
	next, ok := selector.Next(&dropped)
	if !ok {
		t.Fatal("Next(dropped) ok = false, want true")
	}
	if next.FullName != "acme/alpha" {
		t.Errorf("Next(dropped).FullName = %v, want acme/alpha", next.FullName)
	}
}

func TestSelector_EmptySelector(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(nil)

	if _, ok := selector.First(); ok {
		t.Error("First() ok = true on empty selector, want false")
	}
	if _, ok := selector.Next(nil); ok {
		t.Error("Next(nil) ok = true on empty selector, want false")
	}
}

func TestSelector_CycleVisitsEveryRepositoryOnce(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(testRepositories())

	visited := make(map[string]int)
	current, ok := selector.First()
	if !ok {
		t.Fatal("First() ok = false, want true")
	}
	start := current.FullName
	for {
		visited[current.FullName]++
		next, ok := selector.Next(&current)
		if !ok {
			t.Fatal("Next() ok = false mid-cycle, want true")
		}
		if next.FullName == start {
			break
		}
		current = next
	}

	if len(visited) != 3 {
		t.Errorf("cycle visited %v repositories, want 3", len(visited))
	}
	for fullName, count := range visited {
		if count != 1 {
			t.Errorf("repository %v visited %v times, want 1", fullName, count)
		}
	}
}

func TestSelector_NextIsDeterministicAcrossReloads(t *testing.T) {
	beta := story.Repository{Name: "beta", FullName: "acme/beta", LatestCommitSHA: "bbb222"}

	var previous string
	for i := 0; i < 5; i++ {
		selector := story.NewSelector()
		selector.Load(testRepositories())
		next, ok := selector.Next(&beta)
		if !ok {
			t.Fatal("Next(beta) ok = false, want true")
		}
		if i > 0 && next.FullName != previous {
			t.Errorf("Next(beta) = %v on reload %d, want %v", next.FullName, i, previous)
		}
		previous = next.FullName
	}
}

func TestSelector_CommitSHATieBreak(t *testing.T) {
	selector := story.NewSelector()
	selector.Load([]story.Repository{
		{Name: "twin", FullName: "acme/twin-b", LatestCommitSHA: "bbb"},
		{Name: "twin", FullName: "acme/twin-a", LatestCommitSHA: "aaa"},
	})

	first, ok := selector.First()
	if !ok {
		t.Fatal("First() ok = false, want true")
	}
	if first.FullName != "acme/twin-a" {
		t.Errorf("First().FullName = %v, want acme/twin-a (lower SHA wins tie)", first.FullName)
	}
}

func TestSelector_NextDoesNotMutateOrder(t *testing.T) {
	selector := story.NewSelector()
	selector.Load(testRepositories())

	alpha := story.Repository{Name: "alpha", FullName: "acme/alpha", LatestCommitSHA: "aaa111"}
	for i := 0; i < 3; i++ {
		next, _ := selector.Next(&alpha)
		if next.FullName != "acme/beta" {
			t.Fatalf("Next(alpha) = %v on call %d, want acme/beta", next.FullName, i)
		}
	}
	first, _ := selector.First()
	if first.FullName != "acme/alpha" {
		t.Errorf("First().FullName = %v after repeated Next, want acme/alpha", first.FullName)
	}
}
