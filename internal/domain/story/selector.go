package story

import (
	"sort"
	"strings"
)

// Selector establishes a deterministic total order over repositories and
// resolves the successor of any repository in that order. The order is
// (lowercased name, latest commit SHA) ascending, which makes a full
// traversal visit every repository exactly once before wrapping around,
// independent of the arrival order from the hosting API.
type Selector struct {
	repositories []Repository
}

// NewSelector creates an empty selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Load replaces the selector's sequence with a sorted copy of the given
// repositories. Sorting is stable, so repeated loads of an unchanged set
// yield an identical order.
func (s *Selector) Load(repositories []Repository) {
	sorted := make([]Repository, len(repositories))
	copy(sorted, repositories)
	sort.SliceStable(sorted, func(i, j int) bool {
		ni := strings.ToLower(sorted[i].Name)
		nj := strings.ToLower(sorted[j].Name)
		if ni != nj {
			return ni < nj
		}
		return sorted[i].LatestCommitSHA < sorted[j].LatestCommitSHA
	})
	s.repositories = sorted
}

// First returns the first repository in the deterministic order. The second
// return value is false when no repositories are loaded.
func (s *Selector) First() (Repository, bool) {
	if len(s.repositories) == 0 {
		return Repository{}, false
	}
	return s.repositories[0], true
}

// Next returns the repository that follows current in the order, wrapping
// around at the end. Identity is matched by full name, not by reference.
// When current is nil or no longer present in the loaded set, Next falls
// back to First so the traversal self-heals instead of failing.
func (s *Selector) Next(current *Repository) (Repository, bool) {
	if len(s.repositories) == 0 {
		return Repository{}, false
	}
	if current == nil {
		return s.repositories[0], true
	}
	for i, candidate := range s.repositories {
		if candidate.FullName == current.FullName {
			return s.repositories[(i+1)%len(s.repositories)], true
		}
	}
	return s.repositories[0], true
}

// Len reports how many repositories are loaded.
func (s *Selector) Len() int {
	return len(s.repositories)
}
