package story

import "time"

// LanguageStat is one language's byte footprint in a repository,
// as reported by the GitHub languages endpoint.
type LanguageStat struct {
	Name  string
	Bytes int64
}

// Repository is the directory's record of one repository. FullName is the
// stable identity used for equality and lookup; LatestCommitSHA is seeded
// from the push timestamp on refresh and replaced with the real head SHA
// once a commit fetch resolves it.
type Repository struct {
	Name            string
	FullName        string
	Description     string
	DefaultBranch   string
	LatestCommitSHA string
	StargazersCount int
	ForksCount      int
	OpenIssuesCount int
	HTMLURL         string
	Homepage        string
	Topics          []string
	Languages       []LanguageStat
}

// CommitInfo is one fetched commit, most-recent-first as returned by the
// commit history collaborator. Stats fields are zero when the detail
// lookup was unavailable.
type CommitInfo struct {
	SHA          string
	Message      string
	AuthorName   string
	AuthorLogin  string
	CommittedAt  time.Time
	Additions    int
	Deletions    int
	TotalChanges int
	FilesChanged int
	URL          string
}

// Snapshot is a complete, self-contained bundle for one repository. It is
// immutable once built and only ever replaced wholesale. The embedded
// Repository is a fresh value carrying the resolved head SHA, never a
// reference into the shared directory.
type Snapshot struct {
	ID         string
	Repository Repository
	Commits    []CommitInfo
	Surreal    []string
	Scene      Scene
}

// Scene is the procedural scene document consumed by the frontend.
type Scene struct {
	Buildings []Building
	Roads     []Road
	Lighting  SceneLighting
}

// Building represents repository metrics as a structure in the scene.
type Building struct {
	Name   string
	Height int
	Width  int
	Color  string
}

// Road connects buildings; segment geometry derives from repository identity.
type Road struct {
	Segments []RoadSegment
	Texture  string
}

// RoadSegment is one piece of a road.
type RoadSegment struct {
	Length int
	Curve  float64
}

// SceneLighting carries the lighting preset plus the seed it was derived from.
type SceneLighting struct {
	Ambient     float64
	Directional float64
	Color       string
	Time        string
	Seed        int64
}
