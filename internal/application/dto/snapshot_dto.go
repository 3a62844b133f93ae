package dto

import (
	"time"

	"gitstreet-core/internal/domain/story"
)

// SnapshotResponse represents a repository snapshot in API responses
type SnapshotResponse struct {
	ID         string             `json:"id"`
	Repository RepositoryResponse `json:"repository"`
	Commits    []CommitResponse   `json:"commits"`
	Surreal    []string           `json:"surreal"`
	Scene      SceneResponse      `json:"scene"`
}

// RepositoryResponse represents repository metadata in API responses
type RepositoryResponse struct {
	Name            string                 `json:"name"`
	FullName        string                 `json:"full_name"`
	Description     string                 `json:"description,omitempty"`
	DefaultBranch   string                 `json:"default_branch"`
	LatestCommitSHA string                 `json:"latest_commit_sha"`
	StargazersCount int                    `json:"stargazers_count"`
	ForksCount      int                    `json:"forks_count"`
	OpenIssuesCount int                    `json:"open_issues_count"`
	HTMLURL         string                 `json:"html_url,omitempty"`
	Homepage        string                 `json:"homepage,omitempty"`
	Topics          []string               `json:"topics,omitempty"`
	Languages       []LanguageStatResponse `json:"languages"`
}

// LanguageStatResponse represents one language's byte footprint
type LanguageStatResponse struct {
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
}

// CommitResponse represents commit metadata in API responses
type CommitResponse struct {
	SHA          string `json:"sha"`
	Message      string `json:"message"`
	AuthorName   string `json:"author_name,omitempty"`
	AuthorLogin  string `json:"author_login,omitempty"`
	CommittedAt  string `json:"committed_at,omitempty"`
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
	TotalChanges int    `json:"total_changes"`
	FilesChanged int    `json:"files_changed"`
	URL          string `json:"url,omitempty"`
}

// SceneResponse represents the procedural scene document
type SceneResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
	Roads     []RoadResponse     `json:"roads"`
	Lighting  LightingResponse   `json:"lighting"`
}

// BuildingResponse represents one scene building
type BuildingResponse struct {
	Name   string `json:"name"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Color  string `json:"color"`
}

// RoadResponse represents one scene road
type RoadResponse struct {
	Segments []RoadSegmentResponse `json:"segments"`
	Texture  string                `json:"texture"`
}

// RoadSegmentResponse represents one road segment
type RoadSegmentResponse struct {
	Length int     `json:"length"`
	Curve  float64 `json:"curve"`
}

// LightingResponse represents the scene lighting preset
type LightingResponse struct {
	Ambient     float64 `json:"ambient"`
	Directional float64 `json:"directional"`
	Color       string  `json:"color"`
	Time        string  `json:"time"`
	Seed        int64   `json:"seed"`
}

// NewSnapshotResponse converts a domain snapshot to its API representation
func NewSnapshotResponse(snapshot *story.Snapshot) *SnapshotResponse {
	commits := make([]CommitResponse, len(snapshot.Commits))
	for i, commit := range snapshot.Commits {
		commits[i] = CommitResponse{
			SHA:          commit.SHA,
			Message:      commit.Message,
			AuthorName:   commit.AuthorName,
			AuthorLogin:  commit.AuthorLogin,
			Additions:    commit.Additions,
			Deletions:    commit.Deletions,
			TotalChanges: commit.TotalChanges,
			FilesChanged: commit.FilesChanged,
			URL:          commit.URL,
		}
		if !commit.CommittedAt.IsZero() {
			commits[i].CommittedAt = commit.CommittedAt.Format(time.RFC3339)
		}
	}

	languages := make([]LanguageStatResponse, len(snapshot.Repository.Languages))
	for i, language := range snapshot.Repository.Languages {
		languages[i] = LanguageStatResponse{Name: language.Name, Bytes: language.Bytes}
	}

	roads := make([]RoadResponse, len(snapshot.Scene.Roads))
	for i, road := range snapshot.Scene.Roads {
		segments := make([]RoadSegmentResponse, len(road.Segments))
		for j, segment := range road.Segments {
			segments[j] = RoadSegmentResponse{Length: segment.Length, Curve: segment.Curve}
		}
		roads[i] = RoadResponse{Segments: segments, Texture: road.Texture}
	}

	buildings := make([]BuildingResponse, len(snapshot.Scene.Buildings))
	for i, building := range snapshot.Scene.Buildings {
		buildings[i] = BuildingResponse{
			Name:   building.Name,
			Height: building.Height,
			Width:  building.Width,
			Color:  building.Color,
		}
	}

	return &SnapshotResponse{
		ID: snapshot.ID,
		Repository: RepositoryResponse{
			Name:            snapshot.Repository.Name,
			FullName:        snapshot.Repository.FullName,
			Description:     snapshot.Repository.Description,
			DefaultBranch:   snapshot.Repository.DefaultBranch,
			LatestCommitSHA: snapshot.Repository.LatestCommitSHA,
			StargazersCount: snapshot.Repository.StargazersCount,
			ForksCount:      snapshot.Repository.ForksCount,
			OpenIssuesCount: snapshot.Repository.OpenIssuesCount,
			HTMLURL:         snapshot.Repository.HTMLURL,
			Homepage:        snapshot.Repository.Homepage,
			Topics:          snapshot.Repository.Topics,
			Languages:       languages,
		},
		Commits: commits,
		Surreal: snapshot.Surreal,
		Scene: SceneResponse{
			Buildings: buildings,
			Roads:     roads,
			Lighting: LightingResponse{
				Ambient:     snapshot.Scene.Lighting.Ambient,
				Directional: snapshot.Scene.Lighting.Directional,
				Color:       snapshot.Scene.Lighting.Color,
				Time:        snapshot.Scene.Lighting.Time,
				Seed:        snapshot.Scene.Lighting.Seed,
			},
		},
	}
}
