// Package scene procedurally maps repository metrics onto a 3-D scene
// document. Everything here is pure: the same repository and seed always
// produce the same geometry.
package scene

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"gitstreet-core/internal/domain/story"
)

var buildingColors = []string{
	"#ffb347",
	"#ff6961",
	"#77dd77",
	"#aec6cf",
	"#f49ac2",
}

var lightingPresets = []story.SceneLighting{
	{Ambient: 0.6, Directional: 0.8, Color: "#ffe0b2"},
	{Ambient: 0.3, Directional: 1.0, Color: "#d1c4e9"},
	{Ambient: 0.4, Directional: 0.6, Color: "#c8e6c9"},
}

var surrealTemplates = []string{
	"While %s sleeps, the commit whispers: '%s' and the street exhales time.",
	"%s loops around %s, chanting '%s' as neon rain falls sideways.",
	"Every merge in %s is a door; '%s' is the key we swallow.",
}

// Seed derives a deterministic scene seed from a repository's resolved head
// SHA. The value may still be a push-timestamp placeholder before the first
// commit fetch, so anything unparsable as hex maps to zero.
func Seed(latestCommitSHA string) int64 {
	if len(latestCommitSHA) < 6 {
		return 0
	}
	seed, err := strconv.ParseInt(latestCommitSHA[:6], 16, 64)
	if err != nil {
		return 0
	}
	return seed
}

// Build creates the structured scene data for a repository: a building for
// its metrics, road segments derived from its identity, and a lighting
// preset chosen by the seed.
func Build(repository story.Repository, seed int64) story.Scene {
	rng := rand.New(rand.NewSource(seed))

	building := story.Building{
		Name:   repository.Name,
		Height: 10 + len(repository.Name),
		Width:  5 + len(repository.DefaultBranch),
		Color:  buildingColors[rng.Intn(len(buildingColors))],
	}

	road := story.Road{
		Segments: []story.RoadSegment{
			{Length: max(4, len(repository.FullName)/3), Curve: rng.Float64()},
			{Length: max(3, len(repository.LatestCommitSHA)%13), Curve: rng.Float64()},
		},
		Texture: "digital-cobblestone",
	}

	lighting := lightingPresets[rng.Intn(len(lightingPresets))]
	lighting.Time = time.Now().UTC().Format(time.RFC3339)
	lighting.Seed = seed

	return story.Scene{
		Buildings: []story.Building{building},
		Roads:     []story.Road{road},
		Lighting:  lighting,
	}
}

// Surrealize converts commit messages into surreal statements using the
// fixed template set. Templates cycle by commit index, keeping the output
// deterministic for a given input.
func Surrealize(repository story.Repository, messages []string) []string {
	statements := make([]string, 0, len(messages))
	for i, message := range messages {
		var statement string
		switch i % len(surrealTemplates) {
		case 0:
			statement = fmt.Sprintf(surrealTemplates[0], repository.Name, message)
		case 1:
			statement = fmt.Sprintf(surrealTemplates[1], repository.Name, repository.DefaultBranch, message)
		default:
			statement = fmt.Sprintf(surrealTemplates[2], repository.Name, message)
		}
		statements = append(statements, statement)
	}
	return statements
}
