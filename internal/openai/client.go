package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gitstreet-core/internal/config"
	"gitstreet-core/internal/domain/story"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a poetic narrator that crafts surreal yet clear stories " +
	"about software projects. Always respond with JSON containing a " +
	"'segments' array of 3 concise entries."

// Client generates dynamic micro-fiction for repository activity
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI story client
func NewClient(cfg *config.StoryConfig) *Client {
	return &Client{
		client: openai.NewClient(cfg.OpenAIAPIKey),
		model:  cfg.Model,
	}
}

// storyResponse is the JSON shape the model is instructed to return
type storyResponse struct {
	Segments []string `json:"segments"`
}

// GenerateSegments asks the model for narrative segments describing the
// repository's recent activity. Malformed or empty responses surface as
// errors; the caller owns the fallback.
func (c *Client) GenerateSegments(ctx context.Context, repository story.Repository, commits []story.CommitInfo) ([]string, error) {
	prompt, err := buildPrompt(repository, commits)
	if err != nil {
		return nil, fmt.Errorf("failed to build story prompt: %w", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("story completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("story completion returned no content")
	}

	var parsed storyResponse
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse story response: %w", err)
	}

	segments := make([]string, 0, len(parsed.Segments))
	for _, segment := range parsed.Segments {
		if trimmed := strings.TrimSpace(segment); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	return segments, nil
}

// buildPrompt serializes the repository context the model narrates from
func buildPrompt(repository story.Repository, commits []story.CommitInfo) (string, error) {
	totals := map[string]int{}
	var contributors []string
	seen := map[string]bool{}
	for _, commit := range commits {
		totals["additions"] += commit.Additions
		totals["deletions"] += commit.Deletions
		totals["changes"] += commit.TotalChanges
		totals["files_changed"] += commit.FilesChanged

		author := commit.AuthorName
		if author == "" {
			author = commit.AuthorLogin
		}
		if author != "" && !seen[author] {
			contributors = append(contributors, author)
			seen[author] = true
		}
	}

	context := map[string]any{
		"repository":   repository,
		"commits":      commits,
		"totals":       totals,
		"contributors": contributors,
	}
	blob, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return "", err
	}

	instructions := "Use the repository context to produce a surreal but readable vignette. " +
		"Each segment must reference concrete details such as commit authors, " +
		"topics, or recent changes. Keep the tone imaginative yet grounded " +
		"enough to understand the activity."
	return fmt.Sprintf("%s\n\nRepository context:\n```json\n%s\n```", instructions, blob), nil
}
