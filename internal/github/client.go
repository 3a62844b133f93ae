package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"gitstreet-core/internal/config"
)

// Client handles GitHub API interactions
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string

	mu        sync.Mutex
	languages map[string][]Language
}

// NewClient creates a new GitHub API client
func NewClient(cfg *config.GitHubConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   cfg.APIBaseURL,
		token:     cfg.Token,
		languages: make(map[string][]Language),
	}
}

// Repository represents a GitHub repository from the API
type Repository struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     *string  `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Homepage        *string  `json:"homepage"`
	Topics          []string `json:"topics"`
	Private         bool     `json:"private"`
	Fork            bool     `json:"fork"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	DefaultBranch   string   `json:"default_branch"`
	PushedAt        string   `json:"pushed_at"`
}

// Language is one entry of a repository's language breakdown
type Language struct {
	Name  string
	Bytes int64
}

// Commit represents a commit from the GitHub commits API
type Commit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *struct {
		Login string `json:"login"`
	} `json:"author"`
	Stats *struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
		Total     int `json:"total"`
	} `json:"stats"`
	Files []struct {
		Filename string `json:"filename"`
	} `json:"files"`
}

// GetUserRepositories fetches the authenticated user's own repositories
func (c *Client) GetUserRepositories(ctx context.Context) ([]Repository, error) {
	url := fmt.Sprintf("%s/user/repos?per_page=100&affiliation=owner", c.baseURL)

	var repos []Repository
	if err := c.get(ctx, url, &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	return repos, nil
}

// GetLanguages fetches the language breakdown for a repository, ordered by
// byte count descending. Results are cached for the process lifetime.
func (c *Client) GetLanguages(ctx context.Context, fullName string) ([]Language, error) {
	c.mu.Lock()
	if cached, ok := c.languages[fullName]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	url := fmt.Sprintf("%s/repos/%s/languages", c.baseURL, fullName)

	raw := make(map[string]int64)
	if err := c.get(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch languages for %s: %w", fullName, err)
	}

	languages := make([]Language, 0, len(raw))
	for name, bytes := range raw {
		languages = append(languages, Language{Name: name, Bytes: bytes})
	}
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Bytes != languages[j].Bytes {
			return languages[i].Bytes > languages[j].Bytes
		}
		return languages[i].Name < languages[j].Name
	})

	c.mu.Lock()
	c.languages[fullName] = languages
	c.mu.Unlock()

	return languages, nil
}

// GetCommits fetches up to perPage recent commits for a branch, most recent
// first, then enriches each commit with its change stats concurrently. A
// failed detail lookup leaves that commit with list data only.
func (c *Client) GetCommits(ctx context.Context, fullName, branch string, perPage int) ([]Commit, error) {
	url := fmt.Sprintf("%s/repos/%s/commits?sha=%s&per_page=%d", c.baseURL, fullName, branch, perPage)

	var commits []Commit
	if err := c.get(ctx, url, &commits); err != nil {
		return nil, fmt.Errorf("failed to fetch commits for %s: %w", fullName, err)
	}

	var wg sync.WaitGroup
	for i := range commits {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			detailURL := fmt.Sprintf("%s/repos/%s/commits/%s", c.baseURL, fullName, commits[i].SHA)
			var detail Commit
			if err := c.get(ctx, detailURL, &detail); err != nil {
				return
			}
			commits[i].Stats = detail.Stats
			commits[i].Files = detail.Files
		}(i)
	}
	wg.Wait()

	return commits, nil
}

// get performs an authenticated GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
