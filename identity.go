package quizshow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGitHubAPI is the base URL of the public GitHub API
const DefaultGitHubAPI = "https://api.github.com"

// Profile is the display identity of a player
type Profile struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
	HTMLURL   string `json:"html_url"`
}

// FirstName returns the first word of the display name
func (p *Profile) FirstName() string {
	if p == nil {
		return ""
	}
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ProfileResolver turns a handle into a profile. A nil profile with a nil
// error means the handle does not exist.
type ProfileResolver interface {
	Resolve(ctx context.Context, handle string) (*Profile, error)
}

// GitHubResolver looks handles up in the GitHub users API
type GitHubResolver struct {
	BaseURL string
	Client  *http.Client
}

// NewGitHubResolver creates a resolver against baseURL, or the public API
// when baseURL is empty.
func NewGitHubResolver(baseURL string) *GitHubResolver {
	if baseURL == "" {
		baseURL = DefaultGitHubAPI
	}
	return &GitHubResolver{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *GitHubResolver) Resolve(ctx context.Context, handle string) (*Profile, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, nil
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"/users/"+url.PathEscape(handle), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile lookup for %s failed: %w", handle, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("profile lookup for %s: unexpected status %d", handle, resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if p.Login == "" {
		return nil, errors.New("profile response has no login")
	}
	return &p, nil
}

// ResolveProfile is Resolve with every failure treated as "no profile"
func ResolveProfile(ctx context.Context, r ProfileResolver, handle string) *Profile {
	if r == nil {
		return nil
	}
	p, err := r.Resolve(ctx, handle)
	if err != nil {
		log.Printf("Error resolving profile %q: %v", handle, err)
		return nil
	}
	return p
}
