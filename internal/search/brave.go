package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const braveEndpoint = "https://api.search.brave.com/res/v1/web/search"

// Brave uses the Brave Search API.
type Brave struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewBrave constructs a Brave searcher.
func NewBrave(apiKey string, timeout time.Duration) *Brave {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewBraveWithClient(apiKey, braveEndpoint, &http.Client{Timeout: timeout})
}

// NewBraveWithClient constructs a Brave searcher against a custom endpoint and client.
func NewBraveWithClient(apiKey, endpoint string, client *http.Client) *Brave {
	return &Brave{apiKey: apiKey, endpoint: endpoint, client: client}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// Search runs the query and returns the flattened result descriptions.
func (b *Brave) Search(ctx context.Context, query string) (string, error) {
	results, err := b.Results(ctx, query)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("brave: no results")
	}
	return Flatten(results), nil
}

// Results returns the parsed hits for query.
func (b *Brave) Results(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(b.apiKey) == "" {
		return nil, errors.New("brave: API key is missing")
	}
	endpoint := b.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("brave http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode brave response: %w", err)
	}
	results := make([]Result, 0, len(out.Web.Results))
	for _, r := range out.Web.Results {
		results = append(results, Result{
			Title:   cleanHTML(r.Title),
			URL:     r.URL,
			Snippet: cleanHTML(r.Description),
		})
	}
	return results, nil
}
