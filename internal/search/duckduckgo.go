package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	duckDuckGoEndpoint   = "https://lite.duckduckgo.com/lite/"
	duckDuckGoMaxResults = 10
	userAgent            = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	linkPattern    = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	linkPattern2   = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	snippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+(?:<[^>]+>[^<]*</[^>]+>)*[^<]*)</td>`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
)

// DuckDuckGo searches through DuckDuckGo's HTML lite interface.
// Requests from one client are spaced at least a second apart.
type DuckDuckGo struct {
	endpoint string
	client   *http.Client

	mu   sync.Mutex
	last time.Time
}

// NewDuckDuckGo creates a DuckDuckGo searcher with the given request timeout.
func NewDuckDuckGo(timeout time.Duration) *DuckDuckGo {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return NewDuckDuckGoWithClient(duckDuckGoEndpoint, &http.Client{Timeout: timeout})
}

// NewDuckDuckGoWithClient creates a searcher against a custom endpoint and client.
func NewDuckDuckGoWithClient(endpoint string, client *http.Client) *DuckDuckGo {
	return &DuckDuckGo{endpoint: endpoint, client: client}
}

// Search posts the query to the lite page and returns the flattened snippets.
func (d *DuckDuckGo) Search(ctx context.Context, query string) (string, error) {
	results, err := d.Results(ctx, query)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", errors.New("duckduckgo: no results")
	}
	return Flatten(results), nil
}

// Results returns the parsed hits for query.
func (d *DuckDuckGo) Results(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("duckduckgo: query is empty")
	}
	if err := d.throttle(ctx); err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("q", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo http %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return parseLiteHTML(string(body)), nil
}

func (d *DuckDuckGo) throttle(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if wait := time.Until(d.last.Add(time.Second)); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	d.last = time.Now()
	return nil
}

// parseLiteHTML extracts result links and their snippets from the lite page.
func parseLiteHTML(html string) []Result {
	matches := linkPattern.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = linkPattern2.FindAllStringSubmatch(html, -1)
	}
	snippets := snippetPattern.FindAllStringSubmatch(html, -1)

	var results []Result
	for i, m := range matches {
		link := strings.TrimSpace(m[1])
		title := cleanHTML(m[2])
		if link == "" || title == "" {
			continue
		}
		snippet := ""
		if i < len(snippets) {
			snippet = cleanHTML(snippets[i][1])
		}
		results = append(results, Result{Title: title, URL: link, Snippet: snippet})
		if len(results) >= duckDuckGoMaxResults {
			break
		}
	}
	return results
}

func cleanHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#39;", "'",
		"&#x27;", "'",
		"&nbsp;", " ",
	).Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
