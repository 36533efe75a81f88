package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DuckDuckGo queries the HTML (non-JS) DuckDuckGo endpoint and scrapes the
// result links. No API key required.
type DuckDuckGo struct {
	endpoint  string
	regionTLD string
	client    *http.Client
}

// NewDuckDuckGo creates a provider against the given HTML endpoint.
func NewDuckDuckGo(endpoint, regionTLD string, timeout time.Duration) *DuckDuckGo {
	return &DuckDuckGo{
		endpoint:  endpoint,
		regionTLD: regionTLD,
		client:    &http.Client{Timeout: timeout},
	}
}

// Search queries for "<keyword> <region>" and returns up to maxResults URLs,
// region-local hosts first.
func (d *DuckDuckGo) Search(ctx context.Context, keyword, region string, maxResults int) ([]string, error) {
	query := keyword
	if region != "" {
		query = keyword + " " + region
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search engine returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	seen := make(map[string]bool)
	var urls []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		target := unwrapRedirect(href)
		if target == "" || seen[target] {
			return true
		}
		seen[target] = true
		urls = append(urls, target)
		return len(urls) < maxResults
	})

	urls = PartitionByRegion(urls, region, d.regionTLD)
	if len(urls) > maxResults {
		urls = urls[:maxResults]
	}
	return urls, nil
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg=<encoded> redirect links to
// the real destination. Direct links pass through untouched.
func unwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return href
	}
	return ""
}

var _ Provider = (*DuckDuckGo)(nil)
