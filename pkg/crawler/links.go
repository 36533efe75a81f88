package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

// Discoverer finds same-domain links on a page with a single bounded fetch.
type Discoverer struct {
	client    *http.Client
	userAgent string
	logger    *log.Logger
}

// NewDiscoverer creates a Discoverer with the given fetch timeout.
func NewDiscoverer(timeout time.Duration, userAgent string, logger *log.Logger) *Discoverer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Discoverer{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Discover fetches baseURL and returns up to maxLinks absolute URLs whose
// text contains the base host. The substring check is deliberately loose so
// subdomains stay in scope. Failures are logged and yield an empty result;
// they never abort the batch.
func (d *Discoverer) Discover(ctx context.Context, baseURL string, maxLinks int) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Hostname() == "" {
		d.logger.Error("invalid base URL", "url", baseURL, "error", err)
		return nil
	}

	body, err := d.fetch(ctx, baseURL)
	if err != nil {
		d.logger.Error("link discovery failed", "url", baseURL, "error", err)
		return nil
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		d.logger.Error("link discovery parse failed", "url", baseURL, "error", err)
		return nil
	}

	host := base.Hostname()
	seen := make(map[string]bool)
	var links []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(links) >= maxLinks {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				abs := resolveURL(base, attr.Val)
				if abs == "" || !strings.Contains(abs, host) {
					continue
				}
				if !seen[abs] {
					seen[abs] = true
					links = append(links, abs)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

func (d *Discoverer) fetch(ctx context.Context, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func resolveURL(base *url.URL, ref string) string {
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	return base.ResolveReference(refURL).String()
}

var _ LinkDiscoverer = (*Discoverer)(nil)
