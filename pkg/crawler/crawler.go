// Package crawler orchestrates the contact-scraping pipeline: expand each
// seed site into same-domain pages, extract contacts from every page not
// yet visited, and persist visitation state once per batch.
package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/amosWeiskopf/contactsmith/internal/models"
	"github.com/amosWeiskopf/contactsmith/pkg/store"
)

// Options contains configuration for the orchestrator
type Options struct {
	MaxPagesPerSite int           // bound on discovered links per seed
	PageDelay       time.Duration // fixed pause between page fetches
}

// Crawler runs a single-threaded batch crawl. The visited set is explicit
// state: the caller loads it, hands it in, and the crawler mutates it and
// persists it through the store at the end of the batch.
type Crawler struct {
	discoverer LinkDiscoverer
	extractor  PageExtractor
	store      StateStore
	visited    map[string]struct{}
	limiter    *rate.Limiter
	maxPages   int
	logger     *log.Logger
}

// New creates a new Crawler instance
func New(discoverer LinkDiscoverer, extractor PageExtractor, st StateStore, visited map[string]struct{}, opts Options, logger *log.Logger) *Crawler {
	if opts.MaxPagesPerSite < 1 {
		opts.MaxPagesPerSite = 1
	}
	if visited == nil {
		visited = make(map[string]struct{})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Crawler{
		discoverer: discoverer,
		extractor:  extractor,
		store:      st,
		visited:    visited,
		limiter:    rate.NewLimiter(rate.Every(opts.PageDelay), 1),
		maxPages:   opts.MaxPagesPerSite,
		logger:     logger,
	}
}

// Visited exposes the in-memory visited set. It grows monotonically; only
// an explicit reset through the store clears it.
func (c *Crawler) Visited() map[string]struct{} {
	return c.visited
}

// Run crawls the given seed batch and returns the extracted contact
// records. Page-level failures are logged and skipped; the only errors
// returned are context cancellation and a failed state save. The visited
// set is persisted exactly once, after the batch, even if the run was cut
// short by cancellation.
func (c *Crawler) Run(ctx context.Context, seeds []string) ([]models.ContactRecord, models.CrawlSummary, error) {
	summary := models.CrawlSummary{Seeds: len(seeds)}

	records, runErr := c.crawl(ctx, seeds, &summary)
	summary.Records = len(records)

	if err := c.store.Save(store.KeyVisited, c.visited); err != nil {
		if runErr == nil {
			runErr = fmt.Errorf("failed to persist visited set: %w", err)
		} else {
			c.logger.Error("failed to persist visited set", "error", err)
		}
	}
	return records, summary, runErr
}

func (c *Crawler) crawl(ctx context.Context, seeds []string, summary *models.CrawlSummary) ([]models.ContactRecord, error) {
	var records []models.ContactRecord

	for _, seed := range seeds {
		c.logger.Info("crawling site", "url", seed)

		links := c.discoverer.Discover(ctx, seed, c.maxPages)
		pages := make([]string, 0, len(links)+1)
		pages = append(pages, seed)
		pages = append(pages, links...)

		for _, page := range pages {
			if _, ok := c.visited[page]; ok {
				c.logger.Debug("skipping visited page", "url", page)
				summary.PagesSkipped++
				continue
			}

			// Fixed inter-page pacing; also the cancellation point.
			if err := c.limiter.Wait(ctx); err != nil {
				return records, err
			}

			record, err := c.extractor.Extract(ctx, page)
			if err != nil {
				// Page stays unvisited so a later batch can retry it.
				c.logger.Error("page extraction failed", "url", page, "error", err)
				summary.PagesFailed++
				continue
			}

			c.visited[page] = struct{}{}
			summary.PagesVisited++
			records = append(records, expandRecords(record)...)
		}
	}
	return records, nil
}

// expandRecords fans a page out into contact rows: one per detected name,
// or a single nameless row when the recognizer found nobody. All rows from
// one page share the first detected organization and the full joined
// email/phone sets; a page with several organizations still yields a single
// company guess, a known simplification.
func expandRecords(page *models.PageRecord) []models.ContactRecord {
	var company string
	if len(page.Orgs) > 0 {
		company = page.Orgs[0]
	}
	emails := strings.Join(page.Emails, ", ")
	phones := strings.Join(page.Phones, ", ")

	if len(page.Names) == 0 {
		return []models.ContactRecord{{
			Company:   company,
			Emails:    emails,
			Phones:    phones,
			SourceURL: page.URL,
		}}
	}

	records := make([]models.ContactRecord, 0, len(page.Names))
	for _, name := range page.Names {
		records = append(records, models.ContactRecord{
			PersonName: name,
			Company:    company,
			Emails:     emails,
			Phones:     phones,
			SourceURL:  page.URL,
		})
	}
	return records
}
