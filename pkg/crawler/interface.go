package crawler

import (
	"context"

	"github.com/amosWeiskopf/contactsmith/internal/models"
)

// LinkDiscoverer expands a site URL into same-domain page URLs.
type LinkDiscoverer interface {
	// Discover returns up to maxLinks page URLs found on baseURL. A fetch
	// or parse failure is page-scoped: implementations log it and return
	// an empty slice.
	Discover(ctx context.Context, baseURL string, maxLinks int) []string
}

// PageExtractor turns a page URL into a PageRecord.
type PageExtractor interface {
	Extract(ctx context.Context, pageURL string) (*models.PageRecord, error)
}

// StateStore persists a named string set. Satisfied by *store.Store.
type StateStore interface {
	Save(key string, set map[string]struct{}) error
}
