// Package search turns a keyword into candidate site URLs via a web search
// engine. Results whose host looks local to the configured region are
// surfaced first, since those are the sites worth crawling.
package search

import (
	"context"
	"strings"

	"github.com/amosWeiskopf/contactsmith/pkg/utils"
)

// Provider produces an ordered list of site URLs for a keyword.
type Provider interface {
	Search(ctx context.Context, keyword, region string, maxResults int) ([]string, error)
}

// PartitionByRegion moves URLs whose host ends with the region's ccTLD or
// contains the lowercase region name to the front. The move is a stable
// partition: relative order within each group is preserved.
func PartitionByRegion(urls []string, region, tld string) []string {
	region = strings.ToLower(region)

	local := make([]string, 0, len(urls))
	rest := make([]string, 0, len(urls))
	for _, u := range urls {
		host := utils.HostOf(u)
		if (tld != "" && strings.HasSuffix(host, tld)) || (region != "" && strings.Contains(host, region)) {
			local = append(local, u)
		} else {
			rest = append(rest, u)
		}
	}
	return append(local, rest...)
}
