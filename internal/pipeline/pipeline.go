package pipeline

import (
	"github.com/dmaher/campcaster/internal/cache"
	"github.com/dmaher/campcaster/internal/logger"
)

// Mode selects which URLs get re-scraped on this run.
type Mode int

const (
	// ModeDefault scrapes only uncached URLs.
	ModeDefault Mode = iota
	// ModeRefresh re-scrapes everything, cached or not.
	ModeRefresh
	// ModeRefreshMissing re-scrapes uncached URLs and cached entries whose
	// schema version differs from the current extraction rules.
	ModeRefreshMissing
	// ModeApplyOnly skips fetching entirely and only merges cached
	// facilities onto the site collection.
	ModeApplyOnly
)

// TextFetcher retrieves the rendered text of one page.
type TextFetcher interface {
	FetchText(url string) (string, error)
}

// Stats summarizes one run.
type Stats struct {
	Scraped int
	Skipped int
	Failed  int
	Applied int
}

// Pipeline orchestrates the scrape loop and the apply phase.
type Pipeline struct {
	fetcher TextFetcher
	cache   *cache.Cache
	log     *logger.Logger
}

// New creates a Pipeline. A nil log uses the default logger.
func New(fetcher TextFetcher, c *cache.Cache, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Default()
	}
	return &Pipeline{
		fetcher: fetcher,
		cache:   c,
		log:     log,
	}
}
