package pipeline

import (
	"fmt"

	"github.com/dmaher/campcaster/internal/facility"
	"github.com/dmaher/campcaster/internal/logger"
)

// Run executes the scrape loop over urls in the given mode, then merges the
// cache onto the site collection at sitesPath. Per-URL fetch failures are
// counted and skipped; a cache checkpoint failure aborts, since continuing
// would silently lose progress.
func (p *Pipeline) Run(urls []string, sitesPath string, mode Mode) (*Stats, error) {
	stats := &Stats{}

	if mode == ModeApplyOnly {
		applied, err := p.Apply(urls, sitesPath)
		if err != nil {
			return stats, err
		}
		stats.Applied = applied
		return stats, nil
	}

	total := len(urls)
	for idx, url := range urls {
		if p.cache.Has(url) && mode != ModeRefresh {
			if mode != ModeRefreshMissing || !p.cache.Stale(url) {
				stats.Skipped++
				if (idx+1)%10 == 0 {
					p.logProgress("skipping cached pages", idx+1, total, stats)
				}
				continue
			}
			// Stale entry under refresh-missing: fall through and re-scrape.
		}

		text, err := p.fetcher.FetchText(url)
		if err != nil {
			stats.Failed++
			p.log.Warn("fetch failed", logger.Fields{"url": url, "error": err.Error()})
			continue
		}

		profile := facility.Extract(text)
		if err := p.cache.Put(url, &profile); err != nil {
			return stats, fmt.Errorf("checkpointing cache: %w", err)
		}
		stats.Scraped++

		if (idx+1)%5 == 0 {
			p.logProgress("scraping", idx+1, total, stats)
		}
	}

	applied, err := p.Apply(urls, sitesPath)
	if err != nil {
		return stats, err
	}
	stats.Applied = applied
	return stats, nil
}

func (p *Pipeline) logProgress(message string, done, total int, stats *Stats) {
	p.log.Info(message, logger.Fields{
		"done":    done,
		"total":   total,
		"scraped": stats.Scraped,
		"skipped": stats.Skipped,
		"failed":  stats.Failed,
	})
}
