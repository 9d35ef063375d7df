package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaher/campcaster/internal/cache"
	"github.com/dmaher/campcaster/internal/fetcher"
	"github.com/dmaher/campcaster/internal/pipeline"
	"github.com/dmaher/campcaster/internal/sitemap"
)

var (
	flagRefresh        bool
	flagRefreshMissing bool
	flagApplyOnly      bool
	flagDelay          time.Duration
)

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape campground pages and apply facilities to sites",
		Long: `Fetches each campground page through the text-extraction proxy,
extracts facility information, and checkpoints the cache after every page.
Already-cached URLs are skipped, so an interrupted run resumes where it
stopped. Afterwards the cached facilities are merged onto the site
collection.`,
		RunE: runScrape,
	}

	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Re-scrape all URLs even if cached")
	cmd.Flags().BoolVar(&flagRefreshMissing, "refresh-missing", false, "Re-scrape only URLs cached with an older schema version")
	cmd.Flags().BoolVar(&flagApplyOnly, "apply-only", false, "Skip scraping and just apply cached facilities to sites")
	cmd.Flags().DurationVar(&flagDelay, "delay", fetcher.DefaultDelay, "Minimum interval between requests")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	urls, err := sitemap.ReadList(flagURLList)
	if err != nil {
		return fmt.Errorf("missing campground URL list (run 'campcaster sitemap' first): %w", err)
	}

	c, err := cache.Load(flagCache)
	if err != nil {
		return fmt.Errorf("loading cache: %w", err)
	}

	mode := pipeline.ModeDefault
	switch {
	case flagApplyOnly:
		mode = pipeline.ModeApplyOnly
	case flagRefresh:
		mode = pipeline.ModeRefresh
	case flagRefreshMissing:
		mode = pipeline.ModeRefreshMissing
	}

	p := pipeline.New(fetcher.New(flagDelay), c, nil)
	stats, err := p.Run(urls, flagSites, mode)
	if err != nil {
		return err
	}

	if mode == pipeline.ModeApplyOnly {
		fmt.Printf("Applied cached facilities to %d sites\n", stats.Applied)
		return nil
	}

	fmt.Printf("Scraped %d, skipped %d, failed %d of %d URLs; applied facilities to %d sites\n",
		stats.Scraped, stats.Skipped, stats.Failed, len(urls), stats.Applied)
	return nil
}
