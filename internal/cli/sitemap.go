package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmaher/campcaster/internal/sitemap"
)

var flagSitemapRoot string

func newSitemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Refresh the campground URL list from the sitemap",
		Long: `Walks the park-service sitemap index recursively, keeps the
campground page URLs, and merges them into the URL list consumed by
'campcaster scrape'. Existing entries are preserved.`,
		RunE: runSitemap,
	}

	cmd.Flags().StringVar(&flagSitemapRoot, "sitemap-url", sitemap.DefaultRootURL, "Sitemap index URL")

	return cmd
}

func runSitemap(cmd *cobra.Command, args []string) error {
	crawler := sitemap.NewCrawler()
	camps, err := crawler.Crawl(flagSitemapRoot)
	if err != nil {
		return fmt.Errorf("crawling sitemap: %w", err)
	}

	merged, err := sitemap.MergeList(flagURLList, camps)
	if err != nil {
		return err
	}

	fmt.Printf("Camp URLs found: %d\n", len(camps))
	fmt.Printf("Total URLs in list: %d\n", len(merged))
	return nil
}
