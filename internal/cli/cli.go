package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmaher/campcaster/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagURLList string
	flagCache   string
	flagSites   string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campcaster",
		Short: "Assemble the camping-sites dataset",
		Long: `campcaster assembles a dataset of camping sites for a map-based
discovery tool: it scrapes campground pages for facility information,
matches each site record to its page, and polls booking availability.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.LevelInfo
			if flagVerbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.New(level, os.Stderr))
		},
	}

	cmd.PersistentFlags().StringVar(&flagURLList, "urls", "data/campground_urls.txt", "Campground URL list file")
	cmd.PersistentFlags().StringVar(&flagCache, "cache", "data/facilities_by_url.json", "Facility cache file")
	cmd.PersistentFlags().StringVar(&flagSites, "sites", "public/data/sites.json", "Site collection file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newSitemapCmd())
	cmd.AddCommand(newAvailabilityCmd())

	return cmd
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
