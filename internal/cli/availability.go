package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaher/campcaster/internal/availability"
	"github.com/dmaher/campcaster/internal/site"
)

var (
	flagDate            string
	flagAvailabilityOut string
)

func newAvailabilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Poll booking availability for matched sites",
		Long: `For every site with a matched source URL, derives its booking
page, harvests the booking widget IDs, and queries the availability-preview
API for the given date. Sites that cannot be checked are reported as
"unknown".`,
		RunE: runAvailability,
	}

	cmd.Flags().StringVar(&flagDate, "date", "", "Date to check, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&flagAvailabilityOut, "out", "public/data/availability.json", "Availability output file")
	cmd.MarkFlagRequired("date")

	return cmd
}

func runAvailability(cmd *cobra.Command, args []string) error {
	if _, err := time.Parse("2006-01-02", flagDate); err != nil {
		return fmt.Errorf("invalid --date, expected YYYY-MM-DD: %w", err)
	}

	sites, err := site.Load(flagSites)
	if err != nil {
		return err
	}

	poller := availability.NewPoller()
	report := poller.Poll(sites, flagDate)

	if err := availability.WriteReport(flagAvailabilityOut, report); err != nil {
		return err
	}

	fmt.Printf("Wrote availability for %d sites to %s\n", len(report.Items), flagAvailabilityOut)
	return nil
}
