package site

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmaher/campcaster/internal/facility"
	"github.com/dmaher/campcaster/internal/matcher"
)

// Site is one physical campsite within a park.
type Site struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	ParkName      string           `json:"parkName"`
	Lat           float64          `json:"lat"`
	Lng           float64          `json:"lng"`
	LGA           *string          `json:"lga"`
	TourismRegion *string          `json:"tourismRegion"`
	Facilities    facility.Summary `json:"facilities"`
	SourceURL     *string          `json:"sourceUrl"`
	BookingURL    *string          `json:"bookingUrl,omitempty"`
	LandscapeTags []string         `json:"landscapeTags,omitempty"`
	AnimalsFauna  []string         `json:"animalsFauna,omitempty"`
}

// SlugID derives a stable identifier from the park and site name. Collisions
// within one ingestion run get a numeric suffix: the second "foo" becomes
// "foo-2". seen carries the collision counts across calls.
func SlugID(parkName, siteName string, seen map[string]int) string {
	base := matcher.Slugify(parkName + "-" + siteName)
	seen[base]++
	if seen[base] == 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, seen[base])
}

// Load reads the site collection. A missing or unreadable collection is a
// fatal start-up error for the caller.
func Load(path string) ([]*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sites: %w", err)
	}

	var sites []*Site
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, fmt.Errorf("parsing sites: %w", err)
	}
	return sites, nil
}

// Save rewrites the site collection. Marshaling is deterministic, so saving
// unchanged records yields byte-identical output.
func Save(path string, sites []*Site) error {
	data, err := json.MarshalIndent(sites, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sites: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing sites: %w", err)
	}
	return nil
}
