package pipeline

import (
	"github.com/dmaher/campcaster/internal/matcher"
	"github.com/dmaher/campcaster/internal/site"
)

// Apply rebuilds the URL index, finds the best-matching page for every site,
// and copies that page's cached facilities onto the site. Sites with no match
// or no cache entry keep their prior values. Running Apply twice over
// unchanged inputs rewrites the collection byte-identically.
func (p *Pipeline) Apply(urls []string, sitesPath string) (int, error) {
	sites, err := site.Load(sitesPath)
	if err != nil {
		return 0, err
	}

	index := matcher.NewIndex(urls)
	applied := 0
	for _, s := range sites {
		url, ok := index.BestMatch(s.Name, s.ParkName)
		if !ok {
			continue
		}
		profile, ok := p.cache.Get(url)
		if !ok {
			continue
		}

		matched := url
		s.Facilities = profile.Summary
		s.SourceURL = &matched
		s.LandscapeTags = profile.LandscapeTags
		s.AnimalsFauna = profile.AnimalsFauna
		applied++
	}

	if err := site.Save(sitesPath, sites); err != nil {
		return applied, err
	}
	return applied, nil
}
