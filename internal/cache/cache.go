package cache

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmaher/campcaster/internal/facility"
)

// Cache maps page URLs to their most recent extraction result.
type Cache struct {
	path    string
	entries map[string]*facility.Profile
}

// Load reads the cache file. A missing file yields an empty cache; a corrupt
// file is an error, since silently restarting would re-fetch everything.
func Load(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]*facility.Profile),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing cache: %w", err)
	}
	return c, nil
}

// Get returns the cached profile for url, if any.
func (c *Cache) Get(url string) (*facility.Profile, bool) {
	profile, ok := c.entries[url]
	return profile, ok
}

// Has reports whether url has a cached entry of any schema version.
func (c *Cache) Has(url string) bool {
	_, ok := c.entries[url]
	return ok
}

// Stale reports whether url is cached but was produced by a different
// extraction rule generation than the current one.
func (c *Cache) Stale(url string) bool {
	profile, ok := c.entries[url]
	return ok && profile.SchemaVersion != facility.SchemaVersion
}

// Put stores a profile and checkpoints the whole cache to disk before
// returning.
func (c *Cache) Put(url string, profile *facility.Profile) error {
	c.entries[url] = profile
	return c.flush()
}

// Len reports the number of cached URLs.
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) flush() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
