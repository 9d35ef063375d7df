package sitemap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultRootURL is the sitemap index of the park service site.
	DefaultRootURL = "https://www.parks.vic.gov.au/sitemap.xml"
	UserAgent      = "campcaster/0.1"
	Timeout        = 30 * time.Second

	requestDelay = time.Second
)

var (
	whereToStay  = regexp.MustCompile(`(?i)/where-to-stay/`)
	campKeywords = regexp.MustCompile(`(?i)(camp|campground|camping|camp-site|campsite|camping-area)`)
)

// IsCampURL reports whether a page URL looks like a campground page: it must
// live under /where-to-stay/ and mention a camping keyword.
func IsCampURL(url string) bool {
	return whereToStay.MatchString(url) && campKeywords.MatchString(url)
}

// document covers both <sitemapindex> and <urlset> payloads.
type document struct {
	XMLName  xml.Name
	Sitemaps []loc `xml:"sitemap"`
	URLs     []loc `xml:"url"`
}

type loc struct {
	Loc string `xml:"loc"`
}

// parse splits one sitemap payload into page URLs and nested sitemap URLs.
func parse(data []byte) (urls, sitemaps []string, err error) {
	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing sitemap: %w", err)
	}
	for _, s := range doc.Sitemaps {
		if trimmed := strings.TrimSpace(s.Loc); trimmed != "" {
			sitemaps = append(sitemaps, trimmed)
		}
	}
	for _, u := range doc.URLs {
		if trimmed := strings.TrimSpace(u.Loc); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls, sitemaps, nil
}

// Crawler fetches sitemaps with a fixed delay between requests.
type Crawler struct {
	client *http.Client
	delay  time.Duration
	sleep  func(time.Duration)
}

// NewCrawler creates a Crawler with the default per-request delay.
func NewCrawler() *Crawler {
	return &Crawler{
		client: &http.Client{Timeout: Timeout},
		delay:  requestDelay,
		sleep:  time.Sleep,
	}
}

// Crawl walks the sitemap tree starting at rootURL and returns the campground
// page URLs, sorted and deduplicated. A fetch or parse failure aborts the
// crawl: a partial URL list would silently shrink the dataset downstream.
func (c *Crawler) Crawl(rootURL string) ([]string, error) {
	toVisit := []string{rootURL}
	seen := make(map[string]bool)
	var pageURLs []string

	for len(toVisit) > 0 {
		url := toVisit[0]
		toVisit = toVisit[1:]
		if seen[url] {
			continue
		}
		seen[url] = true

		data, err := c.fetch(url)
		if err != nil {
			return nil, err
		}
		urls, sitemaps, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("sitemap %s: %w", url, err)
		}
		toVisit = append(toVisit, sitemaps...)
		pageURLs = append(pageURLs, urls...)
	}

	campSet := make(map[string]bool)
	for _, url := range pageURLs {
		if IsCampURL(url) {
			campSet[url] = true
		}
	}
	camps := make([]string, 0, len(campSet))
	for url := range campSet {
		camps = append(camps, url)
	}
	sort.Strings(camps)
	return camps, nil
}

func (c *Crawler) fetch(url string) ([]byte, error) {
	c.sleep(c.delay)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sitemap %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching sitemap %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// ReadList loads the newline-delimited URL list, skipping blank lines.
func ReadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls, nil
}

// MergeList unions urls with the existing list at path (if any), writes the
// sorted result back, and returns the merged list.
func MergeList(path string, urls []string) ([]string, error) {
	set := make(map[string]bool)
	if existing, err := ReadList(path); err == nil {
		for _, url := range existing {
			set[url] = true
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	for _, url := range urls {
		set[url] = true
	}

	merged := make([]string, 0, len(set))
	for url := range set {
		merged = append(merged, url)
	}
	sort.Strings(merged)

	content := strings.Join(merged, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return nil, fmt.Errorf("writing URL list: %w", err)
	}
	return merged, nil
}
