package matcher

import (
	"regexp"
	"strings"
)

// MinScore is the acceptance threshold for a match. Requiring two shared
// tokens stops single-token coincidences (every page mentioning "lake") from
// mis-associating unrelated pages. Lowering it trades precision for recall.
const MinScore = 2

// stopwords are generic park and camping vocabulary, too common to
// discriminate between pages.
var stopwords = map[string]struct{}{
	"campground":   {},
	"campgrounds":  {},
	"camping":      {},
	"area":         {},
	"areas":        {},
	"park":         {},
	"national":     {},
	"state":        {},
	"regional":     {},
	"conservation": {},
	"reserve":      {},
	"the":          {},
	"of":           {},
	"and":          {},
	"in":           {},
	"at":           {},
	"with":         {},
	"your":         {},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize lower-cases a value, splits it on non-alphanumeric runs, and drops
// stop words.
func Tokenize(value string) map[string]struct{} {
	value = nonAlnum.ReplaceAllString(strings.ToLower(value), " ")
	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(value) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// Slugify lower-cases a value and collapses non-alphanumeric runs to hyphens.
func Slugify(value string) string {
	value = nonAlnum.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(value, "-")
}

// Entry is one candidate page in the index.
type Entry struct {
	URL    string
	Slug   string
	Tokens map[string]struct{}
}

// Index is a lexical index over candidate page URLs. It is rebuilt from the
// URL list on every run and carries no identity beyond the URL strings.
type Index struct {
	entries []Entry
}

// NewIndex builds an index preserving the input order, which is what makes
// tie-breaking deterministic.
func NewIndex(urls []string) *Index {
	entries := make([]Entry, 0, len(urls))
	for _, url := range urls {
		path := stripScheme(url)
		segments := strings.Split(strings.TrimRight(url, "/"), "/")
		entries = append(entries, Entry{
			URL:    url,
			Slug:   Slugify(segments[len(segments)-1]),
			Tokens: Tokenize(path),
		})
	}
	return &Index{entries: entries}
}

// Len reports the number of indexed URLs.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// BestMatch scores every candidate against the combined site and park name
// tokens and returns the best-scoring URL. A candidate is only eligible if it
// shares a token with the site name itself; park-only overlap would tie every
// page of the same park. Ties keep the first-seen candidate. Scores below
// MinScore report no match.
func (ix *Index) BestMatch(siteName, parkName string) (string, bool) {
	siteTokens := Tokenize(siteName)
	if len(siteTokens) == 0 {
		return "", false
	}

	combined := Tokenize(parkName)
	for tok := range siteTokens {
		combined[tok] = struct{}{}
	}

	bestURL := ""
	bestScore := 0
	for _, entry := range ix.entries {
		if !intersects(siteTokens, entry.Tokens) {
			continue
		}
		score := overlap(combined, entry.Tokens)
		if score > bestScore {
			bestScore = score
			bestURL = entry.URL
		}
	}

	if bestScore < MinScore {
		return "", false
	}
	return bestURL, true
}

func intersects(a, b map[string]struct{}) bool {
	for tok := range a {
		if _, ok := b[tok]; ok {
			return true
		}
	}
	return false
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}

func stripScheme(url string) string {
	url = strings.TrimPrefix(url, "http://")
	return strings.TrimPrefix(url, "https://")
}
