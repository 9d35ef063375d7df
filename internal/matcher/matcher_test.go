package matcher

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"drops stopwords", "Wilsons Promontory National Park", []string{"wilsons", "promontory"}},
		{"splits punctuation", "tidal-river/camping", []string{"tidal", "river"}},
		{"all stopwords", "the campground area", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("Tokenize(%q) = %v, expected %v", tt.input, tokens, tt.expected)
			}
			for _, tok := range tt.expected {
				if _, ok := tokens[tok]; !ok {
					t.Errorf("Tokenize(%q) missing token %q", tt.input, tok)
				}
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Tidal River Campground", "tidal-river-campground"},
		{"  Mt. Buffalo!  ", "mt-buffalo"},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestBestMatch(t *testing.T) {
	index := NewIndex([]string{
		"https://www.parks.vic.gov.au/where-to-stay/tidal-river-campground",
		"https://www.parks.vic.gov.au/where-to-stay/wilsons-promontory-overview",
		"https://www.parks.vic.gov.au/where-to-stay/johanna-beach-campground",
	})

	url, ok := index.BestMatch("Tidal River", "Wilsons Promontory National Park")
	if !ok {
		t.Fatal("expected a match for Tidal River")
	}
	if url != "https://www.parks.vic.gov.au/where-to-stay/tidal-river-campground" {
		t.Errorf("unexpected match: %s", url)
	}
}

func TestBestMatchPrecisionGate(t *testing.T) {
	// The candidate shares park tokens but nothing from the site name;
	// park-only overlap must not produce a match.
	index := NewIndex([]string{
		"https://www.parks.vic.gov.au/where-to-stay/wilsons-promontory-camping",
	})

	if url, ok := index.BestMatch("Oberon Bay", "Wilsons Promontory National Park"); ok {
		t.Errorf("expected no match, got %s", url)
	}
}

func TestBestMatchThreshold(t *testing.T) {
	// Single shared token scores 1, below the acceptance threshold.
	index := NewIndex([]string{
		"https://example.com/where-to-stay/river-flats",
	})

	if url, ok := index.BestMatch("River Bend", "Greater Alpine"); ok {
		t.Errorf("expected no match below threshold, got %s", url)
	}
}

func TestBestMatchTieKeepsFirstSeen(t *testing.T) {
	index := NewIndex([]string{
		"https://example.com/stay/tidal-river-east",
		"https://example.com/stay/tidal-river-west",
	})

	url, ok := index.BestMatch("Tidal River", "Some Other Name")
	if !ok {
		t.Fatal("expected a match")
	}
	if url != "https://example.com/stay/tidal-river-east" {
		t.Errorf("tie should keep first-seen candidate, got %s", url)
	}
}

func TestBestMatchEmptySiteName(t *testing.T) {
	index := NewIndex([]string{"https://example.com/stay/tidal-river"})
	if _, ok := index.BestMatch("the campground", "Tidal River"); ok {
		t.Error("expected no match when site name has no usable tokens")
	}
}
