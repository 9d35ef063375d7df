package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmaher/campcaster/internal/facility"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a corrupt cache file")
	}
}

func TestPutCheckpointsToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	profile := facility.Extract("toilets and showers provided")
	if err := c.Put("https://example.com/a", &profile); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// The file must already contain the entry, before any further Put.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	var onDisk map[string]*facility.Profile
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("cache file not valid JSON: %v", err)
	}
	if _, ok := onDisk["https://example.com/a"]; !ok {
		t.Error("entry missing from checkpoint")
	}

	second := facility.Extract("no toilets here")
	if err := c.Put("https://example.com/b", &second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Errorf("expected 2 entries after reload, got %d", reloaded.Len())
	}
	got, ok := reloaded.Get("https://example.com/b")
	if !ok {
		t.Fatal("entry b missing after reload")
	}
	if got.Toilets != facility.No {
		t.Errorf("Toilets = %v, expected No", got.Toilets)
	}
}

func TestStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c, _ := Load(path)

	current := facility.Extract("toilets provided")
	if err := c.Put("current", &current); err != nil {
		t.Fatal(err)
	}

	old := facility.Extract("toilets provided")
	old.SchemaVersion = facility.SchemaVersion - 1
	if err := c.Put("old", &old); err != nil {
		t.Fatal(err)
	}

	if c.Stale("current") {
		t.Error("current-version entry should not be stale")
	}
	if !c.Stale("old") {
		t.Error("old-version entry should be stale")
	}
	if c.Stale("uncached") {
		t.Error("uncached URL is not stale, it is absent")
	}
}
