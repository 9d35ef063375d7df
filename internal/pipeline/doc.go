// Package pipeline drives the fetch, extract, cache and apply loop over the
// campground URL list. Every successful scrape checkpoints the cache to disk,
// so an interrupted run resumes by skipping already-cached URLs. Per-URL
// failures are counted and skipped; they never abort the batch.
package pipeline
