// Package cache persists scraped facility profiles keyed by page URL. The
// whole mapping is rewritten to disk after every mutation, so an interrupted
// crawl loses at most the one in-flight page and resumes by skipping
// already-cached URLs. Entries are appended or overwritten, never pruned.
package cache
