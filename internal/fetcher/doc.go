// Package fetcher retrieves rendered page text through a text-extraction
// proxy. It throttles requests to a minimum inter-request interval so a
// multi-hour crawl never trips the upstream service's abuse detection, and
// retries transient HTTP failures with a linearly growing backoff.
package fetcher
