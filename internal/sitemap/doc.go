// Package sitemap walks a park-service sitemap index recursively and keeps
// the campground page URLs. The result is merged into the newline-delimited
// URL list that feeds the scrape pipeline.
package sitemap
