// Package cli wires the campcaster commands: scraping facility data for
// campground pages, merging it onto the site collection, refreshing the URL
// list from the sitemap, and polling booking availability.
package cli
