// Package availability polls booking availability for matched sites. Each
// site's booking page is derived from its source URL slug; the page's script
// tags carry the operator and control IDs needed to query the Bookeasy
// availability-preview API. Any failure for a site degrades its status to
// "unknown" rather than aborting the poll.
package availability
