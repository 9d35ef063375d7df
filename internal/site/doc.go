// Package site models the campsite collection and its JSON persistence.
// Records are created by the geospatial ingestion step; this pipeline only
// rewrites the fields it owns (facilities, source URL, landscape tags and
// fauna) and leaves geospatial and LGA fields untouched.
package site
