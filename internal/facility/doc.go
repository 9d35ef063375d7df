// Package facility turns rendered campground page text into a structured
// facility record. Each amenity is classified as a ternary flag (yes, no,
// unknown) by scanning keyword-filtered lines in document order, so that a
// page saying "no dogs allowed" before any positive mention resolves to no.
// The package also tags the page's landscape character from a fixed cue-word
// catalogue and harvests wildlife mentions from introduction phrases.
package facility
