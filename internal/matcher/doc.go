// Package matcher associates a campsite record with the candidate page URL
// that most likely describes it. Names and URL paths are reduced to
// stop-word-filtered token sets; a candidate must share at least one token
// with the site name and score at least two tokens against the combined
// site and park name before a match is accepted.
package matcher
