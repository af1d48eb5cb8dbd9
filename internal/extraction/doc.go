// Package extraction pulls structured fields and boolean safety signals out
// of free-text change descriptions.
//
// Field extraction applies ordered templates from the pattern library, taking
// the first match for scalar fields and accumulating all matches for
// multi-valued fields. A field with no match is reported with the Undetermined
// sentinel, never an empty string: absence of a match is the normal
// "requires follow-up" outcome, not an error.
package extraction
