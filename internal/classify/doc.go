// Package classify decides the screening category for a change request and
// whether a formal screening is required.
//
// Both decisions consume uncontrolled prose from the external reasoning
// service. All prose scanning is expressed as ordered rule tables (token
// regexes checked most-specific-first, assertion phrases matched whole) so the
// behavior is enumerable and testable rather than buried in an if/else chain.
package classify
