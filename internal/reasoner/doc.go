// Package reasoner holds the two external collaborators of the screening
// engine: the free-text reasoning service and the similarity-based category
// suggester.
//
// Both are consumed through narrow interfaces so the engine can be tested
// with fakes and degraded gracefully when either is unavailable. The
// reasoning clients make a fixed number of attempts; the screening service's
// fallback cascade owns all recovery beyond that.
package reasoner
