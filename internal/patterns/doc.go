// Package patterns provides the compiled, read-only pattern library used by
// field extraction, signal detection, classification, and quality analysis.
//
// The library is built once at startup and never mutated afterwards, so it is
// safe to share across concurrent screening requests. Consumers iterate the
// rule tables generically: adding a keyword set or template changes no
// consuming code path.
package patterns
