// Package screening orchestrates the change-request screening pipeline:
// validation, field extraction and signal detection, similarity suggestion,
// external reasoning, classification, the screening-required decision, and
// risk assessment, assembled into a single immutable report per request.
//
// The fallback cascade lives here. The external reasoning call is the only
// point a request may block; it gets a bounded timeout and at most one
// retry, after which a deterministic keyword-only result is substituted and
// the report is marked degraded. The original failure never reaches the
// caller.
package screening
