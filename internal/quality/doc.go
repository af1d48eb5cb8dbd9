// Package quality scores the writing quality of screening documents.
//
// Sub-scores (grammar, style, technical, compliance) are computed
// independently and blended with fixed weights; the overall score is never
// assigned directly. Grammar and style can be derived deterministically from
// the pattern library's rule table, which keeps a usable score available when
// the external technical review is unavailable.
package quality
