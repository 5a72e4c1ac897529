// Package runtime implements the flow invoker: it turns a flow name and an
// input object into either a schema-valid output or a classified failure.
//
// One invocation is strictly sequential:
//
//	lookup -> validate input -> render -> generate (once) -> parse -> validate output
//
// The invoker never retries, caches or deduplicates calls. Each stage maps to
// exactly one domain.ErrorKind, so callers can branch on errors.Is against the
// domain sentinels.
package runtime
