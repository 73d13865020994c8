// Package extract turns unreliable model output into schema-conforming values.
//
// The local model endpoint is known to wrap payloads in code fences, truncate
// responses at a fixed byte budget, and omit fields. The pipeline here strips
// decorative markup, locates the outermost structural payload with a
// depth-aware scanner, repairs truncated payloads by trimming the incomplete
// trailing element and re-closing open containers, reconciles the parsed tree
// against a static schema descriptor, and issues narrowly scoped follow-up
// requests for required fields the primary response could not supply.
//
// The pipeline is stateless. Each call is self-contained and returns either a
// typed result or a classified error, never a value with a required field
// silently unset.
package extract
