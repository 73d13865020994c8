// Package llm wraps the locally hosted OpenAI-compatible chat completions
// endpoint that backs the AI commands.
//
// The client handles transport only: request encoding, bearer auth when a key
// is configured, retry with backoff on transient statuses, and classification
// of failures into "unreachable" versus "responded with an error". Everything
// downstream of the returned raw text (markup stripping, truncation repair,
// schema reconciliation) lives in internal/extract.
package llm
