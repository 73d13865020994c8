// Package advisor implements the AI-backed features: a free-text garage
// summary, prioritized per-car maintenance suggestions, and a track day
// preparation checklist.
//
// Suggestions are requested one car at a time because the local model
// truncates large responses; a narrow request per car stays under the budget
// far more often than one request for the whole garage. Structured responses
// are decoded through internal/extract, with per-field fallback requests
// wired back to the same client.
package advisor
