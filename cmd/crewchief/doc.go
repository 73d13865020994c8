// Command crewchief is a personal vehicle maintenance tracker: cars, service
// history, parts, maintenance intervals, and cost reports over a single-file
// SQLite database, with optional AI-backed summaries, suggestions, and track
// prep checklists from a locally hosted model.
package main
