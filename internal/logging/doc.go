// Package logging builds slog loggers for the CLI.
//
// Two formats are supported: a compact console format for interactive use and
// JSON for log files or machine consumption. Output goes to stdout and, when a
// log directory is configured, to crewchief.log inside it.
package logging
