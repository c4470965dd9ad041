// Package logging builds the slog loggers used across radar.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log files or machine consumption. Output can fan out to
// stdout and a log file simultaneously. Construction flows from Options or
// directly from application config via NewFromConfig.
package logging
