// Package logging builds the slog logger used for logtop diagnostics.
//
// The terminal belongs to the dashboard once it starts, so records go to an
// optional log file and, until MuteConsole is called, are mirrored to stderr.
// Levels are parsed with ParseLevel; unknown names fall back to info.
package logging
