// Package config loads the list of files logtop monitors.
//
// # Format
//
// The config is plain text with one path per line:
//
//	# system logs
//	/var/log/syslog          system
//	/var/log/auth.log
//	~/src/app/logs/dev.log   app   # trailing comments are fine
//
// Leading whitespace is skipped and everything after '#' is ignored. The first
// whitespace-separated field is the path; the rest of the line, if any, is the
// display name shown in the dashboard. Without one the base name is used.
//
// Paths starting with "~/" are expanded to the home directory and every path
// is made absolute. A path listed twice is kept only at its first position, so
// the order of the dashboard rows is the order of first appearance.
//
// # Errors
//
// Load fails when the config itself cannot be read. Listed files are not
// opened here; the registry skips the ones it cannot open.
package config
