// Package logging builds the zap logger shared by the CLI and the page
// browser. The browser logs to a file so log lines do not corrupt the
// terminal.
package logging
