// Package logging builds the diagnostic logger that daylog reports to.
//
// Diagnostics are off by default. With --debug (or diagnostics.level in the
// config file) they are written as slog text to stderr, which is where the
// writer's trace lines and swallowed failures become visible.
package logging
