// Package cli provides the interactive rollcall console client.
//
// Lines starting with a slash are commands (/checkin, /history, /open ...);
// any other line is the answer to the current registration question. A
// background watcher polls the server for notifications and tracks whether
// it is reachable.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
