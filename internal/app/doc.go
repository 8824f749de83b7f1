// Package app wires application dependencies for the CLI and the HTTP API.
//
// NewWire builds the concrete stores and services from Config. App holds the
// current project snapshot on top of a Wire: every change goes through
// App.Update, which derives the next snapshot and persists it before it
// becomes visible.
package app
