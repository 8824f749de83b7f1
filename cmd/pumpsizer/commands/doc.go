// Package commands defines the pumpsizer CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init           Write a default project document
//   - show           Print the project summary and fingerprint
//   - set            Change one configuration field
//   - feature        Add or remove water-feature rows
//   - pump           Add, remove or list pump assignments
//   - curves         Import, list or remove pump curves
//   - evaluate       Print pump verdicts and system health
//   - estimate       Print (and optionally apply) the head estimate
//   - export/import  Copy the project document to or from a file
//   - fingerprint    Print the document fingerprint
//   - serve          Run the HTTP API
//
// # Implementation
//
// The root command resolves Config, installs the slog handler and builds the
// app (stores, services, current snapshot) before any subcommand runs, so
// handlers share one app context. Every change goes through app.Update.
package commands
