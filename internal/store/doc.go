// Package store provides persistence for pumpsizer.
//
// It contains concrete implementations of the domain storage interfaces:
//   - DocumentFileStore keeps the project document as a single JSON file,
//     replaced atomically on every save. Import validates the document's
//     shape before it replaces the stored file.
//   - CurveLibrary keeps pump curve models in a SQLite database so they can
//     be shared between projects.
//
// All methods are safe for concurrent use.
package store
