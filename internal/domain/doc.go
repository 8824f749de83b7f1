// Package domain defines the project document, pump curve models and the
// store contracts shared across pumpsizer.
//
// It contains plain types (persisted state) and contracts (interfaces) only.
// Calculation lives in the curve package and under internal/services.
//
// Units
//
//   - Flow is in US gallons per minute (GPM).
//   - Head, distance and elevation are in feet.
//   - Pipe internal diameter is in inches.
//   - Volumes are in US gallons, turnover in hours.
package domain
