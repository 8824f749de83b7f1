// Package curve implements piecewise-linear lookups over pump curves.
//
// A curve is an RpmLine's points sorted ascending by flow. Two lookups are
// provided:
//
//   - HeadAt: head produced at a given flow. Flow is clamped into the curve's
//     flow range, so both ends saturate.
//   - FlowAt: flow delivered against a given head. A head above the curve's
//     maximum is unreachable and yields 0; a head below its minimum yields the
//     maximum-flow point.
//
// Lines with fewer than two points are unusable and every lookup on them
// returns 0. Normalize turns raw, possibly unsorted input into a usable
// point sequence.
//
// Parse reads points from free text, one "flow, head" pair per line, with
// comma, semicolon or whitespace separators. Malformed lines are reported as
// Diagnostics and skipped.
package curve
