// Package matcher decides whether one pump assignment meets its required flow.
//
// For each speed line of the assigned model the achievable unit flow at the
// target head is read from the curve and multiplied by the quantity. Among the
// lines that meet demand the slowest one is selected, since it is the cheapest
// to run. When none do, the line with the greatest capacity is reported and
// the assignment fails. A target head above the model's maximum rated head
// has no operating point and always fails.
//
// Verdicts
//
//   - PASS      capacity meets the requirement
//   - CLOSE     failing, but within CloseRatio of the requirement
//   - FAIL      failing
//   - NO-CURVE  model missing or without a usable line
package matcher
