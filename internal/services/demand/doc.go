// Package demand computes the flow each demand system requires.
//
// Pool turnover is volume over turnover time. Water features add width times
// flow-per-foot per row. The spa needs the larger of its jet flow and its
// turnover flow. Summary.ForSystem maps every DemandSystem tag to one required
// flow. A dedicated water-feature pump removes the feature flow from the
// shared requirement, so that flow is never counted twice.
package demand
