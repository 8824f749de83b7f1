// Package estimator derives a total dynamic head from piping geometry.
//
// Equivalent length is the round trip to the equipment pad plus a fitting
// allowance. Friction uses the Hazen-Williams form for US units:
//
//	hf = 4.52 * L * Q^1.85 / (C^1.85 * d^4.87)
//
// with L in feet, Q in GPM and d in inches. Elevation change and the fixed
// equipment loss are added on top.
//
// Guard rails flag a missing or implausible flow basis and a non-positive or
// implausible head. They never stop the computation; they mark the estimate
// not applicable, so Apply refuses to write it onto pump assignments. Each
// warning is logged once per distinct set of offending inputs.
package estimator
