package curve_test

import (
	"fmt"

	"pumpsizer/internal/curve"
)

// ExampleFlowAt looks up the operating flow of a curve at 75 ft of head.
func ExampleFlowAt() {
	points, _ := curve.Parse(`
0, 95
30, 92
60, 86
90, 75
120, 55
135, 44`)
	fmt.Printf("%.1f GPM\n", curve.FlowAt(points, 75))
	fmt.Printf("%.1f GPM\n", curve.FlowAt(points, 100))
	// Output:
	// 90.0 GPM
	// 0.0 GPM
}
