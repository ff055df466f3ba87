// Package aggregate implements temporal aggregation (spec.md §4.10):
// transition/combine/final accumulators over sets of synchronized temporal
// values, materialized as extended numeric tuples whose last component is
// always the accumulated weight.
package aggregate

// Double2, Double3, Double4 are the sum-plus-count transition accumulators
// MEOS uses for average/centroid aggregates: every component but the last
// carries a running sum, the last carries the running weight (typically an
// instant or duration count). The final step divides every sum component
// by the weight.
type Double2 struct{ A, B float64 }
type Double3 struct{ A, B, C float64 }
type Double4 struct{ A, B, C, D float64 }

func (d Double2) Add(o Double2) Double2 { return Double2{d.A + o.A, d.B + o.B} }
func (d Double3) Add(o Double3) Double3 { return Double3{d.A + o.A, d.B + o.B, d.C + o.C} }
func (d Double4) Add(o Double4) Double4 { return Double4{d.A + o.A, d.B + o.B, d.C + o.C, d.D + o.D} }

func (d Double2) Eq(o Double2) bool { return d.A == o.A && d.B == o.B }
func (d Double3) Eq(o Double3) bool { return d.A == o.A && d.B == o.B && d.C == o.C }
func (d Double4) Eq(o Double4) bool { return d.A == o.A && d.B == o.B && d.C == o.C && d.D == o.D }

// Divide divides every component, the weight component included, by
// weight. A zero weight gives Inf or NaN components rather than a panic, so
// callers check weight > 0 first.
func (d Double2) Divide(weight float64) Double2 { return Double2{d.A / weight, d.B / weight} }
func (d Double3) Divide(weight float64) Double3 {
	return Double3{d.A / weight, d.B / weight, d.C / weight}
}
func (d Double4) Divide(weight float64) Double4 {
	return Double4{d.A / weight, d.B / weight, d.C / weight, d.D / weight}
}
