package basetype

import (
	"hash/fnv"
	"math"
	"strconv"
)

func init() {
	Register(boolOps())
	Register(int64Ops())
	Register(float64Ops())
	Register(textOps())
}

func boolOps() *Ops[bool] {
	return &Ops[bool]{
		Name:  "bool",
		Equal: func(a, b bool) bool { return a == b },
		Less:  func(a, b bool) bool { return !a && b },
		Hash: func(v bool) uint64 {
			if v {
				return 1
			}
			return 0
		},
		Linear: false,
		Format: func(v bool) string { return strconv.FormatBool(v) },
		Parse:  strconv.ParseBool,
	}
}

func int64Ops() *Ops[int64] {
	return &Ops[int64]{
		Name:  "int",
		Equal: func(a, b int64) bool { return a == b },
		Less:  func(a, b int64) bool { return a < b },
		Hash:  func(v int64) uint64 { return uint64(v) },
		// Integers are discrete: the core stores them without interpolation,
		// matching spec.md §3's "canonical form [l,u)" discrete-domain rule.
		Linear: false,
		Format: func(v int64) string { return strconv.FormatInt(v, 10) },
		Parse:  func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) },
	}
}

func float64Ops() *Ops[float64] {
	return &Ops[float64]{
		Name:   "float",
		Equal:  func(a, b float64) bool { return a == b },
		Less:   func(a, b float64) bool { return a < b },
		Hash:   func(v float64) uint64 { return math.Float64bits(v) },
		Linear: true,
		Interpolate: func(v1, v2 float64, ratio float64) float64 {
			return v1 + (v2-v1)*ratio
		},
		Collinear: func(v1, v2, v3 float64, ratio, epsilon float64) bool {
			expected := v1 + (v3-v1)*ratio
			return math.Abs(expected-v2) <= epsilon
		},
		IsNaN: math.IsNaN,
		SolveRatio: func(v1, v2, target float64) (float64, bool) {
			if v1 == v2 {
				if target == v1 {
					return 0, true
				}
				return 0, false
			}
			lo, hi := v1, v2
			if lo > hi {
				lo, hi = hi, lo
			}
			if target < lo || target > hi {
				return 0, false
			}
			return (target - v1) / (v2 - v1), true
		},
		Format: FormatFloat,
		Parse:  func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
	}
}

func textOps() *Ops[string] {
	return &Ops[string]{
		Name:   "text",
		Equal:  func(a, b string) bool { return a == b },
		Less:   func(a, b string) bool { return a < b },
		Hash: func(v string) uint64 {
			h := fnv.New64a()
			_, _ = h.Write([]byte(v))
			return h.Sum64()
		},
		// Linear interpolation over text is not defined (spec.md §9):
		// constructors reject Linear sequences over string-valued bases.
		Linear: false,
		Format: func(v string) string { return v },
		Parse:  func(s string) (string, error) { return s, nil },
	}
}

// FormatFloat renders a float64 base value using the shortest round-trip
// representation, shared by ioformat printing.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
