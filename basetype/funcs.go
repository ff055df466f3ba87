package basetype

// Number is the set of base types the arithmetic function library operates
// on, grounded on meos/src/general/tnumber_mathfuncs_meos.c's
// tnumber_{add,sub,mult,div}_tnumber family.
type Number interface {
	~int64 | ~float64
}

// Add, Sub, Mult, Div are the lifted numeric binary functions named in
// spec.md §4.1.
func Add[T Number](a, b T) T { return a + b }
func Sub[T Number](a, b T) T { return a - b }
func Mult[T Number](a, b T) T { return a * b }

// Div divides a by b. A zero divisor panics for int64 and yields ±Inf or
// NaN for float64; callers lifting Div must guard the
// segment first (division by zero inside a linear segment is a crossing,
// not a pointwise error, and is out of scope for this registry function).
func Div[T Number](a, b T) T { return a / b }

// Eq, Ne, Lt, Le, Gt, Ge are the lifted comparison functions. They operate
// over any base type with a registered Ops[B], using its Equal/Less.
func Eq[B any](ops *Ops[B]) func(a, b B) bool {
	return func(a, b B) bool { return ops.Equal(a, b) }
}

func Ne[B any](ops *Ops[B]) func(a, b B) bool {
	return func(a, b B) bool { return !ops.Equal(a, b) }
}

func Lt[B any](ops *Ops[B]) func(a, b B) bool {
	return func(a, b B) bool { return ops.Less(a, b) }
}

func Le[B any](ops *Ops[B]) func(a, b B) bool {
	return func(a, b B) bool { return ops.Less(a, b) || ops.Equal(a, b) }
}

func Gt[B any](ops *Ops[B]) func(a, b B) bool {
	return func(a, b B) bool { return !ops.Less(a, b) && !ops.Equal(a, b) }
}

func Ge[B any](ops *Ops[B]) func(a, b B) bool {
	return func(a, b B) bool { return !ops.Less(a, b) }
}

// Concat is the lifted text concatenation function.
func Concat(a, b string) string { return a + b }
