package dataset

// CompareOp names a comparison operator understood by every Frame. The set is
// closed; engines dispatch on the enumerated value, never on strings.
type CompareOp int

const (
	// Eq is the equality comparison
	Eq CompareOp = iota
	// Neq is the inequality comparison
	Neq
	// Gt is the strictly-greater-than comparison
	Gt
	// Lt is the strictly-less-than comparison
	Lt
	// GtEq is the greater-or-equal comparison
	GtEq
	// LtEq is the less-or-equal comparison
	LtEq
)

// String returns the engine-level name of this CompareOp. GtEq and LtEq map
// to gt_eq and lt_eq respectively; the mapping is locked by regression tests.
func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "eq"
	case Neq:
		return "neq"
	case Gt:
		return "gt"
	case Lt:
		return "lt"
	case GtEq:
		return "gt_eq"
	case LtEq:
		return "lt_eq"
	default:
		return "unknown"
	}
}

// BinaryOp names an arithmetic operator understood by every Frame. RMul and
// RAdd are the reflected forms, computing other ∘ self instead of self ∘ other.
type BinaryOp int

const (
	// FloorDiv is floor division
	FloorDiv BinaryOp = iota
	// TrueDiv is true (floating-point) division
	TrueDiv
	// Mul is multiplication
	Mul
	// RMul is reflected multiplication
	RMul
	// Add is addition
	Add
	// RAdd is reflected addition
	RAdd
	// Sub is subtraction
	Sub
	// Mod is the modulo operation
	Mod
)

// String returns the engine-level name of this BinaryOp
func (op BinaryOp) String() string {
	switch op {
	case FloorDiv:
		return "floordiv"
	case TrueDiv:
		return "truediv"
	case Mul:
		return "mul"
	case RMul:
		return "rmul"
	case Add:
		return "add"
	case RAdd:
		return "radd"
	case Sub:
		return "sub"
	case Mod:
		return "mod"
	default:
		return "unknown"
	}
}
