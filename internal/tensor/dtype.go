package tensor

import "golang.org/x/exp/constraints"

// Float is the constraint for array element types.
type Float interface {
	constraints.Float
}

// DataType is runtime type information for arrays, used in errors and logs.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
)

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DataTypeOf returns the DataType of E.
func DataTypeOf[E Float]() DataType {
	var zero E
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}
