package errors

import (
	"fmt"
)

// NotSerializableError occurs when serialization of a Dataset is attempted.
// Dataset metadata has no generally-valid serialized form, so capture is
// refused outright rather than silently producing a possibly-wrong encoding.
type NotSerializableError struct{}

// Error returns a textual representation of this NotSerializableError
func (e NotSerializableError) Error() string {
	return "Dataset state capture is not implemented"
}

// EmptyConcatError occurs when Concat is given no Datasets to combine
type EmptyConcatError struct{}

// Error returns a textual representation of this EmptyConcatError
func (e EmptyConcatError) Error() string {
	return "Cannot concatenate an empty sequence of Datasets"
}

// UnknownColumnError occurs when a Frame does not contain a requested column
type UnknownColumnError struct{ Name string }

// Error returns a textual representation of this UnknownColumnError
func (e UnknownColumnError) Error() string {
	return fmt.Sprintf("Frame does not contain column with name %s", e.Name)
}

// MismatchedShapeError occurs when an operation requires two Frames of
// identical shape and receives Frames which differ
type MismatchedShapeError struct{ Expected, Actual string }

// Error returns a textual representation of this MismatchedShapeError
func (e MismatchedShapeError) Error() string {
	return fmt.Sprintf("Frame shapes do not match: expected %s but found %s", e.Expected, e.Actual)
}

// UnsupportedOperationError occurs when an operation is applied to a Frame
// family member which cannot perform it
type UnsupportedOperationError struct{ Kind, Op string }

// Error returns a textual representation of this UnsupportedOperationError
func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s frames do not support operation %s", e.Kind, e.Op)
}

// NoMoreRowsError occurs when there are no more rows in a RowIterator
type NoMoreRowsError struct{}

// Error returns a textual representation of this NoMoreRowsError
func (e NoMoreRowsError) Error() string {
	return "No more rows"
}

// KeyTypeError occurs when a Frame is indexed with a key of an unsupported type
type KeyTypeError struct{ Key interface{} }

// Error returns a textual representation of this KeyTypeError
func (e KeyTypeError) Error() string {
	return fmt.Sprintf("Cannot index Frame with key of type %T", e.Key)
}

// IncompatibleValueError occurs when an operator is applied to a cell value
// of an incompatible type
type IncompatibleValueError struct {
	Column string
	Op     string
	Value  interface{}
}

// Error returns a textual representation of this IncompatibleValueError
func (e IncompatibleValueError) Error() string {
	return fmt.Sprintf("Cannot apply %s to value of type %T in column %s", e.Op, e.Value, e.Column)
}
