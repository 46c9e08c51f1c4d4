package dataset

import (
	"fmt"

	derrors "github.com/go-dataset/dataset/errors"
)

// Metadata is an open set of caller-supplied fields attached to a Dataset at
// construction time and carried unchanged into every derived Dataset.
type Metadata map[string]interface{}

// clone returns a copy of this Metadata. A nil Metadata clones to an empty one.
func (m Metadata) clone() Metadata {
	copied := make(Metadata, len(m))
	for k, v := range m {
		copied[k] = v
	}
	return copied
}

// A Dataset wraps a single Frame together with arbitrary metadata, behaving
// like the Frame for read operations while guaranteeing that every operation
// which would produce a new same-family Frame instead produces a new Dataset
// wrapping that Frame, with the original Dataset's metadata carried forward.
//
// A Dataset is immutable: neither its Frame nor its Metadata can be replaced
// or mutated in place after construction. Every producing operation returns a
// fresh Dataset. Concurrent reads are therefore as safe as concurrent reads
// of the wrapped Frame.
type Dataset struct {
	frame Frame
	meta  Metadata
}

// New constructs a Dataset wrapping frame. meta is copied, so later changes
// to the supplied map do not affect the Dataset.
func New(frame Frame, meta Metadata) *Dataset {
	return &Dataset{frame: frame, meta: meta.clone()}
}

// derive returns a new Dataset wrapping frame, carrying this Dataset's
// metadata forward. The metadata map is shared between derivations, which is
// safe because no Dataset ever mutates it.
func (d *Dataset) derive(frame Frame) *Dataset {
	return &Dataset{frame: frame, meta: d.meta}
}

// Frame returns the wrapped Frame
func (d *Dataset) Frame() Frame {
	return d.frame
}

// Meta returns a copy of this Dataset's metadata
func (d *Dataset) Meta() Metadata {
	return d.meta.clone()
}

// MetaValue retrieves a single metadata field by name
func (d *Dataset) MetaValue(key string) (interface{}, bool) {
	v, ok := d.meta[key]
	return v, ok
}

// WithMeta returns a new Dataset with the same Frame and this Dataset's
// metadata merged with overrides. Fields in overrides win.
func (d *Dataset) WithMeta(overrides Metadata) *Dataset {
	merged := d.meta.clone()
	for k, v := range overrides {
		merged[k] = v
	}
	return &Dataset{frame: d.frame, meta: merged}
}

// WithFrame returns a new Dataset wrapping frame, keeping this Dataset's metadata
func (d *Dataset) WithFrame(frame Frame) *Dataset {
	return d.derive(frame)
}

// Copy returns a new Dataset with the same Frame and metadata. The Frame
// itself is not copied.
func (d *Dataset) Copy() *Dataset {
	return d.derive(d.frame)
}

// Apply invokes fn on the wrapped Frame. A Frame-valued result is re-wrapped
// into a new Dataset carrying this Dataset's metadata; any other result is
// returned untouched. Failures from fn propagate unchanged. This is the
// generic delegation path for engine operations beyond the Frame contract.
func (d *Dataset) Apply(fn func(Frame) (interface{}, error)) (interface{}, error) {
	result, err := fn(d.frame)
	if err != nil {
		return nil, err
	}
	if frame, ok := result.(Frame); ok {
		return d.derive(frame), nil
	}
	return result, nil
}

// Transform invokes fn on the wrapped Frame and re-wraps the resulting Frame
// into a new Dataset carrying this Dataset's metadata
func (d *Dataset) Transform(fn func(Frame) (Frame, error)) (*Dataset, error) {
	frame, err := fn(d.frame)
	if err != nil {
		return nil, err
	}
	return d.derive(frame), nil
}

// unwrap reduces a Dataset operand to its Frame, passing anything else through
func unwrap(other interface{}) interface{} {
	if ds, ok := other.(*Dataset); ok {
		return ds.frame
	}
	return other
}

// Compare applies a named comparison between this Dataset and other. A
// Dataset operand is compared against its Frame; anything else is compared
// against directly. The boolean-valued result Frame is re-wrapped with this
// Dataset's metadata.
func (d *Dataset) Compare(op CompareOp, other interface{}) (*Dataset, error) {
	result, err := d.frame.Compare(op, unwrap(other))
	if err != nil {
		return nil, err
	}
	return d.derive(result), nil
}

// Eq compares this Dataset for equality with other
func (d *Dataset) Eq(other interface{}) (*Dataset, error) {
	return d.Compare(Eq, other)
}

// Neq compares this Dataset for inequality with other
func (d *Dataset) Neq(other interface{}) (*Dataset, error) {
	return d.Compare(Neq, other)
}

// Gt compares this Dataset as strictly greater than other
func (d *Dataset) Gt(other interface{}) (*Dataset, error) {
	return d.Compare(Gt, other)
}

// Lt compares this Dataset as strictly less than other
func (d *Dataset) Lt(other interface{}) (*Dataset, error) {
	return d.Compare(Lt, other)
}

// GtEq compares this Dataset as greater than or equal to other
func (d *Dataset) GtEq(other interface{}) (*Dataset, error) {
	return d.Compare(GtEq, other)
}

// LtEq compares this Dataset as less than or equal to other
func (d *Dataset) LtEq(other interface{}) (*Dataset, error) {
	return d.Compare(LtEq, other)
}

// Operate applies a named arithmetic operator between this Dataset and other.
// A Dataset operand is operated against via its Frame. The result is always
// re-wrapped with this Dataset's metadata, never the other operand's.
func (d *Dataset) Operate(op BinaryOp, other interface{}) (*Dataset, error) {
	result, err := d.frame.Operate(op, unwrap(other))
	if err != nil {
		return nil, err
	}
	return d.derive(result), nil
}

// FloorDiv divides this Dataset by other, flooring the result
func (d *Dataset) FloorDiv(other interface{}) (*Dataset, error) {
	return d.Operate(FloorDiv, other)
}

// TrueDiv divides this Dataset by other
func (d *Dataset) TrueDiv(other interface{}) (*Dataset, error) {
	return d.Operate(TrueDiv, other)
}

// Mul multiplies this Dataset by other
func (d *Dataset) Mul(other interface{}) (*Dataset, error) {
	return d.Operate(Mul, other)
}

// RMul multiplies other by this Dataset (the reflected form of Mul)
func (d *Dataset) RMul(other interface{}) (*Dataset, error) {
	return d.Operate(RMul, other)
}

// Add adds other to this Dataset
func (d *Dataset) Add(other interface{}) (*Dataset, error) {
	return d.Operate(Add, other)
}

// RAdd adds this Dataset to other (the reflected form of Add)
func (d *Dataset) RAdd(other interface{}) (*Dataset, error) {
	return d.Operate(RAdd, other)
}

// Sub subtracts other from this Dataset
func (d *Dataset) Sub(other interface{}) (*Dataset, error) {
	return d.Operate(Sub, other)
}

// Mod computes this Dataset modulo other
func (d *Dataset) Mod(other interface{}) (*Dataset, error) {
	return d.Operate(Mod, other)
}

// Get retrieves a column, row or sub-Frame from the wrapped Frame by key.
// A Frame-valued result is re-wrapped with this Dataset's metadata; plain
// values pass through untouched.
func (d *Dataset) Get(key interface{}) (interface{}, error) {
	return d.Apply(func(f Frame) (interface{}, error) {
		return f.Get(key)
	})
}

// Len returns the number of rows in the wrapped Frame
func (d *Dataset) Len() int {
	return d.frame.Len()
}

// IsEmpty returns true iff the wrapped Frame contains no rows
func (d *Dataset) IsEmpty() bool {
	return d.frame.IsEmpty()
}

// Rows iterates over the wrapped Frame's rows in order
func (d *Dataset) Rows() RowIterator {
	return d.frame.Rows()
}

// Reversed iterates over the wrapped Frame's rows in reverse order
func (d *Dataset) Reversed() RowIterator {
	return d.frame.Reversed()
}

// Join performs an equality join between this Dataset and other's Frame,
// forwarding opts verbatim. The result carries this Dataset's metadata.
func (d *Dataset) Join(other *Dataset, opts ...JoinOption) (*Dataset, error) {
	result, err := d.frame.Join(other.frame, opts...)
	if err != nil {
		return nil, err
	}
	return d.derive(result), nil
}

// JoinAsof performs a nearest-key join between this Dataset and other's
// Frame, forwarding opts verbatim. The result carries this Dataset's metadata.
func (d *Dataset) JoinAsof(other *Dataset, opts ...JoinOption) (*Dataset, error) {
	result, err := d.frame.JoinAsof(other.frame, opts...)
	if err != nil {
		return nil, err
	}
	return d.derive(result), nil
}

// PartitionedDataset mirrors the shape of a Frame.PartitionBy result, with
// every partition Frame wrapped in a Dataset carrying the source Dataset's
// metadata. Exactly one of List or Keyed is populated, according to Shape.
type PartitionedDataset struct {
	Shape PartitionShape
	List  []*Dataset
	Keyed map[string]*Dataset
}

// PartitionBy splits the wrapped Frame by key columns, wrapping each
// partition in a Dataset with this Dataset's metadata and preserving the
// shape (ordered list or keyed mapping) the engine returned. A result of any
// other shape means the engine broke its contract, and panics.
func (d *Dataset) PartitionBy(keys []string, opts ...PartitionOption) (*PartitionedDataset, error) {
	parts, err := d.frame.PartitionBy(keys, opts...)
	if err != nil {
		return nil, err
	}
	switch parts.Shape {
	case ListShape:
		wrapped := make([]*Dataset, len(parts.List))
		for i, frame := range parts.List {
			wrapped[i] = d.derive(frame)
		}
		return &PartitionedDataset{Shape: ListShape, List: wrapped}, nil
	case KeyedShape:
		wrapped := make(map[string]*Dataset, len(parts.Keyed))
		for key, frame := range parts.Keyed {
			wrapped[key] = d.derive(frame)
		}
		return &PartitionedDataset{Shape: KeyedShape, Keyed: wrapped}, nil
	default:
		panic(fmt.Errorf("unknown result shape %d from PartitionBy", parts.Shape))
	}
}

// GobEncode always fails: Dataset state capture is deliberately unsupported,
// since metadata has no generally-valid serialized form
func (d *Dataset) GobEncode() ([]byte, error) {
	return nil, derrors.NotSerializableError{}
}

// MarshalBinary always fails: Dataset state capture is deliberately unsupported
func (d *Dataset) MarshalBinary() ([]byte, error) {
	return nil, derrors.NotSerializableError{}
}

// MarshalJSON always fails: Dataset state capture is deliberately unsupported
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return nil, derrors.NotSerializableError{}
}

// Concat concatenates the Frames of items into one Frame via the engine's
// concatenation, forwarding opts verbatim, and wraps the result in a Dataset
// carrying base's metadata. base contributes metadata only, not data, and
// need not appear in items.
func Concat(items []*Dataset, base *Dataset, opts ...ConcatOption) (*Dataset, error) {
	if len(items) == 0 {
		return nil, derrors.EmptyConcatError{}
	}
	rest := make([]Frame, len(items)-1)
	for i, item := range items[1:] {
		rest[i] = item.frame
	}
	combined, err := items[0].frame.Concat(rest, opts...)
	if err != nil {
		return nil, err
	}
	return base.derive(combined), nil
}
