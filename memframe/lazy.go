package memframe

import (
	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
)

// planStep is one deferred transformation in a lazy plan
type planStep func(*tableImpl) (*tableImpl, error)

// A LazyTable is a deferred Frame: transformations append to a plan which
// only executes on Collect. Plan failures surface at collection time.
type LazyTable interface {
	dataset.Frame
	Collect() (dataset.Frame, error)                      // Collect executes the plan, producing an eager Table
	Select(names ...string) dataset.Frame                 // Select defers a column selection
	WithColumn(name string, values []interface{}) dataset.Frame // WithColumn defers adding or replacing a column
	Sort(name string) dataset.Frame                       // Sort defers an ascending sort
	Head(n int) dataset.Frame                             // Head defers truncation to the first n rows
	GroupBy(keys ...string) dataset.Frame                 // GroupBy returns a lazy grouped view
}

// lazyImpl is memframe's internal implementation of LazyTable
type lazyImpl struct {
	src  *tableImpl
	plan []planStep
}

// with returns a new lazyImpl with step appended. The existing plan is never
// extended in place, so earlier LazyTables are unaffected.
func (l *lazyImpl) with(step planStep) *lazyImpl {
	plan := make([]planStep, len(l.plan), len(l.plan)+1)
	copy(plan, l.plan)
	return &lazyImpl{src: l.src, plan: append(plan, step)}
}

// run executes the plan against the source Table
func (l *lazyImpl) run() (*tableImpl, error) {
	t := l.src
	for _, step := range l.plan {
		next, err := step(t)
		if err != nil {
			return nil, err
		}
		t = next
	}
	return t, nil
}

// Collect executes the plan, producing an eager Table
func (l *lazyImpl) Collect() (dataset.Frame, error) {
	return l.run()
}

// asStep adapts a Frame-returning transformation into a planStep
func asStep(fn func(*tableImpl) (dataset.Frame, error)) planStep {
	return func(t *tableImpl) (*tableImpl, error) {
		result, err := fn(t)
		if err != nil {
			return nil, err
		}
		return collect(result)
	}
}

// Select defers a column selection
func (l *lazyImpl) Select(names ...string) dataset.Frame {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.Select(names...)
	}))
}

// WithColumn defers adding or replacing a column
func (l *lazyImpl) WithColumn(name string, values []interface{}) dataset.Frame {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.WithColumn(name, values)
	}))
}

// Sort defers an ascending sort by the named column
func (l *lazyImpl) Sort(name string) dataset.Frame {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.Sort(name)
	}))
}

// Head defers truncation to the first n rows
func (l *lazyImpl) Head(n int) dataset.Frame {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.Head(n), nil
	}))
}

// GroupBy returns a lazy grouped view of this LazyTable
func (l *lazyImpl) GroupBy(keys ...string) dataset.Frame {
	return &lazyGroupedImpl{src: l, keys: keys}
}

// Kind returns which family member this Frame is
func (l *lazyImpl) Kind() dataset.FrameKind {
	return dataset.LazyFrame
}

// Len returns the number of rows the plan produces. A failing plan counts as
// empty here; Collect to observe the failure.
func (l *lazyImpl) Len() int {
	t, err := l.run()
	if err != nil {
		return 0
	}
	return t.numRows
}

// IsEmpty returns true iff the plan produces no rows
func (l *lazyImpl) IsEmpty() bool {
	return l.Len() == 0
}

// Get executes the plan and retrieves a column, row or sub-Frame by key
func (l *lazyImpl) Get(key interface{}) (interface{}, error) {
	t, err := l.run()
	if err != nil {
		return nil, err
	}
	return t.Get(key)
}

// Rows executes the plan and iterates over the resulting rows
func (l *lazyImpl) Rows() dataset.RowIterator {
	t, err := l.run()
	if err != nil {
		return &errRowIterator{err: err}
	}
	return t.Rows()
}

// Reversed executes the plan and iterates over the resulting rows in reverse
func (l *lazyImpl) Reversed() dataset.RowIterator {
	t, err := l.run()
	if err != nil {
		return &errRowIterator{err: err}
	}
	return t.Reversed()
}

// Compare defers a named comparison against a Frame or plain value
func (l *lazyImpl) Compare(op dataset.CompareOp, other interface{}) (dataset.Frame, error) {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.Compare(op, other)
	})), nil
}

// Operate defers a named arithmetic operator against a Frame or plain value
func (l *lazyImpl) Operate(op dataset.BinaryOp, other interface{}) (dataset.Frame, error) {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.Operate(op, other)
	})), nil
}

// Join defers an equality join against another same-family Frame
func (l *lazyImpl) Join(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.Join(other, opts...)
	})), nil
}

// JoinAsof defers a nearest-key join against another same-family Frame
func (l *lazyImpl) JoinAsof(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.JoinAsof(other, opts...)
	})), nil
}

// PartitionBy executes the plan and splits the result by key columns
func (l *lazyImpl) PartitionBy(keys []string, opts ...dataset.PartitionOption) (*dataset.Partitions, error) {
	t, err := l.run()
	if err != nil {
		return nil, err
	}
	return t.PartitionBy(keys, opts...)
}

// Concat defers combining this LazyTable with other Frames
func (l *lazyImpl) Concat(others []dataset.Frame, opts ...dataset.ConcatOption) (dataset.Frame, error) {
	return l.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		return t.Concat(others, opts...)
	})), nil
}

// errRowIterator delivers a plan failure through the RowIterator contract
type errRowIterator struct {
	err  error
	done bool
}

// HasNext returns true until the failure has been delivered
func (it *errRowIterator) HasNext() bool {
	return !it.done
}

// Next returns the plan failure
func (it *errRowIterator) Next() (dataset.Row, error) {
	it.done = true
	return nil, it.err
}

// lazyGroupedImpl is a grouped view of a LazyTable. Aggregations defer along
// with the rest of the plan.
type lazyGroupedImpl struct {
	src  *lazyImpl
	keys []string
}

// Agg defers reducing each group to one row
func (g *lazyGroupedImpl) Agg(aggs ...Aggregation) (dataset.Frame, error) {
	return g.src.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		grouped := &groupedImpl{src: t, keys: g.keys, kind: dataset.GroupedFrame}
		return grouped.Agg(aggs...)
	})), nil
}

// Count defers reducing each group to its row count
func (g *lazyGroupedImpl) Count() (dataset.Frame, error) {
	return g.src.with(asStep(func(t *tableImpl) (dataset.Frame, error) {
		grouped := &groupedImpl{src: t, keys: g.keys, kind: dataset.GroupedFrame}
		return grouped.Count()
	})), nil
}

// materialize executes the underlying plan and produces the eager grouped view
func (g *lazyGroupedImpl) materialize() (*groupedImpl, error) {
	t, err := g.src.run()
	if err != nil {
		return nil, err
	}
	return &groupedImpl{src: t, keys: g.keys, kind: dataset.GroupedFrame}, nil
}

// Kind returns which family member this Frame is
func (g *lazyGroupedImpl) Kind() dataset.FrameKind {
	return dataset.LazyGroupedFrame
}

// Len returns the number of groups the plan produces. A failing plan counts
// as empty here.
func (g *lazyGroupedImpl) Len() int {
	grouped, err := g.materialize()
	if err != nil {
		return 0
	}
	return grouped.Len()
}

// IsEmpty returns true iff the plan produces no groups
func (g *lazyGroupedImpl) IsEmpty() bool {
	return g.Len() == 0
}

// Get is not meaningful on a lazy grouped view
func (g *lazyGroupedImpl) Get(key interface{}) (interface{}, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.Kind().String(), Op: "get"}
}

// Rows executes the plan and iterates over the key cells of each group
func (g *lazyGroupedImpl) Rows() dataset.RowIterator {
	grouped, err := g.materialize()
	if err != nil {
		return &errRowIterator{err: err}
	}
	return grouped.Rows()
}

// Reversed executes the plan and iterates over the key cells of each group, in reverse
func (g *lazyGroupedImpl) Reversed() dataset.RowIterator {
	grouped, err := g.materialize()
	if err != nil {
		return &errRowIterator{err: err}
	}
	return grouped.Reversed()
}

// Compare is not meaningful on a lazy grouped view
func (g *lazyGroupedImpl) Compare(op dataset.CompareOp, other interface{}) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.Kind().String(), Op: op.String()}
}

// Operate is not meaningful on a lazy grouped view
func (g *lazyGroupedImpl) Operate(op dataset.BinaryOp, other interface{}) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.Kind().String(), Op: op.String()}
}

// Join is not meaningful on a lazy grouped view
func (g *lazyGroupedImpl) Join(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.Kind().String(), Op: "join"}
}

// JoinAsof is not meaningful on a lazy grouped view
func (g *lazyGroupedImpl) JoinAsof(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.Kind().String(), Op: "join_asof"}
}

// PartitionBy is not meaningful on a lazy grouped view
func (g *lazyGroupedImpl) PartitionBy(keys []string, opts ...dataset.PartitionOption) (*dataset.Partitions, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.Kind().String(), Op: "partition_by"}
}

// Concat is not meaningful on a lazy grouped view
func (g *lazyGroupedImpl) Concat(others []dataset.Frame, opts ...dataset.ConcatOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.Kind().String(), Op: "concat"}
}
