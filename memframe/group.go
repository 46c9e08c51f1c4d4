package memframe

import (
	"fmt"
	"math"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
)

// Reduction names how an Aggregation reduces the cells of a group
type Reduction int

const (
	// SumReduction sums numeric cells
	SumReduction Reduction = iota
	// MeanReduction averages numeric cells
	MeanReduction
	// MinReduction takes the smallest cell
	MinReduction
	// MaxReduction takes the largest cell
	MaxReduction
	// CountReduction counts cells
	CountReduction
	// FirstReduction takes the first cell in group order
	FirstReduction
	// LastReduction takes the last cell in group order
	LastReduction
)

// String returns a textual representation of this Reduction
func (r Reduction) String() string {
	switch r {
	case SumReduction:
		return "sum"
	case MeanReduction:
		return "mean"
	case MinReduction:
		return "min"
	case MaxReduction:
		return "max"
	case CountReduction:
		return "count"
	case FirstReduction:
		return "first"
	case LastReduction:
		return "last"
	default:
		return "unknown"
	}
}

// An Aggregation names a source column and the Reduction applied to its
// cells within each group
type Aggregation struct {
	Column string
	Reduce Reduction
}

// Agg is a convenience constructor for Aggregations
func Agg(column string, reduce Reduction) Aggregation {
	return Aggregation{Column: column, Reduce: reduce}
}

// A Grouped is a grouped or windowed view of a Table. It is a same-family
// Frame, but only aggregation operations are meaningful on it; the remaining
// Frame capabilities fail with UnsupportedOperationError.
type Grouped interface {
	dataset.Frame
	Agg(aggs ...Aggregation) (dataset.Frame, error) // Agg reduces each group to one row
	Count() (dataset.Frame, error)                  // Count reduces each group to its row count
}

// reduce applies a Reduction to the cells of one group
func reduce(col string, r Reduction, values []interface{}) (interface{}, error) {
	switch r {
	case CountReduction:
		return len(values), nil
	case FirstReduction:
		if len(values) == 0 {
			return nil, nil
		}
		return values[0], nil
	case LastReduction:
		if len(values) == 0 {
			return nil, nil
		}
		return values[len(values)-1], nil
	case MinReduction, MaxReduction:
		if len(values) == 0 {
			return nil, nil
		}
		best := values[0]
		for _, v := range values[1:] {
			if (r == MinReduction) == lessValues(v, best) {
				best = v
			}
		}
		return best, nil
	default: // SumReduction, MeanReduction
		sum := 0.0
		for _, v := range values {
			f, ok := toFloat(v)
			if !ok {
				return nil, derrors.IncompatibleValueError{Column: col, Op: r.String(), Value: v}
			}
			sum += f
		}
		if r == MeanReduction {
			if len(values) == 0 {
				return nil, nil
			}
			return sum / float64(len(values)), nil
		}
		return sum, nil
	}
}

// groupedImpl is a grouped view of an eager Table: plain groups over key
// columns, or windows of a fixed width over a numeric index column
type groupedImpl struct {
	src   *tableImpl
	keys  []string
	kind  dataset.FrameKind
	every float64 // window width, DynamicGroupedFrame only
}

// groups buckets the source rows. Bucket keys carry the cells identifying
// each group in the aggregated result.
func (g *groupedImpl) groups() ([]*bucket, [][]interface{}, error) {
	keyIdx, err := g.src.keyIndices(g.keys)
	if err != nil {
		return nil, nil, err
	}
	var order []*bucket
	var keyCells [][]interface{}
	buckets := make(map[string]int)
	for i := 0; i < g.src.numRows; i++ {
		var key string
		var cells []interface{}
		if g.kind == dataset.DynamicGroupedFrame {
			v, ok := toFloat(g.src.cols[keyIdx[0]].values[i])
			if !ok {
				return nil, nil, derrors.IncompatibleValueError{
					Column: g.keys[0],
					Op:     "group_by_dynamic",
					Value:  g.src.cols[keyIdx[0]].values[i],
				}
			}
			start := math.Floor(v/g.every) * g.every
			key = fmt.Sprint(start)
			cells = []interface{}{start}
		} else {
			key = keyOf(g.src, keyIdx, i)
			cells = make([]interface{}, len(keyIdx))
			for n, idx := range keyIdx {
				cells[n] = g.src.cols[idx].values[i]
			}
		}
		n, ok := buckets[key]
		if !ok {
			n = len(order)
			buckets[key] = n
			order = append(order, &bucket{key: key})
			keyCells = append(keyCells, cells)
		}
		order[n].rows = append(order[n].rows, i)
	}
	return order, keyCells, nil
}

// Agg reduces each group to one row: the key columns followed by one column
// per Aggregation, named column_reduction
func (g *groupedImpl) Agg(aggs ...Aggregation) (dataset.Frame, error) {
	order, keyCells, err := g.groups()
	if err != nil {
		return nil, err
	}
	cols := make([]column, 0, len(g.keys)+len(aggs))
	for n, key := range g.keys {
		values := make([]interface{}, len(order))
		for i := range order {
			values[i] = keyCells[i][n]
		}
		cols = append(cols, column{name: key, values: values})
	}
	for _, agg := range aggs {
		idx, ok := g.src.index[agg.Column]
		if !ok {
			return nil, derrors.UnknownColumnError{Name: agg.Column}
		}
		values := make([]interface{}, len(order))
		for i, b := range order {
			cells := make([]interface{}, len(b.rows))
			for j, rowNum := range b.rows {
				cells[j] = g.src.cols[idx].values[rowNum]
			}
			v, err := reduce(agg.Column, agg.Reduce, cells)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		cols = append(cols, column{name: agg.Column + "_" + agg.Reduce.String(), values: values})
	}
	return createTableImpl(cols, len(order)), nil
}

// Count reduces each group to its row count
func (g *groupedImpl) Count() (dataset.Frame, error) {
	order, keyCells, err := g.groups()
	if err != nil {
		return nil, err
	}
	cols := make([]column, 0, len(g.keys)+1)
	for n, key := range g.keys {
		values := make([]interface{}, len(order))
		for i := range order {
			values[i] = keyCells[i][n]
		}
		cols = append(cols, column{name: key, values: values})
	}
	counts := make([]interface{}, len(order))
	for i, b := range order {
		counts[i] = len(b.rows)
	}
	cols = append(cols, column{name: "count", values: counts})
	return createTableImpl(cols, len(order)), nil
}

// Kind returns which family member this Frame is
func (g *groupedImpl) Kind() dataset.FrameKind {
	return g.kind
}

// Len returns the number of groups in this view
func (g *groupedImpl) Len() int {
	order, _, err := g.groups()
	if err != nil {
		return 0
	}
	return len(order)
}

// IsEmpty returns true iff this view contains no groups
func (g *groupedImpl) IsEmpty() bool {
	return g.Len() == 0
}

// keyRows lists one Row of key cells per group, in group order
func (g *groupedImpl) keyRows() []dataset.Row {
	_, keyCells, err := g.groups()
	if err != nil {
		return nil
	}
	rows := make([]dataset.Row, len(keyCells))
	for i, cells := range keyCells {
		row := make(dataset.Row, len(g.keys))
		for n, key := range g.keys {
			row[key] = cells[n]
		}
		rows[i] = row
	}
	return rows
}

// Rows iterates over the key cells of each group, in group order
func (g *groupedImpl) Rows() dataset.RowIterator {
	return &sliceRowIterator{rows: g.keyRows(), step: 1}
}

// Reversed iterates over the key cells of each group, in reverse group order
func (g *groupedImpl) Reversed() dataset.RowIterator {
	rows := g.keyRows()
	return &sliceRowIterator{rows: rows, next: len(rows) - 1, step: -1}
}

// Get is not meaningful on a grouped view
func (g *groupedImpl) Get(key interface{}) (interface{}, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.kind.String(), Op: "get"}
}

// Compare is not meaningful on a grouped view
func (g *groupedImpl) Compare(op dataset.CompareOp, other interface{}) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.kind.String(), Op: op.String()}
}

// Operate is not meaningful on a grouped view
func (g *groupedImpl) Operate(op dataset.BinaryOp, other interface{}) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.kind.String(), Op: op.String()}
}

// Join is not meaningful on a grouped view
func (g *groupedImpl) Join(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.kind.String(), Op: "join"}
}

// JoinAsof is not meaningful on a grouped view
func (g *groupedImpl) JoinAsof(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.kind.String(), Op: "join_asof"}
}

// PartitionBy is not meaningful on a grouped view
func (g *groupedImpl) PartitionBy(keys []string, opts ...dataset.PartitionOption) (*dataset.Partitions, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.kind.String(), Op: "partition_by"}
}

// Concat is not meaningful on a grouped view
func (g *groupedImpl) Concat(others []dataset.Frame, opts ...dataset.ConcatOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: g.kind.String(), Op: "concat"}
}

// sliceRowIterator iterates over a pre-built slice of Rows
type sliceRowIterator struct {
	rows []dataset.Row
	next int
	step int
}

// HasNext returns true iff this RowIterator can produce another Row
func (it *sliceRowIterator) HasNext() bool {
	return it.next >= 0 && it.next < len(it.rows)
}

// Next returns the next Row, or errors.NoMoreRowsError if none remain
func (it *sliceRowIterator) Next() (dataset.Row, error) {
	if !it.HasNext() {
		return nil, derrors.NoMoreRowsError{}
	}
	row := it.rows[it.next]
	it.next += it.step
	return row, nil
}

// rollingImpl is a rolling-window view of an eager Table: each source row
// aggregates the window rows ending at it
type rollingImpl struct {
	src    *tableImpl
	index  string
	window int
}

// Agg reduces each trailing window to one row: the index column followed by
// one column per Aggregation, named column_reduction
func (r *rollingImpl) Agg(aggs ...Aggregation) (dataset.Frame, error) {
	indexValues, err := r.src.Column(r.index)
	if err != nil {
		return nil, err
	}
	cols := make([]column, 0, len(aggs)+1)
	cols = append(cols, column{name: r.index, values: indexValues})
	for _, agg := range aggs {
		idx, ok := r.src.index[agg.Column]
		if !ok {
			return nil, derrors.UnknownColumnError{Name: agg.Column}
		}
		values := make([]interface{}, r.src.numRows)
		for i := 0; i < r.src.numRows; i++ {
			start := i - r.window + 1
			if start < 0 {
				start = 0
			}
			v, err := reduce(agg.Column, agg.Reduce, r.src.cols[idx].values[start:i+1])
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		cols = append(cols, column{name: agg.Column + "_" + agg.Reduce.String(), values: values})
	}
	return createTableImpl(cols, r.src.numRows), nil
}

// Count reduces each trailing window to its row count
func (r *rollingImpl) Count() (dataset.Frame, error) {
	return r.Agg(Agg(r.index, CountReduction))
}

// Kind returns which family member this Frame is
func (r *rollingImpl) Kind() dataset.FrameKind {
	return dataset.RollingFrame
}

// Len returns the number of windows in this view, one per source row
func (r *rollingImpl) Len() int {
	return r.src.numRows
}

// IsEmpty returns true iff this view contains no windows
func (r *rollingImpl) IsEmpty() bool {
	return r.src.numRows == 0
}

// Rows iterates over the source rows anchoring each window
func (r *rollingImpl) Rows() dataset.RowIterator {
	return r.src.Rows()
}

// Reversed iterates over the source rows anchoring each window, in reverse
func (r *rollingImpl) Reversed() dataset.RowIterator {
	return r.src.Reversed()
}

// Get is not meaningful on a rolling view
func (r *rollingImpl) Get(key interface{}) (interface{}, error) {
	return nil, derrors.UnsupportedOperationError{Kind: r.Kind().String(), Op: "get"}
}

// Compare is not meaningful on a rolling view
func (r *rollingImpl) Compare(op dataset.CompareOp, other interface{}) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: r.Kind().String(), Op: op.String()}
}

// Operate is not meaningful on a rolling view
func (r *rollingImpl) Operate(op dataset.BinaryOp, other interface{}) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: r.Kind().String(), Op: op.String()}
}

// Join is not meaningful on a rolling view
func (r *rollingImpl) Join(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: r.Kind().String(), Op: "join"}
}

// JoinAsof is not meaningful on a rolling view
func (r *rollingImpl) JoinAsof(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: r.Kind().String(), Op: "join_asof"}
}

// PartitionBy is not meaningful on a rolling view
func (r *rollingImpl) PartitionBy(keys []string, opts ...dataset.PartitionOption) (*dataset.Partitions, error) {
	return nil, derrors.UnsupportedOperationError{Kind: r.Kind().String(), Op: "partition_by"}
}

// Concat is not meaningful on a rolling view
func (r *rollingImpl) Concat(others []dataset.Frame, opts ...dataset.ConcatOption) (dataset.Frame, error) {
	return nil, derrors.UnsupportedOperationError{Kind: r.Kind().String(), Op: "concat"}
}
