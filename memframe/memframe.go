package memframe

import (
	"fmt"
	"log"
	"sort"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
	uuid "github.com/gofrs/uuid"
)

// A Table is an eager, in-memory Frame offering transformations beyond the
// dataset.Frame contract. All methods return fresh Tables; a Table is never
// modified in place.
type Table interface {
	dataset.Frame
	ID() string                                                   // ID retrieves the unique ID of this Table
	Columns() []string                                            // Columns returns the column names of this Table, in order
	Column(name string) ([]interface{}, error)                    // Column returns a copy of a column's values
	Select(names ...string) (dataset.Frame, error)                // Select returns a Table containing only the named columns, in the given order
	WithColumn(name string, values []interface{}) (dataset.Frame, error) // WithColumn returns a Table with a column added or replaced
	Sort(name string) (dataset.Frame, error)                      // Sort returns a Table sorted ascending by the named column
	Head(n int) dataset.Frame                                     // Head returns a Table containing the first n rows
	GroupBy(keys ...string) dataset.Frame                         // GroupBy returns a grouped view of this Table
	GroupByDynamic(index string, every float64) dataset.Frame     // GroupByDynamic returns a windowed grouped view of this Table
	Rolling(index string, window int) dataset.Frame               // Rolling returns a rolling-window view of this Table
	Lazy() dataset.Frame                                          // Lazy returns a deferred view of this Table
}

// column is a named, ordered sequence of cell values
type column struct {
	name   string
	values []interface{}
}

// tableImpl is memframe's internal implementation of Table
type tableImpl struct {
	id      string
	cols    []column
	index   map[string]int
	numRows int
}

// createTableImpl assembles a tableImpl from pre-built columns, without copying
func createTableImpl(cols []column, numRows int) *tableImpl {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Table: %v", err)
	}
	index := make(map[string]int, len(cols))
	for i, col := range cols {
		index[col.name] = i
	}
	return &tableImpl{id: id.String(), cols: cols, index: index, numRows: numRows}
}

// CreateTable creates an eager Table from ordered column names and columnar
// values. values[i] holds the cells for names[i]; all columns must have the
// same length.
func CreateTable(names []string, values [][]interface{}) (Table, error) {
	if len(names) != len(values) {
		return nil, derrors.MismatchedShapeError{
			Expected: fmt.Sprintf("%d columns of values", len(names)),
			Actual:   fmt.Sprintf("%d columns of values", len(values)),
		}
	}
	numRows := 0
	if len(values) > 0 {
		numRows = len(values[0])
	}
	cols := make([]column, len(names))
	for i, name := range names {
		if len(values[i]) != numRows {
			return nil, derrors.MismatchedShapeError{
				Expected: fmt.Sprintf("%d rows in column %s", numRows, name),
				Actual:   fmt.Sprintf("%d rows in column %s", len(values[i]), name),
			}
		}
		copied := make([]interface{}, numRows)
		copy(copied, values[i])
		cols[i] = column{name: name, values: copied}
	}
	return createTableImpl(cols, numRows), nil
}

// shape returns a textual representation of this Table's dimensions
func (t *tableImpl) shape() string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.name
	}
	return fmt.Sprintf("%dx%d %v", t.numRows, len(t.cols), names)
}

// ID retrieves the unique ID of this Table
func (t *tableImpl) ID() string {
	return t.id
}

// Kind returns which family member this Frame is
func (t *tableImpl) Kind() dataset.FrameKind {
	return dataset.EagerFrame
}

// Len returns the number of rows in this Table
func (t *tableImpl) Len() int {
	return t.numRows
}

// IsEmpty returns true iff this Table contains no rows
func (t *tableImpl) IsEmpty() bool {
	return t.numRows == 0
}

// Columns returns the column names of this Table, in order
func (t *tableImpl) Columns() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.name
	}
	return names
}

// Column returns a copy of a column's values
func (t *tableImpl) Column(name string) ([]interface{}, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, derrors.UnknownColumnError{Name: name}
	}
	values := make([]interface{}, t.numRows)
	copy(values, t.cols[i].values)
	return values, nil
}

// row assembles the rowNum-th row of this Table
func (t *tableImpl) row(rowNum int) dataset.Row {
	row := make(dataset.Row, len(t.cols))
	for _, col := range t.cols {
		row[col.name] = col.values[rowNum]
	}
	return row
}

// Get retrieves a column, row or sub-Table by key. A string key returns a
// copy of that column's values; an int key returns a Row, with negative
// values counting back from the end; a []string key returns a new Table of
// just those columns, which is a same-family Frame.
func (t *tableImpl) Get(key interface{}) (interface{}, error) {
	switch k := key.(type) {
	case string:
		return t.Column(k)
	case int:
		rowNum := k
		if rowNum < 0 {
			rowNum += t.numRows
		}
		if rowNum < 0 || rowNum >= t.numRows {
			return nil, fmt.Errorf("row %d is out of range for Table of length %d", k, t.numRows)
		}
		return t.row(rowNum), nil
	case []string:
		return t.Select(k...)
	default:
		return nil, derrors.KeyTypeError{Key: key}
	}
}

// rowIterator iterates over a Table's rows. step is +1 or -1.
type rowIterator struct {
	t    *tableImpl
	next int
	step int
}

// HasNext returns true iff this RowIterator can produce another Row
func (it *rowIterator) HasNext() bool {
	return it.next >= 0 && it.next < it.t.numRows
}

// Next returns the next Row, or errors.NoMoreRowsError if none remain
func (it *rowIterator) Next() (dataset.Row, error) {
	if !it.HasNext() {
		return nil, derrors.NoMoreRowsError{}
	}
	row := it.t.row(it.next)
	it.next += it.step
	return row, nil
}

// Rows iterates over this Table's rows in order
func (t *tableImpl) Rows() dataset.RowIterator {
	return &rowIterator{t: t, next: 0, step: 1}
}

// Reversed iterates over this Table's rows in reverse order
func (t *tableImpl) Reversed() dataset.RowIterator {
	return &rowIterator{t: t, next: t.numRows - 1, step: -1}
}

// Select returns a Table containing only the named columns, in the given order
func (t *tableImpl) Select(names ...string) (dataset.Frame, error) {
	cols := make([]column, len(names))
	for i, name := range names {
		idx, ok := t.index[name]
		if !ok {
			return nil, derrors.UnknownColumnError{Name: name}
		}
		values := make([]interface{}, t.numRows)
		copy(values, t.cols[idx].values)
		cols[i] = column{name: name, values: values}
	}
	return createTableImpl(cols, t.numRows), nil
}

// WithColumn returns a Table with a column added or replaced
func (t *tableImpl) WithColumn(name string, values []interface{}) (dataset.Frame, error) {
	if len(values) != t.numRows {
		return nil, derrors.MismatchedShapeError{
			Expected: fmt.Sprintf("%d rows", t.numRows),
			Actual:   fmt.Sprintf("%d rows", len(values)),
		}
	}
	copied := make([]interface{}, len(values))
	copy(copied, values)
	cols := t.copyColumns()
	if i, ok := t.index[name]; ok {
		cols[i] = column{name: name, values: copied}
	} else {
		cols = append(cols, column{name: name, values: copied})
	}
	return createTableImpl(cols, t.numRows), nil
}

// Sort returns a Table sorted ascending by the named column. Numeric cells
// sort numerically, everything else by string representation.
func (t *tableImpl) Sort(name string) (dataset.Frame, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, derrors.UnknownColumnError{Name: name}
	}
	order := make([]int, t.numRows)
	for i := range order {
		order[i] = i
	}
	keys := t.cols[idx].values
	sort.SliceStable(order, func(i, j int) bool {
		return lessValues(keys[order[i]], keys[order[j]])
	})
	return t.takeRows(order), nil
}

// Head returns a Table containing the first n rows
func (t *tableImpl) Head(n int) dataset.Frame {
	if n > t.numRows {
		n = t.numRows
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return t.takeRows(order)
}

// GroupBy returns a grouped view of this Table
func (t *tableImpl) GroupBy(keys ...string) dataset.Frame {
	return &groupedImpl{src: t, keys: keys, kind: dataset.GroupedFrame}
}

// GroupByDynamic returns a grouped view of this Table whose groups are
// windows of width every over the named numeric index column
func (t *tableImpl) GroupByDynamic(index string, every float64) dataset.Frame {
	return &groupedImpl{src: t, keys: []string{index}, kind: dataset.DynamicGroupedFrame, every: every}
}

// Rolling returns a rolling-window view of this Table over the named index
// column, aggregating the trailing window rows at each row
func (t *tableImpl) Rolling(index string, window int) dataset.Frame {
	return &rollingImpl{src: t, index: index, window: window}
}

// Lazy returns a deferred view of this Table
func (t *tableImpl) Lazy() dataset.Frame {
	return &lazyImpl{src: t}
}

// copyColumns returns a deep copy of this Table's columns
func (t *tableImpl) copyColumns() []column {
	cols := make([]column, len(t.cols))
	for i, col := range t.cols {
		values := make([]interface{}, len(col.values))
		copy(values, col.values)
		cols[i] = column{name: col.name, values: values}
	}
	return cols
}

// takeRows builds a new Table from the given row numbers, in order
func (t *tableImpl) takeRows(order []int) *tableImpl {
	cols := make([]column, len(t.cols))
	for i, col := range t.cols {
		values := make([]interface{}, len(order))
		for j, rowNum := range order {
			values[j] = col.values[rowNum]
		}
		cols[i] = column{name: col.name, values: values}
	}
	return createTableImpl(cols, len(order))
}

// collect reduces any memframe Frame to an eager tableImpl, executing a lazy
// plan when necessary
func collect(f dataset.Frame) (*tableImpl, error) {
	switch frame := f.(type) {
	case *tableImpl:
		return frame, nil
	case *lazyImpl:
		return frame.run()
	default:
		return nil, derrors.UnsupportedOperationError{Kind: f.Kind().String(), Op: "collect"}
	}
}
