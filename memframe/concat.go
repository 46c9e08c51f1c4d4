package memframe

import (
	"github.com/hashicorp/go-multierror"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
)

// Concat stacks this Table and others into one Table, in order. The default
// VerticalConcat requires every Frame to share this Table's column names in
// order, and reports all mismatches at once; DiagonalConcat takes the union
// of columns in first-seen order, filling missing cells with nil.
func (t *tableImpl) Concat(others []dataset.Frame, opts ...dataset.ConcatOption) (dataset.Frame, error) {
	conf := dataset.BuildConcatConfig(opts...)
	tables := make([]*tableImpl, 0, len(others)+1)
	tables = append(tables, t)
	for _, other := range others {
		ot, err := collect(other)
		if err != nil {
			return nil, err
		}
		tables = append(tables, ot)
	}
	if conf.Method == dataset.DiagonalConcat {
		return concatDiagonal(tables), nil
	}
	var multierr *multierror.Error
	for _, ot := range tables[1:] {
		if !sameColumns(t, ot) {
			multierr = multierror.Append(multierr, derrors.MismatchedShapeError{
				Expected: t.shape(),
				Actual:   ot.shape(),
			})
		}
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return concatVertical(tables), nil
}

// sameColumns returns true iff two Tables share column names, in order
func sameColumns(l, r *tableImpl) bool {
	if len(l.cols) != len(r.cols) {
		return false
	}
	for i := range l.cols {
		if l.cols[i].name != r.cols[i].name {
			return false
		}
	}
	return true
}

// concatVertical stacks Tables with identical schemas
func concatVertical(tables []*tableImpl) *tableImpl {
	numRows := 0
	for _, t := range tables {
		numRows += t.numRows
	}
	first := tables[0]
	cols := make([]column, len(first.cols))
	for i, col := range first.cols {
		values := make([]interface{}, 0, numRows)
		for _, t := range tables {
			values = append(values, t.cols[i].values...)
		}
		cols[i] = column{name: col.name, values: values}
	}
	return createTableImpl(cols, numRows)
}

// concatDiagonal stacks Tables over the union of their columns, filling
// cells absent from a source Table with nil
func concatDiagonal(tables []*tableImpl) *tableImpl {
	var names []string
	seen := make(map[string]bool)
	numRows := 0
	for _, t := range tables {
		numRows += t.numRows
		for _, col := range t.cols {
			if !seen[col.name] {
				seen[col.name] = true
				names = append(names, col.name)
			}
		}
	}
	cols := make([]column, len(names))
	for i, name := range names {
		values := make([]interface{}, 0, numRows)
		for _, t := range tables {
			if j, ok := t.index[name]; ok {
				values = append(values, t.cols[j].values...)
			} else {
				values = append(values, make([]interface{}, t.numRows)...)
			}
		}
		cols[i] = column{name: name, values: values}
	}
	return createTableImpl(cols, numRows)
}
