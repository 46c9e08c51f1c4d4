package memframe

import (
	"fmt"
	"math"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
	"golang.org/x/sync/errgroup"
)

// toFloat coerces a cell value to float64, returning false for non-numeric cells
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// lessValues orders two cell values: numerically when both coerce, otherwise
// by string representation
func lessValues(l, r interface{}) bool {
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if lok && rok {
		return lf < rf
	}
	return fmt.Sprint(l) < fmt.Sprint(r)
}

// compareCells applies a CompareOp to two cell values. Numbers compare
// numerically, strings lexically, booleans for (in)equality only. Cells of
// differing types are unequal, and refuse ordering comparisons.
func compareCells(op dataset.CompareOp, col string, l, r interface{}) (bool, error) {
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if lok && rok {
		switch op {
		case dataset.Eq:
			return lf == rf, nil
		case dataset.Neq:
			return lf != rf, nil
		case dataset.Gt:
			return lf > rf, nil
		case dataset.Lt:
			return lf < rf, nil
		case dataset.GtEq:
			return lf >= rf, nil
		case dataset.LtEq:
			return lf <= rf, nil
		}
	}
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch op {
			case dataset.Eq:
				return ls == rs, nil
			case dataset.Neq:
				return ls != rs, nil
			case dataset.Gt:
				return ls > rs, nil
			case dataset.Lt:
				return ls < rs, nil
			case dataset.GtEq:
				return ls >= rs, nil
			case dataset.LtEq:
				return ls <= rs, nil
			}
		}
	}
	if lb, ok := l.(bool); ok {
		if rb, ok := r.(bool); ok {
			switch op {
			case dataset.Eq:
				return lb == rb, nil
			case dataset.Neq:
				return lb != rb, nil
			}
			return false, derrors.IncompatibleValueError{Column: col, Op: op.String(), Value: l}
		}
	}
	switch op {
	case dataset.Eq:
		return false, nil
	case dataset.Neq:
		return true, nil
	default:
		return false, derrors.IncompatibleValueError{Column: col, Op: op.String(), Value: l}
	}
}

// operateCells applies a BinaryOp to two cell values. The reflected forms
// swap operands first. Add concatenates when both cells are strings;
// everything else requires numeric cells.
func operateCells(op dataset.BinaryOp, col string, l, r interface{}) (interface{}, error) {
	switch op {
	case dataset.RMul:
		return operateCells(dataset.Mul, col, r, l)
	case dataset.RAdd:
		return operateCells(dataset.Add, col, r, l)
	}
	if op == dataset.Add {
		if ls, ok := l.(string); ok {
			if rs, ok := r.(string); ok {
				return ls + rs, nil
			}
		}
	}
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if !lok {
		return nil, derrors.IncompatibleValueError{Column: col, Op: op.String(), Value: l}
	}
	if !rok {
		return nil, derrors.IncompatibleValueError{Column: col, Op: op.String(), Value: r}
	}
	switch op {
	case dataset.FloorDiv:
		return math.Floor(lf / rf), nil
	case dataset.TrueDiv:
		return lf / rf, nil
	case dataset.Mul:
		return lf * rf, nil
	case dataset.Add:
		return lf + rf, nil
	case dataset.Sub:
		return lf - rf, nil
	case dataset.Mod:
		return math.Mod(lf, rf), nil
	default:
		return nil, derrors.IncompatibleValueError{Column: col, Op: op.String(), Value: l}
	}
}

// rhsColumns resolves the right-hand operand of a cellwise operation to one
// value slice per column of t. A Frame operand must match t's shape exactly;
// anything else is broadcast to every cell.
func (t *tableImpl) rhsColumns(other interface{}) ([][]interface{}, error) {
	frame, ok := other.(dataset.Frame)
	if !ok {
		return nil, nil // scalar broadcast
	}
	rt, err := collect(frame)
	if err != nil {
		return nil, err
	}
	if rt.numRows != t.numRows || len(rt.cols) != len(t.cols) {
		return nil, derrors.MismatchedShapeError{Expected: t.shape(), Actual: rt.shape()}
	}
	rhs := make([][]interface{}, len(t.cols))
	for i, col := range t.cols {
		j, ok := rt.index[col.name]
		if !ok {
			return nil, derrors.MismatchedShapeError{Expected: t.shape(), Actual: rt.shape()}
		}
		rhs[i] = rt.cols[j].values
	}
	return rhs, nil
}

// cellwise applies fn to every cell of t, one goroutine per column. rhs is
// nil for scalar broadcasts, otherwise one value slice per column.
func (t *tableImpl) cellwise(other interface{}, fn func(col string, l, r interface{}) (interface{}, error)) (dataset.Frame, error) {
	rhs, err := t.rhsColumns(other)
	if err != nil {
		return nil, err
	}
	cols := make([]column, len(t.cols))
	var g errgroup.Group
	for i := range t.cols {
		i := i
		g.Go(func() error {
			src := t.cols[i]
			values := make([]interface{}, t.numRows)
			for j, l := range src.values {
				r := other
				if rhs != nil {
					r = rhs[i][j]
				}
				v, err := fn(src.name, l, r)
				if err != nil {
					return err
				}
				values[j] = v
			}
			cols[i] = column{name: src.name, values: values}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return createTableImpl(cols, t.numRows), nil
}

// Compare applies a named comparison between this Table and other, producing
// a boolean Table of the same shape. A Frame operand is compared cell by
// cell; anything else is compared against every cell.
func (t *tableImpl) Compare(op dataset.CompareOp, other interface{}) (dataset.Frame, error) {
	return t.cellwise(other, func(col string, l, r interface{}) (interface{}, error) {
		return compareCells(op, col, l, r)
	})
}

// Operate applies a named arithmetic operator between this Table and other,
// producing a Table of the same shape. A Frame operand is combined cell by
// cell; anything else is combined with every cell.
func (t *tableImpl) Operate(op dataset.BinaryOp, other interface{}) (dataset.Frame, error) {
	return t.cellwise(other, func(col string, l, r interface{}) (interface{}, error) {
		return operateCells(op, col, l, r)
	})
}
