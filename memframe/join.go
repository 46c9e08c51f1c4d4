package memframe

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
)

// keyOf formats the key-column cells of a row into a single partition/join key
func keyOf(t *tableImpl, keyIdx []int, rowNum int) string {
	if len(keyIdx) == 1 {
		return fmt.Sprint(t.cols[keyIdx[0]].values[rowNum])
	}
	key := ""
	for n, i := range keyIdx {
		if n > 0 {
			key += ","
		}
		key += fmt.Sprint(t.cols[i].values[rowNum])
	}
	return key
}

// keyIndices resolves key column names to column indices
func (t *tableImpl) keyIndices(keys []string) ([]int, error) {
	idx := make([]int, len(keys))
	for i, key := range keys {
		j, ok := t.index[key]
		if !ok {
			return nil, derrors.UnknownColumnError{Name: key}
		}
		idx[i] = j
	}
	return idx, nil
}

// rightColumns lists other's columns to carry into a join result, renaming
// collisions with this Table's columns using suffix. Key columns are dropped,
// since the left side already carries them.
func (t *tableImpl) rightColumns(other *tableImpl, on []string, suffix string) []column {
	onSet := make(map[string]bool, len(on))
	for _, name := range on {
		onSet[name] = true
	}
	var cols []column
	for _, col := range other.cols {
		if onSet[col.name] {
			continue
		}
		name := col.name
		if _, collides := t.index[name]; collides {
			name += suffix
		}
		cols = append(cols, column{name: name, values: col.values})
	}
	return cols
}

// Join performs an equality join between this Table and another same-family
// Frame. InnerJoin keeps matching rows only; LeftJoin keeps every left row,
// filling unmatched right-hand cells with nil. Rows matching multiple
// right-hand rows are emitted once per match, in right-hand order.
func (t *tableImpl) Join(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	conf := dataset.BuildJoinConfig(opts...)
	if len(conf.On) == 0 {
		return nil, fmt.Errorf("join requires at least one key column")
	}
	rt, err := collect(other)
	if err != nil {
		return nil, err
	}
	leftIdx, err := t.keyIndices(conf.On)
	if err != nil {
		return nil, err
	}
	rightIdx, err := rt.keyIndices(conf.On)
	if err != nil {
		return nil, err
	}
	// index right-hand rows by key
	rightRows := make(map[string][]int, rt.numRows)
	for i := 0; i < rt.numRows; i++ {
		key := keyOf(rt, rightIdx, i)
		rightRows[key] = append(rightRows[key], i)
	}
	rightCols := t.rightColumns(rt, conf.On, conf.Suffix)
	var leftOrder, rightOrder []int // rightOrder holds -1 for unmatched left rows
	for i := 0; i < t.numRows; i++ {
		matches := rightRows[keyOf(t, leftIdx, i)]
		if len(matches) == 0 {
			if conf.How == dataset.LeftJoin {
				leftOrder = append(leftOrder, i)
				rightOrder = append(rightOrder, -1)
			}
			continue
		}
		for _, j := range matches {
			leftOrder = append(leftOrder, i)
			rightOrder = append(rightOrder, j)
		}
	}
	return t.assembleJoin(leftOrder, rightOrder, rightCols), nil
}

// JoinAsof performs a nearest-key join between this Table and another
// same-family Frame over a single numeric key column, which both sides must
// be sorted ascending by. Every left row is kept; unmatched or
// beyond-tolerance rows carry nil right-hand cells.
func (t *tableImpl) JoinAsof(other dataset.Frame, opts ...dataset.JoinOption) (dataset.Frame, error) {
	conf := dataset.BuildJoinConfig(opts...)
	if len(conf.On) != 1 {
		return nil, fmt.Errorf("asof join requires exactly one key column")
	}
	rt, err := collect(other)
	if err != nil {
		return nil, err
	}
	key := conf.On[0]
	leftKeys, err := t.numericColumn(key)
	if err != nil {
		return nil, err
	}
	rightKeys, err := rt.numericColumn(key)
	if err != nil {
		return nil, err
	}
	rightCols := t.rightColumns(rt, conf.On, conf.Suffix)
	leftOrder := make([]int, t.numRows)
	rightOrder := make([]int, t.numRows)
	for i := range leftKeys {
		leftOrder[i] = i
		rightOrder[i] = asofMatch(leftKeys[i], rightKeys, conf)
	}
	return t.assembleJoin(leftOrder, rightOrder, rightCols), nil
}

// asofMatch finds the right-hand row matched by an asof join for one left
// key, or -1 if none qualifies
func asofMatch(key float64, rightKeys []float64, conf *dataset.JoinConfig) int {
	var match int
	if conf.Strategy == dataset.AsofForward {
		// least right key >= key
		match = sort.SearchFloat64s(rightKeys, key)
	} else {
		// greatest right key <= key
		match = sort.SearchFloat64s(rightKeys, key)
		if match == len(rightKeys) || rightKeys[match] > key {
			match--
		}
	}
	if match < 0 || match >= len(rightKeys) {
		return -1
	}
	if conf.HasTolerance && math.Abs(rightKeys[match]-key) > conf.Tolerance {
		return -1
	}
	return match
}

// numericColumn returns a column coerced to float64
func (t *tableImpl) numericColumn(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, derrors.UnknownColumnError{Name: name}
	}
	values := make([]float64, t.numRows)
	for j, v := range t.cols[i].values {
		f, ok := toFloat(v)
		if !ok {
			return nil, derrors.IncompatibleValueError{Column: name, Op: "join_asof", Value: v}
		}
		values[j] = f
	}
	return values, nil
}

// assembleJoin stitches matched left and right rows into a result Table.
// rightOrder entries of -1 produce nil right-hand cells.
func (t *tableImpl) assembleJoin(leftOrder, rightOrder []int, rightCols []column) *tableImpl {
	numRows := len(leftOrder)
	cols := make([]column, 0, len(t.cols)+len(rightCols))
	for _, col := range t.cols {
		values := make([]interface{}, numRows)
		for i, rowNum := range leftOrder {
			values[i] = col.values[rowNum]
		}
		cols = append(cols, column{name: col.name, values: values})
	}
	for _, col := range rightCols {
		values := make([]interface{}, numRows)
		for i, rowNum := range rightOrder {
			if rowNum >= 0 {
				values[i] = col.values[rowNum]
			}
		}
		cols = append(cols, column{name: col.name, values: values})
	}
	return createTableImpl(cols, numRows)
}
