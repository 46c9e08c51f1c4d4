package memframe

import (
	"testing"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
	"github.com/stretchr/testify/require"
)

func createGroupTable(t *testing.T) Table {
	table, err := CreateTable(
		[]string{"k", "v"},
		[][]interface{}{
			{"x", "y", "x", "y", "x"},
			{1.0, 2.0, 3.0, 4.0, 5.0},
		},
	)
	require.Nil(t, err)
	return table
}

func TestGroupByAgg(t *testing.T) {
	table := createGroupTable(t)
	grouped := table.GroupBy("k")
	require.Equal(t, dataset.GroupedFrame, grouped.Kind())
	require.Equal(t, 2, grouped.Len())

	result, err := grouped.(Grouped).Agg(
		Agg("v", SumReduction),
		Agg("v", MeanReduction),
		Agg("v", MinReduction),
		Agg("v", MaxReduction),
	)
	require.Nil(t, err)
	require.Equal(t, []interface{}{"x", "y"}, column1(t, result, "k"))
	require.Equal(t, []interface{}{9.0, 6.0}, column1(t, result, "v_sum"))
	require.Equal(t, []interface{}{3.0, 3.0}, column1(t, result, "v_mean"))
	require.Equal(t, []interface{}{1.0, 2.0}, column1(t, result, "v_min"))
	require.Equal(t, []interface{}{5.0, 4.0}, column1(t, result, "v_max"))
}

func TestGroupByCount(t *testing.T) {
	table := createGroupTable(t)
	result, err := table.GroupBy("k").(Grouped).Count()
	require.Nil(t, err)
	require.Equal(t, []interface{}{"x", "y"}, column1(t, result, "k"))
	require.Equal(t, []interface{}{3, 2}, column1(t, result, "count"))
}

func TestGroupByRows(t *testing.T) {
	table := createGroupTable(t)
	it := table.GroupBy("k").Rows()
	var keys []string
	for it.HasNext() {
		row, err := it.Next()
		require.Nil(t, err)
		keys = append(keys, row["k"].(string))
	}
	require.Equal(t, []string{"x", "y"}, keys)
}

func TestGroupedViewRefusesFrameOps(t *testing.T) {
	grouped := createGroupTable(t).GroupBy("k")
	_, err := grouped.Compare(dataset.Eq, 1)
	require.IsType(t, derrors.UnsupportedOperationError{}, err)
	_, err = grouped.Operate(dataset.Add, 1)
	require.IsType(t, derrors.UnsupportedOperationError{}, err)
	_, err = grouped.Get("k")
	require.IsType(t, derrors.UnsupportedOperationError{}, err)
	_, err = grouped.PartitionBy([]string{"k"})
	require.IsType(t, derrors.UnsupportedOperationError{}, err)
}

func TestGroupByDynamic(t *testing.T) {
	table, err := CreateTable(
		[]string{"ts", "v"},
		[][]interface{}{
			{0.5, 1.5, 1.7, 3.2},
			{1.0, 2.0, 3.0, 4.0},
		},
	)
	require.Nil(t, err)
	windows := table.GroupByDynamic("ts", 1.0)
	require.Equal(t, dataset.DynamicGroupedFrame, windows.Kind())

	result, err := windows.(Grouped).Agg(Agg("v", SumReduction))
	require.Nil(t, err)
	require.Equal(t, []interface{}{0.0, 1.0, 3.0}, column1(t, result, "ts"))
	require.Equal(t, []interface{}{1.0, 5.0, 4.0}, column1(t, result, "v_sum"))
}

func TestRollingAgg(t *testing.T) {
	table, err := CreateTable(
		[]string{"ts", "v"},
		[][]interface{}{
			{1.0, 2.0, 3.0},
			{1.0, 2.0, 3.0},
		},
	)
	require.Nil(t, err)
	rolling := table.Rolling("ts", 2)
	require.Equal(t, dataset.RollingFrame, rolling.Kind())
	require.Equal(t, 3, rolling.Len())

	result, err := rolling.(Grouped).Agg(Agg("v", SumReduction))
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.0, 2.0, 3.0}, column1(t, result, "ts"))
	require.Equal(t, []interface{}{1.0, 3.0, 5.0}, column1(t, result, "v_sum"))
}

func TestAggUnknownColumn(t *testing.T) {
	grouped := createGroupTable(t).GroupBy("k")
	_, err := grouped.(Grouped).Agg(Agg("missing", SumReduction))
	require.IsType(t, derrors.UnknownColumnError{}, err)
}

func TestAggNonNumericSum(t *testing.T) {
	table, err := CreateTable(
		[]string{"k", "s"},
		[][]interface{}{
			{"x", "x"},
			{"a", "b"},
		},
	)
	require.Nil(t, err)
	_, err = table.GroupBy("k").(Grouped).Agg(Agg("s", SumReduction))
	require.IsType(t, derrors.IncompatibleValueError{}, err)

	// min/max and first/last work on any cell type
	result, err := table.GroupBy("k").(Grouped).Agg(
		Agg("s", MinReduction),
		Agg("s", LastReduction),
	)
	require.Nil(t, err)
	require.Equal(t, []interface{}{"a"}, column1(t, result, "s_min"))
	require.Equal(t, []interface{}{"b"}, column1(t, result, "s_last"))
}
