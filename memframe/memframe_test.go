package memframe

import (
	"testing"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
	"github.com/stretchr/testify/require"
)

func createTestTable(t *testing.T) Table {
	table, err := CreateTable(
		[]string{"a", "b"},
		[][]interface{}{
			{1.0, 2.0, 3.0},
			{10.0, 20.0, 30.0},
		},
	)
	require.Nil(t, err)
	return table
}

func TestCreateTableBasic(t *testing.T) {
	table := createTestTable(t)
	require.Equal(t, dataset.EagerFrame, table.Kind())
	require.Equal(t, 3, table.Len())
	require.False(t, table.IsEmpty())
	require.Equal(t, []string{"a", "b"}, table.Columns())
	require.NotEqual(t, "", table.ID())
}

func TestCreateTableRaggedColumns(t *testing.T) {
	_, err := CreateTable(
		[]string{"a", "b"},
		[][]interface{}{
			{1.0, 2.0},
			{10.0},
		},
	)
	require.NotNil(t, err)
	require.IsType(t, derrors.MismatchedShapeError{}, err)
}

func TestCreateTableCopiesInput(t *testing.T) {
	values := [][]interface{}{{1.0, 2.0}}
	table, err := CreateTable([]string{"a"}, values)
	require.Nil(t, err)
	values[0][0] = 99.0
	col, err := table.Column("a")
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.0, 2.0}, col)
}

func TestGetByKey(t *testing.T) {
	table := createTestTable(t)

	col, err := table.Get("a")
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.0, 2.0, 3.0}, col)

	row, err := table.Get(1)
	require.Nil(t, err)
	require.Equal(t, dataset.Row{"a": 2.0, "b": 20.0}, row)

	// negative keys count back from the end
	row, err = table.Get(-1)
	require.Nil(t, err)
	require.Equal(t, dataset.Row{"a": 3.0, "b": 30.0}, row)

	// a multi-column key produces a same-family Frame
	sub, err := table.Get([]string{"b"})
	require.Nil(t, err)
	frame, ok := sub.(dataset.Frame)
	require.True(t, ok)
	require.Equal(t, dataset.EagerFrame, frame.Kind())

	_, err = table.Get("missing")
	require.IsType(t, derrors.UnknownColumnError{}, err)
	_, err = table.Get(3)
	require.NotNil(t, err)
	_, err = table.Get(1.5)
	require.IsType(t, derrors.KeyTypeError{}, err)
}

func TestRowIteration(t *testing.T) {
	table := createTestTable(t)

	it := table.Rows()
	var first []float64
	for it.HasNext() {
		row, err := it.Next()
		require.Nil(t, err)
		first = append(first, row["a"].(float64))
	}
	require.Equal(t, []float64{1.0, 2.0, 3.0}, first)
	_, err := it.Next()
	require.IsType(t, derrors.NoMoreRowsError{}, err)

	rit := table.Reversed()
	var reversed []float64
	for rit.HasNext() {
		row, err := rit.Next()
		require.Nil(t, err)
		reversed = append(reversed, row["a"].(float64))
	}
	require.Equal(t, []float64{3.0, 2.0, 1.0}, reversed)
}

func TestSelect(t *testing.T) {
	table := createTestTable(t)
	sub, err := table.Select("b")
	require.Nil(t, err)
	require.Equal(t, []string{"b"}, sub.(Table).Columns())

	_, err = table.Select("missing")
	require.IsType(t, derrors.UnknownColumnError{}, err)
}

func TestWithColumn(t *testing.T) {
	table := createTestTable(t)
	extended, err := table.WithColumn("c", []interface{}{7.0, 8.0, 9.0})
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b", "c"}, extended.(Table).Columns())
	// the source table is untouched
	require.Equal(t, []string{"a", "b"}, table.Columns())

	replaced, err := table.WithColumn("a", []interface{}{0.0, 0.0, 0.0})
	require.Nil(t, err)
	col, err := replaced.(Table).Column("a")
	require.Nil(t, err)
	require.Equal(t, []interface{}{0.0, 0.0, 0.0}, col)

	_, err = table.WithColumn("c", []interface{}{1.0})
	require.IsType(t, derrors.MismatchedShapeError{}, err)
}

func TestSort(t *testing.T) {
	table, err := CreateTable(
		[]string{"a", "b"},
		[][]interface{}{
			{3.0, 1.0, 2.0},
			{"z", "x", "y"},
		},
	)
	require.Nil(t, err)
	sorted, err := table.Sort("a")
	require.Nil(t, err)
	col, err := sorted.(Table).Column("b")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"x", "y", "z"}, col)
	// the source table keeps its original order
	col, err = table.Column("b")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"z", "x", "y"}, col)
}

func TestHead(t *testing.T) {
	table := createTestTable(t)
	head := table.Head(2)
	require.Equal(t, 2, head.Len())
	require.Equal(t, 3, table.Head(10).Len())
}
