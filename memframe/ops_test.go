package memframe

import (
	"testing"

	"github.com/go-dataset/dataset"
	derrors "github.com/go-dataset/dataset/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func column1(t *testing.T, f dataset.Frame, name string) []interface{} {
	col, err := f.(Table).Column(name)
	require.Nil(t, err)
	return col
}

func TestCompareWithScalar(t *testing.T) {
	defer goleak.VerifyNone(t)
	table := createTestTable(t)

	gt, err := table.Compare(dataset.Gt, 1.5)
	require.Nil(t, err)
	require.Equal(t, []interface{}{false, true, true}, column1(t, gt, "a"))
	require.Equal(t, []interface{}{true, true, true}, column1(t, gt, "b"))
}

func TestCompareWithFrame(t *testing.T) {
	table := createTestTable(t)
	other, err := CreateTable(
		[]string{"a", "b"},
		[][]interface{}{
			{1.0, 5.0, 3.0},
			{10.0, 10.0, 40.0},
		},
	)
	require.Nil(t, err)

	lteq, err := table.Compare(dataset.LtEq, other)
	require.Nil(t, err)
	require.Equal(t, []interface{}{true, true, true}, column1(t, lteq, "a"))
	require.Equal(t, []interface{}{true, false, true}, column1(t, lteq, "b"))

	// lt_eq and gt_eq are distinct comparisons
	gteq, err := table.Compare(dataset.GtEq, other)
	require.Nil(t, err)
	require.Equal(t, []interface{}{true, true, false}, column1(t, gteq, "b"))
}

func TestCompareStrings(t *testing.T) {
	table, err := CreateTable([]string{"s"}, [][]interface{}{{"apple", "banana"}})
	require.Nil(t, err)
	lt, err := table.Compare(dataset.Lt, "b")
	require.Nil(t, err)
	require.Equal(t, []interface{}{true, false}, column1(t, lt, "s"))
}

func TestCompareMixedTypes(t *testing.T) {
	table, err := CreateTable([]string{"s"}, [][]interface{}{{"apple", 1.0}})
	require.Nil(t, err)

	eq, err := table.Compare(dataset.Eq, 1.0)
	require.Nil(t, err)
	require.Equal(t, []interface{}{false, true}, column1(t, eq, "s"))

	_, err = table.Compare(dataset.Lt, 1.0)
	require.IsType(t, derrors.IncompatibleValueError{}, err)
}

func TestCompareShapeMismatch(t *testing.T) {
	table := createTestTable(t)
	other, err := CreateTable([]string{"a"}, [][]interface{}{{1.0, 2.0, 3.0}})
	require.Nil(t, err)
	_, err = table.Compare(dataset.Eq, other)
	require.IsType(t, derrors.MismatchedShapeError{}, err)
}

func TestOperateWithScalar(t *testing.T) {
	defer goleak.VerifyNone(t)
	table := createTestTable(t)

	doubled, err := table.Operate(dataset.Mul, 2)
	require.Nil(t, err)
	require.Equal(t, []interface{}{2.0, 4.0, 6.0}, column1(t, doubled, "a"))
	require.Equal(t, []interface{}{20.0, 40.0, 60.0}, column1(t, doubled, "b"))

	halved, err := table.Operate(dataset.TrueDiv, 2)
	require.Nil(t, err)
	require.Equal(t, []interface{}{0.5, 1.0, 1.5}, column1(t, halved, "a"))

	floored, err := table.Operate(dataset.FloorDiv, 2)
	require.Nil(t, err)
	require.Equal(t, []interface{}{0.0, 1.0, 1.0}, column1(t, floored, "a"))

	mod, err := table.Operate(dataset.Mod, 2)
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.0, 0.0, 1.0}, column1(t, mod, "a"))

	sub, err := table.Operate(dataset.Sub, 1)
	require.Nil(t, err)
	require.Equal(t, []interface{}{0.0, 1.0, 2.0}, column1(t, sub, "a"))
}

func TestReflectedOperators(t *testing.T) {
	table := createTestTable(t)

	mul, err := table.Operate(dataset.Mul, 2)
	require.Nil(t, err)
	rmul, err := table.Operate(dataset.RMul, 2)
	require.Nil(t, err)
	// multiplication is commutative, so the reflected form matches
	require.Equal(t, column1(t, mul, "a"), column1(t, rmul, "a"))

	add, err := table.Operate(dataset.Add, 2)
	require.Nil(t, err)
	radd, err := table.Operate(dataset.RAdd, 2)
	require.Nil(t, err)
	require.Equal(t, column1(t, add, "a"), column1(t, radd, "a"))
}

func TestOperateWithFrame(t *testing.T) {
	table := createTestTable(t)
	other, err := CreateTable(
		[]string{"a", "b"},
		[][]interface{}{
			{1.0, 1.0, 1.0},
			{2.0, 2.0, 2.0},
		},
	)
	require.Nil(t, err)
	sum, err := table.Operate(dataset.Add, other)
	require.Nil(t, err)
	require.Equal(t, []interface{}{2.0, 3.0, 4.0}, column1(t, sum, "a"))
	require.Equal(t, []interface{}{12.0, 22.0, 32.0}, column1(t, sum, "b"))
}

func TestStringConcatenation(t *testing.T) {
	table, err := CreateTable([]string{"s"}, [][]interface{}{{"foo", "bar"}})
	require.Nil(t, err)

	suffixed, err := table.Operate(dataset.Add, "!")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"foo!", "bar!"}, column1(t, suffixed, "s"))

	prefixed, err := table.Operate(dataset.RAdd, ">")
	require.Nil(t, err)
	require.Equal(t, []interface{}{">foo", ">bar"}, column1(t, prefixed, "s"))
}

func TestOperateIncompatibleValue(t *testing.T) {
	table, err := CreateTable([]string{"s"}, [][]interface{}{{"foo", "bar"}})
	require.Nil(t, err)
	_, err = table.Operate(dataset.Mul, 2)
	require.IsType(t, derrors.IncompatibleValueError{}, err)
}
