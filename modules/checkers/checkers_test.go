package checkers

import (
	"context"
	"math"
	"testing"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// series builds a one-variable dataset laid out on a "time" dimension.
func series(t *testing.T, data []float64, attrs map[string]any) *dataset.Dataset {
	t.Helper()
	ds := dataset.New("fixture")
	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "time", Length: len(data)}))
	require.NoError(t, ds.AddVariable(&dataset.Variable{
		Name: "x", Dims: []string{"time"}, Data: data, Attrs: attrs,
	}))
	return ds
}

// grid builds a 2-D (time, height) variable "x".
func grid(t *testing.T, rows, cols int, data []float64, attrs map[string]any) *dataset.Dataset {
	t.Helper()
	ds := dataset.New("fixture")
	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "time", Length: rows}))
	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "height", Length: cols}))
	require.NoError(t, ds.AddVariable(&dataset.Variable{
		Name: "x", Dims: []string{"time", "height"}, Data: data, Attrs: attrs,
	}))
	return ds
}

func check(t *testing.T, c qc.Checker, ds *dataset.Dataset) qc.Mask {
	t.Helper()
	mask, err := c.Check(context.Background(), ds, "x")
	require.NoError(t, err)
	return mask
}

func TestModule_RegistersAllKinds(t *testing.T) {
	r := registry.New().Load(&Module{})

	assert.ElementsMatch(t, []string{
		KindMissing, KindMonotonic,
		KindFailMin, KindFailMax, KindWarnMin, KindWarnMax, KindValidMin, KindValidMax,
		KindFailDelta, KindWarnDelta, KindValidDelta,
	}, r.CheckerKinds())
}

func TestMissing(t *testing.T) {
	ds := series(t, []float64{1, -9999, nan, 4}, map[string]any{"_FillValue": -9999})
	assert.Equal(t, qc.Mask{false, true, true, false}, check(t, Missing{}, ds))

	noFill := series(t, []float64{-9999, nan}, nil)
	assert.Equal(t, qc.Mask{false, true}, check(t, Missing{}, noFill))
}

func TestMissing_UnknownVariable(t *testing.T) {
	ds := series(t, []float64{1}, nil)
	_, err := Missing{}.Check(context.Background(), ds, "nope")
	require.Error(t, err)
}

func TestMonotonic(t *testing.T) {
	testCases := []struct {
		name      string
		direction string
		data      []float64
		expected  qc.Mask
	}{
		{
			name:     "increasing default",
			data:     []float64{1, 2, 2, 5, 4},
			expected: qc.Mask{false, false, true, false, true},
		},
		{
			name:      "decreasing",
			direction: Decreasing,
			data:      []float64{5, 4, 4, 6, 1},
			expected:  qc.Mask{false, false, true, true, false},
		},
		{
			name:     "missing elements are skipped",
			data:     []float64{1, nan, 3, -9999, 2},
			expected: qc.Mask{false, false, false, false, true},
		},
		{
			name:     "first element never flagged",
			data:     []float64{7},
			expected: qc.Mask{false},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewMonotonic(MonotonicParams{Direction: tc.direction})
			require.NoError(t, err)
			ds := series(t, tc.data, map[string]any{"_FillValue": -9999})
			assert.Equal(t, tc.expected, check(t, c, ds))
		})
	}
}

func TestMonotonic_AlongFirstDimension(t *testing.T) {
	// Rows are time steps; each height column is checked on its own.
	ds := grid(t, 3, 2, []float64{
		0, 100,
		1, 90,
		2, 110,
	}, nil)

	c, err := NewMonotonic(MonotonicParams{})
	require.NoError(t, err)
	assert.Equal(t, qc.Mask{false, false, false, true, false, false}, check(t, c, ds))
}

func TestMonotonic_InvalidDirection(t *testing.T) {
	r := registry.New().Load(&Module{})
	_, err := r.NewChecker("tsdat.qc.checkers.CheckMonotonic", map[string]any{"direction": "up"})
	require.Error(t, err)
}

func TestFailRange_CombinedMinMax(t *testing.T) {
	ds := series(t, []float64{5, 10, 30, 50, 60}, map[string]any{"fail_range": []any{10, 50}})

	lower := check(t, Range{Attr: "fail_range", Bound: Lower}, ds)
	upper := check(t, Range{Attr: "fail_range", Bound: Upper}, ds)

	assert.Equal(t, qc.Mask{true, false, false, false, false}, lower)
	assert.Equal(t, qc.Mask{false, false, false, false, true}, upper)
	assert.Equal(t, qc.Mask{true, false, false, false, true}, lower.Or(upper))
}

func TestRange_NoAttributeIsNoop(t *testing.T) {
	ds := series(t, []float64{-1e9, 1e9}, nil)
	assert.Equal(t, qc.Mask{false, false}, check(t, Range{Attr: "fail_range", Bound: Lower}, ds))
	assert.Equal(t, qc.Mask{false, false}, check(t, Range{Attr: "valid_range", Bound: Upper}, ds))
}

func TestRange_MissingNotReflagged(t *testing.T) {
	ds := series(t, []float64{-9999, nan, 5}, map[string]any{
		"_FillValue": -9999,
		"valid_range": []any{0, 10},
	})
	assert.Equal(t, qc.Mask{false, false, false}, check(t, Range{Attr: "valid_range", Bound: Lower}, ds))
}

func TestRange_MalformedAttribute(t *testing.T) {
	testCases := []struct {
		name string
		attr any
	}{
		{name: "one value", attr: []any{10}},
		{name: "three values", attr: []any{1, 2, 3}},
		{name: "not numeric", attr: []any{"low", "high"}},
		{name: "scalar", attr: "10..50"},
		{name: "null bound", attr: []any{nil, 50}},
		{name: "boolean bound", attr: []any{true, 50}},
		{name: "empty bound", attr: []any{"", 50}},
		{name: "NaN bound", attr: []any{"NaN", 50}},
		{name: "inverted", attr: []any{50, 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ds := series(t, []float64{-5, 5, 30, 60}, map[string]any{"fail_range": tc.attr})
			for _, bound := range []Bound{Lower, Upper} {
				mask, err := Range{Attr: "fail_range", Bound: bound}.Check(context.Background(), ds, "x")
				require.Error(t, err)
				assert.Nil(t, mask)
			}
		})
	}
}

func TestRange_ReadsCurrentState(t *testing.T) {
	ds := series(t, []float64{5, 60}, map[string]any{"fail_range": []any{10, 50}, "_FillValue": -9999})
	c := Range{Attr: "fail_range", Bound: Lower}
	assert.Equal(t, qc.Mask{true, false}, check(t, c, ds))

	v, _ := ds.Variable("x")
	v.Data[0] = -9999
	assert.Equal(t, qc.Mask{false, false}, check(t, c, ds))
}

func TestDelta(t *testing.T) {
	ds := series(t, []float64{1, 2, 10, nan, 11, 30}, map[string]any{"fail_delta": 5})
	assert.Equal(t,
		qc.Mask{false, false, true, false, false, true},
		check(t, Delta{Attr: "fail_delta"}, ds))
}

func TestDelta_AttributeHandling(t *testing.T) {
	assert.Equal(t, qc.Mask{false, false},
		check(t, Delta{Attr: "warn_delta"}, series(t, []float64{0, 100}, nil)))

	_, err := Delta{Attr: "warn_delta"}.Check(context.Background(),
		series(t, []float64{0, 1}, map[string]any{"warn_delta": "big"}), "x")
	require.Error(t, err)

	_, err = Delta{Attr: "warn_delta"}.Check(context.Background(),
		series(t, []float64{0, 1}, map[string]any{"warn_delta": -1}), "x")
	require.Error(t, err)

	_, err = Delta{Attr: "fail_delta"}.Check(context.Background(),
		series(t, []float64{0, 1}, map[string]any{"fail_delta": true}), "x")
	require.Error(t, err)
}
