package flagstore

import (
	"testing"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New("buoy.lidar")
	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "time", Length: 3}))
	require.NoError(t, ds.AddVariable(&dataset.Variable{
		Name: "time", Dims: []string{"time"}, Data: []float64{0, 600, 1200},
	}))
	require.NoError(t, ds.AddVariable(&dataset.Variable{
		Name: "wind_speed", Dims: []string{"time"}, Data: []float64{3, 70, -1},
		Attrs: map[string]any{"long_name": "Wind Speed"},
	}))
	require.NoError(t, ds.AddVariable(&dataset.Variable{
		Name: "wind_direction", Dims: []string{"time"}, Data: []float64{10, 20, 30},
	}))
	return ds
}

func TestExport(t *testing.T) {
	// --- Arrange ---
	ds := exportFixture(t)
	s := New()
	require.NoError(t, s.Set("wind_speed", 4, []bool{false, false, true}))
	require.NoError(t, s.Describe("wind_speed", BitInfo{Bit: 4, Assessment: AssessmentBad, Meaning: "Value is less than the fail_range."}))
	require.NoError(t, s.Set("wind_speed", 5, []bool{false, true, false}))
	require.NoError(t, s.Describe("wind_speed", BitInfo{Bit: 5, Assessment: AssessmentBad, Meaning: "Value is greater than the fail_range."}))

	// --- Act ---
	require.NoError(t, s.Export(ds))

	// --- Assert ---
	qcVar, ok := ds.Variable("qc_wind_speed")
	require.True(t, ok)
	assert.Equal(t, []string{"time"}, qcVar.Dims)
	assert.Equal(t, []float64{0, 16, 8}, qcVar.Data)
	assert.Equal(t, "int32", qcVar.Type)
	assert.Equal(t, []any{int64(8), int64(16)}, qcVar.Attrs[AttrFlagMasks])
	assert.Equal(t, []any{"Value is less than the fail_range.", "Value is greater than the fail_range."}, qcVar.Attrs[AttrFlagMeanings])
	assert.Equal(t, []any{"Bad", "Bad"}, qcVar.Attrs[AttrFlagAssessments])
	assert.Equal(t, "Quality check results on variable: Wind Speed", qcVar.Attrs["long_name"])

	src, _ := ds.Variable("wind_speed")
	assert.Equal(t, "qc_wind_speed", src.Attrs[AttrAncillary])

	assert.False(t, ds.HasVariable("qc_wind_direction"), "unflagged variables get no companion")
	assert.False(t, ds.IsCoord("qc_wind_speed"))
	require.NoError(t, ds.Validate())
}

func TestExport_OverwritesPreviousCompanion(t *testing.T) {
	ds := exportFixture(t)

	first := New()
	require.NoError(t, first.Set("wind_speed", 1, []bool{true, true, true}))
	require.NoError(t, first.Export(ds))

	second := New()
	require.NoError(t, second.Set("wind_speed", 2, []bool{true, false, false}))
	require.NoError(t, second.Export(ds))

	qcVar, _ := ds.Variable("qc_wind_speed")
	assert.Equal(t, []float64{2, 0, 0}, qcVar.Data)
	assert.Len(t, ds.Variables(), 4)
}
