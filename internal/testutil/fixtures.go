// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"testing"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/stretchr/testify/require"
)

// Fill is the fill value declared by every fixture data variable.
const Fill = -9999.0

// LidarDataset returns a small buoy lidar dataset: coordinates time (4 steps,
// unlimited) and height (2 gates), 2-D wind_speed and wind_direction with
// fail ranges, and a 1-D data_availability.
//
// Out-of-range elements: wind_speed[1,1] = 75 (> 60) and
// wind_direction[3,0] = -5 (< 0). wind_speed[2,0] is missing.
func LidarDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New("morro.lidar.z06.a0")
	ds.Attrs["title"] = "Morro Bay buoy lidar"

	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "time", Unlimited: true}))
	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "height", Length: 2}))

	add := func(v *dataset.Variable) {
		require.NoError(t, ds.AddVariable(v))
	}
	add(&dataset.Variable{
		Name: "time", Dims: []string{"time"},
		Data:  []float64{1614556800, 1614557400, 1614558000, 1614558600},
		Attrs: map[string]any{"units": "Seconds since 1970-01-01 00:00:00"},
	})
	add(&dataset.Variable{
		Name: "height", Dims: []string{"height"},
		Data:  []float64{40, 60},
		Attrs: map[string]any{"units": "m"},
	})
	add(&dataset.Variable{
		Name: "wind_speed", Dims: []string{"time", "height"},
		Data: []float64{
			5.1, 6.2,
			5.8, 75,
			Fill, 7.0,
			6.0, 6.5,
		},
		Attrs: map[string]any{
			"long_name":  "Wind Speed",
			"units":      "m/s",
			"_FillValue": Fill,
			"fail_range": []any{0, 60},
		},
	})
	add(&dataset.Variable{
		Name: "wind_direction", Dims: []string{"time", "height"},
		Data: []float64{
			180, 190,
			185, 200,
			170, 175,
			-5, 160,
		},
		Attrs: map[string]any{
			"units":      "degrees",
			"_FillValue": Fill,
			"fail_range": []any{0, 360},
		},
	})
	add(&dataset.Variable{
		Name: "data_availability", Dims: []string{"time"},
		Data:  []float64{100, 95, 90, 100},
		Attrs: map[string]any{"units": "%", "_FillValue": Fill},
	})
	require.NoError(t, ds.Validate())
	return ds
}

// AirTempDataset returns a dataset with one coordinate, time, and one data
// variable, air_temp, holding values with the given fail_range.
func AirTempDataset(t *testing.T, values []float64, failRange []any) *dataset.Dataset {
	t.Helper()
	ds := dataset.New("air_temp")
	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "time", Length: len(values)}))

	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i * 60)
	}
	require.NoError(t, ds.AddVariable(&dataset.Variable{Name: "time", Dims: []string{"time"}, Data: times}))

	attrs := map[string]any{"_FillValue": Fill}
	if failRange != nil {
		attrs["fail_range"] = failRange
	}
	require.NoError(t, ds.AddVariable(&dataset.Variable{
		Name: "air_temp", Dims: []string{"time"}, Data: append([]float64(nil), values...), Attrs: attrs,
	}))
	return ds
}

// LidarRulesYAML mirrors the quality_management section of the buoy lidar
// ingest configuration.
const LidarRulesYAML = `
quality_management:
  manage_missing_coordinates:
    checker:
      classname: tsdat.qc.checkers.CheckMissing
    handlers:
      - classname: tsdat.qc.handlers.FailPipeline
    variables: [COORDS]

  manage_coordinate_monotonicity:
    checker:
      classname: tsdat.qc.checkers.CheckMonotonic
    handlers:
      - classname: tsdat.qc.handlers.FailPipeline
    variables: [COORDS]

  manage_missing_values:
    checker:
      classname: tsdat.qc.checkers.CheckMissing
    handlers:
      - classname: tsdat.qc.handlers.RemoveFailedValues
      - classname: tsdat.qc.handlers.RecordQualityResults
        parameters:
          bit: 1
          assessment: Bad
          meaning: "Value is equal to _FillValue or NaN"
    variables: [DATA_VARS]

  manage_fail_min:
    checker:
      classname: tsdat.qc.checkers.CheckFailMin
    handlers:
      - classname: tsdat.qc.handlers.RemoveFailedValues
      - classname: tsdat.qc.handlers.RecordQualityResults
        parameters:
          bit: 2
          assessment: Bad
          meaning: "Value is less than the fail_range."
    variables: [DATA_VARS]

  manage_fail_max:
    checker:
      classname: tsdat.qc.checkers.CheckFailMax
    handlers:
      - classname: tsdat.qc.handlers.RemoveFailedValues
      - classname: tsdat.qc.handlers.RecordQualityResults
        parameters:
          bit: 3
          assessment: Bad
          meaning: "Value is greater than the fail_range."
    variables: [DATA_VARS]
`
