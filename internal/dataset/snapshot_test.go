package dataset

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lidarSnapshot = `
name: morro.lidar.b1
attributes:
  datastream_name: morro.lidar.b1
dimensions:
  - name: time
    unlimited: true
  - name: height
    length: 2
variables:
  - name: time
    dims: [time]
    data: [2021-03-01T00:00:00Z, 2021-03-01T00:10:00Z, 2021-03-01T00:20:00Z]
  - name: height
    dims: [height]
    data: [40, 60]
  - name: wind_speed
    dims: [time, height]
    attributes:
      _FillValue: -9999
      fail_range: [0, 70]
    data:
      - [1.5, 2.5]
      - [null, 3]
      - [4, -9999]
`

func TestDecode_LidarSnapshot(t *testing.T) {
	ds, err := Decode(strings.NewReader(lidarSnapshot))
	require.NoError(t, err)

	assert.Equal(t, "morro.lidar.b1", ds.Name)
	assert.Equal(t, []string{"time", "height"}, ds.Coords())

	tm, ok := ds.Variable("time")
	require.True(t, ok)
	assert.Equal(t, 1614556800.0, tm.Data[0])
	assert.Equal(t, 600.0, tm.Data[1]-tm.Data[0])

	ws, ok := ds.Variable("wind_speed")
	require.True(t, ok)
	assert.Equal(t, []int{3, 2}, ws.Shape)
	assert.True(t, math.IsNaN(ws.Data[2]))
	assert.True(t, ws.IsMissing(5))
}

func TestDecode_RejectsRaggedData(t *testing.T) {
	doc := `
name: x
dimensions: [{name: time, length: 2}, {name: height, length: 2}]
variables:
  - name: v
    dims: [time, height]
    data: [[1, 2], [3]]
`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ragged")
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("name: x\nvariabels: []\n"))
	assert.Error(t, err)
}

func TestEncodeDecode_PreservesStructure(t *testing.T) {
	ds, err := Decode(strings.NewReader(lidarSnapshot))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, ds))
	assert.Contains(t, buf.String(), "null")

	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds.VariableNames(), again.VariableNames())

	ws, _ := again.Variable("wind_speed")
	assert.Equal(t, []int{3, 2}, ws.Shape)
	assert.True(t, math.IsNaN(ws.Data[2]))
	assert.Equal(t, 4.0, ws.Data[4])
}
