package qc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/specialistvlad/qcgrid/internal/dataset"
	"github.com/specialistvlad/qcgrid/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	m := Mask{true, false, true}

	assert.True(t, m.Any())
	assert.Equal(t, 2, m.Count())
	assert.False(t, NewMask(4).Any())
	assert.Len(t, NewMask(4), 4)
	assert.Equal(t, Mask{true, true, true}, m.Or(Mask{false, true, false}))
}

type bitHandler struct{ bit int }

func (h bitHandler) Handle(context.Context, Target, Mask) (Outcome, error) { return Continue, nil }
func (h bitHandler) RecordsBit() int                                        { return h.bit }

func TestRule_Bits(t *testing.T) {
	noop := HandlerFunc(func(context.Context, Target, Mask) (Outcome, error) { return Continue, nil })
	r := &Rule{
		Name: "manage_fail_min",
		Handlers: []BoundHandler{
			{Kind: "RemoveFailedValues", Handler: noop},
			{Kind: "RecordQualityResults", Handler: bitHandler{bit: 4}},
			{Kind: "RecordQualityResults", Handler: bitHandler{bit: 6}},
		},
	}

	assert.Equal(t, []int{4, 6}, r.Bits())
}

func TestRule_ResolveHonoursExclude(t *testing.T) {
	ds := dataset.New("fixture")
	require.NoError(t, ds.AddDimension(dataset.Dimension{Name: "time", Length: 2}))
	for _, name := range []string{"time", "wind_speed", "data_availability"} {
		dims := []string{"time"}
		require.NoError(t, ds.AddVariable(&dataset.Variable{Name: name, Dims: dims, Data: []float64{1, 2}}))
	}

	r := &Rule{
		Variables: []selector.Selector{{Kind: selector.DataVars}},
		Exclude:   []selector.Selector{selector.LiteralOf("data_availability")},
	}
	names, err := r.Resolve(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"wind_speed"}, names)
}

func TestConfigurationError(t *testing.T) {
	cause := &selector.UnknownVariableError{Name: "air_temp"}
	err := fmt.Errorf("planning: %w", Wrap("manage_fail_min", "", "resolving variables", cause))

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "manage_fail_min", cfgErr.Rule)

	var unknown *selector.UnknownVariableError
	require.ErrorAs(t, err, &unknown, "the cause stays reachable")
	assert.Equal(t, "air_temp", unknown.Name)

	assert.Equal(t,
		`configuration error in rule "manage_fail_min": resolving variables: unknown variable "air_temp"`,
		cfgErr.Error())

	assert.NoError(t, Wrap("r", "", "x", nil))
	assert.Equal(t,
		`configuration error in rule "r" (CheckFailMin): fail_range must have 2 values`,
		Errorf("r", "CheckFailMin", "fail_range must have %d values", 2).Error())
	assert.False(t, errors.Is(Errorf("r", "", "x"), cause))
}
