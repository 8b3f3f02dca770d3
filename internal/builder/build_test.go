package builder

import (
	"context"
	"testing"

	"github.com/specialistvlad/qcgrid/internal/config"
	"github.com/specialistvlad/qcgrid/internal/qc"
	"github.com/specialistvlad/qcgrid/internal/registry"
	"github.com/specialistvlad/qcgrid/internal/selector"
	"github.com/specialistvlad/qcgrid/modules/checkers"
	"github.com/specialistvlad/qcgrid/modules/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *registry.Registry {
	return registry.New().Load(&checkers.Module{}, &handlers.Module{})
}

func TestBuild(t *testing.T) {
	// --- Arrange ---
	model := &config.Model{Rules: []*config.Rule{
		{
			Name:      "manage_missing_coordinates",
			Checker:   config.Component{Class: "tsdat.qc.checkers.CheckMissing"},
			Handlers:  []config.Component{{Class: "tsdat.qc.handlers.FailPipeline"}},
			Variables: []string{"COORDS"},
		},
		{
			Name:    "manage_fail_min",
			Checker: config.Component{Class: "CheckFailMin"},
			Handlers: []config.Component{
				{Class: "RemoveFailedValues"},
				{Class: "RecordQualityResults", Params: map[string]any{"bit": 4, "assessment": "Bad", "meaning": "below"}},
			},
			Variables: []string{"DATA_VARS"},
			Exclude:   []string{"data_availability"},
		},
	}}

	// --- Act ---
	rules, err := Build(context.Background(), model, newRegistry())

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "manage_missing_coordinates", rules[0].Name)
	assert.Equal(t, "CheckMissing", rules[0].Checker.Kind)
	assert.Equal(t, []selector.Selector{{Kind: selector.Coords}}, rules[0].Variables)
	assert.Equal(t, "FailPipeline", rules[0].Handlers[0].Kind)

	assert.Equal(t, []string{"RemoveFailedValues", "RecordQualityResults"},
		[]string{rules[1].Handlers[0].Kind, rules[1].Handlers[1].Kind})
	assert.Equal(t, []int{4}, rules[1].Bits())
	assert.Equal(t, []selector.Selector{selector.LiteralOf("data_availability")}, rules[1].Exclude)
}

func TestBuild_ReportsEveryBrokenRule(t *testing.T) {
	model := &config.Model{Rules: []*config.Rule{
		{Name: "unknown_checker", Checker: config.Component{Class: "tsdat.CheckTeleport"}, Variables: []string{"ALL"}},
		{Name: "fine", Checker: config.Component{Class: "CheckMissing"}, Variables: []string{"ALL"}},
		{
			Name:      "bad_bit",
			Checker:   config.Component{Class: "CheckMissing"},
			Handlers:  []config.Component{{Class: "RecordQualityResults", Params: map[string]any{"bit": 99, "assessment": "Bad", "meaning": "m"}}},
			Variables: []string{"ALL"},
		},
	}}

	_, err := Build(context.Background(), model, newRegistry())
	require.Error(t, err)

	assert.Contains(t, err.Error(), `rule "unknown_checker" (CheckTeleport)`)
	assert.Contains(t, err.Error(), `rule "bad_bit" (RecordQualityResults)`)
	assert.NotContains(t, err.Error(), `"fine"`)

	var cfgErr *qc.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	var unknown *registry.UnknownKindError
	require.ErrorAs(t, err, &unknown)
}

func TestBuild_RuleShapeErrors(t *testing.T) {
	testCases := []struct {
		name     string
		rule     *config.Rule
		contains string
	}{
		{
			name:     "no checker",
			rule:     &config.Rule{Name: "r", Variables: []string{"ALL"}},
			contains: "no checker",
		},
		{
			name:     "no variables",
			rule:     &config.Rule{Name: "r", Checker: config.Component{Class: "CheckMissing"}},
			contains: "no variables",
		},
		{
			name:     "blank selector",
			rule:     &config.Rule{Name: "r", Checker: config.Component{Class: "CheckMissing"}, Variables: []string{"time", ""}},
			contains: "selector 1",
		},
		{
			name: "bad exclude",
			rule: &config.Rule{
				Name: "r", Checker: config.Component{Class: "CheckMissing"},
				Variables: []string{"ALL"}, Exclude: []string{" time"},
			},
			contains: "exclude",
		},
		{
			name: "unknown handler",
			rule: &config.Rule{
				Name: "r", Checker: config.Component{Class: "CheckMissing"},
				Handlers: []config.Component{{Class: "EmailSomeone"}}, Variables: []string{"ALL"},
			},
			contains: "unknown handler kind",
		},
		{
			name: "handler without class",
			rule: &config.Rule{
				Name: "r", Checker: config.Component{Class: "CheckMissing"},
				Handlers: []config.Component{{}}, Variables: []string{"ALL"},
			},
			contains: "no classname",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(context.Background(), &config.Model{Rules: []*config.Rule{tc.rule}}, newRegistry())
			var cfgErr *qc.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "r", cfgErr.Rule)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}
