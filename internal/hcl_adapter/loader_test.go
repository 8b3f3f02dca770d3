package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const lidarRules = `
rule "manage_missing_coordinates" {
  variables = ["COORDS"]
  checker "CheckMissing" {}
  handler "FailPipeline" {}
}

rule "manage_fail_min" {
  variables = ["DATA_VARS"]
  exclude   = ["data_availability"]

  checker "tsdat.qc.checkers.CheckFailMin" {}

  handler "RemoveFailedValues" {}
  handler "RecordQualityResults" {
    bit        = 4
    assessment = "Bad"
    meaning    = "Value is less than the fail_range."
  }
}
`

func TestParse(t *testing.T) {
	// --- Arrange & Act ---
	model, err := Parse(context.Background(), []byte(lidarRules), "rules.hcl")

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Rules, 2)

	coords := model.Rules[0]
	assert.Equal(t, "manage_missing_coordinates", coords.Name)
	assert.Equal(t, []string{"COORDS"}, coords.Variables)
	assert.Equal(t, "CheckMissing", coords.Checker.Class)
	assert.Nil(t, coords.Checker.Params)
	require.Len(t, coords.Handlers, 1)
	assert.Equal(t, "FailPipeline", coords.Handlers[0].Class)
	assert.Equal(t, "rules.hcl", coords.Source)

	failMin := model.Rules[1]
	assert.Equal(t, []string{"data_availability"}, failMin.Exclude)
	assert.Equal(t, "tsdat.qc.checkers.CheckFailMin", failMin.Checker.Class)
	require.Len(t, failMin.Handlers, 2)
	assert.Equal(t, "RemoveFailedValues", failMin.Handlers[0].Class)
	assert.Equal(t, map[string]any{
		"bit":        int64(4),
		"assessment": "Bad",
		"meaning":    "Value is less than the fail_range.",
	}, failMin.Handlers[1].Params)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "syntax error", src: `rule "x" {`},
		{name: "missing variables", src: `rule "x" { checker "CheckMissing" {} }`},
		{name: "unknown block", src: `step "x" {}`},
		{name: "two checkers", src: `rule "x" {
  variables = ["ALL"]
  checker "CheckMissing" {}
  checker "CheckMonotonic" {}
}`},
		{name: "nested block in params", src: `rule "x" {
  variables = ["ALL"]
  checker "CheckMissing" {
    nested {}
  }
}`},
		{name: "duplicate rule", src: `
rule "x" { variables = ["ALL"] }
rule "x" { variables = ["ALL"] }
`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tc.src), "bad.hcl")
			require.Error(t, err)
		})
	}
}

func TestCtyValueToInterface(t *testing.T) {
	testCases := []struct {
		name     string
		val      cty.Value
		expected any
	}{
		{name: "string", val: cty.StringVal("Bad"), expected: "Bad"},
		{name: "whole number", val: cty.NumberIntVal(4), expected: int64(4)},
		{name: "fraction", val: cty.NumberFloatVal(0.25), expected: 0.25},
		{name: "bool", val: cty.True, expected: true},
		{name: "null", val: cty.NullVal(cty.String), expected: nil},
		{name: "tuple", val: cty.TupleVal([]cty.Value{cty.NumberIntVal(10), cty.NumberIntVal(50)}), expected: []any{int64(10), int64(50)}},
		{name: "object", val: cty.ObjectVal(map[string]cty.Value{"a": cty.StringVal("b")}), expected: map[string]any{"a": "b"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ctyValueToInterface(tc.val)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestLoader_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`rule "second" { variables = ["ALL"] }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`rule "first" { variables = ["ALL"] }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.yaml"), []byte(`x: 1`), 0o644))

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, model.Rules, 2)
	assert.Equal(t, "first", model.Rules[0].Name)
	assert.Equal(t, "second", model.Rules[1].Name)
	assert.Equal(t, filepath.Join(dir, "a.hcl"), model.Rules[0].Source)
}
