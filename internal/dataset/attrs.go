// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Attribute names with a meaning to the engine.
const (
	AttrFillValue          = "_FillValue"
	AttrFillValueAlias     = "fill_value"
	AttrStandardName       = "standard_name"
	AttrAncillaryVariables = "ancillary_variables"
)

// StandardNameQualityFlag marks a variable holding quality flags.
const StandardNameQualityFlag = "quality_flag"

// FillValue returns the declared fill value. A malformed fill value is
// reported by Validate and treated as absent here.
func (v *Variable) FillValue() (float64, bool) {
	fill, ok, err := v.fillValue()
	if err != nil {
		return 0, false
	}
	return fill, ok
}

func (v *Variable) fillValue() (float64, bool, error) {
	for _, name := range []string{AttrFillValue, AttrFillValueAlias} {
		raw, ok := v.Attrs[name]
		if !ok || raw == nil {
			continue
		}
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return 0, false, fmt.Errorf("attribute %s: %w", name, err)
		}
		return f, true, nil
	}
	return 0, false, nil
}

// AttrFloat returns a numeric scalar attribute. ok is false when the
// attribute is not declared; err is set when it is declared but not a finite
// number.
func (v *Variable) AttrFloat(name string) (val float64, ok bool, err error) {
	raw, exists := v.Attrs[name]
	if !exists || raw == nil {
		return 0, false, nil
	}
	f, err := attrNumber(raw)
	if err != nil {
		return 0, true, fmt.Errorf("variable %q attribute %s: %w", v.Name, name, err)
	}
	return f, true, nil
}

// AttrRange returns a two-element numeric attribute such as fail_range.
// ok is false when the attribute is not declared; err is set when it is
// declared but is not a list of exactly two finite numbers with min <= max.
func (v *Variable) AttrRange(name string) (lo, hi float64, ok bool, err error) {
	raw, exists := v.Attrs[name]
	if !exists || raw == nil {
		return 0, 0, false, nil
	}

	var items []any
	switch r := raw.(type) {
	case []any:
		items = r
	case []float64:
		for _, f := range r {
			items = append(items, f)
		}
	case []int:
		for _, n := range r {
			items = append(items, n)
		}
	default:
		items, err = cast.ToSliceE(raw)
		if err != nil {
			return 0, 0, true, fmt.Errorf("variable %q attribute %s: expected a [min, max] list: %w", v.Name, name, err)
		}
	}
	if len(items) != 2 {
		return 0, 0, true, fmt.Errorf("variable %q attribute %s: expected 2 values, got %d", v.Name, name, len(items))
	}
	lo, err = attrNumber(items[0])
	if err != nil {
		return 0, 0, true, fmt.Errorf("variable %q attribute %s[0]: %w", v.Name, name, err)
	}
	hi, err = attrNumber(items[1])
	if err != nil {
		return 0, 0, true, fmt.Errorf("variable %q attribute %s[1]: %w", v.Name, name, err)
	}
	if lo > hi {
		return 0, 0, true, fmt.Errorf("variable %q attribute %s: min %v is greater than max %v", v.Name, name, lo, hi)
	}
	return lo, hi, true, nil
}

// attrNumber coerces one attribute value to a finite float64. Null, boolean
// and blank values are errors rather than 0 or 1.
func attrNumber(raw any) (float64, error) {
	switch r := raw.(type) {
	case nil:
		return 0, errors.New("expected a number, got null")
	case bool:
		return 0, fmt.Errorf("expected a number, got %t", r)
	case string:
		if strings.TrimSpace(r) == "" {
			return 0, errors.New("expected a number, got an empty string")
		}
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected a finite number, got %v", f)
	}
	return f, nil
}
