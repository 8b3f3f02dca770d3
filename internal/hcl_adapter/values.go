// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl_adapter

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// bodyParams evaluates every attribute of a component body into plain Go
// values. Nested blocks are not allowed.
func bodyParams(body hcl.Body) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make(map[string]any, len(attrs))
	for _, name := range names {
		attr := attrs[name]
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		v, err := ctyValueToInterface(val)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", attr.Range, name, err)
		}
		params[name] = v
	}
	return params, nil
}

// ctyValueToInterface converts a cty.Value to a Go interface{}. Whole
// numbers become int64 so integer parameters keep their type.
func ctyValueToInterface(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if ty.IsPrimitiveType() {
		switch ty {
		case cty.String:
			return val.AsString(), nil
		case cty.Number:
			bf := val.AsBigFloat()
			if bf.IsInt() {
				if i, acc := bf.Int64(); acc == big.Exact {
					return i, nil
				}
			}
			f, _ := bf.Float64()
			return f, nil
		case cty.Bool:
			return val.True(), nil
		default:
			return nil, fmt.Errorf("unsupported primitive type: %s", ty.FriendlyName())
		}
	}
	if ty.IsObjectType() || ty.IsMapType() {
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			converted, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = converted
		}
		return out, nil
	}
	if ty.IsTupleType() || ty.IsListType() || ty.IsSetType() {
		out := []any{}
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			converted, err := ctyValueToInterface(v)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty.Type for conversion: %s", ty.FriendlyName())
}
