// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dataset

import (
	"fmt"
	"math"
	"strings"
)

// Dimension is a named axis of the dataset.
type Dimension struct {
	Name string
	// Length is the declared length. For unlimited dimensions it is filled
	// in from the first variable laid out on the dimension.
	Length    int
	Unlimited bool
}

// Variable is a named array of values with its dimensions and attributes.
type Variable struct {
	Name  string
	Dims  []string
	Shape []int
	// Type is the declared storage type (e.g. "float64", "int32"). Values are
	// always held as float64 in memory.
	Type  string
	Data  []float64
	Attrs map[string]any
}

// Len returns the number of elements in the variable.
func (v *Variable) Len() int {
	return len(v.Data)
}

// Rows returns the length of the first dimension, which is the axis the
// sequential checks (monotonic, delta) walk along. Scalars have one row.
func (v *Variable) Rows() int {
	if len(v.Shape) == 0 {
		return 1
	}
	return v.Shape[0]
}

// Stride returns the number of elements in one row of the first dimension.
func (v *Variable) Stride() int {
	rows := v.Rows()
	if rows == 0 {
		return 0
	}
	return len(v.Data) / rows
}

// IsCoord reports whether the variable is a coordinate variable.
func (v *Variable) IsCoord() bool {
	return len(v.Dims) == 1 && v.Dims[0] == v.Name
}

// MissingValue returns the value written in place of removed data: the
// declared fill value, or NaN when none is declared.
func (v *Variable) MissingValue() float64 {
	if fill, ok := v.FillValue(); ok {
		return fill
	}
	return math.NaN()
}

// IsMissing reports whether element i is NaN or equal to the fill value.
// Loops over many elements should use MissingFunc.
func (v *Variable) IsMissing(i int) bool {
	return v.MissingFunc()(i)
}

// MissingFunc resolves the fill value once and returns a predicate that
// reports whether element i is NaN or equal to it. The predicate reads the
// current data, so values replaced after the call are seen.
func (v *Variable) MissingFunc() func(i int) bool {
	fill, hasFill := v.FillValue()
	return func(i int) bool {
		x := v.Data[i]
		return math.IsNaN(x) || (hasFill && x == fill)
	}
}

// Clone returns a deep copy of the variable.
func (v *Variable) Clone() *Variable {
	out := &Variable{
		Name:  v.Name,
		Dims:  append([]string(nil), v.Dims...),
		Shape: append([]int(nil), v.Shape...),
		Type:  v.Type,
		Data:  append([]float64(nil), v.Data...),
		Attrs: cloneAttrs(v.Attrs),
	}
	return out
}

// Dataset is an ordered collection of dimensions and variables.
type Dataset struct {
	Name  string
	Attrs map[string]any

	dims   []*Dimension
	vars   []*Variable
	dimIdx map[string]int
	varIdx map[string]int
}

// New creates an empty dataset.
func New(name string) *Dataset {
	return &Dataset{
		Name:   name,
		Attrs:  make(map[string]any),
		dimIdx: make(map[string]int),
		varIdx: make(map[string]int),
	}
}

// AddDimension declares a new dimension.
func (d *Dataset) AddDimension(dim Dimension) error {
	if dim.Name == "" {
		return &SchemaError{Reason: "dimension name cannot be empty"}
	}
	if _, exists := d.dimIdx[dim.Name]; exists {
		return &SchemaError{Dimension: dim.Name, Reason: "dimension already declared"}
	}
	if dim.Length < 0 {
		return &SchemaError{Dimension: dim.Name, Reason: fmt.Sprintf("negative length %d", dim.Length)}
	}
	d.dimIdx[dim.Name] = len(d.dims)
	d.dims = append(d.dims, &dim)
	return nil
}

// AddVariable appends a variable. When Shape is empty it is derived from the
// variable's dimensions; an unlimited dimension without a known length takes
// whatever length makes the data fit.
func (d *Dataset) AddVariable(v *Variable) error {
	if v == nil || v.Name == "" {
		return &SchemaError{Reason: "variable name cannot be empty"}
	}
	if _, exists := d.varIdx[v.Name]; exists {
		return &SchemaError{Variable: v.Name, Reason: "variable already declared"}
	}
	if v.Attrs == nil {
		v.Attrs = make(map[string]any)
	}
	if v.Type == "" {
		v.Type = "float64"
	}
	if len(v.Shape) == 0 && len(v.Dims) > 0 {
		shape, err := d.inferShape(v)
		if err != nil {
			return err
		}
		v.Shape = shape
	}
	if err := d.checkVariable(v); err != nil {
		return err
	}
	for i, name := range v.Dims {
		if dim, _ := d.Dimension(name); dim.Unlimited && dim.Length == 0 {
			dim.Length = v.Shape[i]
		}
	}
	d.varIdx[v.Name] = len(d.vars)
	d.vars = append(d.vars, v)
	return nil
}

func (d *Dataset) inferShape(v *Variable) ([]int, error) {
	shape := make([]int, len(v.Dims))
	known, open := 1, -1
	for i, name := range v.Dims {
		dim, ok := d.Dimension(name)
		if !ok {
			return nil, &SchemaError{Variable: v.Name, Dimension: name, Reason: "dimension is not declared"}
		}
		if dim.Unlimited && dim.Length == 0 {
			if open >= 0 {
				return nil, &SchemaError{Variable: v.Name, Reason: "more than one unlimited dimension without a length"}
			}
			open = i
			continue
		}
		shape[i] = dim.Length
		known *= dim.Length
	}
	if open >= 0 {
		if known == 0 || len(v.Data)%known != 0 {
			return nil, &SchemaError{Variable: v.Name, Reason: fmt.Sprintf("%d values do not fit dimensions %v", len(v.Data), v.Dims)}
		}
		shape[open] = len(v.Data) / known
	}
	return shape, nil
}

// Variable returns the named variable.
func (d *Dataset) Variable(name string) (*Variable, bool) {
	i, ok := d.varIdx[name]
	if !ok {
		return nil, false
	}
	return d.vars[i], true
}

// Dimension returns the named dimension.
func (d *Dataset) Dimension(name string) (*Dimension, bool) {
	i, ok := d.dimIdx[name]
	if !ok {
		return nil, false
	}
	return d.dims[i], true
}

// Dimensions returns all dimensions in declaration order.
func (d *Dataset) Dimensions() []*Dimension {
	return append([]*Dimension(nil), d.dims...)
}

// Variables returns all variables in declaration order.
func (d *Dataset) Variables() []*Variable {
	return append([]*Variable(nil), d.vars...)
}

// VariableNames returns all variable names in declaration order.
func (d *Dataset) VariableNames() []string {
	names := make([]string, len(d.vars))
	for i, v := range d.vars {
		names[i] = v.Name
	}
	return names
}

// HasVariable reports whether a variable with the given name exists.
func (d *Dataset) HasVariable(name string) bool {
	_, ok := d.varIdx[name]
	return ok
}

// IsCoord reports whether the named variable is a coordinate variable.
func (d *Dataset) IsCoord(name string) bool {
	v, ok := d.Variable(name)
	return ok && v.IsCoord()
}

// IsQuality reports whether name is a quality companion: it carries
// standard_name quality_flag or another variable lists it in its
// ancillary_variables. Quality companions never belong to the DATA_VARS or
// ALL groups.
func (d *Dataset) IsQuality(name string) bool {
	v, ok := d.Variable(name)
	if !ok {
		return false
	}
	if sn, _ := v.Attrs[AttrStandardName].(string); sn == StandardNameQualityFlag {
		return true
	}
	for _, other := range d.vars {
		if other.Name == name {
			continue
		}
		refs, _ := other.Attrs[AttrAncillaryVariables].(string)
		for _, ref := range strings.Fields(refs) {
			if ref == name {
				return true
			}
		}
	}
	return false
}

// Coords returns the coordinate variable names in declaration order.
func (d *Dataset) Coords() []string {
	var out []string
	for _, v := range d.vars {
		if v.IsCoord() {
			out = append(out, v.Name)
		}
	}
	return out
}

// DataVars returns the variables that are neither coordinates nor quality
// companions, in declaration order.
func (d *Dataset) DataVars() []string {
	var out []string
	for _, v := range d.vars {
		if !v.IsCoord() && !d.IsQuality(v.Name) {
			out = append(out, v.Name)
		}
	}
	return out
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := New(d.Name)
	out.Attrs = cloneAttrs(d.Attrs)
	for _, dim := range d.dims {
		cp := *dim
		out.dimIdx[cp.Name] = len(out.dims)
		out.dims = append(out.dims, &cp)
	}
	for _, v := range d.vars {
		out.varIdx[v.Name] = len(out.vars)
		out.vars = append(out.vars, v.Clone())
	}
	return out
}

func cloneAttrs(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if s, ok := v.([]any); ok {
			v = append([]any(nil), s...)
		}
		out[k] = v
	}
	return out
}
