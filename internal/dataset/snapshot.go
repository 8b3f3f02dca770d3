// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// snapshot is the on-disk layout of a dataset. JSON is a subset of YAML, so
// the same decoder reads both.
type snapshot struct {
	Name       string              `yaml:"name"`
	Attributes map[string]any      `yaml:"attributes,omitempty"`
	Dimensions []snapshotDimension `yaml:"dimensions"`
	Variables  []snapshotVariable  `yaml:"variables"`
}

type snapshotDimension struct {
	Name      string `yaml:"name"`
	Length    int    `yaml:"length,omitempty"`
	Unlimited bool   `yaml:"unlimited,omitempty"`
}

type snapshotVariable struct {
	Name       string         `yaml:"name"`
	Dims       []string       `yaml:"dims,flow"`
	Type       string         `yaml:"type,omitempty"`
	Attributes map[string]any `yaml:"attributes,omitempty"`
	Data       any            `yaml:"data"`
}

// Decode reads a dataset snapshot. Variable data is nested one list level per
// dimension; null entries decode to NaN and timestamps to Unix seconds.
func Decode(r io.Reader) (*Dataset, error) {
	var snap snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode dataset snapshot: %w", err)
	}

	ds := New(snap.Name)
	for k, v := range snap.Attributes {
		ds.Attrs[k] = v
	}
	for _, dim := range snap.Dimensions {
		if err := ds.AddDimension(Dimension{Name: dim.Name, Length: dim.Length, Unlimited: dim.Unlimited}); err != nil {
			return nil, err
		}
	}
	for _, sv := range snap.Variables {
		shape := make([]int, len(sv.Dims))
		for i := range shape {
			shape[i] = -1
		}
		var data []float64
		if err := flatten(sv.Data, shape, 0, &data); err != nil {
			return nil, fmt.Errorf("variable %q: %w", sv.Name, err)
		}
		for i := range shape {
			if shape[i] >= 0 {
				continue
			}
			// Only reachable for dimensions below an empty outer list.
			shape[i] = 0
			if dim, ok := ds.Dimension(sv.Dims[i]); ok {
				shape[i] = dim.Length
			}
		}
		v := &Variable{
			Name:  sv.Name,
			Dims:  sv.Dims,
			Shape: shape,
			Type:  sv.Type,
			Data:  data,
			Attrs: sv.Attributes,
		}
		if err := ds.AddVariable(v); err != nil {
			return nil, err
		}
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func flatten(raw any, shape []int, level int, out *[]float64) error {
	if level == len(shape) {
		f, err := toValue(raw)
		if err != nil {
			return err
		}
		*out = append(*out, f)
		return nil
	}
	if raw == nil && level == 0 {
		shape[0] = 0
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("expected a list at depth %d, got %T", level, raw)
	}
	if shape[level] < 0 {
		shape[level] = len(items)
	} else if shape[level] != len(items) {
		return fmt.Errorf("ragged data at depth %d: %d values, expected %d", level, len(items), shape[level])
	}
	for _, item := range items {
		if err := flatten(item, shape, level+1, out); err != nil {
			return err
		}
	}
	return nil
}

func toValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return math.NaN(), nil
	case time.Time:
		return unixSeconds(v), nil
	case string:
		// yaml.v3 hands timestamps to interface{} targets as strings.
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return unixSeconds(ts), nil
		}
	case []any, map[string]any:
		return 0, fmt.Errorf("expected a number, got %T", raw)
	}
	return cast.ToFloat64E(raw)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}

// Encode writes ds as a YAML snapshot. NaN values are written as null.
func Encode(w io.Writer, ds *Dataset) error {
	snap := snapshot{
		Name:       ds.Name,
		Attributes: ds.Attrs,
	}
	for _, dim := range ds.dims {
		snap.Dimensions = append(snap.Dimensions, snapshotDimension{Name: dim.Name, Length: dim.Length, Unlimited: dim.Unlimited})
	}
	for _, v := range ds.vars {
		snap.Variables = append(snap.Variables, snapshotVariable{
			Name:       v.Name,
			Dims:       v.Dims,
			Type:       v.Type,
			Attributes: v.Attrs,
			Data:       nest(v.Data, v.Shape),
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode dataset snapshot: %w", err)
	}
	return enc.Close()
}

// WriteFile encodes ds to path, replacing any existing file.
func WriteFile(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func nest(data []float64, shape []int) any {
	if len(shape) == 0 {
		if len(data) == 0 {
			return nil
		}
		return scalarOut(data[0])
	}
	if len(shape) == 1 {
		out := make([]any, len(data))
		for i, x := range data {
			out[i] = scalarOut(x)
		}
		return out
	}
	rows := shape[0]
	out := make([]any, rows)
	if rows == 0 {
		return out
	}
	stride := len(data) / rows
	for i := 0; i < rows; i++ {
		out[i] = nest(data[i*stride:(i+1)*stride], shape[1:])
	}
	return out
}

func scalarOut(x float64) any {
	if math.IsNaN(x) {
		return nil
	}
	return x
}
