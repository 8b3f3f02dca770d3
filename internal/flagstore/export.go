// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package flagstore

import (
	"fmt"

	"github.com/specialistvlad/qcgrid/internal/dataset"
)

// Prefix is prepended to a variable name to form its flag variable.
const Prefix = "qc_"

// Attribute names written on flag variables.
const (
	AttrFlagMasks       = "flag_masks"
	AttrFlagMeanings    = "flag_meanings"
	AttrFlagAssessments = "flag_assessments"
	AttrAncillary       = dataset.AttrAncillaryVariables
)

// Name returns the flag variable name for variable.
func Name(variable string) string {
	return Prefix + variable
}

// Export writes one qc_<variable> companion for every flagged variable in
// ds, following the dataset's variable order. A companion left over from a
// previous export is overwritten in place.
func (s *Store) Export(ds *dataset.Dataset) error {
	flagged := make(map[string]bool)
	for _, name := range s.Variables() {
		flagged[name] = true
	}

	for _, src := range ds.Variables() {
		if !flagged[src.Name] {
			continue
		}
		if err := s.exportOne(ds, src); err != nil {
			return fmt.Errorf("exporting flags of %q: %w", src.Name, err)
		}
	}
	return nil
}

func (s *Store) exportOne(ds *dataset.Dataset, src *dataset.Variable) error {
	flags := s.Flags(src.Name)
	if flags == nil {
		flags = make([]uint32, src.Len())
	}
	if len(flags) != src.Len() {
		return fmt.Errorf("%d flag entries for %d elements", len(flags), src.Len())
	}

	data := make([]float64, len(flags))
	for i, f := range flags {
		data[i] = float64(f)
	}
	attrs := s.flagAttrs(src)

	name := Name(src.Name)
	if existing, ok := ds.Variable(name); ok {
		existing.Data = data
		existing.Attrs = attrs
	} else {
		qcVar := &dataset.Variable{
			Name:  name,
			Dims:  append([]string(nil), src.Dims...),
			Shape: append([]int(nil), src.Shape...),
			Type:  "int32",
			Data:  data,
			Attrs: attrs,
		}
		if err := ds.AddVariable(qcVar); err != nil {
			return err
		}
	}

	if src.Attrs == nil {
		src.Attrs = make(map[string]any)
	}
	src.Attrs[AttrAncillary] = name
	return nil
}

func (s *Store) flagAttrs(src *dataset.Variable) map[string]any {
	label := src.Name
	if ln, ok := src.Attrs["long_name"].(string); ok && ln != "" {
		label = ln
	}

	bits := s.Bits(src.Name)
	masks := make([]any, 0, len(bits))
	meanings := make([]any, 0, len(bits))
	assessments := make([]any, 0, len(bits))
	for _, b := range bits {
		m, _ := Mask(b.Bit)
		masks = append(masks, int64(m))
		meanings = append(meanings, b.Meaning)
		assessments = append(assessments, b.Assessment)
	}

	return map[string]any{
		"long_name":         "Quality check results on variable: " + label,
		"standard_name":     dataset.StandardNameQualityFlag,
		"units":             "1",
		AttrFlagMasks:       masks,
		AttrFlagMeanings:    meanings,
		AttrFlagAssessments: assessments,
	}
}
