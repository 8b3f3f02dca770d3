// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/specialistvlad/qcgrid/internal/qc"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their configuration key, not the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeParams decodes a raw parameter map into out, which must be a pointer
// to a struct with mapstructure tags, and validates it with its validate
// tags. Scalars are coerced ("4" decodes into an int field) and unknown keys
// are rejected.
func DecodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("creating parameter decoder: %w", err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("decoding parameters: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return formatValidation(err)
	}
	return nil
}

func formatValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating parameters: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("parameter '%s' failed '%s'", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			msg += fmt.Sprintf(" (%s)", fe.Param())
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid parameters: %s", strings.Join(msgs, "; "))
}

// Checker adapts a typed constructor into a CheckerFactory. Parameters are
// decoded into a zero P by DecodeParams before build is called.
func Checker[P any](build func(P) (qc.Checker, error)) CheckerFactory {
	return func(params map[string]any) (qc.Checker, error) {
		var p P
		if err := decodeInto(params, &p); err != nil {
			return nil, err
		}
		return build(p)
	}
}

// Handler adapts a typed constructor into a HandlerFactory.
func Handler[P any](build func(P) (qc.Handler, error)) HandlerFactory {
	return func(params map[string]any) (qc.Handler, error) {
		var p P
		if err := decodeInto(params, &p); err != nil {
			return nil, err
		}
		return build(p)
	}
}

// decodeInto skips decoding for parameterless kinds, where P is struct{},
// but still rejects any parameter given to them.
func decodeInto(params map[string]any, out any) error {
	if reflect.TypeOf(out).Elem().NumField() == 0 {
		if len(params) > 0 {
			keys := sortedKeys(params)
			return fmt.Errorf("decoding parameters: takes no parameters, got %s", strings.Join(keys, ", "))
		}
		return nil
	}
	return DecodeParams(params, out)
}
