// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package selector

// Resolve expands selectors into concrete variable names. Tokens are expanded
// in the order given and group members in schema declaration order; a name
// produced more than once is kept at its first position.
func Resolve(selectors []Selector, schema Schema) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, s := range selectors {
		if s.Kind == Literal {
			if !schema.HasVariable(s.Name) {
				return nil, &UnknownVariableError{Name: s.Name}
			}
			add(s.Name)
			continue
		}
		for _, name := range schema.VariableNames() {
			if matches(s.Kind, schema.IsCoord(name), schema.IsQuality(name)) {
				add(name)
			}
		}
	}
	return out, nil
}

// ResolveExcluding resolves include and removes every variable that exclude
// resolves to. Unknown literals on either side are errors.
func ResolveExcluding(include, exclude []Selector, schema Schema) ([]string, error) {
	names, err := Resolve(include, schema)
	if err != nil {
		return nil, err
	}
	if len(exclude) == 0 {
		return names, nil
	}
	drop, err := Resolve(exclude, schema)
	if err != nil {
		return nil, err
	}
	dropSet := make(map[string]struct{}, len(drop))
	for _, name := range drop {
		dropSet[name] = struct{}{}
	}
	kept := names[:0]
	for _, name := range names {
		if _, ok := dropSet[name]; !ok {
			kept = append(kept, name)
		}
	}
	return kept, nil
}

// Overlaps reports whether a and b are certain to select a common variable in
// any schema where both resolve to something. A literal overlaps COORDS or
// DATA_VARS only depending on the schema, so those pairs report false.
func Overlaps(a, b Selector) bool {
	switch {
	case a.Kind == Literal && b.Kind == Literal:
		return a.Name == b.Name
	case a.Kind == All || b.Kind == All:
		return true
	case a.Kind == Literal || b.Kind == Literal:
		return false
	default:
		return a.Kind == b.Kind
	}
}

func matches(kind Kind, isCoord, isQuality bool) bool {
	switch kind {
	case Coords:
		return isCoord
	case DataVars:
		return !isCoord && !isQuality
	case All:
		return isCoord || !isQuality
	default:
		return false
	}
}
