// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package selector

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse converts a raw token into a Selector. Variable names may contain
// spaces and punctuation (raw instrument columns such as "Wind Speed (m/s)"
// are legal), but not leading or trailing whitespace or control characters.
func Parse(raw string) (Selector, error) {
	if raw == "" {
		return Selector{}, fmt.Errorf("selector cannot be empty")
	}
	if strings.TrimSpace(raw) != raw {
		return Selector{}, fmt.Errorf("selector %q has surrounding whitespace", raw)
	}
	if strings.IndexFunc(raw, unicode.IsControl) >= 0 {
		return Selector{}, fmt.Errorf("selector %q contains control characters", raw)
	}

	switch raw {
	case TokenCoords:
		return Selector{Kind: Coords}, nil
	case TokenDataVars:
		return Selector{Kind: DataVars}, nil
	case TokenAll:
		return Selector{Kind: All}, nil
	}
	return LiteralOf(raw), nil
}

// ParseAll parses every token, reporting the first invalid one.
func ParseAll(raw []string) ([]Selector, error) {
	out := make([]Selector, 0, len(raw))
	for i, token := range raw {
		s, err := Parse(token)
		if err != nil {
			return nil, fmt.Errorf("selector %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}
