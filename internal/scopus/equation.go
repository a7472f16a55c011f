// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"fmt"
	"strings"
)

// Equation is a search equation that passed the minimal structure check.
type Equation string

var booleanOperators = []string{"AND", "OR", "NOT"}

// ParseEquation checks the minimal structure of a search equation: it must
// be non-empty and contain either a boolean operator (case-insensitive) or
// a "()" pair. This is deliberately not a full Scopus grammar check; the
// API remains the authority on what actually parses.
func ParseEquation(s string) (Equation, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("search equation cannot be empty")
	}
	upper := strings.ToUpper(s)
	for _, op := range booleanOperators {
		if strings.Contains(upper, op) {
			return Equation(s), nil
		}
	}
	if strings.Contains(s, "()") {
		return Equation(s), nil
	}
	return "", fmt.Errorf("search equation must contain a boolean operator or a field()")
}
