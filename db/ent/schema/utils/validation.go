// Package utils holds small helpers shared by the ent schemas.
package utils

import "fmt"

// EnumValidator returns a field validator accepting only the listed values.
// The status columns use it instead of ent enums so the Go side keeps
// working with plain typed strings.
func EnumValidator(allowed ...string) func(string) error {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(s string) error {
		if _, ok := set[s]; ok {
			return nil
		}
		return fmt.Errorf("value %q is not one of %v", s, allowed)
	}
}
