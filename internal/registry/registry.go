// Package registry holds the name-validation contract shared by the
// filter, effect and transition registries.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidNameError reports every unknown name in a request together with
// the full set of valid names, so a user with three typos learns about
// all of them at once.
type InvalidNameError struct {
	Kind    string // "filter", "effect" or "transition"
	Invalid []string
	Valid   []string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid %ss: %s. Valid %ss are: %s",
		e.Kind, strings.Join(e.Invalid, ", "),
		e.Kind, strings.Join(e.Valid, ", "))
}

// Validate checks every requested name against the valid set. Order and
// duplicates in the request are preserved in the report.
func Validate(kind string, requested, valid []string) error {
	known := make(map[string]struct{}, len(valid))
	for _, name := range valid {
		known[name] = struct{}{}
	}

	var invalid []string
	for _, name := range requested {
		if _, ok := known[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	sorted := append([]string(nil), valid...)
	sort.Strings(sorted)
	return &InvalidNameError{Kind: kind, Invalid: invalid, Valid: sorted}
}
