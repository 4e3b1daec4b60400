// Package merge validates transition junction bindings and stitches a
// clip list into one timeline.
package merge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/transitions"
)

// FormatError reports a binding token without the name@index shape.
type FormatError struct {
	Binding string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("transition is missing a clip number: %s. Use <transition_name>@<clip_number>", e.Binding)
}

// NotANumberError reports a junction index that is not a whole number.
type NotANumberError struct {
	Binding string
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("transition clip number must be a number: %s", e.Binding)
}

// OutOfBoundsError reports a junction index that names no interior
// boundary of the clip list.
type OutOfBoundsError struct {
	Index     int
	ClipCount int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("transition clip number %d is out of bounds for %d clips. Valid clip numbers are from 1 to %d",
		e.Index, e.ClipCount, e.ClipCount-1)
}

// DuplicateJunctionError reports a junction targeted by two bindings.
type DuplicateJunctionError struct {
	Index int
}

func (e *DuplicateJunctionError) Error() string {
	return fmt.Sprintf("transition clip number %d is already used. You can only use each clip number once", e.Index)
}

// Binding pairs a resolved transition name with the junction it plays
// at. Junction is 0-based internally: the transition plays at the end of
// clips[Junction], revealing clips[Junction+1].
type Binding struct {
	Name     string
	Junction int
}

// ParseBindings validates name@index tokens against the clip count and
// the transition registry. The index is 1-based on the wire. Validation
// fails fast on the first invalid binding, before any transition is
// instantiated.
func ParseBindings(tokens []string, clipCount int) ([]Binding, error) {
	used := make(map[int]struct{}, len(tokens))
	bindings := make([]Binding, 0, len(tokens))

	for _, token := range tokens {
		name, indexPart, ok := strings.Cut(token, "@")
		if !ok || indexPart == "" {
			return nil, &FormatError{Binding: token}
		}

		if !isDigits(indexPart) {
			return nil, &NotANumberError{Binding: token}
		}
		index, err := strconv.Atoi(indexPart)
		if err != nil {
			return nil, &NotANumberError{Binding: token}
		}

		if index < 1 || index >= clipCount {
			return nil, &OutOfBoundsError{Index: index, ClipCount: clipCount}
		}

		if _, dup := used[index]; dup {
			return nil, &DuplicateJunctionError{Index: index}
		}
		used[index] = struct{}{}

		if err := transitions.Validate([]string{name}); err != nil {
			return nil, err
		}

		bindings = append(bindings, Binding{Name: name, Junction: index - 1})
	}
	return bindings, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Apply rebinds each junction's leading clip through its transition, in
// the order the caller supplied, then concatenates the full list into one
// timeline on a shared canvas.
func Apply(clips []clip.Clip, bindings []Binding) (clip.Clip, error) {
	if len(clips) < 2 {
		return nil, fmt.Errorf("merge needs at least two clips, got %d", len(clips))
	}

	// the caller's list stays read-only; rebinding happens on a copy
	staged := append([]clip.Clip(nil), clips...)

	for _, b := range bindings {
		ctor, err := transitions.Resolve(b.Name)
		if err != nil {
			return nil, err
		}
		tr, err := ctor(staged[b.Junction+1])
		if err != nil {
			return nil, fmt.Errorf("building %s transition at junction %d: %w", b.Name, b.Junction+1, err)
		}
		wrapped, err := tr.Apply(staged[b.Junction])
		if err != nil {
			return nil, fmt.Errorf("applying %s transition at junction %d: %w", b.Name, b.Junction+1, err)
		}
		staged[b.Junction] = wrapped
	}

	return clip.Concat(staged)
}
