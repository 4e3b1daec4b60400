// Package transitions implements the dual-clip reveal transitions. A
// transition is constructed against the clip it reveals (the target) and
// applied to the clip that plays before it (the source); the result is a
// new source clip whose trailing frames progressively expose target
// content on the mask track.
package transitions

import (
	"sort"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/registry"
)

// Transition rewrites a source clip to reveal its target.
type Transition interface {
	Apply(source clip.Clip) (clip.Clip, error)
}

// Constructor builds a transition bound to the clip it will reveal.
type Constructor func(target clip.Clip) (Transition, error)

var transitionRegistry = map[string]Constructor{
	"three_blocks": func(target clip.Clip) (Transition, error) {
		return NewThreeBlocks(target, DefaultThreeBlocksOptions())
	},
	"blink": func(target clip.Clip) (Transition, error) {
		return NewBlink(target, DefaultBlinkOptions()), nil
	},
}

// Names returns all registered transition names, sorted.
func Names() []string {
	names := make([]string, 0, len(transitionRegistry))
	for name := range transitionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every requested name is registered.
func Validate(names []string) error {
	return registry.Validate("transition", names, Names())
}

// Resolve looks up a single transition constructor by name.
func Resolve(name string) (Constructor, error) {
	ctor, ok := transitionRegistry[name]
	if !ok {
		return nil, Validate([]string{name})
	}
	return ctor, nil
}
