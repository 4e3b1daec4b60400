// Package effects implements the stateful temporal effects. Each effect
// instance owns private counters whose lifetime is exactly one pipeline
// run; the registry hands out a fresh instance per composition.
package effects

import (
	"sort"
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
	"github.com/keagan/vidfx/internal/registry"
)

// Constructor builds a fresh effect instance with default parameters.
type Constructor func() clip.TransformFunc

var effectRegistry = map[string]Constructor{
	"stop_motion":    func() clip.TransformFunc { return StopMotion(DefaultStopMotionOptions()) },
	"photo_movement": func() clip.TransformFunc { return PhotoMovement(DefaultPhotoMovementOptions()) },
}

// Names returns all registered effect names, sorted.
func Names() []string {
	names := make([]string, 0, len(effectRegistry))
	for name := range effectRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every requested name is registered, reporting all
// unknown names together.
func Validate(names []string) error {
	return registry.Validate("effect", names, Names())
}

// Compose instantiates one fresh effect per name and chains them so the
// accessor handed to effect i yields the output of effect i−1. The
// returned function must be called with monotonically increasing
// timestamps, one frame at a time; the effects count calls, so skipped or
// reordered frames silently corrupt their state.
func Compose(names []string) (clip.TransformFunc, error) {
	if err := Validate(names); err != nil {
		return nil, err
	}

	instances := make([]clip.TransformFunc, len(names))
	for i, name := range names {
		instances[i] = effectRegistry[name]()
	}

	return func(get clip.Accessor, t time.Duration) (*frame.Frame, error) {
		acc := get
		for _, e := range instances {
			e, upstream := e, acc
			acc = func(ts time.Duration) (*frame.Frame, error) {
				return e(upstream, ts)
			}
		}
		return acc(t)
	}, nil
}
