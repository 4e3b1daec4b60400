// Package filters implements the pure per-pixel color filters. Each
// filter is a constructor returning a clip.PixelFunc with its parameters
// bound; instances carry no state between frames.
package filters

import (
	"sort"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
	"github.com/keagan/vidfx/internal/registry"
)

// Constructor builds a fresh filter instance with default parameters.
type Constructor func() clip.PixelFunc

var filterRegistry = map[string]Constructor{
	"greyscale":     func() clip.PixelFunc { return Greyscale(DefaultGreyscaleOptions()) },
	"film":          func() clip.PixelFunc { return Film(DefaultFilmOptions()) },
	"high_contrast": func() clip.PixelFunc { return HighContrast(DefaultHighContrastOptions()) },
	"hue":           func() clip.PixelFunc { return Hue(DefaultHueOptions()) },
	"purpleish":     func() clip.PixelFunc { return Purpleish(DefaultPurpleishOptions()) },
	"pink_future":   func() clip.PixelFunc { return PinkFuture(DefaultPinkFutureOptions()) },
}

// Names returns all registered filter names, sorted.
func Names() []string {
	names := make([]string, 0, len(filterRegistry))
	for name := range filterRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every requested name is registered. All unknown
// names are reported together.
func Validate(names []string) error {
	return registry.Validate("filter", names, Names())
}

// Compose instantiates one fresh filter per name and returns a single
// pure function that folds the frame through each instance in request
// order. No reordering, no deduplication.
func Compose(names []string) (clip.PixelFunc, error) {
	if err := Validate(names); err != nil {
		return nil, err
	}

	instances := make([]clip.PixelFunc, len(names))
	for i, name := range names {
		instances[i] = filterRegistry[name]()
	}

	return func(f *frame.Frame) *frame.Frame {
		for _, apply := range instances {
			f = apply(f)
		}
		return f
	}, nil
}
