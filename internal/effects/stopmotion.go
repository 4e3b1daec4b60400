package effects

import (
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// IndexSource selects how an effect derives the current frame index.
type IndexSource int

const (
	// IndexByCall counts invocations. This is the authoritative source:
	// it needs no frame-rate knowledge and is immune to timestamp
	// rounding at fractional rates.
	IndexByCall IndexSource = iota
	// IndexByTimestamp derives the index from timestamp×fps. Kept for
	// compatibility with the historical variant.
	IndexByTimestamp
)

// StopMotionOptions parameterizes the stop_motion effect.
type StopMotionOptions struct {
	// RemoveEvery replaces every Nth frame (by index) with the last
	// retained frame.
	RemoveEvery int
	Source      IndexSource
	// FPS is consulted only when Source is IndexByTimestamp.
	FPS float64
}

func DefaultStopMotionOptions() StopMotionOptions {
	return StopMotionOptions{RemoveEvery: 2, Source: IndexByCall}
}

type stopMotionState struct {
	retained *frame.Frame
	calls    int
}

// StopMotion replaces every Nth frame with the previously retained frame.
// The first matching frame has nothing retained yet and passes through.
// Replaced frames do not update the retained frame.
func StopMotion(opts StopMotionOptions) clip.TransformFunc {
	st := &stopMotionState{calls: -1}
	return func(get clip.Accessor, t time.Duration) (*frame.Frame, error) {
		f, err := get(t)
		if err != nil {
			return nil, err
		}

		var index int
		if opts.Source == IndexByTimestamp {
			index = clip.Index(t, opts.FPS)
		} else {
			st.calls++
			index = st.calls
		}

		if index%opts.RemoveEvery == 0 {
			if st.retained != nil {
				return st.retained, nil
			}
			return f, nil
		}

		st.retained = f
		return f, nil
	}
}
