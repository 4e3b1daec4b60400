package effects

import (
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// PhotoMovementOptions parameterizes the photo_movement effect.
type PhotoMovementOptions struct {
	// DuplicateEvery is how many extra frames each trigger holds for.
	// Every (DuplicateEvery+1)-th frame triggers a hold of itself plus
	// the next DuplicateEvery frames.
	DuplicateEvery int
}

func DefaultPhotoMovementOptions() PhotoMovementOptions {
	return PhotoMovementOptions{DuplicateEvery: 4}
}

// photoMovementState is the PASSTHROUGH/HOLDING state machine: holding>0
// means the held frame is served and the counter decremented; at zero the
// trigger condition is re-evaluated on the next call.
type photoMovementState struct {
	held    *frame.Frame
	holding int
	calls   int
}

// PhotoMovement freezes the clip on a stutter cadence: the triggering
// frame and the following DuplicateEvery frames all render as the
// trigger, then pass-through resumes until the next trigger.
func PhotoMovement(opts PhotoMovementOptions) clip.TransformFunc {
	st := &photoMovementState{calls: -1}
	return func(get clip.Accessor, t time.Duration) (*frame.Frame, error) {
		f, err := get(t)
		if err != nil {
			return nil, err
		}

		st.calls++

		if st.holding > 0 {
			st.holding--
			return st.held, nil
		}

		if st.calls%(opts.DuplicateEvery+1) == 0 {
			st.held = f
			st.holding = opts.DuplicateEvery
			return f, nil
		}

		return f, nil
	}
}
