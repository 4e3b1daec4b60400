package transitions

import (
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// BlinkOptions parameterizes the blink transition.
type BlinkOptions struct {
	// FlashFrames is the length of each flash window in frames.
	FlashFrames int
	// RestFrames is the gap between consecutive flash windows.
	RestFrames int
	// Flashes is the number of windows.
	Flashes int
}

func DefaultBlinkOptions() BlinkOptions {
	return BlinkOptions{FlashFrames: 12, RestFrames: 12, Flashes: 3}
}

// Blink flashes whole frames of the target clip during short windows near
// the end of the source clip, as a strobing preview of the upcoming cut.
type Blink struct {
	target clip.Clip
	opts   BlinkOptions
}

func NewBlink(target clip.Clip, opts BlinkOptions) *Blink {
	return &Blink{target: target, opts: opts}
}

// span is the total frame length of the flash pattern.
func (bl *Blink) span() int {
	return bl.opts.Flashes*bl.opts.FlashFrames + (bl.opts.Flashes-1)*bl.opts.RestFrames
}

// Apply wraps the source clip so its final span of frames alternates
// between source and target content. The pattern is anchored to the end
// of the source clip and advances by call order; a target fetch past its
// extent fails hard.
func (bl *Blink) Apply(source clip.Clip) (clip.Clip, error) {
	start := clip.FrameCount(source) - bl.span()
	calls := -1
	fn := func(get clip.Accessor, t time.Duration) (*frame.Frame, error) {
		f, err := get(t)
		if err != nil {
			return nil, err
		}

		calls++
		offset := calls - start
		if offset < 0 {
			return f, nil
		}

		period := bl.opts.FlashFrames + bl.opts.RestFrames
		if offset/period >= bl.opts.Flashes || offset%period >= bl.opts.FlashFrames {
			return f, nil
		}

		flash, err := bl.target.Frame(clip.Timestamp(offset, bl.target.FPS()))
		if err != nil {
			return nil, err
		}
		return flash, nil
	}
	return clip.FrameTransform(source, fn, clip.TrackMask), nil
}
