package clip

import (
	"time"

	"github.com/keagan/vidfx/internal/frame"
)

// PixelFunc is a pure per-frame transform: pixel buffer in, pixel buffer
// out, no memory of prior frames.
type PixelFunc func(*frame.Frame) *frame.Frame

// TransformFunc is a stateful per-frame transform. It pulls its input
// through the accessor, which yields the upstream clip's frame for the
// transform's track at the given timestamp.
type TransformFunc func(get Accessor, t time.Duration) (*frame.Frame, error)

// PixelTransform wraps a clip so every fetched color frame passes through
// fn first. The mask track is untouched.
func PixelTransform(c Clip, fn PixelFunc) Clip {
	return &pixelClip{Clip: c, fn: fn}
}

type pixelClip struct {
	Clip
	fn PixelFunc
}

func (p *pixelClip) Frame(t time.Duration) (*frame.Frame, error) {
	f, err := p.Clip.Frame(t)
	if err != nil {
		return nil, err
	}
	return p.fn(f), nil
}

// FrameTransform wraps a clip so every fetch on the given track passes
// through the stateful fn. The accessor handed to fn resolves against the
// wrapped clip, so stacked transforms each see their predecessor's output.
func FrameTransform(c Clip, fn TransformFunc, track Track) Clip {
	return &transformClip{Clip: c, fn: fn, track: track}
}

type transformClip struct {
	Clip
	fn    TransformFunc
	track Track
}

func (tc *transformClip) Frame(t time.Duration) (*frame.Frame, error) {
	if tc.track != TrackColor {
		return tc.Clip.Frame(t)
	}
	return tc.fn(tc.Clip.Frame, t)
}

func (tc *transformClip) Mask(t time.Duration) (*frame.Frame, error) {
	if tc.track != TrackMask {
		return tc.Clip.Mask(t)
	}
	return tc.fn(tc.Clip.Mask, t)
}
