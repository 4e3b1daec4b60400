package clip

import (
	"errors"
	"fmt"
	"time"

	"github.com/keagan/vidfx/internal/frame"
)

// ErrFrameOutOfRange is returned when a frame is requested past a clip's
// extent. Callers must treat this as fatal rather than clamping; a
// silently truncated read corrupts stateful transforms downstream.
var ErrFrameOutOfRange = errors.New("frame index out of clip range")

// Track selects which plane of a clip a transform reads and writes.
type Track int

const (
	// TrackColor is the RGB picture plane.
	TrackColor Track = iota
	// TrackMask is the visibility plane composited at write time.
	TrackMask
)

func (t Track) String() string {
	if t == TrackMask {
		return "mask"
	}
	return "color"
}

// Accessor fetches the frame at a timestamp from one track of a clip.
type Accessor func(t time.Duration) (*frame.Frame, error)

// Clip is an ordered, time-indexed source of frames with fixed metadata.
// Implementations are immutable from the pipeline's point of view:
// transforms wrap a clip to produce a new logical clip, they never mutate
// frames in place.
type Clip interface {
	// Frame returns the color frame at timestamp t.
	Frame(t time.Duration) (*frame.Frame, error)
	// Mask returns the mask frame at timestamp t. A fully opaque clip
	// returns an all-white frame.
	Mask(t time.Duration) (*frame.Frame, error)
	FPS() float64
	Duration() time.Duration
	Bounds() (w, h int)
}

// FrameCount returns the number of whole frames in c.
func FrameCount(c Clip) int {
	return int(c.Duration().Seconds()*c.FPS() + 0.5)
}

// Timestamp converts a frame index to its timestamp at the given rate.
func Timestamp(index int, fps float64) time.Duration {
	return time.Duration(float64(index) / fps * float64(time.Second))
}

// Index converts a timestamp to the nearest frame index at the given rate.
func Index(t time.Duration, fps float64) int {
	return int(t.Seconds()*fps + 0.5)
}

// Buffer is an in-memory clip backed by a frame slice. The media decoder
// and the test suites build clips this way.
type Buffer struct {
	frames []*frame.Frame
	masks  []*frame.Frame // nil means fully opaque
	fps    float64
	w, h   int
}

// NewBuffer creates a clip from decoded frames. All frames must share the
// first frame's dimensions.
func NewBuffer(frames []*frame.Frame, fps float64) (*Buffer, error) {
	if len(frames) == 0 {
		return nil, errors.New("clip needs at least one frame")
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate %f", fps)
	}
	w, h := frames[0].W, frames[0].H
	for i, f := range frames {
		if f.W != w || f.H != h {
			return nil, fmt.Errorf("frame %d is %dx%d, want %dx%d", i, f.W, f.H, w, h)
		}
	}
	return &Buffer{frames: frames, fps: fps, w: w, h: h}, nil
}

func (b *Buffer) index(t time.Duration) (int, error) {
	i := Index(t, b.fps)
	if i < 0 || i >= len(b.frames) {
		return 0, fmt.Errorf("%w: frame %d of %d", ErrFrameOutOfRange, i, len(b.frames))
	}
	return i, nil
}

func (b *Buffer) Frame(t time.Duration) (*frame.Frame, error) {
	i, err := b.index(t)
	if err != nil {
		return nil, err
	}
	return b.frames[i], nil
}

func (b *Buffer) Mask(t time.Duration) (*frame.Frame, error) {
	i, err := b.index(t)
	if err != nil {
		return nil, err
	}
	if b.masks == nil {
		return frame.NewFilled(b.w, b.h, 255, 255, 255), nil
	}
	return b.masks[i], nil
}

func (b *Buffer) FPS() float64       { return b.fps }
func (b *Buffer) Bounds() (int, int) { return b.w, b.h }
func (b *Buffer) Duration() time.Duration {
	return time.Duration(float64(len(b.frames)) / b.fps * float64(time.Second))
}

// Composite flattens a color frame against its mask: each channel is
// scaled by the mask's luminance, so fully white mask pixels pass the
// color through and black ones fall to the background.
func Composite(color, mask *frame.Frame) *frame.Frame {
	out := color.Clone()
	for i := 0; i < len(out.Pix); i += 3 {
		m := frame.Luma601(float64(mask.Pix[i]), float64(mask.Pix[i+1]), float64(mask.Pix[i+2])) / 255
		if m >= 1 {
			continue
		}
		out.Pix[i] = frame.Clamp(float64(out.Pix[i]) * m)
		out.Pix[i+1] = frame.Clamp(float64(out.Pix[i+1]) * m)
		out.Pix[i+2] = frame.Clamp(float64(out.Pix[i+2]) * m)
	}
	return out
}
