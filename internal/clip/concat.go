package clip

import (
	"errors"
	"fmt"
	"time"

	"github.com/keagan/vidfx/internal/frame"
)

// Concat joins clips end to end on a shared canvas. Clips of differing
// sizes are centered on a canvas big enough for the largest one; nothing
// is cropped or stretched. Each source frame is flattened against its own
// mask while being placed.
func Concat(clips []Clip) (Clip, error) {
	if len(clips) == 0 {
		return nil, errors.New("no clips to concatenate")
	}

	w, h := 0, 0
	fps := 0.0
	var total time.Duration
	offsets := make([]time.Duration, len(clips))
	for i, c := range clips {
		cw, ch := c.Bounds()
		if cw > w {
			w = cw
		}
		if ch > h {
			h = ch
		}
		if c.FPS() > fps {
			fps = c.FPS()
		}
		offsets[i] = total
		total += c.Duration()
	}

	return &concatClip{
		clips:   clips,
		offsets: offsets,
		w:       w,
		h:       h,
		fps:     fps,
		total:   total,
	}, nil
}

type concatClip struct {
	clips   []Clip
	offsets []time.Duration
	w, h    int
	fps     float64
	total   time.Duration
}

func (cc *concatClip) FPS() float64            { return cc.fps }
func (cc *concatClip) Bounds() (int, int)      { return cc.w, cc.h }
func (cc *concatClip) Duration() time.Duration { return cc.total }

// locate maps a global timestamp to the owning clip and its local time.
func (cc *concatClip) locate(t time.Duration) (Clip, time.Duration, error) {
	if t < 0 || t >= cc.total {
		return nil, 0, fmt.Errorf("%w: t=%v of %v", ErrFrameOutOfRange, t, cc.total)
	}
	for i := len(cc.clips) - 1; i >= 0; i-- {
		if t >= cc.offsets[i] {
			local := t - cc.offsets[i]
			// Guard the rounding edge at each junction: a global
			// timestamp that rounds to one-past-last stays in clip i+1.
			if Index(local, cc.clips[i].FPS()) >= FrameCount(cc.clips[i]) {
				local = cc.clips[i].Duration() - time.Duration(float64(time.Second)/cc.clips[i].FPS()/2)
			}
			return cc.clips[i], local, nil
		}
	}
	return nil, 0, fmt.Errorf("%w: t=%v", ErrFrameOutOfRange, t)
}

func (cc *concatClip) Frame(t time.Duration) (*frame.Frame, error) {
	c, local, err := cc.locate(t)
	if err != nil {
		return nil, err
	}
	color, err := c.Frame(local)
	if err != nil {
		return nil, err
	}
	mask, err := c.Mask(local)
	if err != nil {
		return nil, err
	}
	flat := Composite(color, mask)

	if flat.W == cc.w && flat.H == cc.h {
		return flat, nil
	}
	canvas := frame.New(cc.w, cc.h)
	if err := canvas.Paste(flat, (cc.w-flat.W)/2, (cc.h-flat.H)/2); err != nil {
		return nil, err
	}
	return canvas, nil
}

func (cc *concatClip) Mask(t time.Duration) (*frame.Frame, error) {
	if _, _, err := cc.locate(t); err != nil {
		return nil, err
	}
	return frame.NewFilled(cc.w, cc.h, 255, 255, 255), nil
}
