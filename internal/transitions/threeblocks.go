package transitions

import (
	"fmt"
	"math"
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// ThreeBlocksOptions parameterizes the three_blocks transition.
type ThreeBlocksOptions struct {
	// Bars is the number of vertical reveal bars.
	Bars int
	// BarRatio and GapRatio are bar and gap widths as fractions of the
	// frame width.
	BarRatio float64
	GapRatio float64
	// BandTop and BandBottom bound the vertical band as fractions of the
	// frame height.
	BandTop    float64
	BandBottom float64
	// Thresholds are the call-order frame indices at which one more bar
	// becomes visible. Must be increasing and match Bars in length.
	Thresholds []int
}

func DefaultThreeBlocksOptions() ThreeBlocksOptions {
	return ThreeBlocksOptions{
		Bars:       3,
		BarRatio:   0.30,
		GapRatio:   0.02,
		BandTop:    0.33,
		BandBottom: 0.66,
		Thresholds: []int{50, 70, 100},
	}
}

// ThreeBlocks reveals the target clip through three vertical bars. The
// geometry and the bar crops are fixed at construction from the target's
// first frame, so the revealed content does not drift while the target
// plays.
type ThreeBlocks struct {
	opts  ThreeBlocksOptions
	y1    int
	xs    [][2]int
	crops []*frame.Frame
}

// NewThreeBlocks samples the target's first frame and precomputes the bar
// rectangles and their pixel crops.
func NewThreeBlocks(target clip.Clip, opts ThreeBlocksOptions) (*ThreeBlocks, error) {
	if len(opts.Thresholds) != opts.Bars {
		return nil, fmt.Errorf("need %d thresholds, got %d", opts.Bars, len(opts.Thresholds))
	}

	first, err := target.Frame(0)
	if err != nil {
		return nil, fmt.Errorf("sampling target clip: %w", err)
	}

	w, h := first.W, first.H
	y1 := int(opts.BandTop * float64(h))
	y2 := int(opts.BandBottom * float64(h))
	bar := int(math.Round(opts.BarRatio * float64(w)))
	gap := int(math.Round(opts.GapRatio * float64(w)))

	used := opts.Bars*bar + (opts.Bars-1)*gap
	if used > w || y2 <= y1 {
		return nil, fmt.Errorf("target frame %dx%d too small for %d bars", w, h, opts.Bars)
	}
	leftPad := (w - used) / 2

	tb := &ThreeBlocks{opts: opts, y1: y1}
	cursor := leftPad
	for i := 0; i < opts.Bars; i++ {
		x1, x2 := cursor, cursor+bar
		crop, err := first.Crop(x1, y1, x2, y2)
		if err != nil {
			return nil, err
		}
		tb.xs = append(tb.xs, [2]int{x1, x2})
		tb.crops = append(tb.crops, crop)
		cursor = x2 + gap
	}
	return tb, nil
}

// Bars returns the precomputed bar rectangles as (x1, x2) pairs.
func (tb *ThreeBlocks) Bars() [][2]int { return tb.xs }

// Apply wraps the source clip with the reveal on its mask track. The bar
// count is driven by a call-order counter; once a threshold has fired its
// bar stays visible for the rest of the clip. A fetch past either clip's
// extent fails hard rather than clamping.
func (tb *ThreeBlocks) Apply(source clip.Clip) (clip.Clip, error) {
	calls := -1
	fn := func(get clip.Accessor, t time.Duration) (*frame.Frame, error) {
		f, err := get(t)
		if err != nil {
			return nil, err
		}

		calls++
		visible := 0
		for _, threshold := range tb.opts.Thresholds {
			if calls >= threshold {
				visible++
			}
		}
		if visible == 0 {
			return f, nil
		}

		out := f.Clone()
		for i := 0; i < visible; i++ {
			if err := out.Paste(tb.crops[i], tb.xs[i][0], tb.y1); err != nil {
				return nil, fmt.Errorf("revealing bar %d: %w", i, err)
			}
		}
		return out, nil
	}
	return clip.FrameTransform(source, fn, clip.TrackMask), nil
}
