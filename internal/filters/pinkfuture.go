package filters

import (
	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// PinkFutureOptions parameterizes the pink_future filter.
//
// HighlightThreshold is part of the historical interface but is not
// consulted: both the pink and the cyan mask compare against
// ShadowThreshold. The asymmetry is part of the stylized look, so it is
// kept rather than fixed.
type PinkFutureOptions struct {
	Contrast           float64
	Brightness         float64
	PinkStrength       float64
	CyanStrength       float64
	ShadowThreshold    float64
	HighlightThreshold float64
}

func DefaultPinkFutureOptions() PinkFutureOptions {
	return PinkFutureOptions{
		Contrast:           1.0,
		Brightness:         0.0,
		PinkStrength:       0.5,
		CyanStrength:       0.5,
		ShadowThreshold:    0.3,
		HighlightThreshold: 0.7,
	}
}

var (
	pinkOverlay = [3]float64{255, 130, 255}
	cyanOverlay = [3]float64{0, 255, 255}
)

// PinkFuture applies contrast and brightness, then overlays a fixed pink
// tint on pixels whose normalized luminance sits above ShadowThreshold
// and a fixed cyan tint on those below it.
func PinkFuture(opts PinkFutureOptions) clip.PixelFunc {
	return func(f *frame.Frame) *frame.Frame {
		out := frame.New(f.W, f.H)
		for i := 0; i < len(f.Pix); i += 3 {
			var px [3]float64
			for c := 0; c < 3; c++ {
				v := (float64(f.Pix[i+c])-128)*opts.Contrast + 128
				v += opts.Brightness
				if v < 0 {
					v = 0
				} else if v > 255 {
					v = 255
				}
				px[c] = v
			}

			grey := frame.Luma709(px[0], px[1], px[2]) / 255

			if grey > opts.ShadowThreshold {
				for c := 0; c < 3; c++ {
					px[c] = px[c]*(1-opts.PinkStrength) + pinkOverlay[c]*opts.PinkStrength
				}
			} else if grey < opts.ShadowThreshold {
				for c := 0; c < 3; c++ {
					px[c] = px[c]*(1-opts.CyanStrength) + cyanOverlay[c]*opts.CyanStrength
				}
			}

			out.Pix[i] = frame.Clamp(px[0])
			out.Pix[i+1] = frame.Clamp(px[1])
			out.Pix[i+2] = frame.Clamp(px[2])
		}
		return out
	}
}
