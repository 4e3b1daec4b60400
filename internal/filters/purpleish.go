package filters

import (
	"math"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// PurpleishOptions parameterizes the purpleish filter.
type PurpleishOptions struct {
	// RedBoostBlue is added to the red channel of bright blue pixels.
	RedBoostBlue float64
	// GreenReduction scales the green channel of bright blue pixels.
	GreenReduction float64
	// GreyRed and GreyBlue are added to near-grey low-saturation pixels.
	GreyRed  float64
	GreyBlue float64
	// BlueThreshold marks a pixel as "bright blue" when blue exceeds it
	// and dominates red and green.
	BlueThreshold float64
}

func DefaultPurpleishOptions() PurpleishOptions {
	return PurpleishOptions{
		RedBoostBlue:   100,
		GreenReduction: 0.8,
		GreyRed:        40,
		GreyBlue:       30,
		BlueThreshold:  100,
	}
}

// Purpleish tints bright blue pixels toward purple and adds a subtle
// red/blue offset to near-grey pixels. The grey test runs on the values
// left by the blue adjustment, matching the sequential masking of the
// historical implementation.
func Purpleish(opts PurpleishOptions) clip.PixelFunc {
	return func(f *frame.Frame) *frame.Frame {
		out := frame.New(f.W, f.H)
		for i := 0; i < len(f.Pix); i += 3 {
			r := float64(f.Pix[i])
			g := float64(f.Pix[i+1])
			b := float64(f.Pix[i+2])

			if b > opts.BlueThreshold && b > r && b > g {
				r += opts.RedBoostBlue
				g *= opts.GreenReduction
			}

			if math.Abs(r-g) < 20 && math.Abs(r-b) < 20 && b > 30 {
				r += opts.GreyRed
				b += opts.GreyBlue
			}

			out.Pix[i] = frame.Clamp(r)
			out.Pix[i+1] = frame.Clamp(g)
			out.Pix[i+2] = frame.Clamp(b)
		}
		return out
	}
}
