package filters

import (
	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// GreyscaleOptions parameterizes the greyscale filter.
type GreyscaleOptions struct {
	// Weights are the RGB luminance weights.
	Weights [3]float64
	// ContrastFactor scales contrast around the 128 midpoint. Applying
	// the filter twice with a factor other than 1 is not idempotent.
	ContrastFactor float64
}

func DefaultGreyscaleOptions() GreyscaleOptions {
	return GreyscaleOptions{
		Weights:        [3]float64{frame.LumaR, frame.LumaG, frame.LumaB},
		ContrastFactor: 1.3,
	}
}

// Greyscale converts each frame to weighted luminance, applies contrast
// around the midpoint and replicates the result to all three channels.
func Greyscale(opts GreyscaleOptions) clip.PixelFunc {
	return func(f *frame.Frame) *frame.Frame {
		out := frame.New(f.W, f.H)
		for i := 0; i < len(f.Pix); i += 3 {
			grey := opts.Weights[0]*float64(f.Pix[i]) +
				opts.Weights[1]*float64(f.Pix[i+1]) +
				opts.Weights[2]*float64(f.Pix[i+2])
			grey = (grey-128)*opts.ContrastFactor + 128
			v := frame.Clamp(grey)
			out.Pix[i] = v
			out.Pix[i+1] = v
			out.Pix[i+2] = v
		}
		return out
	}
}
