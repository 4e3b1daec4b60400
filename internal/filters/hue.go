package filters

import (
	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// HueOptions parameterizes the hue filter.
type HueOptions struct {
	// Degrees shifts the hue around the wheel. Positive is clockwise.
	Degrees float64
}

func DefaultHueOptions() HueOptions {
	return HueOptions{Degrees: 50}
}

// Hue rotates every pixel's hue by the configured offset, wrapping around
// the hue wheel. Saturation and value are untouched.
func Hue(opts HueOptions) clip.PixelFunc {
	return func(f *frame.Frame) *frame.Frame {
		out := frame.New(f.W, f.H)
		for i := 0; i < len(f.Pix); i += 3 {
			h, s, v := frame.RGBToHSV(f.Pix[i], f.Pix[i+1], f.Pix[i+2])
			r, g, b := frame.HSVToRGB(h+opts.Degrees, s, v)
			out.Pix[i] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = b
		}
		return out
	}
}
