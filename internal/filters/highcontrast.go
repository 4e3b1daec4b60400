package filters

import (
	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// HighContrastOptions parameterizes the high_contrast filter.
type HighContrastOptions struct {
	ContrastFactor float64
}

func DefaultHighContrastOptions() HighContrastOptions {
	return HighContrastOptions{ContrastFactor: 1.5}
}

// HighContrast normalizes each channel to [0,1], pushes it away from 0.5
// by the contrast factor and rescales to [0,255].
func HighContrast(opts HighContrastOptions) clip.PixelFunc {
	return func(f *frame.Frame) *frame.Frame {
		out := frame.New(f.W, f.H)
		for i, p := range f.Pix {
			v := 0.5 + (float64(p)/255-0.5)*opts.ContrastFactor
			out.Pix[i] = frame.Clamp(v * 255)
		}
		return out
	}
}
