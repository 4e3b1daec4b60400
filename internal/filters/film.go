package filters

import (
	"math/rand"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
)

// FilmOptions parameterizes the film filter.
type FilmOptions struct {
	// GrainStd is the standard deviation of the additive Gaussian grain.
	GrainStd float64
	// Warm holds per-channel RGB multipliers for the warm tint.
	Warm [3]float64
	// SatFactor boosts saturation relative to luminance.
	SatFactor float64
}

func DefaultFilmOptions() FilmOptions {
	return FilmOptions{
		GrainStd:  10,
		Warm:      [3]float64{1.4, 1.3, 0.95},
		SatFactor: 1.2,
	}
}

// Film adds Gaussian grain, a warm color grade and a saturation boost,
// clipping back to 8 bits once at the end.
func Film(opts FilmOptions) clip.PixelFunc {
	return func(f *frame.Frame) *frame.Frame {
		out := frame.New(f.W, f.H)
		for i := 0; i < len(f.Pix); i += 3 {
			r := float64(f.Pix[i]) + rand.NormFloat64()*opts.GrainStd
			g := float64(f.Pix[i+1]) + rand.NormFloat64()*opts.GrainStd
			b := float64(f.Pix[i+2]) + rand.NormFloat64()*opts.GrainStd

			r *= opts.Warm[0]
			g *= opts.Warm[1]
			b *= opts.Warm[2]

			luma := frame.Luma601(r, g, b)
			r = luma + (r-luma)*opts.SatFactor
			g = luma + (g-luma)*opts.SatFactor
			b = luma + (b-luma)*opts.SatFactor

			out.Pix[i] = frame.Clamp(r)
			out.Pix[i+1] = frame.Clamp(g)
			out.Pix[i+2] = frame.Clamp(b)
		}
		return out
	}
}
