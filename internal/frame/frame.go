package frame

import "fmt"

// Frame is an H×W RGB pixel buffer, 8 bits per channel, row-major with
// interleaved channels. This matches the rgb24 layout ffmpeg reads and
// writes on rawvideo pipes, so frames move to and from the media layer
// without repacking.
type Frame struct {
	W, H int
	Pix  []uint8 // len == W*H*3
}

// New creates a zeroed (black) frame.
func New(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]uint8, w*h*3)}
}

// NewFilled creates a frame with every pixel set to the given color.
func NewFilled(w, h int, r, g, b uint8) *Frame {
	f := New(w, h)
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
	return f
}

// Clone returns a deep copy. Transforms that modify pixels must clone
// first; upstream frames are shared and read-only.
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{W: f.W, H: f.H, Pix: pix}
}

// At returns the pixel at (x, y).
func (f *Frame) At(x, y int) (r, g, b uint8) {
	i := (y*f.W + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// Set writes the pixel at (x, y).
func (f *Frame) Set(x, y int, r, g, b uint8) {
	i := (y*f.W + x) * 3
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

// Crop copies the rectangle [x0,x1)×[y0,y1) into a new frame.
func (f *Frame) Crop(x0, y0, x1, y1 int) (*Frame, error) {
	if x0 < 0 || y0 < 0 || x1 > f.W || y1 > f.H || x0 >= x1 || y0 >= y1 {
		return nil, fmt.Errorf("crop rect (%d,%d)-(%d,%d) outside %dx%d frame", x0, y0, x1, y1, f.W, f.H)
	}
	out := New(x1-x0, y1-y0)
	for y := y0; y < y1; y++ {
		src := (y*f.W + x0) * 3
		dst := (y - y0) * out.W * 3
		copy(out.Pix[dst:dst+out.W*3], f.Pix[src:src+out.W*3])
	}
	return out, nil
}

// Paste writes src into f with its top-left corner at (x, y). The source
// must fit entirely inside f.
func (f *Frame) Paste(src *Frame, x, y int) error {
	if x < 0 || y < 0 || x+src.W > f.W || y+src.H > f.H {
		return fmt.Errorf("paste %dx%d at (%d,%d) outside %dx%d frame", src.W, src.H, x, y, f.W, f.H)
	}
	for row := 0; row < src.H; row++ {
		dst := ((y+row)*f.W + x) * 3
		s := row * src.W * 3
		copy(f.Pix[dst:dst+src.W*3], src.Pix[s:s+src.W*3])
	}
	return nil
}

// Clamp quantizes a float sample into the valid 8-bit range.
func Clamp(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Rec601 luminance weights.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Luma601 computes the Rec.601 weighted luminance of an RGB sample.
func Luma601(r, g, b float64) float64 {
	return LumaR*r + LumaG*g + LumaB*b
}

// Luma709 computes the Rec.709 weighted luminance of an RGB sample.
func Luma709(r, g, b float64) float64 {
	return 0.2126*r + 0.7152*g + 0.0722*b
}
