package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	f := NewFilled(4, 4, 10, 20, 30)
	c := f.Clone()
	c.Set(0, 0, 99, 99, 99)

	r, g, b := f.At(0, 0)
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), b)
}

func TestCropPasteRoundTrip(t *testing.T) {
	f := New(8, 6)
	f.Set(3, 2, 200, 100, 50)

	crop, err := f.Crop(2, 1, 6, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, crop.W)
	assert.Equal(t, 4, crop.H)

	r, g, b := crop.At(1, 1)
	assert.Equal(t, uint8(200), r)
	assert.Equal(t, uint8(100), g)
	assert.Equal(t, uint8(50), b)

	dst := New(8, 6)
	require.NoError(t, dst.Paste(crop, 2, 1))
	r, g, b = dst.At(3, 2)
	assert.Equal(t, [3]uint8{200, 100, 50}, [3]uint8{r, g, b})
}

func TestCropOutOfBounds(t *testing.T) {
	f := New(4, 4)
	_, err := f.Crop(0, 0, 5, 4)
	assert.Error(t, err)

	err = f.Paste(New(3, 3), 2, 2)
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, uint8(0), Clamp(-3.5))
	assert.Equal(t, uint8(255), Clamp(300))
	assert.Equal(t, uint8(128), Clamp(127.6))
}

func TestHSVRoundTrip(t *testing.T) {
	cases := [][3]uint8{
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{255, 255, 255},
		{0, 0, 0},
		{120, 200, 40},
	}
	for _, c := range cases {
		h, s, v := RGBToHSV(c[0], c[1], c[2])
		r, g, b := HSVToRGB(h, s, v)
		assert.InDelta(t, float64(c[0]), float64(r), 1)
		assert.InDelta(t, float64(c[1]), float64(g), 1)
		assert.InDelta(t, float64(c[2]), float64(b), 1)
	}
}

func TestHueDegrees(t *testing.T) {
	h, _, _ := RGBToHSV(255, 0, 0)
	assert.InDelta(t, 0, h, 0.01)
	h, _, _ = RGBToHSV(0, 255, 0)
	assert.InDelta(t, 120, h, 0.01)
	h, _, _ = RGBToHSV(0, 0, 255)
	assert.InDelta(t, 240, h, 0.01)
}
