package transitions

import (
	"testing"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
	"github.com/keagan/vidfx/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFPS = 10.0

func solidClip(t *testing.T, n, w, h int, r, g, b uint8) *clip.Buffer {
	t.Helper()
	frames := make([]*frame.Frame, n)
	for i := range frames {
		frames[i] = frame.NewFilled(w, h, r, g, b)
	}
	c, err := clip.NewBuffer(frames, testFPS)
	require.NoError(t, err)
	return c
}

func TestThreeBlocksGeometry(t *testing.T) {
	target := solidClip(t, 1, 100, 90, 200, 10, 10)
	tb, err := NewThreeBlocks(target, DefaultThreeBlocksOptions())
	require.NoError(t, err)

	bars := tb.Bars()
	require.Len(t, bars, 3)

	// bar = round(0.30*100) = 30, gap = round(0.02*100) = 2
	for _, bar := range bars {
		assert.Equal(t, 30, bar[1]-bar[0])
	}
	assert.Equal(t, 2, bars[1][0]-bars[0][1])
	assert.Equal(t, 2, bars[2][0]-bars[1][1])

	// centered: left margin equals right margin within a pixel
	left := bars[0][0]
	right := 100 - bars[2][1]
	assert.LessOrEqual(t, abs(left-right), 1)
}

func TestThreeBlocksGeometryOddWidth(t *testing.T) {
	target := solidClip(t, 1, 97, 60, 0, 0, 0)
	tb, err := NewThreeBlocks(target, DefaultThreeBlocksOptions())
	require.NoError(t, err)

	bars := tb.Bars()
	// bar = round(29.1) = 29, gap = round(1.94) = 2
	spanned := bars[2][1] - bars[0][0]
	assert.Equal(t, 3*29+2*2, spanned)

	left := bars[0][0]
	right := 97 - bars[2][1]
	assert.LessOrEqual(t, abs(left-right), 1)
}

func TestThreeBlocksRejectsTinyTarget(t *testing.T) {
	target := solidClip(t, 1, 2, 2, 0, 0, 0)
	_, err := NewThreeBlocks(target, DefaultThreeBlocksOptions())
	assert.Error(t, err)
}

func TestThreeBlocksProgressiveReveal(t *testing.T) {
	target := solidClip(t, 2, 100, 90, 200, 10, 10)
	source := solidClip(t, 110, 100, 90, 0, 0, 255)

	tb, err := NewThreeBlocks(target, DefaultThreeBlocksOptions())
	require.NoError(t, err)
	out, err := tb.Apply(source)
	require.NoError(t, err)

	bars := tb.Bars()
	_, h := target.Bounds()
	bandY := int(0.33*float64(h)) + 1

	sampleBar := func(m *frame.Frame, bar int) [3]uint8 {
		r, g, b := m.At((bars[bar][0]+bars[bar][1])/2, bandY)
		return [3]uint8{r, g, b}
	}
	white := [3]uint8{255, 255, 255}
	targetPx := [3]uint8{200, 10, 10}

	// masks must be pulled in strict call order
	for i := 0; i < 110; i++ {
		m, err := out.Mask(clip.Timestamp(i, testFPS))
		require.NoError(t, err)

		switch {
		case i < 50:
			assert.Equal(t, white, sampleBar(m, 0), "frame %d", i)
		case i < 70:
			assert.Equal(t, targetPx, sampleBar(m, 0), "frame %d", i)
			assert.Equal(t, white, sampleBar(m, 1), "frame %d", i)
		case i < 100:
			assert.Equal(t, targetPx, sampleBar(m, 1), "frame %d", i)
			assert.Equal(t, white, sampleBar(m, 2), "frame %d", i)
		default:
			assert.Equal(t, targetPx, sampleBar(m, 0), "frame %d", i)
			assert.Equal(t, targetPx, sampleBar(m, 1), "frame %d", i)
			assert.Equal(t, targetPx, sampleBar(m, 2), "frame %d", i)
		}
	}

	// color track untouched
	f, err := out.Frame(clip.Timestamp(60, testFPS))
	require.NoError(t, err)
	r, g, b := f.At(50, bandY)
	assert.Equal(t, [3]uint8{0, 0, 255}, [3]uint8{r, g, b})
}

func TestThreeBlocksCropsDoNotDrift(t *testing.T) {
	// target frame 0 is red, frame 1 green; the cached crop must stay red
	first := frame.NewFilled(100, 90, 200, 0, 0)
	second := frame.NewFilled(100, 90, 0, 200, 0)
	target, err := clip.NewBuffer([]*frame.Frame{first, second}, testFPS)
	require.NoError(t, err)

	tb, err := NewThreeBlocks(target, DefaultThreeBlocksOptions())
	require.NoError(t, err)
	source := solidClip(t, 110, 100, 90, 255, 255, 255)
	out, err := tb.Apply(source)
	require.NoError(t, err)

	bars := tb.Bars()
	_, h := target.Bounds()
	bandY := int(0.33*float64(h)) + 1

	for i := 0; i <= 105; i++ {
		m, err := out.Mask(clip.Timestamp(i, testFPS))
		require.NoError(t, err)
		if i >= 50 {
			r, g, _ := m.At((bars[0][0]+bars[0][1])/2, bandY)
			assert.Equal(t, uint8(200), r, "frame %d", i)
			assert.Equal(t, uint8(0), g, "frame %d", i)
		}
	}
}

func TestThreeBlocksMismatchedSourceFailsHard(t *testing.T) {
	target := solidClip(t, 1, 100, 90, 1, 2, 3)
	tb, err := NewThreeBlocks(target, DefaultThreeBlocksOptions())
	require.NoError(t, err)

	// source narrower than the bar layout: paste must fail, not clamp
	source := solidClip(t, 60, 40, 40, 0, 0, 0)
	out, err := tb.Apply(source)
	require.NoError(t, err)

	var sawErr bool
	for i := 0; i < 60; i++ {
		if _, err := out.Mask(clip.Timestamp(i, testFPS)); err != nil {
			sawErr = true
			break
		}
	}
	assert.True(t, sawErr, "out-of-bounds paste must surface an error")
}

func TestBlinkFlashesNearClipEnd(t *testing.T) {
	target := solidClip(t, 70, 20, 20, 200, 0, 0)
	source := solidClip(t, 80, 20, 20, 0, 0, 200)

	bl := NewBlink(target, DefaultBlinkOptions())
	out, err := bl.Apply(source)
	require.NoError(t, err)

	// span = 3*12 + 2*12 = 60, start = 80-60 = 20
	for i := 0; i < 80; i++ {
		m, err := out.Mask(clip.Timestamp(i, testFPS))
		require.NoError(t, err)
		r, _, _ := m.At(10, 10)

		offset := i - 20
		inFlash := offset >= 0 && offset%24 < 12 && offset/24 < 3
		if inFlash {
			assert.Equal(t, uint8(200), r, "frame %d should flash target", i)
		} else {
			assert.Equal(t, uint8(255), r, "frame %d should keep the opaque mask", i)
		}
	}
}

func TestBlinkShortTargetFailsHard(t *testing.T) {
	target := solidClip(t, 5, 20, 20, 200, 0, 0)
	source := solidClip(t, 80, 20, 20, 0, 0, 200)

	bl := NewBlink(target, DefaultBlinkOptions())
	out, err := bl.Apply(source)
	require.NoError(t, err)

	var sawErr bool
	for i := 0; i < 80; i++ {
		if _, err := out.Mask(clip.Timestamp(i, testFPS)); err != nil {
			assert.ErrorIs(t, err, clip.ErrFrameOutOfRange)
			sawErr = true
			break
		}
	}
	assert.True(t, sawErr, "reading past the target's extent must fail")
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"blink", "three_blocks"}, Names())

	for _, name := range Names() {
		ctor, err := Resolve(name)
		require.NoError(t, err)
		assert.NotNil(t, ctor)
	}

	_, err := Resolve("crossfade")
	var nameErr *registry.InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, []string{"crossfade"}, nameErr.Invalid)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
