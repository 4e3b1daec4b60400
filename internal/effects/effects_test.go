package effects

import (
	"testing"
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
	"github.com/keagan/vidfx/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFPS = 10.0

// numberedAccessor yields 1x1 frames whose red channel equals the frame
// index, so tests can read which source frame an effect returned.
func numberedAccessor(n int) clip.Accessor {
	return func(t time.Duration) (*frame.Frame, error) {
		i := clip.Index(t, testFPS)
		if i < 0 || i >= n {
			return nil, clip.ErrFrameOutOfRange
		}
		return frame.NewFilled(1, 1, uint8(i), 0, 0), nil
	}
}

// runEffect drives fn over n frames in call order and returns the red
// channel of each output frame.
func runEffect(t *testing.T, fn clip.TransformFunc, get clip.Accessor, n int) []uint8 {
	t.Helper()
	out := make([]uint8, n)
	for i := 0; i < n; i++ {
		f, err := fn(get, clip.Timestamp(i, testFPS))
		require.NoError(t, err)
		r, _, _ := f.At(0, 0)
		out[i] = r
	}
	return out
}

func TestStopMotionCallOrder(t *testing.T) {
	fn := StopMotion(StopMotionOptions{RemoveEvery: 2, Source: IndexByCall})
	got := runEffect(t, fn, numberedAccessor(6), 6)

	// index 0 has nothing retained and passes through; 2 and 4 are
	// replaced by the frames retained at 1 and 3.
	assert.Equal(t, []uint8{0, 1, 1, 3, 3, 5}, got)
}

func TestStopMotionTimestampVariantMatchesAtIntegerRates(t *testing.T) {
	byCall := StopMotion(StopMotionOptions{RemoveEvery: 2, Source: IndexByCall})
	byTime := StopMotion(StopMotionOptions{RemoveEvery: 2, Source: IndexByTimestamp, FPS: testFPS})

	a := runEffect(t, byCall, numberedAccessor(6), 6)
	b := runEffect(t, byTime, numberedAccessor(6), 6)
	assert.Equal(t, a, b)
}

func TestStopMotionFreshStatePerInstance(t *testing.T) {
	first := StopMotion(DefaultStopMotionOptions())
	_ = runEffect(t, first, numberedAccessor(6), 6)

	second := StopMotion(DefaultStopMotionOptions())
	got := runEffect(t, second, numberedAccessor(6), 6)
	assert.Equal(t, uint8(0), got[0], "new instance starts with no retained frame")
}

func TestPhotoMovementHoldCadence(t *testing.T) {
	fn := PhotoMovement(PhotoMovementOptions{DuplicateEvery: 2})
	got := runEffect(t, fn, numberedAccessor(6), 6)

	// trigger at 0 holds frames 0..2, trigger at 3 holds 3..5
	assert.Equal(t, []uint8{0, 0, 0, 3, 3, 3}, got)
}

func TestPhotoMovementDefaultCadence(t *testing.T) {
	fn := PhotoMovement(DefaultPhotoMovementOptions())
	got := runEffect(t, fn, numberedAccessor(10), 10)

	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 5, 5, 5, 5, 5}, got)
}

func TestValidate(t *testing.T) {
	for _, name := range Names() {
		assert.NoError(t, Validate([]string{name}))
	}

	err := Validate([]string{"warp"})
	var nameErr *registry.InvalidNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, "effect", nameErr.Kind)
	assert.Equal(t, []string{"warp"}, nameErr.Invalid)
	assert.Equal(t, Names(), nameErr.Valid)
}

func TestComposeStacksEffects(t *testing.T) {
	// stop_motion first, then photo_movement reading stop_motion's
	// output: photo_movement's held frames must come from the already
	// stop-motioned stream, not the pristine source.
	fn, err := Compose([]string{"stop_motion", "photo_movement"})
	require.NoError(t, err)

	got := runEffect(t, fn, numberedAccessor(12), 12)

	// stop_motion(remove_every=2): 0,1,1,3,3,5,5,7,7,9,9,11
	// photo_movement(duplicate_every=4) over that: holds index 0 for
	// 0..4, holds index 5 for 5..9, then re-triggers on index 10's
	// value (9) and holds it.
	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 5, 5, 5, 5, 5, 9, 9}, got)
}

func TestComposeRejectsUnknown(t *testing.T) {
	_, err := Compose([]string{"stop_motion", "nope"})
	assert.Error(t, err)
}

func TestEffectPropagatesAccessorError(t *testing.T) {
	fn := StopMotion(DefaultStopMotionOptions())
	_, err := fn(numberedAccessor(2), clip.Timestamp(5, testFPS))
	assert.ErrorIs(t, err, clip.ErrFrameOutOfRange)
}
