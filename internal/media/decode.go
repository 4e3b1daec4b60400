package media

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/frame"
	"github.com/keagan/vidfx/pkg/util"
)

// DecodeOptions configures clip loading.
type DecodeOptions struct {
	// MaxDuration caps how much of the file is decoded. Zero loads the
	// whole clip.
	MaxDuration time.Duration
}

// Decode loads a video file into an in-memory clip of raw RGB frames.
// Frames arrive over a rawvideo pipe in presentation order, which is the
// strictly increasing traversal the stateful transforms downstream rely
// on.
func (e *Executor) Decode(ctx context.Context, path string, opts DecodeOptions) (*clip.Buffer, error) {
	if !util.FileExists(path) {
		return nil, fmt.Errorf("input file does not exist: %s", path)
	}

	info, err := e.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Width == 0 || info.Height == 0 || info.FPS == 0 {
		return nil, fmt.Errorf("no decodable video stream in %s", path)
	}

	args := []string{"-i", path}
	if opts.MaxDuration > 0 {
		args = append(args, "-t", util.FormatDuration(opts.MaxDuration))
	}
	args = append(args, "-f", "rawvideo", "-pix_fmt", "rgb24", "pipe:1")

	e.logger.Debug().
		Str("input", path).
		Int("width", info.Width).
		Int("height", info.Height).
		Float64("fps", info.FPS).
		Msg("decoding clip")

	cmd := exec.CommandContext(ctx, e.ffmpegPath, append([]string{"-hide_banner", "-loglevel", "error"}, args...)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	frameSize := info.Width * info.Height * 3
	reader := bufio.NewReaderSize(stdout, frameSize)

	var frames []*frame.Frame
	for {
		pix := make([]uint8, frameSize)
		_, err := io.ReadFull(reader, pix)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			// trailing partial frame, drop it
			break
		}
		if err != nil {
			_ = cmd.Process.Kill()
			return nil, fmt.Errorf("reading frame %d: %w", len(frames), err)
		}
		frames = append(frames, &frame.Frame{W: info.Width, H: info.Height, Pix: pix})
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w: %s", err, stderr.String())
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames decoded from %s", path)
	}

	e.logger.Info().
		Str("input", path).
		Int("frames", len(frames)).
		Float64("fps", info.FPS).
		Msg("clip decoded")

	return clip.NewBuffer(frames, info.FPS)
}
