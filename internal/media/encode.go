package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/pkg/util"
	"github.com/schollz/progressbar/v3"
)

// Default encoding settings.
const (
	DefaultCRF        = 23
	DefaultPreset     = "medium"
	DefaultVideoCodec = "libx264"
	DefaultAudioCodec = "aac"
)

// EncodeOptions configures clip writing.
type EncodeOptions struct {
	VideoCodec string
	AudioCodec string
	CRF        int
	Preset     string

	// AudioPath is an optional background audio file muxed under the
	// video; AudioSkip drops its leading seconds first.
	AudioPath string
	AudioSkip time.Duration

	// ShowProgress renders a terminal progress bar while encoding.
	ShowProgress bool
}

// Encode writes a clip to a video file. Frames are pulled in strictly
// increasing index order (the stateful transforms upstream require a
// gapless traversal), flattened against their mask and streamed to ffmpeg
// as rawvideo.
func (e *Executor) Encode(ctx context.Context, c clip.Clip, output string, opts EncodeOptions) error {
	if output == "" {
		return fmt.Errorf("output path is required")
	}

	w, h := c.Bounds()
	fps := c.FPS()
	total := clip.FrameCount(c)

	args := []string{
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", w, h),
		"-r", fmt.Sprintf("%f", fps),
		"-i", "pipe:0",
	}

	if opts.AudioPath != "" {
		if opts.AudioSkip > 0 {
			args = append(args, "-ss", util.FormatDuration(opts.AudioSkip))
		}
		args = append(args, "-i", opts.AudioPath)
	}

	videoCodec := opts.VideoCodec
	if videoCodec == "" {
		videoCodec = DefaultVideoCodec
	}
	crf := opts.CRF
	if crf == 0 {
		crf = DefaultCRF
	}
	preset := opts.Preset
	if preset == "" {
		preset = DefaultPreset
	}
	args = append(args,
		"-c:v", videoCodec,
		"-crf", fmt.Sprintf("%d", crf),
		"-preset", preset,
		"-pix_fmt", "yuv420p",
	)

	if opts.AudioPath != "" {
		audioCodec := opts.AudioCodec
		if audioCodec == "" {
			audioCodec = DefaultAudioCodec
		}
		args = append(args,
			"-map", "0:v", "-map", "1:a",
			"-c:a", audioCodec,
			"-shortest",
		)
	} else {
		args = append(args, "-an")
	}

	args = append(args, output)

	e.logger.Info().
		Str("output", output).
		Int("frames", total).
		Float64("fps", fps).
		Msg("encoding clip")

	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Encoding"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(50),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	pr, pw := io.Pipe()
	feedErr := make(chan error, 1)
	go func() {
		defer pw.Close()
		for i := 0; i < total; i++ {
			t := clip.Timestamp(i, fps)
			color, err := c.Frame(t)
			if err != nil {
				feedErr <- fmt.Errorf("fetching frame %d: %w", i, err)
				pw.CloseWithError(err)
				return
			}
			mask, err := c.Mask(t)
			if err != nil {
				feedErr <- fmt.Errorf("fetching mask %d: %w", i, err)
				pw.CloseWithError(err)
				return
			}
			flat := clip.Composite(color, mask)
			if _, err := pw.Write(flat.Pix); err != nil {
				feedErr <- fmt.Errorf("writing frame %d: %w", i, err)
				return
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		feedErr <- nil
	}()

	runErr := e.Run(ctx, RunOptions{
		Args:  args,
		Stdin: pr,
		LogHandler: func(line string) {
			e.logger.Debug().Str("ffmpeg", line).Msg("encode output")
		},
	})

	// ffmpeg can die before draining the pipe; closing the read side
	// unblocks a feeder stuck in Write so the failure stays synchronous
	if runErr != nil {
		pr.CloseWithError(runErr)
	} else {
		pr.Close()
	}

	if err := <-feedErr; err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("encode failed: %w", runErr)
	}

	if bar != nil {
		_ = bar.Finish()
	}
	e.logger.Info().Str("output", output).Msg("encode completed")
	return nil
}
