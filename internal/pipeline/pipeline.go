// Package pipeline orchestrates the edit and merge workflows: decode,
// transform stacking, junction binding and encode.
package pipeline

import (
	"context"
	"fmt"

	"github.com/keagan/vidfx/internal/clip"
	"github.com/keagan/vidfx/internal/config"
	"github.com/keagan/vidfx/internal/effects"
	"github.com/keagan/vidfx/internal/filters"
	"github.com/keagan/vidfx/internal/logging"
	"github.com/keagan/vidfx/internal/media"
	"github.com/keagan/vidfx/internal/merge"
	"github.com/keagan/vidfx/pkg/util"
	"github.com/rs/zerolog"
)

// Pipeline runs complete edit and merge jobs against one ffmpeg
// executor.
type Pipeline struct {
	logger zerolog.Logger
	exec   *media.Executor
	cfg    *config.Config
}

// New creates a pipeline. Fails when ffmpeg or ffprobe is missing.
func New(logger zerolog.Logger, cfg *config.Config) (*Pipeline, error) {
	exec, err := media.New(logger, cfg.FFmpeg.Threads)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		logger: logging.WithComponent(logger, "pipeline"),
		exec:   exec,
		cfg:    cfg,
	}, nil
}

// EditOptions configures a single-clip edit job.
type EditOptions struct {
	Filters      []string
	Effects      []string
	Output       string
	ShowProgress bool
}

// Edit decodes one clip, stacks the requested filters and effects on its
// color track and encodes the result. Filter and effect names are
// validated before any decoding happens.
func (p *Pipeline) Edit(ctx context.Context, input string, opts EditOptions) error {
	if !util.FileExists(input) {
		return fmt.Errorf("input file does not exist: %s", input)
	}
	if err := filters.Validate(opts.Filters); err != nil {
		return err
	}
	if err := effects.Validate(opts.Effects); err != nil {
		return err
	}

	output := util.EnsureExtension(opts.Output, ".mp4")

	p.logger.Info().
		Str("input", input).
		Strs("filters", opts.Filters).
		Strs("effects", opts.Effects).
		Str("output", output).
		Msg("starting edit")

	buf, err := p.exec.Decode(ctx, input, media.DecodeOptions{
		MaxDuration: p.cfg.EditWindow(),
	})
	if err != nil {
		return err
	}

	var c clip.Clip = buf

	if len(opts.Filters) > 0 {
		fn, err := filters.Compose(opts.Filters)
		if err != nil {
			return err
		}
		c = clip.PixelTransform(c, fn)
	}

	if len(opts.Effects) > 0 {
		fn, err := effects.Compose(opts.Effects)
		if err != nil {
			return err
		}
		c = clip.FrameTransform(c, fn, clip.TrackColor)
	}

	return p.exec.Encode(ctx, c, output, media.EncodeOptions{
		CRF:          p.cfg.FFmpeg.CRF,
		Preset:       p.cfg.FFmpeg.Preset,
		ShowProgress: opts.ShowProgress,
	})
}

// MergeOptions configures a multi-clip merge job.
type MergeOptions struct {
	Transitions  []string
	SongPath     string
	Output       string
	ShowProgress bool
}

// Merge decodes the inputs in caller order, validates and applies the
// junction bindings, concatenates the clips into one timeline and
// encodes it, optionally muxing background audio underneath. All binding
// validation happens before the first decode.
func (p *Pipeline) Merge(ctx context.Context, inputs []string, opts MergeOptions) error {
	if len(inputs) < 2 {
		return fmt.Errorf("merge needs at least two clips, got %d", len(inputs))
	}
	for _, input := range inputs {
		if !util.FileExists(input) {
			return fmt.Errorf("input file does not exist: %s", input)
		}
	}
	if opts.SongPath != "" && !util.FileExists(opts.SongPath) {
		return fmt.Errorf("song file does not exist: %s", opts.SongPath)
	}

	bindings, err := merge.ParseBindings(opts.Transitions, len(inputs))
	if err != nil {
		return err
	}

	output := util.EnsureExtension(opts.Output, ".mp4")

	p.logger.Info().
		Int("clips", len(inputs)).
		Strs("transitions", opts.Transitions).
		Str("output", output).
		Msg("starting merge")

	clips := make([]clip.Clip, len(inputs))
	for i, input := range inputs {
		buf, err := p.exec.Decode(ctx, input, media.DecodeOptions{})
		if err != nil {
			return err
		}
		clips[i] = buf
	}

	merged, err := merge.Apply(clips, bindings)
	if err != nil {
		return err
	}

	return p.exec.Encode(ctx, merged, output, media.EncodeOptions{
		CRF:          p.cfg.FFmpeg.CRF,
		Preset:       p.cfg.FFmpeg.Preset,
		AudioPath:    opts.SongPath,
		AudioSkip:    p.cfg.AudioSkip(),
		ShowProgress: opts.ShowProgress,
	})
}
