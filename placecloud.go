// Package placecloud decodes archives of pixel-placement events into
// point-cloud vertex attributes, sliced into bounded render batches.
//
// The pipeline has three pure stages over one byte buffer:
//
//  1. event.Split parses the buffer into parallel time, user id, xy and
//     color-index arrays.
//  2. attribute.Builder derives positions (x-1000, time/timeScale, y-1000),
//     RGB colors from the fixed palette, and passes user ids through.
//  3. chunk.Slice cuts the attributes into N contiguous batches, the last of
//     which absorbs the remainder.
//
// # Basic Usage
//
//	p, err := placecloud.New(
//	    placecloud.WithTimeScale(1e6),
//	    placecloud.WithChunkCount(4),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := p.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range res.Chunks {
//	    upload(c.Positions, c.Colors, c.UserID)
//	}
//
// Loading named archives from a directory:
//
//	loader := dataset.NewDirLoader("place-data")
//	sets, err := p.Load(ctx, loader, "2017", "2022")
//
// The stages are also usable on their own; see packages event, attribute and
// chunk.
package placecloud

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arloliu/placecloud/attribute"
	"github.com/arloliu/placecloud/chunk"
	"github.com/arloliu/placecloud/config"
	"github.com/arloliu/placecloud/dataset"
	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/event"
	"github.com/arloliu/placecloud/internal/logger"
	"github.com/arloliu/placecloud/internal/options"
	"github.com/arloliu/placecloud/palette"
)

// SetLogger installs the logger used by every placecloud package.
// By default nothing is logged. Pass nil to restore that.
//
// Debug level reports buffer sizes and dataset loads.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the logger installed with SetLogger.
func Logger() *slog.Logger {
	return logger.Get()
}

type pipelineConfig struct {
	timeScale     float64
	chunkCount    int
	maxChunkItems int
	palette       palette.Palette
	zeroCopy      bool
}

// Option configures a Pipeline.
type Option = options.Option[*pipelineConfig]

// WithTimeScale sets the divisor applied to event time. Required.
func WithTimeScale(scale float64) Option {
	return options.New(func(c *pipelineConfig) error {
		if err := attribute.ValidateTimeScale(scale); err != nil {
			return err
		}
		c.timeScale = scale

		return nil
	})
}

// WithChunkCount sets the number of batches each decoded buffer is sliced into.
// The default is 1.
func WithChunkCount(n int) Option {
	return options.New(func(c *pipelineConfig) error {
		if n < 1 {
			return &errs.ChunkCountError{Count: n}
		}
		c.chunkCount = n

		return nil
	})
}

// WithMaxChunkItems derives the chunk count from the event count so that
// every non-final batch holds at most n events. The last batch takes the
// remainder and may hold more. It overrides WithChunkCount.
// Zero disables it.
func WithMaxChunkItems(n int) Option {
	return options.New(func(c *pipelineConfig) error {
		if n < 0 {
			return &errs.ChunkCountError{Count: n}
		}
		c.maxChunkItems = n

		return nil
	})
}

// WithPalette replaces the default color table.
func WithPalette(p palette.Palette) Option {
	return options.NoError(func(c *pipelineConfig) {
		c.palette = p
	})
}

// WithZeroCopy lets the split stage alias the input buffer instead of copying
// it. The caller must not modify the input while results are in use.
func WithZeroCopy() Option {
	return options.NoError(func(c *pipelineConfig) {
		c.zeroCopy = true
	})
}

// Pipeline runs split, build and slice over event buffers.
//
// A Pipeline is immutable and safe for concurrent use.
type Pipeline struct {
	splitter      *event.Splitter
	builder       *attribute.Builder
	chunkCount    int
	maxChunkItems int
}

// New creates a Pipeline. WithTimeScale must be given.
func New(opts ...Option) (*Pipeline, error) {
	cfg := &pipelineConfig{
		chunkCount: 1,
		palette:    palette.Default(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var splitOpts []event.SplitterOption
	if cfg.zeroCopy {
		splitOpts = append(splitOpts, event.WithZeroCopy())
	}
	splitter, err := event.NewSplitter(splitOpts...)
	if err != nil {
		return nil, err
	}

	builder, err := attribute.NewBuilder(cfg.timeScale, attribute.WithPalette(cfg.palette))
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		splitter:      splitter,
		builder:       builder,
		chunkCount:    cfg.chunkCount,
		maxChunkItems: cfg.maxChunkItems,
	}, nil
}

// NewFromConfig creates a Pipeline from a file configuration. Extra options
// are applied after the configuration.
func NewFromConfig(cfg config.Config, opts ...Option) (*Pipeline, error) {
	base := []Option{
		WithTimeScale(cfg.TimeScale),
		WithChunkCount(cfg.ChunkCount),
		WithMaxChunkItems(cfg.MaxChunkItems),
	}

	return New(append(base, opts...)...)
}

// Result is a fully decoded event buffer.
type Result struct {
	Buffers    event.Buffers
	Attributes attribute.Set
	Chunks     []chunk.Chunk
}

// Len returns the number of events.
func (r Result) Len() int {
	return r.Attributes.Len()
}

// ChunkCount returns the chunk count the pipeline would use for itemCount events.
func (p *Pipeline) ChunkCount(itemCount int) (int, error) {
	if p.maxChunkItems > 0 {
		return chunk.CountFor(itemCount, p.maxChunkItems)
	}

	return p.chunkCount, nil
}

// Decode runs all three stages over data.
func (p *Pipeline) Decode(data []byte) (Result, error) {
	bufs, err := p.splitter.Split(data)
	if err != nil {
		return Result{}, err
	}

	set, err := p.builder.Build(bufs)
	if err != nil {
		return Result{}, err
	}

	n, err := p.ChunkCount(set.Len())
	if err != nil {
		return Result{}, err
	}

	chunks, err := chunk.Slice(set, n)
	if err != nil {
		return Result{}, err
	}

	return Result{Buffers: bufs, Attributes: set, Chunks: chunks}, nil
}

// Dataset is a loaded and decoded archive.
type Dataset struct {
	dataset.Archive
	Result
}

// Load loads the named archives concurrently and decodes each of them.
// Errors name the dataset that failed.
func (p *Pipeline) Load(ctx context.Context, loader *dataset.Loader, names ...string) ([]Dataset, error) {
	archives, err := loader.LoadAll(ctx, names)
	if err != nil {
		return nil, err
	}

	out := make([]Dataset, len(archives))
	for i, a := range archives {
		res, err := p.Decode(a.Raw)
		if err != nil {
			return nil, fmt.Errorf("decode dataset %q: %w", a.Name, err)
		}
		out[i] = Dataset{Archive: a, Result: res}

		logger.Get().Info("decoded dataset",
			"name", a.Name,
			"events", res.Len(),
			"chunks", len(res.Chunks),
		)
	}

	return out, nil
}

// Decode runs the pipeline once with the default palette.
func Decode(data []byte, timeScale float64, chunkCount int) (Result, error) {
	p, err := New(WithTimeScale(timeScale), WithChunkCount(chunkCount))
	if err != nil {
		return Result{}, err
	}

	return p.Decode(data)
}
