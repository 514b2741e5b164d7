package checkpoint

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/l1sound/l1sound/chain"
	"github.com/l1sound/l1sound/log"
	"github.com/l1sound/l1sound/metrics"
)

// progressInterval is how many processed blocks sit between progress log
// lines during a build.
const progressInterval = 25

// Params are the caller-supplied sampling knobs for one checkpoint run.
type Params struct {
	BlocksRequested uint64 // window size ending at the chain head
	Step            uint64 // sample every step-th block within the window
}

// Result bundles the checkpoint digest with its run metadata. The JSON field
// names are the external contract consumed by downstream verification jobs.
type Result struct {
	ChainID         uint64  `json:"chainId"`
	Network         string  `json:"network"`
	Head            uint64  `json:"head"`
	Start           uint64  `json:"start"`
	BlocksRequested uint64  `json:"blocksRequested"`
	Step            uint64  `json:"step"`
	SampledBlocks   uint64  `json:"sampledBlocks"`
	ElapsedSec      float64 `json:"elapsedSec"`
	CheckpointHex   string  `json:"checkpointHex"`
}

// Builder constructs soundness checkpoints from a block source. It drives
// the source strictly sequentially: each transcript step depends on the
// previous accumulator value, so there is no valid parallel order.
type Builder struct {
	source    chain.Source
	logger    *log.Logger
	collector *metrics.Collector
}

// NewBuilder creates a builder reading from the given source.
func NewBuilder(source chain.Source) *Builder {
	return &Builder{
		source: source,
		logger: log.Default().Module("checkpoint"),
	}
}

// WithCollector attaches a metrics collector that receives per-block fetch
// timings during Build. Returns the builder for chaining.
func (b *Builder) WithCollector(c *metrics.Collector) *Builder {
	b.collector = c
	return b
}

// Build resolves the chain head, derives the sampling plan and folds every
// sampled block's header roots into the rolling transcript. Any failure
// aborts the whole run: a checkpoint over an incomplete sample set would
// silently change the security properties of the output, so there is no
// best-effort mode and no retry here. Cancelling ctx aborts the run with
// ErrAborted.
func (b *Builder) Build(ctx context.Context, params Params) (Result, error) {
	begin := time.Now()

	info, err := b.source.ChainInfo(ctx)
	if err != nil {
		return Result{}, b.abortErr(ctx, err)
	}

	plan, err := NewPlan(info.Head, params.BlocksRequested, params.Step)
	if err != nil {
		return Result{}, err
	}

	numbers := plan.Numbers()
	b.logger.Info("building soundness checkpoint",
		"network", info.Network,
		"head", plan.Head,
		"start", plan.Start,
		"sampled", len(numbers),
	)

	tr := NewTranscript()
	for i, n := range numbers {
		fetchStart := time.Now()
		rec, err := b.source.BlockRoots(ctx, n)
		if err != nil {
			return Result{}, b.abortErr(ctx, err)
		}
		if b.collector != nil {
			b.collector.Observe("fetch.duration_ms", float64(time.Since(fetchStart).Microseconds())/1000)
		}

		tr.Absorb(rec)

		if done := i + 1; done%progressInterval == 0 || done == len(numbers) {
			b.logger.Info("processed sampled blocks", "done", done, "total", len(numbers), "current", n)
		}
	}

	elapsed := time.Since(begin).Seconds()
	if b.collector != nil {
		b.collector.Record("build.elapsed_sec", elapsed)
	}

	return Result{
		ChainID:         info.ChainID,
		Network:         info.Network,
		Head:            plan.Head,
		Start:           plan.Start,
		BlocksRequested: plan.BlocksRequested,
		Step:            plan.Step,
		SampledBlocks:   tr.Absorbed(),
		ElapsedSec:      math.Round(elapsed*100) / 100,
		CheckpointHex:   tr.Hex(),
	}, nil
}

// abortErr maps a failure to ErrAborted when the context was cancelled,
// otherwise passes the source error through unchanged.
func (b *Builder) abortErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrAborted, ctx.Err())
	}
	return err
}
